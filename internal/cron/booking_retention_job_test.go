package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/fixnest/fixnest-backend/pkg/logger"
)

type fakePruner struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (f *fakePruner) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestBookingRetentionJobUsesConfiguredWindow(t *testing.T) {
	pruner := &fakePruner{deleted: 3}
	job, err := NewBookingRetentionJob(BookingRetentionJobParams{
		Logger:        testLogger(),
		Repository:    pruner,
		RetentionDays: 30,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	fixed := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	job.(*bookingRetentionJob).now = func() time.Time { return fixed }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := fixed.AddDate(0, 0, -30)
	if !pruner.cutoff.Equal(want) {
		t.Fatalf("expected cutoff %s, got %s", want, pruner.cutoff)
	}
}

func TestBookingRetentionJobSurfacesErrors(t *testing.T) {
	pruner := &fakePruner{err: errors.New("db down")}
	job, err := NewBookingRetentionJob(BookingRetentionJobParams{
		Logger:     testLogger(),
		Repository: pruner,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error from failing delete")
	}
}

func TestBookingRetentionJobDefaultsWindow(t *testing.T) {
	job, err := NewBookingRetentionJob(BookingRetentionJobParams{
		Logger:     testLogger(),
		Repository: &fakePruner{},
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	if got := job.(*bookingRetentionJob).retention; got != defaultRetentionDays {
		t.Fatalf("expected default retention, got %d", got)
	}
}
