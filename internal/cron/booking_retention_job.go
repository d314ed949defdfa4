package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/fixnest/fixnest-backend/pkg/logger"
)

const defaultRetentionDays = 365

// BookingRetentionJobParams configure the retention job.
type BookingRetentionJobParams struct {
	Logger        *logger.Logger
	Repository    bookingPruner
	RetentionDays int
}

type bookingPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type bookingRetentionJob struct {
	logg      *logger.Logger
	repo      bookingPruner
	retention int
	now       func() time.Time
}

// NewBookingRetentionJob deletes bookings older than the retention window.
func NewBookingRetentionJob(params BookingRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = defaultRetentionDays
	}
	return &bookingRetentionJob{
		logg:      params.Logger,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

func (j *bookingRetentionJob) Name() string { return "booking-retention" }

func (j *bookingRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().AddDate(0, 0, -j.retention)
	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete bookings before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"deleted": deleted,
		"cutoff":  cutoff.Format(time.RFC3339),
	}), "booking retention pruned")
	return nil
}
