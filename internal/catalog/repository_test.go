package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustCreateTestService(t *testing.T, tx *gorm.DB, published bool) *models.Service {
	t.Helper()
	service := &models.Service{
		ID:          uuid.New(),
		Name:        "AC Repair",
		Slug:        fmt.Sprintf("ac-repair-%s", uuid.NewString()),
		Description: "All AC repair work",
		Type:        pq.StringArray{"Split AC", "Window AC"},
		IsPublished: published,
	}
	require.NoError(t, tx.Create(service).Error)
	return service
}

func mustCreateTestSubService(t *testing.T, tx *gorm.DB, serviceID uuid.UUID, price int, active bool) *models.SubService {
	t.Helper()
	sub := &models.SubService{
		ID:        uuid.New(),
		ServiceID: serviceID,
		Name:      fmt.Sprintf("offering-%s", uuid.NewString()),
		Price:     price,
		IsActive:  active,
	}
	require.NoError(t, tx.Create(sub).Error)
	return sub
}

func TestRepositoryServiceFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	service := mustCreateTestService(t, tx, true)
	active := mustCreateTestSubService(t, tx, service.ID, 599, true)
	mustCreateTestSubService(t, tx, service.ID, 799, false)

	detail, err := repo.FindServiceByID(ctx, service.ID)
	require.NoError(t, err)
	assert.Len(t, detail.SubServices, 2, "admin load returns inactive rows too")

	public, err := repo.FindPublishedBySlug(ctx, service.Slug)
	require.NoError(t, err)
	require.Len(t, public.SubServices, 1, "public load hides inactive rows")
	assert.Equal(t, active.ID, public.SubServices[0].ID)

	rows, err := repo.ListActiveSubServicesByIDs(ctx, []uuid.UUID{active.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, active.ID, rows[0].ID)

	require.NoError(t, repo.DeleteService(ctx, service.ID))
	_, err = repo.FindServiceByID(ctx, service.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUnpublishedHiddenFromPublicReads(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	service := mustCreateTestService(t, tx, false)

	_, err := repo.FindPublishedBySlug(ctx, service.Slug)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
