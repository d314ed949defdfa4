package reviews

import (
	"context"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists review rows.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// FindByID loads a single review.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{}).Error
}

// serviceScope matches reviews left on the service directly or on any of its
// sub-services.
func (r *Repository) serviceScope(ctx context.Context, serviceID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where(
			"service_id = ? OR sub_service_id IN (?)",
			serviceID,
			r.db.Model(&models.SubService{}).Select("id").Where("service_id = ?", serviceID),
		)
}

// ListForService returns a cursor page of reviews for the service, newest
// first. The extra row beyond the limit signals another page.
func (r *Repository) ListForService(ctx context.Context, serviceID uuid.UUID, params pagination.Params) ([]models.Review, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.serviceScope(ctx, serviceID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Review
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

// ListAll returns a cursor page of reviews across the whole catalog, newest
// first. Back-office view; no owner scoping.
func (r *Repository) ListAll(ctx context.Context, params pagination.Params) ([]models.Review, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Review
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

// ListRecentForService returns the newest reviews up to limit.
func (r *Repository) ListRecentForService(ctx context.Context, serviceID uuid.UUID, limit int) ([]models.Review, error) {
	var rows []models.Review
	err := r.serviceScope(ctx, serviceID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AverageRatingForService returns the mean rating across the service and its
// sub-services, or nil when no reviews exist.
func (r *Repository) AverageRatingForService(ctx context.Context, serviceID uuid.UUID) (*float64, error) {
	var avg *float64
	err := r.serviceScope(ctx, serviceID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}
