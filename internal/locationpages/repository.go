package locationpages

import (
	"context"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists location page rows.
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

// Create inserts a location page row.
func (r *Repository) Create(ctx context.Context, page *models.LocationPage) (*models.LocationPage, error) {
	if err := r.db.WithContext(ctx).Create(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// Update saves an existing location page row.
func (r *Repository) Update(ctx context.Context, page *models.LocationPage) (*models.LocationPage, error) {
	if err := r.db.WithContext(ctx).Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// Delete removes a location page by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.LocationPage{}).Error
}

// FindByID loads a location page regardless of publication state.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.LocationPage, error) {
	var page models.LocationPage
	if err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// FindPublishedBySlug loads a published location page by its slug.
func (r *Repository) FindPublishedBySlug(ctx context.Context, slug string) (*models.LocationPage, error) {
	var page models.LocationPage
	err := r.db.WithContext(ctx).
		First(&page, "slug = ? AND is_published = ?", slug, true).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPublished returns a cursor page of published location pages, newest
// first.
func (r *Repository) ListPublished(ctx context.Context, params pagination.Params) ([]models.LocationPage, string, error) {
	return r.list(ctx, params, true)
}

// ListAll returns a cursor page of every location page for the back office.
func (r *Repository) ListAll(ctx context.Context, params pagination.Params) ([]models.LocationPage, string, error) {
	return r.list(ctx, params, false)
}

func (r *Repository) list(ctx context.Context, params pagination.Params, publishedOnly bool) ([]models.LocationPage, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.LocationPage{}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.LocationPage
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
