package blogs

import (
	"context"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists blog rows.
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

// Create inserts a blog row.
func (r *Repository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

// Update saves an existing blog row.
func (r *Repository) Update(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete removes a blog by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{}).Error
}

// FindByID loads a blog regardless of publication state.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindPublishedBySlug loads a published blog by its slug.
func (r *Repository) FindPublishedBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).
		First(&blog, "slug = ? AND is_published = ?", slug, true).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// ListPublished returns a cursor page of published blogs, newest first.
func (r *Repository) ListPublished(ctx context.Context, params pagination.Params) ([]models.Blog, string, error) {
	return r.list(ctx, params, true)
}

// ListAll returns a cursor page of every blog for the back office.
func (r *Repository) ListAll(ctx context.Context, params pagination.Params) ([]models.Blog, string, error) {
	return r.list(ctx, params, false)
}

func (r *Repository) list(ctx context.Context, params pagination.Params, publishedOnly bool) ([]models.Blog, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Blog{}).
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

	var rows []models.Blog
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
