package catalog

import (
	"context"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wires together service and sub-service persistence.
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

// CreateService inserts a new service row.
func (r *Repository) CreateService(ctx context.Context, service *models.Service) (*models.Service, error) {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// UpdateService saves an existing service row.
func (r *Repository) UpdateService(ctx context.Context, service *models.Service) (*models.Service, error) {
	if err := r.db.WithContext(ctx).Save(service).Error; err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteService removes a service; sub-services go with it via FK cascade.
func (r *Repository) DeleteService(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{}).Error
}

// FindServiceByID loads the service with all of its sub-services.
func (r *Repository) FindServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).
		Preload("SubServices").
		First(&service, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// FindPublishedBySlug loads a published service with its active sub-services.
func (r *Repository) FindPublishedBySlug(ctx context.Context, slug string) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).
		Preload("SubServices", "is_active = ?", true).
		First(&service, "slug = ? AND is_published = ?", slug, true).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// ServiceSlugExists reports whether any service carries the slug, published
// or not.
func (r *Repository) ServiceSlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPublished returns published services with their active sub-services,
// newest first.
func (r *Repository) ListPublished(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).
		Preload("SubServices", "is_active = ?", true).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

// ListAll returns every service for the back office, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).
		Preload("SubServices").
		Order("created_at DESC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

// CreateSubService inserts a new sub-service row.
func (r *Repository) CreateSubService(ctx context.Context, sub *models.SubService) (*models.SubService, error) {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// UpdateSubService saves an existing sub-service row.
func (r *Repository) UpdateSubService(ctx context.Context, sub *models.SubService) (*models.SubService, error) {
	if err := r.db.WithContext(ctx).Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubService removes a sub-service by ID.
func (r *Repository) DeleteSubService(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SubService{}).Error
}

// FindSubServiceByID loads a single sub-service.
func (r *Repository) FindSubServiceByID(ctx context.Context, id uuid.UUID) (*models.SubService, error) {
	var sub models.SubService
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListActiveSubServicesByIDs loads active sub-services for the given ids.
// Callers use this to re-price cart lines from the catalog.
func (r *Repository) ListActiveSubServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.SubService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.SubService
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
