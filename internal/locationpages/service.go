package locationpages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fixnest/fixnest-backend/internal/faqs"
	"github.com/fixnest/fixnest-backend/pkg/db"
	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/enums"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes location page reads for the storefront and CRUD for the
// back office.
type Service interface {
	ListPublished(ctx context.Context, params pagination.Params) ([]models.LocationPage, string, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.LocationPage, []models.FAQ, error)

	ListAll(ctx context.Context, params pagination.Params) ([]models.LocationPage, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.LocationPage, []models.FAQ, error)
	Create(ctx context.Context, input CreateLocationPageInput) (*models.LocationPage, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateLocationPageInput) (*models.LocationPage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateLocationPageInput holds the validated payload to create a location
// page. The slug is derived from ServiceSlug and Location, never submitted.
type CreateLocationPageInput struct {
	ServiceSlug string
	Location    string
	Title       string
	MetaTitle   string
	Description string
	Content     string
	IsPublished bool
	FAQs        []faqs.Entry
}

// UpdateLocationPageInput holds optional mutation values. Changing the
// service slug or location recomputes the page slug.
type UpdateLocationPageInput struct {
	ServiceSlug *string
	Location    *string
	Title       *string
	MetaTitle   *string
	Description *string
	Content     *string
	IsPublished *bool
	FAQs        *[]faqs.Entry
}

// serviceSlugChecker verifies the parent service exists before a page can
// point at it.
type serviceSlugChecker interface {
	ServiceSlugExists(ctx context.Context, slug string) (bool, error)
}

type service struct {
	repo     *Repository
	faqRepo  *faqs.Repository
	catalog  serviceSlugChecker
	dbClient *db.Client
}

// NewService constructs the location pages service.
func NewService(repo *Repository, faqRepo *faqs.Repository, catalog serviceSlugChecker, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("location page repository required")
	}
	if faqRepo == nil {
		return nil, fmt.Errorf("faq repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog checker required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, faqRepo: faqRepo, catalog: catalog, dbClient: dbClient}, nil
}

// PageSlug derives the canonical slug for a service scoped to a city.
func PageSlug(serviceSlug string, location enums.City) string {
	return fmt.Sprintf("%s-in-%s", serviceSlug, location)
}

func (s *service) ListPublished(ctx context.Context, params pagination.Params) ([]models.LocationPage, string, error) {
	rows, next, err := s.repo.ListPublished(ctx, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, "", err
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list location pages")
	}
	return rows, next, nil
}

func (s *service) GetPublishedBySlug(ctx context.Context, slug string) (*models.LocationPage, []models.FAQ, error) {
	page, err := s.repo.FindPublishedBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "location page not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load location page")
	}
	faqRows, err := s.faqRepo.ListForOwner(ctx, enums.FAQOwnerLocationPage, page.ID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list faqs")
	}
	return page, faqRows, nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params) ([]models.LocationPage, string, error) {
	rows, next, err := s.repo.ListAll(ctx, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, "", err
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list location pages")
	}
	return rows, next, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.LocationPage, []models.FAQ, error) {
	page, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "location page not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load location page")
	}
	faqRows, err := s.faqRepo.ListForOwner(ctx, enums.FAQOwnerLocationPage, page.ID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list faqs")
	}
	return page, faqRows, nil
}

func (s *service) Create(ctx context.Context, input CreateLocationPageInput) (*models.LocationPage, error) {
	serviceSlug := strings.TrimSpace(input.ServiceSlug)
	if serviceSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service_slug is required")
	}
	city, ok := enums.ParseCity(input.Location)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported location %q", input.Location))
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	exists, err := s.catalog.ServiceSlugExists(ctx, serviceSlug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check service slug")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no service with this slug")
	}

	var created *models.LocationPage
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		row := &models.LocationPage{
			Slug:        PageSlug(serviceSlug, city),
			ServiceSlug: serviceSlug,
			Location:    city,
			Title:       strings.TrimSpace(input.Title),
			MetaTitle:   input.MetaTitle,
			Description: input.Description,
			Content:     input.Content,
			IsPublished: input.IsPublished,
		}
		inserted, err := s.repo.WithTx(tx).Create(ctx, row)
		if err != nil {
			if db.IsUniqueViolation(err, "idx_location_pages_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "a page for this service and location already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert location page")
		}
		created = inserted

		if len(input.FAQs) > 0 {
			if err := s.faqRepo.WithTx(tx).ReplaceForOwner(ctx, enums.FAQOwnerLocationPage, inserted.ID, input.FAQs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace faqs")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location page")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateLocationPageInput) (*models.LocationPage, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load location page")
	}

	if input.ServiceSlug != nil {
		slug := strings.TrimSpace(*input.ServiceSlug)
		if slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "service_slug is required")
		}
		row.ServiceSlug = slug
	}
	if input.Location != nil {
		city, ok := enums.ParseCity(*input.Location)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported location %q", *input.Location))
		}
		row.Location = city
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
		}
		row.Title = title
	}
	if input.MetaTitle != nil {
		row.MetaTitle = *input.MetaTitle
	}
	if input.Description != nil {
		row.Description = *input.Description
	}
	if input.Content != nil {
		row.Content = *input.Content
	}
	if input.IsPublished != nil {
		row.IsPublished = *input.IsPublished
	}

	if input.ServiceSlug != nil {
		exists, err := s.catalog.ServiceSlugExists(ctx, row.ServiceSlug)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check service slug")
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no service with this slug")
		}
	}
	// The slug tracks its inputs; client-submitted slugs are never honored.
	row.Slug = PageSlug(row.ServiceSlug, row.Location)

	var updated *models.LocationPage
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		saved, err := s.repo.WithTx(tx).Update(ctx, row)
		if err != nil {
			if db.IsUniqueViolation(err, "idx_location_pages_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "a page for this service and location already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update location page")
		}
		updated = saved

		if input.FAQs != nil {
			if err := s.faqRepo.WithTx(tx).ReplaceForOwner(ctx, enums.FAQOwnerLocationPage, row.ID, *input.FAQs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace faqs")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update location page")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "location page not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load location page")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.faqRepo.WithTx(tx).DeleteForOwner(ctx, enums.FAQOwnerLocationPage, id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, id)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete location page")
	}
	return nil
}
