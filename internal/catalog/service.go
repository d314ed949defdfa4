package catalog

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
	"github.com/fixnest/fixnest-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const servicePageReviewLimit = 20

// Service exposes the catalog read paths and the back-office CRUD.
type Service interface {
	ListServices(ctx context.Context) ([]ServiceSummaryDTO, error)
	GetServicePage(ctx context.Context, slug string) (*ServicePageDTO, error)

	ListAdminServices(ctx context.Context) ([]ServiceDetailDTO, error)
	GetAdminService(ctx context.Context, id uuid.UUID) (*ServiceDetailDTO, error)
	CreateService(ctx context.Context, input CreateServiceInput) (*ServiceDetailDTO, error)
	UpdateService(ctx context.Context, id uuid.UUID, input UpdateServiceInput) (*ServiceDetailDTO, error)
	DeleteService(ctx context.Context, id uuid.UUID) error

	CreateSubService(ctx context.Context, serviceID uuid.UUID, input CreateSubServiceInput) (*SubServiceDTO, error)
	UpdateSubService(ctx context.Context, serviceID, subServiceID uuid.UUID, input UpdateSubServiceInput) (*SubServiceDTO, error)
	DeleteSubService(ctx context.Context, serviceID, subServiceID uuid.UUID) error
}

// CreateServiceInput holds the validated payload to create a service.
type CreateServiceInput struct {
	Name        string
	Description string
	Content     string
	Location    *string
	ImageURL    *string
	Type        []string
	WhyChooseUs []types.WhyChooseUsEntry
	IsPublished bool
	FAQs        []faqs.Entry
}

// UpdateServiceInput holds optional mutation values for a service. FAQs,
// when present, replace the existing set wholesale.
type UpdateServiceInput struct {
	Name        *string
	Description *string
	Content     *string
	Location    *string
	ImageURL    *string
	Type        *[]string
	WhyChooseUs *[]types.WhyChooseUsEntry
	IsPublished *bool
	FAQs        *[]faqs.Entry
}

// CreateSubServiceInput holds the validated payload to create a sub-service.
type CreateSubServiceInput struct {
	Name            string
	Description     string
	Price           int
	DiscountedPrice *int
	Type            *string
	WhatIncluded    []string
	WhatExcluded    []string
	Duration        string
	ImageURL        *string
	IsPopular       bool
	IsActive        bool
}

// UpdateSubServiceInput holds optional mutation values for a sub-service.
type UpdateSubServiceInput struct {
	Name            *string
	Description     *string
	Price           *int
	DiscountedPrice *int
	Type            *string
	WhatIncluded    *[]string
	WhatExcluded    *[]string
	Duration        *string
	ImageURL        *string
	IsPopular       *bool
	IsActive        *bool
}

type ratingReader interface {
	AverageForService(ctx context.Context, serviceID uuid.UUID) (string, error)
}

type reviewLister interface {
	ListRecentForService(ctx context.Context, serviceID uuid.UUID, limit int) ([]models.Review, error)
}

type service struct {
	repo     *Repository
	faqRepo  *faqs.Repository
	dbClient *db.Client
	ratings  ratingReader
	reviews  reviewLister
}

// NewService constructs the catalog service.
func NewService(repo *Repository, faqRepo *faqs.Repository, dbClient *db.Client, ratings ratingReader, reviews reviewLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if faqRepo == nil {
		return nil, fmt.Errorf("faq repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if ratings == nil {
		return nil, fmt.Errorf("rating reader required")
	}
	if reviews == nil {
		return nil, fmt.Errorf("review lister required")
	}
	return &service{
		repo:     repo,
		faqRepo:  faqRepo,
		dbClient: dbClient,
		ratings:  ratings,
		reviews:  reviews,
	}, nil
}

// ListServices returns published services for the storefront listing. Each
// service's sub-services come back popular-first, then cheapest-first.
func (s *service) ListServices(ctx context.Context) ([]ServiceSummaryDTO, error) {
	rows, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list services")
	}

	summaries := make([]ServiceSummaryDTO, 0, len(rows))
	for _, row := range rows {
		avg, err := s.ratings.AverageForService(ctx, row.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: average rating")
		}
		subs := newSubServiceDTOs(row.SubServices)
		sortForListing(subs)
		summaries = append(summaries, ServiceSummaryDTO{
			ID:            row.ID,
			Name:          row.Name,
			Slug:          row.Slug,
			Description:   row.Description,
			Location:      row.Location,
			ImageURL:      row.ImageURL,
			Type:          append([]string(nil), row.Type...),
			AverageRating: avg,
			SubServices:   subs,
		})
	}
	return summaries, nil
}

// GetServicePage assembles the full detail page for a published service.
func (s *service) GetServicePage(ctx context.Context, slug string) (*ServicePageDTO, error) {
	row, err := s.repo.FindPublishedBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load service")
	}

	avg, err := s.ratings.AverageForService(ctx, row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: average rating")
	}

	faqRows, err := s.faqRepo.ListForOwner(ctx, enums.FAQOwnerService, row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list faqs")
	}

	reviewRows, err := s.reviews.ListRecentForService(ctx, row.ID, servicePageReviewLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list reviews")
	}
	reviewDTOs := make([]ReviewDTO, 0, len(reviewRows))
	for _, review := range reviewRows {
		reviewDTOs = append(reviewDTOs, NewReviewDTO(review))
	}

	subs := newSubServiceDTOs(row.SubServices)
	sortForDetail(subs)

	return &ServicePageDTO{
		ID:            row.ID,
		Name:          row.Name,
		Slug:          row.Slug,
		Description:   row.Description,
		Content:       row.Content,
		Location:      row.Location,
		ImageURL:      row.ImageURL,
		Type:          append([]string(nil), row.Type...),
		WhyChooseUs:   row.WhyChooseUs,
		AverageRating: avg,
		SubServices:   subs,
		FAQs:          NewFAQDTOs(faqRows),
		Reviews:       reviewDTOs,
	}, nil
}

// ListAdminServices returns every service, published or not.
func (s *service) ListAdminServices(ctx context.Context) ([]ServiceDetailDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list services")
	}
	dtos := make([]ServiceDetailDTO, 0, len(rows))
	for _, row := range rows {
		dto, err := s.newDetailDTO(ctx, row)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

// GetAdminService loads one service for the back office.
func (s *service) GetAdminService(ctx context.Context, id uuid.UUID) (*ServiceDetailDTO, error) {
	row, err := s.repo.FindServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load service")
	}
	return s.newDetailDTO(ctx, *row)
}

// CreateService inserts a service with its FAQ set. The slug is always
// computed from the name; clients never pick slugs.
func (s *service) CreateService(ctx context.Context, input CreateServiceInput) (*ServiceDetailDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must contain letters or digits")
	}

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row := &models.Service{
			Name:        name,
			Slug:        slug,
			Description: input.Description,
			Content:     input.Content,
			Location:    input.Location,
			ImageURL:    input.ImageURL,
			Type:        pq.StringArray(input.Type),
			WhyChooseUs: input.WhyChooseUs,
			IsPublished: input.IsPublished,
		}
		created, err := txRepo.CreateService(ctx, row)
		if err != nil {
			if db.IsUniqueViolation(err, "idx_services_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "a service with this name already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert service")
		}
		createdID = created.ID

		if len(input.FAQs) > 0 {
			if err := s.faqRepo.WithTx(tx).ReplaceForOwner(ctx, enums.FAQOwnerService, created.ID, input.FAQs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace faqs")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create service")
	}

	return s.GetAdminService(ctx, createdID)
}

// UpdateService mutates a service and optionally replaces its FAQ set.
func (s *service) UpdateService(ctx context.Context, id uuid.UUID, input UpdateServiceInput) (*ServiceDetailDTO, error) {
	row, err := s.repo.FindServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load service")
	}

	if input.Type != nil {
		if err := ensureSubTypesStillCovered(row.SubServices, *input.Type); err != nil {
			return nil, err
		}
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		applyUpdateToService(row, input)
		if _, err := txRepo.UpdateService(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update service")
		}

		if input.FAQs != nil {
			if err := s.faqRepo.WithTx(tx).ReplaceForOwner(ctx, enums.FAQOwnerService, row.ID, *input.FAQs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace faqs")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update service")
	}

	return s.GetAdminService(ctx, id)
}

// DeleteService removes the service, its sub-services (FK cascade), and its
// FAQ set.
func (s *service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindServiceByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load service")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.faqRepo.WithTx(tx).DeleteForOwner(ctx, enums.FAQOwnerService, id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).DeleteService(ctx, id)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete service")
	}
	return nil
}

// CreateSubService adds an offering under the parent service. The type, when
// set, must match one of the parent's declared tab labels.
func (s *service) CreateSubService(ctx context.Context, serviceID uuid.UUID, input CreateSubServiceInput) (*SubServiceDTO, error) {
	parent, err := s.repo.FindServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load service")
	}

	if err := validateSubServicePricing(input.Price, input.DiscountedPrice); err != nil {
		return nil, err
	}
	if err := validateSubServiceType(parent.Type, input.Type); err != nil {
		return nil, err
	}

	row := &models.SubService{
		ServiceID:       serviceID,
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Price:           input.Price,
		DiscountedPrice: input.DiscountedPrice,
		Type:            input.Type,
		WhatIncluded:    pq.StringArray(input.WhatIncluded),
		WhatExcluded:    pq.StringArray(input.WhatExcluded),
		Duration:        input.Duration,
		ImageURL:        input.ImageURL,
		IsPopular:       input.IsPopular,
		IsActive:        input.IsActive,
	}
	if row.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	created, err := s.repo.CreateSubService(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sub-service")
	}
	dto := NewSubServiceDTO(*created)
	return &dto, nil
}

// UpdateSubService mutates an offering, re-checking the type constraint
// against the parent.
func (s *service) UpdateSubService(ctx context.Context, serviceID, subServiceID uuid.UUID, input UpdateSubServiceInput) (*SubServiceDTO, error) {
	parent, err := s.repo.FindServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load service")
	}

	row, err := s.repo.FindSubServiceByID(ctx, subServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sub-service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sub-service")
	}
	if row.ServiceID != serviceID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sub-service not found")
	}

	applyUpdateToSubService(row, input)

	if err := validateSubServicePricing(row.Price, row.DiscountedPrice); err != nil {
		return nil, err
	}
	if err := validateSubServiceType(parent.Type, row.Type); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateSubService(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update sub-service")
	}
	dto := NewSubServiceDTO(*updated)
	return &dto, nil
}

// DeleteSubService removes an offering from the parent service.
func (s *service) DeleteSubService(ctx context.Context, serviceID, subServiceID uuid.UUID) error {
	row, err := s.repo.FindSubServiceByID(ctx, subServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "sub-service not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sub-service")
	}
	if row.ServiceID != serviceID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "sub-service not found")
	}
	if err := s.repo.DeleteSubService(ctx, subServiceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete sub-service")
	}
	return nil
}

func (s *service) newDetailDTO(ctx context.Context, row models.Service) (*ServiceDetailDTO, error) {
	faqRows, err := s.faqRepo.ListForOwner(ctx, enums.FAQOwnerService, row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list faqs")
	}
	subs := newSubServiceDTOs(row.SubServices)
	sortForDetail(subs)
	return &ServiceDetailDTO{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Content:     row.Content,
		Location:    row.Location,
		ImageURL:    row.ImageURL,
		Type:        append([]string(nil), row.Type...),
		WhyChooseUs: row.WhyChooseUs,
		IsPublished: row.IsPublished,
		SubServices: subs,
		FAQs:        NewFAQDTOs(faqRows),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func applyUpdateToService(row *models.Service, input UpdateServiceInput) {
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		row.Description = *input.Description
	}
	if input.Content != nil {
		row.Content = *input.Content
	}
	if input.Location != nil {
		row.Location = input.Location
	}
	if input.ImageURL != nil {
		row.ImageURL = input.ImageURL
	}
	if input.Type != nil {
		row.Type = pq.StringArray(append([]string(nil), (*input.Type)...))
	}
	if input.WhyChooseUs != nil {
		row.WhyChooseUs = append(types.WhyChooseUsList(nil), (*input.WhyChooseUs)...)
	}
	if input.IsPublished != nil {
		row.IsPublished = *input.IsPublished
	}
}

func applyUpdateToSubService(row *models.SubService, input UpdateSubServiceInput) {
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		row.Description = *input.Description
	}
	if input.Price != nil {
		row.Price = *input.Price
	}
	if input.DiscountedPrice != nil {
		row.DiscountedPrice = input.DiscountedPrice
	}
	if input.Type != nil {
		row.Type = input.Type
	}
	if input.WhatIncluded != nil {
		row.WhatIncluded = pq.StringArray(append([]string(nil), (*input.WhatIncluded)...))
	}
	if input.WhatExcluded != nil {
		row.WhatExcluded = pq.StringArray(append([]string(nil), (*input.WhatExcluded)...))
	}
	if input.Duration != nil {
		row.Duration = *input.Duration
	}
	if input.ImageURL != nil {
		row.ImageURL = input.ImageURL
	}
	if input.IsPopular != nil {
		row.IsPopular = *input.IsPopular
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
}

func validateSubServicePricing(price int, discounted *int) error {
	if price <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if discounted != nil {
		if *discounted <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "discounted_price must be positive")
		}
		if *discounted >= price {
			return pkgerrors.New(pkgerrors.CodeValidation, "discounted_price must be below price")
		}
	}
	return nil
}

// validateSubServiceType enforces that a sub-service's tab label exists in
// the parent's declared set.
func validateSubServiceType(parentTypes []string, subType *string) error {
	if subType == nil {
		return nil
	}
	label := strings.TrimSpace(*subType)
	if label == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "type cannot be blank")
	}
	for _, t := range parentTypes {
		if t == label {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "type must be one of the service's declared types")
}

// ensureSubTypesStillCovered rejects shrinking a service's type set while
// sub-services still reference a removed label.
func ensureSubTypesStillCovered(subs []models.SubService, newTypes []string) error {
	allowed := make(map[string]struct{}, len(newTypes))
	for _, t := range newTypes {
		allowed[t] = struct{}{}
	}
	for _, sub := range subs {
		if sub.Type == nil {
			continue
		}
		if _, ok := allowed[*sub.Type]; !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "sub-services still reference a removed type")
		}
	}
	return nil
}
