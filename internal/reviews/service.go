package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ZeroRating is what surfaces render before the first review lands.
const ZeroRating = "0.00"

// Service exposes review reads for the storefront and writes for the back
// office.
type Service interface {
	ListForService(ctx context.Context, serviceID uuid.UUID, params pagination.Params) ([]models.Review, string, error)
	ListRecentForService(ctx context.Context, serviceID uuid.UUID, limit int) ([]models.Review, error)
	AverageForService(ctx context.Context, serviceID uuid.UUID) (string, error)

	ListAll(ctx context.Context, params pagination.Params) ([]models.Review, string, error)
	CreateReview(ctx context.Context, input CreateReviewInput) (*models.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

// CreateReviewInput holds the validated payload to create a review. Exactly
// one of ServiceID/SubServiceID must be set.
type CreateReviewInput struct {
	ServiceID    *uuid.UUID
	SubServiceID *uuid.UUID
	Rating       int
	Comment      string
	Reviewer     string
	ImageURL     *string
}

type subServiceLoader interface {
	FindSubServiceByID(ctx context.Context, id uuid.UUID) (*models.SubService, error)
	FindServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

type service struct {
	repo    *Repository
	catalog subServiceLoader
}

// NewService constructs the reviews service.
func NewService(repo *Repository, catalog subServiceLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

func (s *service) ListForService(ctx context.Context, serviceID uuid.UUID, params pagination.Params) ([]models.Review, string, error) {
	rows, next, err := s.repo.ListForService(ctx, serviceID, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, "", err
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list reviews")
	}
	return rows, next, nil
}

func (s *service) ListRecentForService(ctx context.Context, serviceID uuid.UUID, limit int) ([]models.Review, error) {
	rows, err := s.repo.ListRecentForService(ctx, serviceID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list reviews")
	}
	return rows, nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params) ([]models.Review, string, error) {
	rows, next, err := s.repo.ListAll(ctx, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, "", err
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list reviews")
	}
	return rows, next, nil
}

// AverageForService formats the mean rating with two decimals; services with
// no reviews report "0.00" rather than an absent field.
func (s *service) AverageForService(ctx context.Context, serviceID uuid.UUID) (string, error) {
	avg, err := s.repo.AverageRatingForService(ctx, serviceID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: average rating")
	}
	return FormatAverage(avg), nil
}

// FormatAverage renders a nullable mean as a fixed two-decimal string.
func FormatAverage(avg *float64) string {
	if avg == nil {
		return ZeroRating
	}
	return decimal.NewFromFloat(*avg).StringFixed(2)
}

// CreateReview validates ownership and the 1..5 rating, then inserts.
func (s *service) CreateReview(ctx context.Context, input CreateReviewInput) (*models.Review, error) {
	if err := validateOwner(input.ServiceID, input.SubServiceID); err != nil {
		return nil, err
	}
	if err := ValidateRating(input.Rating); err != nil {
		return nil, err
	}
	reviewer := strings.TrimSpace(input.Reviewer)
	if reviewer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviewer is required")
	}

	if input.ServiceID != nil {
		if _, err := s.catalog.FindServiceByID(ctx, *input.ServiceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load service")
		}
	}
	if input.SubServiceID != nil {
		if _, err := s.catalog.FindSubServiceByID(ctx, *input.SubServiceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sub-service not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sub-service")
		}
	}

	review := &models.Review{
		ServiceID:    input.ServiceID,
		SubServiceID: input.SubServiceID,
		Rating:       input.Rating,
		Comment:      input.Comment,
		Reviewer:     reviewer,
		ImageURL:     input.ImageURL,
	}
	created, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert review")
	}
	return created, nil
}

func (s *service) DeleteReview(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load review")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete review")
	}
	return nil
}

// ValidateRating enforces the whole-star 1..5 range every write path shares.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return nil
}

func validateOwner(serviceID, subServiceID *uuid.UUID) error {
	if (serviceID == nil) == (subServiceID == nil) {
		return pkgerrors.New(pkgerrors.CodeValidation, "exactly one of service_id or sub_service_id is required")
	}
	return nil
}
