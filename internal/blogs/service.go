package blogs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fixnest/fixnest-backend/internal/catalog"
	"github.com/fixnest/fixnest-backend/internal/faqs"
	"github.com/fixnest/fixnest-backend/pkg/db"
	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/enums"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes blog reads for the storefront and CRUD for the back office.
type Service interface {
	ListPublished(ctx context.Context, params pagination.Params) ([]models.Blog, string, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Blog, []models.FAQ, error)

	ListAll(ctx context.Context, params pagination.Params) ([]models.Blog, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, []models.FAQ, error)
	Create(ctx context.Context, input CreateBlogInput) (*models.Blog, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBlogInput) (*models.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateBlogInput holds the validated payload to create a blog.
type CreateBlogInput struct {
	Title           string
	H1              string
	MetaTitle       string
	MetaDescription string
	ImageURL        *string
	ImageCaption    *string
	Content         string
	AuthorName      string
	Summary         string
	Schema          string
	CanonicalURL    *string
	IsPublished     bool
	FAQs            []faqs.Entry
}

// UpdateBlogInput holds optional mutation values. A title change recomputes
// the slug server-side; FAQs, when present, replace the set wholesale.
type UpdateBlogInput struct {
	Title           *string
	H1              *string
	MetaTitle       *string
	MetaDescription *string
	ImageURL        *string
	ImageCaption    *string
	Content         *string
	AuthorName      *string
	Summary         *string
	Schema          *string
	CanonicalURL    *string
	IsPublished     *bool
	FAQs            *[]faqs.Entry
}

type service struct {
	repo     *Repository
	faqRepo  *faqs.Repository
	dbClient *db.Client
}

// NewService constructs the blogs service.
func NewService(repo *Repository, faqRepo *faqs.Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("blog repository required")
	}
	if faqRepo == nil {
		return nil, fmt.Errorf("faq repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, faqRepo: faqRepo, dbClient: dbClient}, nil
}

func (s *service) ListPublished(ctx context.Context, params pagination.Params) ([]models.Blog, string, error) {
	rows, next, err := s.repo.ListPublished(ctx, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, "", err
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list blogs")
	}
	return rows, next, nil
}

func (s *service) GetPublishedBySlug(ctx context.Context, slug string) (*models.Blog, []models.FAQ, error) {
	blog, err := s.repo.FindPublishedBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "blog not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load blog")
	}
	faqRows, err := s.faqRepo.ListForOwner(ctx, enums.FAQOwnerBlog, blog.ID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list faqs")
	}
	return blog, faqRows, nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params) ([]models.Blog, string, error) {
	rows, next, err := s.repo.ListAll(ctx, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, "", err
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list blogs")
	}
	return rows, next, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, []models.FAQ, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "blog not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load blog")
	}
	faqRows, err := s.faqRepo.ListForOwner(ctx, enums.FAQOwnerBlog, blog.ID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list faqs")
	}
	return blog, faqRows, nil
}

func (s *service) Create(ctx context.Context, input CreateBlogInput) (*models.Blog, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	slug := catalog.Slugify(title)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must contain letters or digits")
	}

	var created *models.Blog
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		row := &models.Blog{
			Slug:            slug,
			H1:              input.H1,
			Title:           title,
			MetaTitle:       input.MetaTitle,
			MetaDescription: input.MetaDescription,
			ImageURL:        input.ImageURL,
			ImageCaption:    input.ImageCaption,
			Content:         input.Content,
			AuthorName:      input.AuthorName,
			Summary:         input.Summary,
			Schema:          input.Schema,
			CanonicalURL:    input.CanonicalURL,
			IsPublished:     input.IsPublished,
		}
		inserted, err := s.repo.WithTx(tx).Create(ctx, row)
		if err != nil {
			if db.IsUniqueViolation(err, "idx_blogs_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "a blog with this title already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert blog")
		}
		created = inserted

		if len(input.FAQs) > 0 {
			if err := s.faqRepo.WithTx(tx).ReplaceForOwner(ctx, enums.FAQOwnerBlog, inserted.ID, input.FAQs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace faqs")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create blog")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBlogInput) (*models.Blog, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "blog not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load blog")
	}

	applyUpdateToBlog(row, input)
	if row.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	// Title drives the slug; clients never submit one.
	row.Slug = catalog.Slugify(row.Title)

	var updated *models.Blog
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		saved, err := s.repo.WithTx(tx).Update(ctx, row)
		if err != nil {
			if db.IsUniqueViolation(err, "idx_blogs_slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "a blog with this title already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update blog")
		}
		updated = saved

		if input.FAQs != nil {
			if err := s.faqRepo.WithTx(tx).ReplaceForOwner(ctx, enums.FAQOwnerBlog, row.ID, *input.FAQs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace faqs")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update blog")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "blog not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load blog")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.faqRepo.WithTx(tx).DeleteForOwner(ctx, enums.FAQOwnerBlog, id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, id)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete blog")
	}
	return nil
}

func applyUpdateToBlog(row *models.Blog, input UpdateBlogInput) {
	if input.Title != nil {
		row.Title = strings.TrimSpace(*input.Title)
	}
	if input.H1 != nil {
		row.H1 = *input.H1
	}
	if input.MetaTitle != nil {
		row.MetaTitle = *input.MetaTitle
	}
	if input.MetaDescription != nil {
		row.MetaDescription = *input.MetaDescription
	}
	if input.ImageURL != nil {
		row.ImageURL = input.ImageURL
	}
	if input.ImageCaption != nil {
		row.ImageCaption = input.ImageCaption
	}
	if input.Content != nil {
		row.Content = *input.Content
	}
	if input.AuthorName != nil {
		row.AuthorName = *input.AuthorName
	}
	if input.Summary != nil {
		row.Summary = *input.Summary
	}
	if input.Schema != nil {
		row.Schema = *input.Schema
	}
	if input.CanonicalURL != nil {
		row.CanonicalURL = input.CanonicalURL
	}
	if input.IsPublished != nil {
		row.IsPublished = *input.IsPublished
	}
}
