package controllers

import (
	"net/http"

	"github.com/fixnest/fixnest-backend/api/responses"
	"github.com/fixnest/fixnest-backend/api/validators"
	blogsvc "github.com/fixnest/fixnest-backend/internal/blogs"
	"github.com/fixnest/fixnest-backend/internal/catalog"
	"github.com/fixnest/fixnest-backend/pkg/logger"
)

// AdminBlogsList returns a cursor page of blogs, drafts included.
func AdminBlogsList(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, next, err := svc.ListAll(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"blogs": rows, "next_cursor": next})
	}
}

// AdminBlogGet loads one blog with its FAQ set.
func AdminBlogGet(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(r, logg, w, "blogID")
		if !ok {
			return
		}
		blog, faqRows, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"blog": blog,
			"faqs": catalog.NewFAQDTOs(faqRows),
		})
	}
}

type createBlogRequest struct {
	Title           string       `json:"title" validate:"required,max=300"`
	H1              string       `json:"h1" validate:"max=300"`
	MetaTitle       string       `json:"meta_title" validate:"max=300"`
	MetaDescription string       `json:"meta_description" validate:"max=1000"`
	ImageURL        *string      `json:"image_url"`
	ImageCaption    *string      `json:"image_caption"`
	Content         string       `json:"content"`
	AuthorName      string       `json:"author_name" validate:"max=120"`
	Summary         string       `json:"summary" validate:"max=2000"`
	Schema          string       `json:"schema"`
	CanonicalURL    *string      `json:"canonical_url"`
	IsPublished     bool         `json:"is_published"`
	FAQs            []faqPayload `json:"faqs" validate:"dive"`
}

// AdminBlogCreate inserts a blog; the slug is derived from the title.
func AdminBlogCreate(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBlogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		blog, err := svc.Create(r.Context(), blogsvc.CreateBlogInput{
			Title:           validators.SanitizeString(payload.Title, 300),
			H1:              validators.SanitizeString(payload.H1, 300),
			MetaTitle:       validators.SanitizeString(payload.MetaTitle, 300),
			MetaDescription: validators.SanitizeString(payload.MetaDescription, 1000),
			ImageURL:        payload.ImageURL,
			ImageCaption:    payload.ImageCaption,
			Content:         payload.Content,
			AuthorName:      validators.SanitizeString(payload.AuthorName, 120),
			Summary:         validators.SanitizeString(payload.Summary, 2000),
			Schema:          payload.Schema,
			CanonicalURL:    payload.CanonicalURL,
			IsPublished:     payload.IsPublished,
			FAQs:            faqEntries(payload.FAQs),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, blog)
	}
}

type updateBlogRequest struct {
	Title           *string       `json:"title" validate:"omitempty,max=300"`
	H1              *string       `json:"h1" validate:"omitempty,max=300"`
	MetaTitle       *string       `json:"meta_title" validate:"omitempty,max=300"`
	MetaDescription *string       `json:"meta_description" validate:"omitempty,max=1000"`
	ImageURL        *string       `json:"image_url"`
	ImageCaption    *string       `json:"image_caption"`
	Content         *string       `json:"content"`
	AuthorName      *string       `json:"author_name" validate:"omitempty,max=120"`
	Summary         *string       `json:"summary" validate:"omitempty,max=2000"`
	Schema          *string       `json:"schema"`
	CanonicalURL    *string       `json:"canonical_url"`
	IsPublished     *bool         `json:"is_published"`
	FAQs            *[]faqPayload `json:"faqs" validate:"omitempty,dive"`
}

// AdminBlogUpdate applies a partial update; a title change recomputes the
// slug server-side.
func AdminBlogUpdate(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(r, logg, w, "blogID")
		if !ok {
			return
		}
		var payload updateBlogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := blogsvc.UpdateBlogInput{
			Title:           payload.Title,
			H1:              payload.H1,
			MetaTitle:       payload.MetaTitle,
			MetaDescription: payload.MetaDescription,
			ImageURL:        payload.ImageURL,
			ImageCaption:    payload.ImageCaption,
			Content:         payload.Content,
			AuthorName:      payload.AuthorName,
			Summary:         payload.Summary,
			Schema:          payload.Schema,
			CanonicalURL:    payload.CanonicalURL,
			IsPublished:     payload.IsPublished,
		}
		if payload.FAQs != nil {
			entries := faqEntries(*payload.FAQs)
			input.FAQs = &entries
		}

		blog, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blog)
	}
}

// AdminBlogDelete removes a blog and its FAQ set.
func AdminBlogDelete(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(r, logg, w, "blogID")
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
