package controllers

import (
	"net/http"

	"github.com/fixnest/fixnest-backend/api/responses"
	"github.com/fixnest/fixnest-backend/api/validators"
	"github.com/fixnest/fixnest-backend/internal/catalog"
	locsvc "github.com/fixnest/fixnest-backend/internal/locationpages"
	"github.com/fixnest/fixnest-backend/pkg/logger"
)

// AdminLocationPagesList returns a cursor page of location pages, drafts
// included.
func AdminLocationPagesList(svc locsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, map[string]any{"location_pages": rows, "next_cursor": next})
	}
}

// AdminLocationPageGet loads one location page with its FAQ set.
func AdminLocationPageGet(svc locsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(r, logg, w, "pageID")
		if !ok {
			return
		}
		page, faqRows, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"location_page": page,
			"faqs":          catalog.NewFAQDTOs(faqRows),
		})
	}
}

type createLocationPageRequest struct {
	ServiceSlug string       `json:"service_slug" validate:"required,max=200"`
	Location    string       `json:"location" validate:"required,max=100"`
	Title       string       `json:"title" validate:"required,max=300"`
	MetaTitle   string       `json:"meta_title" validate:"max=300"`
	Description string       `json:"description" validate:"max=1000"`
	Content     string       `json:"content"`
	IsPublished bool         `json:"is_published"`
	FAQs        []faqPayload `json:"faqs" validate:"dive"`
}

// AdminLocationPageCreate inserts a location page; the slug is derived from
// the service slug and the city.
func AdminLocationPageCreate(svc locsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createLocationPageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.Create(r.Context(), locsvc.CreateLocationPageInput{
			ServiceSlug: validators.SanitizeString(payload.ServiceSlug, 200),
			Location:    validators.SanitizeString(payload.Location, 100),
			Title:       validators.SanitizeString(payload.Title, 300),
			MetaTitle:   validators.SanitizeString(payload.MetaTitle, 300),
			Description: validators.SanitizeString(payload.Description, 1000),
			Content:     payload.Content,
			IsPublished: payload.IsPublished,
			FAQs:        faqEntries(payload.FAQs),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, page)
	}
}

type updateLocationPageRequest struct {
	ServiceSlug *string       `json:"service_slug" validate:"omitempty,max=200"`
	Location    *string       `json:"location" validate:"omitempty,max=100"`
	Title       *string       `json:"title" validate:"omitempty,max=300"`
	MetaTitle   *string       `json:"meta_title" validate:"omitempty,max=300"`
	Description *string       `json:"description" validate:"omitempty,max=1000"`
	Content     *string       `json:"content"`
	IsPublished *bool         `json:"is_published"`
	FAQs        *[]faqPayload `json:"faqs" validate:"omitempty,dive"`
}

// AdminLocationPageUpdate applies a partial update; slug-driving fields
// recompute the slug server-side.
func AdminLocationPageUpdate(svc locsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(r, logg, w, "pageID")
		if !ok {
			return
		}
		var payload updateLocationPageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := locsvc.UpdateLocationPageInput{
			ServiceSlug: payload.ServiceSlug,
			Location:    payload.Location,
			Title:       payload.Title,
			MetaTitle:   payload.MetaTitle,
			Description: payload.Description,
			Content:     payload.Content,
			IsPublished: payload.IsPublished,
		}
		if payload.FAQs != nil {
			entries := faqEntries(*payload.FAQs)
			input.FAQs = &entries
		}

		page, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AdminLocationPageDelete removes a location page and its FAQ set.
func AdminLocationPageDelete(svc locsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(r, logg, w, "pageID")
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
