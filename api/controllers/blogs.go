package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fixnest/fixnest-backend/api/responses"
	blogsvc "github.com/fixnest/fixnest-backend/internal/blogs"
	"github.com/fixnest/fixnest-backend/internal/catalog"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/logger"
)

// BlogsList returns a cursor page of published articles.
func BlogsList(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, next, err := svc.ListPublished(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"blogs": rows, "next_cursor": next})
	}
}

// BlogBySlug returns one published article with its FAQs.
func BlogBySlug(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}
		blog, faqRows, err := svc.GetPublishedBySlug(r.Context(), slug)
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
