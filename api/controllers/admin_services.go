package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fixnest/fixnest-backend/api/responses"
	"github.com/fixnest/fixnest-backend/api/validators"
	"github.com/fixnest/fixnest-backend/internal/catalog"
	"github.com/fixnest/fixnest-backend/internal/faqs"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/logger"
	"github.com/fixnest/fixnest-backend/pkg/types"
)

// faqPayload is the wire shape for an FAQ entry across the admin surface.
type faqPayload struct {
	Question string `json:"question" validate:"required,max=500"`
	Answer   string `json:"answer" validate:"required,max=4000"`
}

func faqEntries(payloads []faqPayload) []faqs.Entry {
	entries := make([]faqs.Entry, 0, len(payloads))
	for _, p := range payloads {
		entries = append(entries, faqs.Entry{
			Question: validators.SanitizeString(p.Question, 500),
			Answer:   validators.SanitizeString(p.Answer, 4000),
		})
	}
	return entries
}

type whyChooseUsPayload struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
}

func whyChooseUsEntries(payloads []whyChooseUsPayload) []types.WhyChooseUsEntry {
	entries := make([]types.WhyChooseUsEntry, 0, len(payloads))
	for _, p := range payloads {
		entries = append(entries, types.WhyChooseUsEntry{
			Title:       validators.SanitizeString(p.Title, 200),
			Description: validators.SanitizeString(p.Description, 2000),
		})
	}
	return entries
}

// pathUUID parses a uuid route parameter, writing a validation error on
// failure.
func pathUUID(r *http.Request, logg *logger.Logger, w http.ResponseWriter, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		responses.WriteError(r.Context(), logg, w,
			pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+param))
		return uuid.Nil, false
	}
	return id, true
}

// AdminServicesList returns every service regardless of publish state.
func AdminServicesList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListAdminServices(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"services": rows})
	}
}

// AdminServiceGet loads one service with its sub-services and FAQs.
func AdminServiceGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(r, logg, w, "serviceID")
		if !ok {
			return
		}
		row, err := svc.GetAdminService(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

type createServiceRequest struct {
	Name        string               `json:"name" validate:"required,max=200"`
	Description string               `json:"description" validate:"max=2000"`
	Content     string               `json:"content"`
	Location    *string              `json:"location"`
	ImageURL    *string              `json:"image_url"`
	Type        []string             `json:"type" validate:"dive,required,max=100"`
	WhyChooseUs []whyChooseUsPayload `json:"why_choose_us" validate:"dive"`
	IsPublished bool                 `json:"is_published"`
	FAQs        []faqPayload         `json:"faqs" validate:"dive"`
}

// AdminServiceCreate inserts a service; the slug is derived from the name.
func AdminServiceCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createServiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.CreateService(r.Context(), catalog.CreateServiceInput{
			Name:        validators.SanitizeString(payload.Name, 200),
			Description: validators.SanitizeString(payload.Description, 2000),
			Content:     payload.Content,
			Location:    payload.Location,
			ImageURL:    payload.ImageURL,
			Type:        payload.Type,
			WhyChooseUs: whyChooseUsEntries(payload.WhyChooseUs),
			IsPublished: payload.IsPublished,
			FAQs:        faqEntries(payload.FAQs),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

type updateServiceRequest struct {
	Name        *string               `json:"name" validate:"omitempty,max=200"`
	Description *string               `json:"description" validate:"omitempty,max=2000"`
	Content     *string               `json:"content"`
	Location    *string               `json:"location"`
	ImageURL    *string               `json:"image_url"`
	Type        *[]string             `json:"type" validate:"omitempty,dive,required,max=100"`
	WhyChooseUs *[]whyChooseUsPayload `json:"why_choose_us" validate:"omitempty,dive"`
	IsPublished *bool                 `json:"is_published"`
	FAQs        *[]faqPayload         `json:"faqs" validate:"omitempty,dive"`
}

// AdminServiceUpdate applies a partial update; FAQs, when present, replace
// the existing set.
func AdminServiceUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(r, logg, w, "serviceID")
		if !ok {
			return
		}
		var payload updateServiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateServiceInput{
			Name:        payload.Name,
			Description: payload.Description,
			Content:     payload.Content,
			Location:    payload.Location,
			ImageURL:    payload.ImageURL,
			Type:        payload.Type,
			IsPublished: payload.IsPublished,
		}
		if payload.WhyChooseUs != nil {
			entries := whyChooseUsEntries(*payload.WhyChooseUs)
			input.WhyChooseUs = &entries
		}
		if payload.FAQs != nil {
			entries := faqEntries(*payload.FAQs)
			input.FAQs = &entries
		}

		row, err := svc.UpdateService(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// AdminServiceDelete removes a service together with its sub-services and
// FAQs.
func AdminServiceDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(r, logg, w, "serviceID")
		if !ok {
			return
		}
		if err := svc.DeleteService(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createSubServiceRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Description     string   `json:"description" validate:"max=2000"`
	Price           int      `json:"price" validate:"required"`
	DiscountedPrice *int     `json:"discounted_price"`
	Type            *string  `json:"type"`
	WhatIncluded    []string `json:"what_included" validate:"dive,max=300"`
	WhatExcluded    []string `json:"what_excluded" validate:"dive,max=300"`
	Duration        string   `json:"duration" validate:"max=100"`
	ImageURL        *string  `json:"image_url"`
	IsPopular       bool     `json:"is_popular"`
	IsActive        bool     `json:"is_active"`
}

// AdminSubServiceCreate adds an offering under a service.
func AdminSubServiceCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, ok := pathUUID(r, logg, w, "serviceID")
		if !ok {
			return
		}
		var payload createSubServiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.CreateSubService(r.Context(), serviceID, catalog.CreateSubServiceInput{
			Name:            validators.SanitizeString(payload.Name, 200),
			Description:     validators.SanitizeString(payload.Description, 2000),
			Price:           payload.Price,
			DiscountedPrice: payload.DiscountedPrice,
			Type:            payload.Type,
			WhatIncluded:    payload.WhatIncluded,
			WhatExcluded:    payload.WhatExcluded,
			Duration:        payload.Duration,
			ImageURL:        payload.ImageURL,
			IsPopular:       payload.IsPopular,
			IsActive:        payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

type updateSubServiceRequest struct {
	Name            *string   `json:"name" validate:"omitempty,max=200"`
	Description     *string   `json:"description" validate:"omitempty,max=2000"`
	Price           *int      `json:"price"`
	DiscountedPrice *int      `json:"discounted_price"`
	Type            *string   `json:"type"`
	WhatIncluded    *[]string `json:"what_included" validate:"omitempty,dive,max=300"`
	WhatExcluded    *[]string `json:"what_excluded" validate:"omitempty,dive,max=300"`
	Duration        *string   `json:"duration" validate:"omitempty,max=100"`
	ImageURL        *string   `json:"image_url"`
	IsPopular       *bool     `json:"is_popular"`
	IsActive        *bool     `json:"is_active"`
}

// AdminSubServiceUpdate applies a partial update to an offering.
func AdminSubServiceUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, ok := pathUUID(r, logg, w, "serviceID")
		if !ok {
			return
		}
		subServiceID, ok := pathUUID(r, logg, w, "subServiceID")
		if !ok {
			return
		}
		var payload updateSubServiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.UpdateSubService(r.Context(), serviceID, subServiceID, catalog.UpdateSubServiceInput{
			Name:            payload.Name,
			Description:     payload.Description,
			Price:           payload.Price,
			DiscountedPrice: payload.DiscountedPrice,
			Type:            payload.Type,
			WhatIncluded:    payload.WhatIncluded,
			WhatExcluded:    payload.WhatExcluded,
			Duration:        payload.Duration,
			ImageURL:        payload.ImageURL,
			IsPopular:       payload.IsPopular,
			IsActive:        payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// AdminSubServiceDelete removes an offering from a service.
func AdminSubServiceDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, ok := pathUUID(r, logg, w, "serviceID")
		if !ok {
			return
		}
		subServiceID, ok := pathUUID(r, logg, w, "subServiceID")
		if !ok {
			return
		}
		if err := svc.DeleteSubService(r.Context(), serviceID, subServiceID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
