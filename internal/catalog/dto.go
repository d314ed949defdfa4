package catalog

import (
	"sort"
	"time"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/types"
	"github.com/google/uuid"
)

// SubServiceDTO is the wire form of a priced offering.
type SubServiceDTO struct {
	ID              uuid.UUID `json:"id"`
	ServiceID       uuid.UUID `json:"service_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           int       `json:"price"`
	DiscountedPrice *int      `json:"discounted_price,omitempty"`
	EffectivePrice  int       `json:"effective_price"`
	Type            *string   `json:"type,omitempty"`
	WhatIncluded    []string  `json:"what_included"`
	WhatExcluded    []string  `json:"what_excluded"`
	Duration        string    `json:"duration"`
	ImageURL        *string   `json:"image_url,omitempty"`
	IsPopular       bool      `json:"is_popular"`
	IsActive        bool      `json:"is_active"`
}

// ServiceSummaryDTO is one entry in the public services listing.
type ServiceSummaryDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	Location      *string         `json:"location,omitempty"`
	ImageURL      *string         `json:"image_url,omitempty"`
	Type          []string        `json:"type"`
	AverageRating string          `json:"average_rating"`
	SubServices   []SubServiceDTO `json:"sub_services"`
}

// FAQDTO is one question/answer pair on a content page.
type FAQDTO struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
}

// ReviewDTO is the public form of a review.
type ReviewDTO struct {
	ID           uuid.UUID  `json:"id"`
	ServiceID    *uuid.UUID `json:"service_id,omitempty"`
	SubServiceID *uuid.UUID `json:"sub_service_id,omitempty"`
	Rating       int        `json:"rating"`
	Comment      string     `json:"comment"`
	Reviewer     string     `json:"reviewer"`
	ImageURL     *string    `json:"image_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ServicePageDTO assembles everything the service detail page renders.
type ServicePageDTO struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	Slug          string                   `json:"slug"`
	Description   string                   `json:"description"`
	Content       string                   `json:"content"`
	Location      *string                  `json:"location,omitempty"`
	ImageURL      *string                  `json:"image_url,omitempty"`
	Type          []string                 `json:"type"`
	WhyChooseUs   []types.WhyChooseUsEntry `json:"why_choose_us"`
	AverageRating string                   `json:"average_rating"`
	SubServices   []SubServiceDTO          `json:"sub_services"`
	FAQs          []FAQDTO                 `json:"faqs"`
	Reviews       []ReviewDTO              `json:"reviews"`
}

// ServiceDetailDTO is the admin form of a service, including unpublished
// sub-services and timestamps.
type ServiceDetailDTO struct {
	ID          uuid.UUID                `json:"id"`
	Name        string                   `json:"name"`
	Slug        string                   `json:"slug"`
	Description string                   `json:"description"`
	Content     string                   `json:"content"`
	Location    *string                  `json:"location,omitempty"`
	ImageURL    *string                  `json:"image_url,omitempty"`
	Type        []string                 `json:"type"`
	WhyChooseUs []types.WhyChooseUsEntry `json:"why_choose_us"`
	IsPublished bool                     `json:"is_published"`
	SubServices []SubServiceDTO          `json:"sub_services"`
	FAQs        []FAQDTO                 `json:"faqs"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// NewSubServiceDTO maps a sub-service row to its wire form.
func NewSubServiceDTO(row models.SubService) SubServiceDTO {
	return SubServiceDTO{
		ID:              row.ID,
		ServiceID:       row.ServiceID,
		Name:            row.Name,
		Description:     row.Description,
		Price:           row.Price,
		DiscountedPrice: row.DiscountedPrice,
		EffectivePrice:  row.EffectivePrice(),
		Type:            row.Type,
		WhatIncluded:    append([]string(nil), row.WhatIncluded...),
		WhatExcluded:    append([]string(nil), row.WhatExcluded...),
		Duration:        row.Duration,
		ImageURL:        row.ImageURL,
		IsPopular:       row.IsPopular,
		IsActive:        row.IsActive,
	}
}

func newSubServiceDTOs(rows []models.SubService) []SubServiceDTO {
	dtos := make([]SubServiceDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, NewSubServiceDTO(row))
	}
	return dtos
}

// sortForListing orders sub-services popular-first, then cheapest effective
// price, so the storefront cards lead with the offers that convert.
func sortForListing(dtos []SubServiceDTO) {
	sort.SliceStable(dtos, func(i, j int) bool {
		if dtos[i].IsPopular != dtos[j].IsPopular {
			return dtos[i].IsPopular
		}
		return dtos[i].EffectivePrice < dtos[j].EffectivePrice
	})
}

// sortForDetail orders sub-services cheapest-first.
func sortForDetail(dtos []SubServiceDTO) {
	sort.SliceStable(dtos, func(i, j int) bool {
		return dtos[i].EffectivePrice < dtos[j].EffectivePrice
	})
}

// NewFAQDTOs maps FAQ rows to their wire form.
func NewFAQDTOs(rows []models.FAQ) []FAQDTO {
	dtos := make([]FAQDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, FAQDTO{ID: row.ID, Question: row.Question, Answer: row.Answer})
	}
	return dtos
}

// NewReviewDTO maps a review row to its wire form.
func NewReviewDTO(row models.Review) ReviewDTO {
	return ReviewDTO{
		ID:           row.ID,
		ServiceID:    row.ServiceID,
		SubServiceID: row.SubServiceID,
		Rating:       row.Rating,
		Comment:      row.Comment,
		Reviewer:     row.Reviewer,
		ImageURL:     row.ImageURL,
		CreatedAt:    row.CreatedAt,
	}
}
