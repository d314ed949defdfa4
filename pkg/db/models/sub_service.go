package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SubService is a priced offering under a Service ("AC Jet Service").
// Prices are whole rupees. Type, when set, must be one of the parent
// service's declared tab labels; the write path enforces that so a typo
// cannot silently hide a sub-service from its tab.
type SubService struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ServiceID       uuid.UUID      `gorm:"column:service_id;type:uuid;not null;index"`
	Name            string         `gorm:"column:name;not null"`
	Description     string         `gorm:"column:description;not null;default:''"`
	Price           int            `gorm:"column:price;not null"`
	DiscountedPrice *int           `gorm:"column:discounted_price"`
	Type            *string        `gorm:"column:type"`
	ImageURL        *string        `gorm:"column:image_url"`
	WhatIncluded    pq.StringArray `gorm:"column:what_included;type:text[];not null;default:ARRAY[]::text[]"`
	WhatExcluded    pq.StringArray `gorm:"column:what_excluded;type:text[];not null;default:ARRAY[]::text[]"`
	Duration        string         `gorm:"column:duration;not null;default:''"`
	IsPopular       bool           `gorm:"column:is_popular;not null;default:false"`
	IsActive        bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice returns the discounted price when one is set below the base
// price, otherwise the base price.
func (s SubService) EffectivePrice() int {
	if s.DiscountedPrice != nil && *s.DiscountedPrice < s.Price {
		return *s.DiscountedPrice
	}
	return s.Price
}
