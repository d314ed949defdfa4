package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fixnest/fixnest-backend/pkg/types"
)

// Service is a top-level bookable category ("AC Repair"). The slug is the
// public URL key: unique and immutable once created.
type Service struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Slug        string                `gorm:"column:slug;not null;uniqueIndex"`
	Description string                `gorm:"column:description;not null;default:''"`
	Content     string                `gorm:"column:content;not null;default:''"`
	Location    *string               `gorm:"column:location"`
	ImageURL    *string               `gorm:"column:image_url"`
	Type        pq.StringArray        `gorm:"column:type;type:text[];not null;default:ARRAY[]::text[]"`
	WhyChooseUs types.WhyChooseUsList `gorm:"column:why_choose_us;type:jsonb;serializer:json"`
	IsPublished bool                  `gorm:"column:is_published;not null;default:false"`
	SubServices []SubService          `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
