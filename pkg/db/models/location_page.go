package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fixnest/fixnest-backend/pkg/enums"
)

// LocationPage is an SEO landing page scoping a Service to one city. The
// slug is always derived as "{serviceSlug}-in-{location}" and the server
// recomputes it on every write; client-submitted slugs that do not match are
// rejected.
type LocationPage struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string     `gorm:"column:slug;not null;uniqueIndex"`
	ServiceSlug string     `gorm:"column:service_slug;not null;index"`
	Location    enums.City `gorm:"column:location;not null"`
	Title       string     `gorm:"column:title;not null"`
	MetaTitle   string     `gorm:"column:meta_title;not null;default:''"`
	Description string     `gorm:"column:description;not null;default:''"`
	Content     string     `gorm:"column:content;not null;default:''"`
	IsPublished bool       `gorm:"column:is_published;not null;default:false"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
