package models

import (
	"time"

	"github.com/google/uuid"
)

// Blog is a CMS article. Schema holds a raw JSON-LD string emitted verbatim
// into the page head by the frontend.
type Blog struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug            string    `gorm:"column:slug;not null;uniqueIndex"`
	H1              string    `gorm:"column:h1;not null;default:''"`
	Title           string    `gorm:"column:title;not null"`
	MetaTitle       string    `gorm:"column:meta_title;not null;default:''"`
	MetaDescription string    `gorm:"column:meta_description;not null;default:''"`
	ImageURL        *string   `gorm:"column:image_url"`
	ImageCaption    *string   `gorm:"column:image_caption"`
	Content         string    `gorm:"column:content;not null;default:''"`
	AuthorName      string    `gorm:"column:author_name;not null;default:''"`
	Summary         string    `gorm:"column:summary;not null;default:''"`
	Schema          string    `gorm:"column:schema;not null;default:''"`
	CanonicalURL    *string   `gorm:"column:canonical_url"`
	IsPublished     bool      `gorm:"column:is_published;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
