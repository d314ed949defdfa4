package models

import (
	"time"

	"github.com/google/uuid"
)

// Review attaches to a service or one of its sub-services (either id may be
// nil, never both). Rating is a validated integer 1..5; every write path
// rejects anything outside that range so averages can trust the column.
// Reviews are visible immediately; there is no moderation state.
type Review struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ServiceID    *uuid.UUID `gorm:"column:service_id;type:uuid;index"`
	SubServiceID *uuid.UUID `gorm:"column:sub_service_id;type:uuid;index"`
	Rating       int        `gorm:"column:rating;not null"`
	Comment      string     `gorm:"column:comment;not null;default:''"`
	Reviewer     string     `gorm:"column:reviewer;not null"`
	ImageURL     *string    `gorm:"column:image_url"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
