package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fixnest/fixnest-backend/pkg/enums"
)

// FAQ belongs to exactly one owning entity, tagged by kind. Owners replace
// their FAQ set wholesale on update rather than diffing.
type FAQ struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerKind enums.FAQOwnerKind `gorm:"column:owner_kind;not null;index:idx_faqs_owner"`
	OwnerID   uuid.UUID          `gorm:"column:owner_id;type:uuid;not null;index:idx_faqs_owner"`
	Question  string             `gorm:"column:question;not null"`
	Answer    string             `gorm:"column:answer;not null"`
	Position  int                `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
