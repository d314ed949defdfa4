package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking is the payload the wizard submits on its final step, persisted
// with per-item price snapshots. There is no slot locking: two visitors may
// book the same slot.
type Booking struct {
	ID           uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ContactPhone string        `gorm:"column:contact_phone;not null"`
	ContactEmail string        `gorm:"column:contact_email;not null;default:''"`
	Region       string        `gorm:"column:region;not null"`
	FlatNo       string        `gorm:"column:flat_no;not null"`
	Landmark     string        `gorm:"column:landmark;not null"`
	ScheduleDate time.Time     `gorm:"column:schedule_date;not null"`
	ScheduleSlot string        `gorm:"column:schedule_slot;not null"`
	TotalPrice   int           `gorm:"column:total_price;not null"`
	Items        []BookingItem `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime"`
}

// BookingItem snapshots one cart line at submission time. Prices are copied
// rather than referenced so later catalog edits cannot rewrite history.
type BookingItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BookingID    uuid.UUID `gorm:"column:booking_id;type:uuid;not null;index"`
	SubServiceID uuid.UUID `gorm:"column:sub_service_id;type:uuid;not null"`
	Name         string    `gorm:"column:name;not null"`
	UnitPrice    int       `gorm:"column:unit_price;not null"`
	Quantity     int       `gorm:"column:quantity;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
