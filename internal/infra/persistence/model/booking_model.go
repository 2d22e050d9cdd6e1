package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingModel mirrors the 'bookings' table. EventID is unique: one calendar
// event backs exactly one booking record.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	EventID   string    `gorm:"type:varchar(255);unique;not null"`
	MeetLink  string    `gorm:"type:text"`
	HTMLLink  string    `gorm:"type:text"`
	StartAt   time.Time `gorm:"not null;index"`
	EndAt     time.Time `gorm:"not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Name      string    `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(50)"`
	Topic     string    `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}
