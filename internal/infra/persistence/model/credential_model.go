// Package model holds the GORM row types mirroring the PostgreSQL schema.
package model

import "time"

// CalendarCredentialModel mirrors the 'calendar_credentials' table. One row
// per provider; the row is deleted outright when the grant is revoked.
type CalendarCredentialModel struct {
	Provider          string    `gorm:"type:varchar(50);primary_key"`
	RefreshToken      string    `gorm:"type:text;not null"`
	AccessToken       string    `gorm:"type:text"`
	AccessTokenExpiry time.Time
	Health            string `gorm:"type:varchar(20);not null;default:'unknown'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (CalendarCredentialModel) TableName() string {
	return "calendar_credentials"
}
