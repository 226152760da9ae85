package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable workshop service such as a full detail or an oil change.
type Service struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"type:varchar(100);not null"`
	Description     string          `json:"description" gorm:"type:text"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(6,2);not null"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
