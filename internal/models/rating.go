package models

import "time"

// RatingType says what a rating is about.
type RatingType string

const (
	RatingOverall RatingType = "overall"
	RatingService RatingType = "service"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a 1 to 5 star review of the business as a whole or of one service.
type Rating struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Type         RatingType `json:"rating_type" gorm:"column:rating_type;type:varchar(20);index;not null"`
	ServiceID    *uint      `json:"service_id,omitempty" gorm:"index"`
	Service      *Service   `json:"service,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CustomerName string     `json:"customer_name" gorm:"type:varchar(100);not null"`
	Score        int        `json:"rating" gorm:"column:rating;not null"`
	Comment      string     `json:"comment" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at" gorm:"index"`
}
