package repositories

import (
	"context"

	"autocare/internal/models"
)

// RatingAggregate is the raw score total and count of a set of ratings.
type RatingAggregate struct {
	ServiceID *uint
	Count     int64
	Total     int64
}

// RatingRepository defines the interface for rating data access.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	// ListByType returns ratings of one type, newest first. limit <= 0 means all.
	ListByType(ctx context.Context, ratingType models.RatingType, limit int) ([]models.Rating, error)
	AggregateOverall(ctx context.Context) (RatingAggregate, error)
	AggregateService(ctx context.Context, serviceID uint) (RatingAggregate, error)
	// AggregateByService returns one aggregate per rated service.
	AggregateByService(ctx context.Context) ([]RatingAggregate, error)
}
