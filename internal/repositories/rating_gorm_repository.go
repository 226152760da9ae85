package repositories

import (
	"context"
	"fmt"

	"autocare/internal/models"

	"gorm.io/gorm"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{db: db}
}

const aggregateColumns = "COUNT(*) AS count, COALESCE(SUM(rating), 0) AS total"

// Create stores one rating.
func (r *GORMRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := conn(ctx, r.db).Omit("Service").Create(rating).Error; err != nil {
		return fmt.Errorf("failed to create rating: %w", translate(err))
	}
	return nil
}

// ListByType returns ratings of ratingType with their service, newest first.
func (r *GORMRatingRepository) ListByType(ctx context.Context, ratingType models.RatingType, limit int) ([]models.Rating, error) {
	q := conn(ctx, r.db).Preload("Service").
		Where("rating_type = ?", ratingType).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	ratings := []models.Rating{}
	if err := q.Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s ratings: %w", ratingType, err)
	}
	return ratings, nil
}

// AggregateOverall totals the overall-company ratings.
func (r *GORMRatingRepository) AggregateOverall(ctx context.Context) (RatingAggregate, error) {
	var agg RatingAggregate
	err := conn(ctx, r.db).Model(&models.Rating{}).
		Select(aggregateColumns).
		Where("rating_type = ?", models.RatingOverall).
		Scan(&agg).Error
	if err != nil {
		return RatingAggregate{}, fmt.Errorf("failed to aggregate overall ratings: %w", err)
	}
	return agg, nil
}

// AggregateService totals the ratings of one service.
func (r *GORMRatingRepository) AggregateService(ctx context.Context, serviceID uint) (RatingAggregate, error) {
	var agg RatingAggregate
	err := conn(ctx, r.db).Model(&models.Rating{}).
		Select(aggregateColumns).
		Where("rating_type = ? AND service_id = ?", models.RatingService, serviceID).
		Scan(&agg).Error
	if err != nil {
		return RatingAggregate{}, fmt.Errorf("failed to aggregate ratings of service %d: %w", serviceID, err)
	}
	agg.ServiceID = &serviceID
	return agg, nil
}

// AggregateByService groups service ratings by service.
func (r *GORMRatingRepository) AggregateByService(ctx context.Context) ([]RatingAggregate, error) {
	aggs := []RatingAggregate{}
	err := conn(ctx, r.db).Model(&models.Rating{}).
		Select("service_id, "+aggregateColumns).
		Where("rating_type = ? AND service_id IS NOT NULL", models.RatingService).
		Group("service_id").
		Scan(&aggs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate service ratings: %w", err)
	}
	return aggs, nil
}
