package services

import (
	"context"
	"fmt"

	"autocare/internal/models"
	"autocare/internal/repositories"
)

// SubmitRatingRequest is a customer's star rating.
type SubmitRatingRequest struct {
	Type         models.RatingType `json:"rating_type" form:"rating_type" validate:"required,oneof=overall service"`
	ServiceID    *uint             `json:"service_id" form:"service_id" validate:"required_if=Type service,excluded_if=Type overall"`
	CustomerName string            `json:"customer_name" form:"customer_name" validate:"required,max=100"`
	Score        int               `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Comment      string            `json:"comment" form:"comment"`
}

// RatingSummary is the mean score and count of a set of ratings. Average is
// nil when there are no ratings.
type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}

// ServiceRatingSummary is the summary of one service.
type ServiceRatingSummary struct {
	ServiceID uint   `json:"service_id"`
	Name      string `json:"name"`
	RatingSummary
}

// ReviewsPage is everything shown on the public reviews page.
type ReviewsPage struct {
	Overall        RatingSummary          `json:"overall"`
	Services       []ServiceRatingSummary `json:"services"`
	OverallRatings []models.Rating        `json:"overall_ratings"`
	ServiceRatings []models.Rating        `json:"service_ratings"`
}

// RatingService collects ratings and computes their averages.
type RatingService struct {
	ratings  repositories.RatingRepository
	services repositories.ServiceRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratings repositories.RatingRepository, services repositories.ServiceRepository) *RatingService {
	return &RatingService{ratings: ratings, services: services}
}

func summarize(agg repositories.RatingAggregate) RatingSummary {
	summary := RatingSummary{Count: agg.Count}
	if agg.Count > 0 {
		avg := float64(agg.Total) / float64(agg.Count)
		summary.Average = &avg
	}
	return summary
}

// Submit stores a rating. The same customer may rate any number of times.
func (s *RatingService) Submit(ctx context.Context, req SubmitRatingRequest) (*models.Rating, error) {
	if req.Score < models.MinScore || req.Score > models.MaxScore {
		return nil, fmt.Errorf("%w: score %d outside %d-%d", ErrInvalidRating, req.Score, models.MinScore, models.MaxScore)
	}
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidRating)
	}

	switch req.Type {
	case models.RatingOverall:
		if req.ServiceID != nil {
			return nil, fmt.Errorf("%w: overall ratings cannot name a service", ErrInvalidRating)
		}
	case models.RatingService:
		if req.ServiceID == nil {
			return nil, fmt.Errorf("%w: service ratings need a service", ErrInvalidRating)
		}
		if _, err := s.services.GetByID(ctx, *req.ServiceID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown rating type %q", ErrInvalidRating, req.Type)
	}

	rating := &models.Rating{
		Type:         req.Type,
		ServiceID:    req.ServiceID,
		CustomerName: req.CustomerName,
		Score:        req.Score,
		Comment:      req.Comment,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// OverallSummary averages the ratings of the company as a whole.
func (s *RatingService) OverallSummary(ctx context.Context) (RatingSummary, error) {
	agg, err := s.ratings.AggregateOverall(ctx)
	if err != nil {
		return RatingSummary{}, err
	}
	return summarize(agg), nil
}

// ServiceSummary averages the ratings of one service.
func (s *RatingService) ServiceSummary(ctx context.Context, serviceID uint) (RatingSummary, error) {
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		return RatingSummary{}, err
	}
	agg, err := s.ratings.AggregateService(ctx, serviceID)
	if err != nil {
		return RatingSummary{}, err
	}
	return summarize(agg), nil
}

// ReviewsPage gathers the overall summary, a summary for every service (rated
// or not) and every rating of each type, newest first.
func (s *RatingService) ReviewsPage(ctx context.Context) (*ReviewsPage, error) {
	overall, err := s.OverallSummary(ctx)
	if err != nil {
		return nil, err
	}

	services, err := s.services.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	aggs, err := s.ratings.AggregateByService(ctx)
	if err != nil {
		return nil, err
	}
	byService := make(map[uint]repositories.RatingAggregate, len(aggs))
	for _, agg := range aggs {
		if agg.ServiceID != nil {
			byService[*agg.ServiceID] = agg
		}
	}

	page := &ReviewsPage{Overall: overall, Services: make([]ServiceRatingSummary, 0, len(services))}
	for _, svc := range services {
		page.Services = append(page.Services, ServiceRatingSummary{
			ServiceID:     svc.ID,
			Name:          svc.Name,
			RatingSummary: summarize(byService[svc.ID]),
		})
	}

	if page.OverallRatings, err = s.ratings.ListByType(ctx, models.RatingOverall, 0); err != nil {
		return nil, err
	}
	if page.ServiceRatings, err = s.ratings.ListByType(ctx, models.RatingService, 0); err != nil {
		return nil, err
	}
	return page, nil
}
