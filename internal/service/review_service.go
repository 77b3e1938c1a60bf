package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/ports"
)

type reviewService struct {
	repo ports.ReviewRepository
	log  *logrus.Logger
}

func NewReviewService(repo ports.ReviewRepository, log *logrus.Logger) *reviewService {
	return &reviewService{
		repo: repo,
		log:  log,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID, tourID uuid.UUID, request *models.ReviewRequest) (*models.Review, error) {
	exists, err := s.repo.HasReview(ctx, userID, tourID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing review: %w", err)
	}
	if exists {
		return nil, models.ErrDuplicateReview
	}

	now := time.Now().UTC()
	review := &models.Review{
		ID:        uuid.New(),
		TourID:    tourID,
		UserID:    userID,
		Rating:    request.Rating,
		Title:     request.Title,
		Content:   request.Content,
		Approved:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("error creating review: %w", err)
	}

	s.recomputeTourRating(ctx, tourID)
	return review, nil
}

func (s *reviewService) ApproveReview(ctx context.Context, id uuid.UUID) error {
	return s.setApproved(ctx, id, true)
}

func (s *reviewService) RejectReview(ctx context.Context, id uuid.UUID) error {
	return s.setApproved(ctx, id, false)
}

func (s *reviewService) setApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SetApproved(ctx, id, approved); err != nil {
		return fmt.Errorf("error updating review approval: %w", err)
	}
	s.recomputeTourRating(ctx, review.TourID)
	return nil
}

func (s *reviewService) UpdateReview(ctx context.Context, id uuid.UUID, update models.ReviewUpdate) (*models.Review, error) {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateReview(ctx, id, update); err != nil {
		return nil, fmt.Errorf("error updating review: %w", err)
	}
	s.recomputeTourRating(ctx, review.TourID)
	return s.repo.GetReviewByID(ctx, id)
}

func (s *reviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteReview(ctx, id); err != nil {
		return fmt.Errorf("error deleting review: %w", err)
	}
	s.recomputeTourRating(ctx, review.TourID)
	return nil
}

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	return s.repo.GetReviewByID(ctx, id)
}

func (s *reviewService) TourReviews(ctx context.Context, tourID uuid.UUID) ([]models.Review, error) {
	reviews, err := s.repo.GetApprovedReviews(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("error fetching reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) TourReviewStats(ctx context.Context, tourID uuid.UUID) (*models.ReviewStats, error) {
	ratings, err := s.repo.GetApprovedRatings(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("error fetching ratings: %w", err)
	}

	stats := &models.ReviewStats{
		TotalReviews: len(ratings),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	sum := 0
	for _, r := range ratings {
		stats.Distribution[r]++
		sum += r
	}
	if len(ratings) > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	}
	return stats, nil
}

// recomputeTourRating rereads the approved ratings for a tour after a
// mutation. The value is derived on demand for reporting and not stored
// back on the tour, so the recomputation is observable via logging only.
func (s *reviewService) recomputeTourRating(ctx context.Context, tourID uuid.UUID) {
	stats, err := s.TourReviewStats(ctx, tourID)
	if err != nil {
		s.log.WithError(err).WithField("tour_id", tourID).Error("tour rating recomputation failed")
		return
	}
	s.log.WithFields(logrus.Fields{
		"tour_id":        tourID,
		"average_rating": stats.AverageRating,
		"total_reviews":  stats.TotalReviews,
	}).Info("tour rating recomputed")
}
