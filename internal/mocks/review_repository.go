package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	models "github.com/tayotravel/tourbook/internal"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetReviewByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) HasReview(ctx context.Context, userID, tourID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, tourID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) GetApprovedReviews(ctx context.Context, tourID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetApprovedRatings(ctx context.Context, tourID uuid.UUID) ([]int, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockReviewRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}

func (m *MockReviewRepository) UpdateReview(ctx context.Context, id uuid.UUID, update models.ReviewUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockReviewRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
