package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/ports"
)

// maxReferenceAttempts bounds regeneration when the storage layer
// reports a booking-reference collision.
const maxReferenceAttempts = 3

type bookingService struct {
	repo ports.BookingRepository
	log  *logrus.Logger
}

func NewBookingService(repo ports.BookingRepository, log *logrus.Logger) *bookingService {
	return &bookingService{
		repo: repo,
		log:  log,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, request *models.BookingRequest) (*models.Booking, error) {
	// validate the package exists; the price tiers come from it
	pkg, err := s.repo.GetPackageByID(ctx, request.PackageID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:           uuid.New(),
		User:         models.User{ID: userID},
		Tour:         models.Tour{ID: request.TourID},
		Package:      *pkg,
		AdultCount:   request.AdultCount,
		ChildCount:   request.ChildCount,
		InfantCount:  request.InfantCount,
		TourDate:     request.TourDate,
		TotalAmount:  PartyTotal(request.AdultCount, request.ChildCount, request.InfantCount, pkg),
		Status:       models.StatusPending,
		ContactEmail: request.ContactEmail,
		ContactPhone: request.ContactPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		booking.Reference = NewBookingReference()
		err = s.repo.CreateBooking(ctx, booking)
		if !errors.Is(err, models.ErrDuplicateReference) {
			break
		}
		s.log.WithFields(logrus.Fields{
			"reference": booking.Reference,
			"attempt":   attempt + 1,
		}).Warn("booking reference collision, regenerating")
	}
	if err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}

	// re-read to return the booking joined with purchaser/tour/package
	// summaries
	created, err := s.repo.GetBookingByID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading created booking: %w", err)
	}
	return created, nil
}

func (s *bookingService) AllBookings(ctx context.Context, filters models.BookingFilters) ([]models.Booking, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, models.ErrInvalidStatus
	}
	bookings, err := s.repo.GetBookings(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) BookingsByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	return s.AllBookings(ctx, models.BookingFilters{UserID: userID})
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.repo.GetBookingByID(ctx, id)
}

func (s *bookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	if !status.Valid() {
		return models.ErrInvalidStatus
	}
	return s.repo.UpdateBookingStatus(ctx, id, status)
}

func (s *bookingService) UpdateBooking(ctx context.Context, id uuid.UUID, update models.BookingUpdate) (*models.Booking, error) {
	if err := s.repo.UpdateBooking(ctx, id, update); err != nil {
		return nil, err
	}
	return s.repo.GetBookingByID(ctx, id)
}

func (s *bookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBooking(ctx, id)
}

func (s *bookingService) Stats(ctx context.Context) (*models.BookingStats, error) {
	stats, err := s.repo.GetBookingStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching booking stats: %w", err)
	}
	return stats, nil
}
