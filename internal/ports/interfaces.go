package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	models "github.com/tayotravel/tourbook/internal"
)

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetBookings(ctx context.Context, filters models.BookingFilters) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error
	UpdateBooking(ctx context.Context, id uuid.UUID, update models.BookingUpdate) error
	DeleteBooking(ctx context.Context, id uuid.UUID) error
	UpdateVoucherPath(ctx context.Context, id uuid.UUID, path string) error
	GetBookingStats(ctx context.Context) (*models.BookingStats, error)
	GetPackageByID(ctx context.Context, id uuid.UUID) (*models.TourPackage, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	HasReview(ctx context.Context, userID, tourID uuid.UUID) (bool, error)
	GetApprovedReviews(ctx context.Context, tourID uuid.UUID) ([]models.Review, error)
	GetApprovedRatings(ctx context.Context, tourID uuid.UUID) ([]int, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	UpdateReview(ctx context.Context, id uuid.UUID, update models.ReviewUpdate) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, request *models.BookingRequest) (*models.Booking, error)
	AllBookings(ctx context.Context, filters models.BookingFilters) ([]models.Booking, error)
	BookingsByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error
	UpdateBooking(ctx context.Context, id uuid.UUID, update models.BookingUpdate) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*models.BookingStats, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, userID, tourID uuid.UUID, request *models.ReviewRequest) (*models.Review, error)
	ApproveReview(ctx context.Context, id uuid.UUID) error
	RejectReview(ctx context.Context, id uuid.UUID) error
	UpdateReview(ctx context.Context, id uuid.UUID, update models.ReviewUpdate) (*models.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
	GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error)
	TourReviews(ctx context.Context, tourID uuid.UUID) ([]models.Review, error)
	TourReviewStats(ctx context.Context, tourID uuid.UUID) (*models.ReviewStats, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	ValidateToken(token string) (*models.AuthClaims, error)
	RequestPasswordChange(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, email, code, newPassword string) error
}

// VoucherService produces and persists booking voucher documents.
type VoucherService interface {
	// Generate renders the voucher PDF for a booking into a byte buffer.
	Generate(ctx context.Context, bookingID uuid.UUID) ([]byte, error)
	// Fetch returns the stored voucher file when present, regenerating
	// on the fly otherwise.
	Fetch(ctx context.Context, bookingID uuid.UUID) ([]byte, error)
	// Persist generates the voucher, writes it under the uploads
	// directory and records its public path on the booking.
	Persist(ctx context.Context, bookingID uuid.UUID) (string, error)
}

// QREncoder turns a URL into PNG image bytes of the given pixel width.
type QREncoder interface {
	Encode(url string, size int) ([]byte, error)
}

// CodeStore is an expiring key-value capability for verification codes.
type CodeStore interface {
	Put(ctx context.Context, key string, code models.VerificationCode, ttl time.Duration) error
	// Get returns nil without error when the key is absent or expired.
	Get(ctx context.Context, key string) (*models.VerificationCode, error)
	Delete(ctx context.Context, key string) error
}
