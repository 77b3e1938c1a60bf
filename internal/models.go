package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
}

type Tour struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// TourPackage is a purchasable variant of a tour with its own tiered
// per-person pricing. It is a read-only input to price computation.
type TourPackage struct {
	ID          uuid.UUID       `json:"id"`
	TourID      uuid.UUID       `json:"tour_id"`
	Name        string          `json:"name"`
	AdultPrice  decimal.Decimal `json:"adult_price"`
	ChildPrice  decimal.Decimal `json:"child_price"`
	InfantPrice decimal.Decimal `json:"infant_price"`
	Language    string          `json:"language"`
	Capacity    int             `json:"capacity"`
}

type Booking struct {
	ID           uuid.UUID       `json:"id"`
	Reference    string          `json:"reference"`
	User         User            `json:"user"`
	Tour         Tour            `json:"tour"`
	Package      TourPackage     `json:"package"`
	AdultCount   int             `json:"adult_count"`
	ChildCount   int             `json:"child_count"`
	InfantCount  int             `json:"infant_count"`
	TourDate     time.Time       `json:"tour_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       BookingStatus   `json:"status"`
	VoucherPath  string          `json:"voucher_path,omitempty"`
	ContactEmail string          `json:"contact_email"`
	ContactPhone string          `json:"contact_phone,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type BookingRequest struct {
	TourID       uuid.UUID `json:"tour_id" validate:"required"`
	PackageID    uuid.UUID `json:"package_id" validate:"required"`
	AdultCount   int       `json:"adult_count" validate:"required,min=1"`
	ChildCount   int       `json:"child_count" validate:"min=0"`
	InfantCount  int       `json:"infant_count" validate:"min=0"`
	TourDate     time.Time `json:"tour_date" validate:"required,future_date"`
	ContactEmail string    `json:"contact_email" validate:"required,email"`
	ContactPhone string    `json:"contact_phone"`
}

// BookingUpdate carries the fields the update operation may overwrite.
// The total amount is fixed at creation time and is deliberately not
// part of this set.
type BookingUpdate struct {
	TourDate     *time.Time `json:"tour_date,omitempty"`
	ContactEmail *string    `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string    `json:"contact_phone,omitempty"`
}

type StatusUpdateRequest struct {
	Status BookingStatus `json:"status" validate:"required"`
}

type BookingFilters struct {
	UserID uuid.UUID
	TourID uuid.UUID
	Status BookingStatus
}

type BookingStats struct {
	Total    int                   `json:"total"`
	ByStatus map[BookingStatus]int `json:"by_status"`
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	TourID    uuid.UUID `json:"tour_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"max=120"`
	Content string `json:"content" validate:"required"`
}

type ReviewUpdate struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type ReviewStats struct {
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	Distribution  map[int]int `json:"distribution"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthClaims is the identity extracted from a validated access token.
type AuthClaims struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (c AuthClaims) IsAdmin() bool { return c.Role == RoleAdmin }

type PasswordCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordChangeRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// VerificationCode is the short-lived secret authorizing a password
// change, keyed by the requesting user's email in the code store.
type VerificationCode struct {
	Code      string    `json:"code"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
