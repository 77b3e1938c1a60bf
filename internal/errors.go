package models

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")

	ErrPackageNotFound = errors.New("tour package not found")

	ErrReviewNotFound = errors.New("review not found")

	ErrUserNotFound = errors.New("user not found")

	ErrDuplicateReview = errors.New("a review for this tour already exists for this user")

	ErrDuplicateReference = errors.New("booking reference already exists")

	ErrInvalidUUID = errors.New("invalid uuid format")

	ErrInvalidStatus = errors.New("invalid booking status")

	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrCodeExpired = errors.New("verification code expired or not found")

	ErrCodeInvalid = errors.New("verification code does not match")

	ErrForbidden = errors.New("access to this resource is forbidden")
)
