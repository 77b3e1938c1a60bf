package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/mocks"
)

func TestAuthenticated(t *testing.T) {
	okHandler := func(w http.ResponseWriter, r *http.Request) {
		claims, ok := CurrentClaims(r)
		assert.True(t, ok)
		assert.NotEqual(t, uuid.Nil, claims.UserID)
		w.WriteHeader(http.StatusOK)
	}

	t.Run("missing header", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		handler := Authenticated(okHandler, mockAuth)

		r := httptest.NewRequest(http.MethodGet, "/v1/bookings/my", nil)
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockAuth.AssertNotCalled(t, "ValidateToken")
	})

	t.Run("malformed header", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		handler := Authenticated(okHandler, mockAuth)

		r := httptest.NewRequest(http.MethodGet, "/v1/bookings/my", nil)
		r.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		mockAuth.On("ValidateToken", "expired").Return(nil, errors.New("token is expired"))
		handler := Authenticated(okHandler, mockAuth)

		r := httptest.NewRequest(http.MethodGet, "/v1/bookings/my", nil)
		r.Header.Set("Authorization", "Bearer expired")
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		mockAuth.On("ValidateToken", "good").
			Return(&models.AuthClaims{UserID: uuid.New(), Role: models.RoleCustomer}, nil)
		handler := Authenticated(okHandler, mockAuth)

		r := httptest.NewRequest(http.MethodGet, "/v1/bookings/my", nil)
		r.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	okHandler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("customer forbidden", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		mockAuth.On("ValidateToken", "customer").
			Return(&models.AuthClaims{UserID: uuid.New(), Role: models.RoleCustomer}, nil)
		handler := AdminOnly(okHandler, mockAuth)

		r := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
		r.Header.Set("Authorization", "Bearer customer")
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		mockAuth.On("ValidateToken", "admin").
			Return(&models.AuthClaims{UserID: uuid.New(), Role: models.RoleAdmin}, nil)
		handler := AdminOnly(okHandler, mockAuth)

		r := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
		r.Header.Set("Authorization", "Bearer admin")
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
