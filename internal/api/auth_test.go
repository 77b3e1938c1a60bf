package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/mocks"
)

func TestLogin(t *testing.T) {
	t.Run("successful login returns a token", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		h := NewAuthHandler(mockAuth, testLogger())

		mockAuth.On("Login", mock.Anything, "jane@example.com", "opensesame").
			Return(&models.TokenResponse{Token: "signed-token", ExpiresAt: time.Now().Add(time.Hour)}, nil)

		r := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
			jsonBody(t, models.Credentials{Email: "jane@example.com", Password: "opensesame"}))
		w := httptest.NewRecorder()
		h.Login(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "signed-token")
	})

	t.Run("bad credentials", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		h := NewAuthHandler(mockAuth, testLogger())

		mockAuth.On("Login", mock.Anything, "jane@example.com", "wrong").
			Return(nil, models.ErrInvalidCredentials)

		r := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
			jsonBody(t, models.Credentials{Email: "jane@example.com", Password: "wrong"}))
		w := httptest.NewRecorder()
		h.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing email rejected before the service", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		h := NewAuthHandler(mockAuth, testLogger())

		r := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
			jsonBody(t, models.Credentials{Password: "opensesame"}))
		w := httptest.NewRecorder()
		h.Login(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockAuth.AssertNotCalled(t, "Login")
	})
}

func TestRequestPasswordCode(t *testing.T) {
	t.Run("code issued", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		h := NewAuthHandler(mockAuth, testLogger())

		mockAuth.On("RequestPasswordChange", mock.Anything, "jane@example.com").Return(nil)

		r := httptest.NewRequest(http.MethodPost, "/v1/auth/password-code",
			jsonBody(t, models.PasswordCodeRequest{Email: "jane@example.com"}))
		w := httptest.NewRecorder()
		h.RequestPasswordCode(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		h := NewAuthHandler(mockAuth, testLogger())

		mockAuth.On("RequestPasswordChange", mock.Anything, "ghost@example.com").
			Return(models.ErrUserNotFound)

		r := httptest.NewRequest(http.MethodPost, "/v1/auth/password-code",
			jsonBody(t, models.PasswordCodeRequest{Email: "ghost@example.com"}))
		w := httptest.NewRecorder()
		h.RequestPasswordCode(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestChangePassword(t *testing.T) {
	payload := models.PasswordChangeRequest{
		Email:       "jane@example.com",
		Code:        "123456",
		NewPassword: "newpassword1",
	}

	t.Run("password changed", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		h := NewAuthHandler(mockAuth, testLogger())

		mockAuth.On("ChangePassword", mock.Anything, payload.Email, payload.Code, payload.NewPassword).
			Return(nil)

		r := httptest.NewRequest(http.MethodPost, "/v1/auth/password", jsonBody(t, payload))
		w := httptest.NewRecorder()
		h.ChangePassword(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("expired code", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		h := NewAuthHandler(mockAuth, testLogger())

		mockAuth.On("ChangePassword", mock.Anything, payload.Email, payload.Code, payload.NewPassword).
			Return(models.ErrCodeExpired)

		r := httptest.NewRequest(http.MethodPost, "/v1/auth/password", jsonBody(t, payload))
		w := httptest.NewRecorder()
		h.ChangePassword(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short code rejected before the service", func(t *testing.T) {
		mockAuth := new(mocks.MockAuthService)
		h := NewAuthHandler(mockAuth, testLogger())

		bad := payload
		bad.Code = "123"

		r := httptest.NewRequest(http.MethodPost, "/v1/auth/password", jsonBody(t, bad))
		w := httptest.NewRecorder()
		h.ChangePassword(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockAuth.AssertNotCalled(t, "ChangePassword")
	})
}
