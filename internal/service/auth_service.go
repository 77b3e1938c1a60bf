package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/ports"
	"github.com/tayotravel/tourbook/pkg/config"
)

// verificationCodeTTL is how long a password-change code stays valid.
const verificationCodeTTL = 15 * time.Minute

type tokenClaims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	users ports.UserRepository
	codes ports.CodeStore
	cfg   config.AuthConfig
	log   *logrus.Logger
}

func NewAuthService(users ports.UserRepository, codes ports.CodeStore, cfg config.AuthConfig, log *logrus.Logger) *authService {
	return &authService{
		users: users,
		codes: codes,
		cfg:   cfg,
		log:   log,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.cfg.TokenTTL)
	claims := tokenClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	return &models.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) ValidateToken(token string) (*models.AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenMalformed
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, jwt.ErrTokenMalformed
	}

	return &models.AuthClaims{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (s *authService) RequestPasswordChange(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := newVerificationCode()
	if err != nil {
		return fmt.Errorf("error generating verification code: %w", err)
	}

	vc := models.VerificationCode{
		Code:      code,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(verificationCodeTTL),
	}
	if err := s.codes.Put(ctx, email, vc, verificationCodeTTL); err != nil {
		return fmt.Errorf("error storing verification code: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("password change verification code issued")
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, email, code, newPassword string) error {
	stored, err := s.codes.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("error reading verification code: %w", err)
	}
	if stored == nil {
		return models.ErrCodeExpired
	}
	if stored.Code != code {
		return models.ErrCodeInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.users.UpdateUserPassword(ctx, stored.UserID, string(hash)); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	// single use: consume the code
	if err := s.codes.Delete(ctx, email); err != nil {
		s.log.WithError(err).Warn("could not delete consumed verification code")
	}

	s.log.WithField("user_id", stored.UserID).Info("password changed")
	return nil
}

func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
