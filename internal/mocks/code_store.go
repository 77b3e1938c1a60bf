package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	models "github.com/tayotravel/tourbook/internal"
)

type MockCodeStore struct {
	mock.Mock
}

func (m *MockCodeStore) Put(ctx context.Context, key string, code models.VerificationCode, ttl time.Duration) error {
	args := m.Called(ctx, key, code, ttl)
	return args.Error(0)
}

func (m *MockCodeStore) Get(ctx context.Context, key string) (*models.VerificationCode, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationCode), args.Error(1)
}

func (m *MockCodeStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
