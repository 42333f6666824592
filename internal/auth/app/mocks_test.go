package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"noteful/internal/auth/domain/entities"
	"noteful/internal/auth/domain/services"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type mockLoginAttempts struct {
	mock.Mock
}

func (m *mockLoginAttempts) Blocked(ctx context.Context, username string) (bool, time.Duration, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}

func (m *mockLoginAttempts) RecordFailure(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *mockLoginAttempts) Reset(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, payload services.TokenPayload) (*services.IssuedToken, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.IssuedToken), args.Error(1)
}

func (m *mockTokenService) Verify(ctx context.Context, token string) (*services.JWTClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JWTClaims), args.Error(1)
}

func (m *mockTokenService) Refresh(ctx context.Context, token string) (*services.IssuedToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.IssuedToken), args.Error(1)
}
