package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"pgregory.net/rapid"

	"noteful/internal/auth/adapters/services"
	domainservices "noteful/internal/auth/domain/services"
)

func TestBcryptHash(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBcrypt(bcrypt.MinCost)

	t.Run("хеш проверяется исходным паролем", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "password123")
		require.NoError(t, err)
		assert.NotEqual(t, "password123", hash)

		ok, err := svc.Verify(ctx, "password123", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("соль случайная", func(t *testing.T) {
		first, err := svc.Hash(ctx, "password123")
		require.NoError(t, err)
		second, err := svc.Hash(ctx, "password123")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("пустой пароль", func(t *testing.T) {
		_, err := svc.Hash(ctx, "")
		assert.ErrorIs(t, err, domainservices.ErrInvalidPassword)
	})

	t.Run("пароль длиннее 72 байт", func(t *testing.T) {
		_, err := svc.Hash(ctx, strings.Repeat("a", 73))
		assert.ErrorIs(t, err, domainservices.ErrInvalidPassword)
	})

	t.Run("стоимость по умолчанию", func(t *testing.T) {
		hash, err := services.NewBcrypt(0).Hash(ctx, "password123")
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, services.DefaultBcryptCost, cost)
	})
}

func TestBcryptVerify(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBcrypt(bcrypt.MinCost)

	hash, err := svc.Hash(ctx, "password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  bool
	}{
		{name: "совпадает", password: "password123", hash: hash, want: true},
		{name: "не совпадает", password: "password124", hash: hash, want: false},
		{name: "пустой пароль", password: "", hash: hash, want: false},
		{name: "пустой хеш", password: "password123", hash: "", want: false},
		{name: "поврежденный хеш", password: "password123", hash: "not-a-bcrypt-hash", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.Verify(ctx, tt.password, tt.hash)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestBcryptRoundTripProperty(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBcrypt(bcrypt.MinCost)

	rapid.Check(t, func(t *rapid.T) {
		password := rapid.StringMatching(`[a-zA-Z0-9!@#$%]{8,72}`).Draw(t, "password")
		other := rapid.StringMatching(`[a-zA-Z0-9!@#$%]{8,72}`).Draw(t, "other")

		hash, err := svc.Hash(ctx, password)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		ok, err := svc.Verify(ctx, password, hash)
		if err != nil || !ok {
			t.Fatalf("verify(password) = %v, %v", ok, err)
		}

		ok, err = svc.Verify(ctx, other, hash)
		if err != nil {
			t.Fatalf("verify(other): %v", err)
		}
		if ok != (other == password) {
			t.Fatalf("verify(other) = %v for other != password", ok)
		}
	})
}
