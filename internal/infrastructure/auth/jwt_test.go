package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundrypos/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-at-least-32-characters-long",
		Expiration: expiration,
		Issuer:     "laundrypos-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService(time.Hour)
	input := GenerateTokenInput{
		UserID:   uuid.New(),
		BranchID: uuid.New(),
		Username: "kasir01",
		Role:     "cashier",
	}

	t.Run("round-trips claims", func(t *testing.T) {
		token, err := svc.GenerateToken(input)
		require.NoError(t, err)
		require.NotEmpty(t, token.Value)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

		claims, err := svc.ValidateToken(token.Value)
		require.NoError(t, err)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, input.BranchID.String(), claims.BranchID)
		assert.Equal(t, "kasir01", claims.Username)
		assert.Equal(t, "cashier", claims.Role)
		assert.Equal(t, "laundrypos-test", claims.Issuer)

		branchID, err := claims.BranchUUID()
		require.NoError(t, err)
		assert.Equal(t, input.BranchID, branchID)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:     "another-secret-also-32-characters-xx",
			Expiration: time.Hour,
			Issuer:     "laundrypos-test",
		})
		token, err := other.GenerateToken(input)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := newTestService(-time.Minute)
		token, err := expired.GenerateToken(input)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Value)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects missing identity claims", func(t *testing.T) {
		now := time.Now()
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			UserID: uuid.New().String(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test-secret-at-least-32-characters-long"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrMissingBranchID)
	})
}
