package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/cards-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            testSecret,
		Issuer:               "cards-api",
		TokenLifetimeMinutes: 60,
	}
}

func newTestService(t *testing.T, cfg config.AuthConfig, now time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newJWTService(cfg, func() time.Time { return now })
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(testConfig())
	require.NoError(t, err)

	short := testConfig()
	short.JWTSecret = "too-short"
	_, err = NewJWTService(short)
	assert.ErrorContains(t, err, "at least 32 characters")

	noLifetime := testConfig()
	noLifetime.TokenLifetimeMinutes = 0
	_, err = NewJWTService(noLifetime)
	assert.ErrorContains(t, err, "token lifetime")
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, testConfig(), fixedTime)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "ops-alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "ops-alice", claims.Subject)
	assert.Equal(t, "cards-api", claims.Issuer)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	_, err = svc.GenerateToken(ctx, "")
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestValidateToken_Failures(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestService(t, testConfig(), fixedTime)
	token, err := issuer.GenerateToken(context.Background(), "ops-alice")
	require.NoError(t, err)

	wrongSecret := testConfig()
	wrongSecret.JWTSecret = "wrong-secret-that-is-long-enough-for-testing"

	wrongIssuer := testConfig()
	wrongIssuer.Issuer = "someone-else"

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "ops-alice",
		Issuer:    "cards-api",
		ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		cfg     config.AuthConfig
		now     time.Time
		token   string
		wantErr error
	}{
		{"empty token", testConfig(), fixedTime, "", ErrMissingToken},
		{"malformed token", testConfig(), fixedTime, "not.a.jwt", ErrInvalidToken},
		{"wrong secret", wrongSecret, fixedTime, token, ErrInvalidToken},
		{"wrong issuer", wrongIssuer, fixedTime, token, ErrInvalidToken},
		{"unsigned token", testConfig(), fixedTime, noneToken, ErrInvalidToken},
		{"expired", testConfig(), fixedTime.Add(2 * time.Hour), token, ErrExpiredToken},
		{"not yet valid", testConfig(), fixedTime.Add(-10 * time.Minute), token, ErrTokenNotYetValid},
		{"within clock skew", testConfig(), fixedTime.Add(61 * time.Minute), token, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(t, tt.cfg, tt.now)
			claims, err := svc.ValidateToken(context.Background(), tt.token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "ops-alice", claims.Subject)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}
