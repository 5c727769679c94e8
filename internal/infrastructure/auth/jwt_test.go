package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekstil/ledger/internal/infrastructure/config"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret: testSecret,
		Issuer: "test-issuer",
	})
}

func TestValidateAccessToken_Success(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, err := svc.IssueToken(userID, "kasir", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "kasir", claims.Username)
	got, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, "test-issuer", claims.Issuer)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.IssueToken(uuid.New(), "kasir", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_Rejections(t *testing.T) {
	svc := newTestJWTService()
	now := time.Now()

	sign := func(t *testing.T, method jwt.SigningMethod, secret any, claims *Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(secret)
		require.NoError(t, err)
		return s
	}
	valid := func() *Claims {
		return &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "test-issuer",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			UserID: uuid.New().String(),
		}
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
		want  error
	}{
		{
			name:  "garbage",
			token: func(*testing.T) string { return "not-a-jwt" },
			want:  ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-32"), valid())
			},
			want: ErrInvalidToken,
		},
		{
			name: "other hmac algorithm",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS512, []byte(testSecret), valid())
			},
			want: ErrInvalidToken,
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				c := valid()
				c.Issuer = "someone-else"
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			want: ErrInvalidToken,
		},
		{
			name: "not yet valid",
			token: func(t *testing.T) string {
				c := valid()
				c.NotBefore = jwt.NewNumericDate(now.Add(time.Hour))
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			want: ErrTokenNotYetValid,
		},
		{
			name: "missing user id",
			token: func(t *testing.T) string {
				c := valid()
				c.UserID = ""
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			want: ErrMissingUserID,
		},
		{
			name: "malformed user id",
			token: func(t *testing.T) string {
				c := valid()
				c.UserID = "user-42"
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			want: ErrInvalidClaims,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token(t))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestJWTService_WithoutSecret(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{})

	_, err := svc.IssueToken(uuid.New(), "", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = svc.ValidateAccessToken("anything")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
