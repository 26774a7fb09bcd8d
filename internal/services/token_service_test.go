package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour, 0)

	user := &models.User{
		ID:          uuid.New(),
		PhoneNumber: "+998901234567",
		RoleName:    "parent",
	}
	resp, err := svc.Issue(user)
	require.NoError(t, err)
	require.Equal(t, "bearer", resp.TokenType)
	require.Equal(t, user.ID, resp.UserID)

	claims, err := svc.Decode(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "parent", claims.Role)
	require.Equal(t, "+998901234567", claims.Phone)
	require.Equal(t, user.ID.String(), claims.Subject)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService([]byte("secret-a"), time.Hour, 0)
	decoder := NewTokenService([]byte("secret-b"), time.Hour, 0)

	resp, err := issuer.Issue(&models.User{ID: uuid.New(), RoleName: "student"})
	require.NoError(t, err)

	_, err = decoder.Decode(resp.AccessToken)
	require.Error(t, err)
	require.Equal(t, apperrors.Unauthorized, apperrors.KindOf(err))
	require.Equal(t, "could not validate credentials", err.Error())
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), -time.Minute, 0)

	resp, err := svc.Issue(&models.User{ID: uuid.New(), RoleName: "student"})
	require.NoError(t, err)

	_, err = svc.Decode(resp.AccessToken)
	require.Equal(t, apperrors.Unauthorized, apperrors.KindOf(err))
}

func TestTokenLeewayRescuesFreshExpiry(t *testing.T) {
	issuer := NewTokenService([]byte("test-secret"), -time.Second, 0)
	lenient := NewTokenService([]byte("test-secret"), time.Hour, time.Minute)

	resp, err := issuer.Issue(&models.User{ID: uuid.New(), RoleName: "student"})
	require.NoError(t, err)

	_, err = lenient.Decode(resp.AccessToken)
	require.NoError(t, err)
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Hour, 0)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Decode(raw)
		require.Error(t, err, "raw=%q", raw)
		require.Equal(t, apperrors.Unauthorized, apperrors.KindOf(err))
	}
}
