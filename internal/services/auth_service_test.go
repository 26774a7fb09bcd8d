package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	digest, err := svc.HashPassword("qwerty123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(digest, "$argon2id$v=19$"), "digest: %s", digest)

	require.True(t, svc.VerifyPassword(digest, "qwerty123"))
	require.False(t, svc.VerifyPassword(digest, "qwerty124"))
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	a, err := svc.HashPassword("same-password")
	require.NoError(t, err)
	b, err := svc.HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHashPasswordEmpty(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.HashPassword("   ")
	require.Error(t, err)
	require.Equal(t, apperrors.Validation, apperrors.KindOf(err))
}

func TestVerifyPasswordLegacyBcrypt(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	digest, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)

	require.True(t, svc.VerifyPassword(string(digest), "old-password"))
	require.False(t, svc.VerifyPassword(string(digest), "wrong"))
}

func TestVerifyPasswordUnknownFormat(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	require.False(t, svc.VerifyPassword("", "x"))
	require.False(t, svc.VerifyPassword("plaintext", "plaintext"))
	require.False(t, svc.VerifyPassword("$argon2id$broken", "x"))
	require.False(t, svc.VerifyPassword("$argon2i$v=19$m=65536,t=1,p=4$aaaa$bbbb", "x"))
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	digest, err := svc.HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, users.Create(&models.User{
		Username:     "aziz",
		PhoneNumber:  "+998901234567",
		RoleName:     "student",
		PasswordHash: digest,
	}))

	u, err := svc.Login("+998901234567", "secret")
	require.NoError(t, err)
	require.Equal(t, "aziz", u.Username)

	// неверный пароль и неизвестный номер дают одинаковый ответ
	_, errPass := svc.Login("+998901234567", "wrong")
	_, errPhone := svc.Login("+998900000000", "secret")
	require.Equal(t, apperrors.Unauthorized, apperrors.KindOf(errPass))
	require.Equal(t, apperrors.Unauthorized, apperrors.KindOf(errPhone))
	require.Equal(t, errPass.Error(), errPhone.Error())
}

func TestPhoneTakenForRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	require.NoError(t, users.Create(&models.User{
		PhoneNumber: "+998901234567",
		RoleName:    "parent",
	}))

	taken, err := svc.PhoneTakenForRole("+998901234567", "parent")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = svc.PhoneTakenForRole("+998901234567", "student")
	require.NoError(t, err)
	require.False(t, taken)
}
