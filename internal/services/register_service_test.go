package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

func newRegisterFixture(sms *fakeSMS) (RegisterService, *fakeUserRepo, *fakeRegRepo, OTPService) {
	users := newFakeUserRepo()
	regs := newFakeRegRepo(users)
	auth := NewAuthService(users)
	otp := NewOTPService(sms)
	return NewRegisterService(regs, users, auth, otp), users, regs, otp
}

func TestRegisterDirect(t *testing.T) {
	svc, users, regs, _ := newRegisterFixture(&fakeSMS{})

	resp, err := svc.Register(&models.RegisterRequest{
		PhoneNumber: "+998901234567",
		Username:    "dilnoza",
		Password:    "secret",
		Role:        "parent",
		OTPSend:     false,
	})
	require.NoError(t, err)
	require.Equal(t, "user created", resp.Message)
	require.False(t, resp.OTPSent)

	u, err := users.GetByID(resp.UserID)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "parent", u.RoleName)
	require.NotEqual(t, "secret", u.PasswordHash)

	p, err := regs.GetPendingByPhone("+998901234567")
	require.NoError(t, err)
	require.Nil(t, p, "direct create must not leave a pending row")
}

func TestRegisterUnknownRole(t *testing.T) {
	svc, _, _, _ := newRegisterFixture(&fakeSMS{})

	_, err := svc.Register(&models.RegisterRequest{
		PhoneNumber: "+998901234567",
		Username:    "x",
		Password:    "secret",
		Role:        "admin",
	})
	require.Equal(t, apperrors.Validation, apperrors.KindOf(err))
}

func TestRegisterPhoneRoleConflict(t *testing.T) {
	svc, users, _, _ := newRegisterFixture(&fakeSMS{})

	require.NoError(t, users.Create(&models.User{
		PhoneNumber: "+998901234567",
		RoleName:    "parent",
	}))

	_, err := svc.Register(&models.RegisterRequest{
		PhoneNumber: "+998901234567",
		Username:    "x",
		Password:    "secret",
		Role:        "parent",
	})
	require.Equal(t, apperrors.Conflict, apperrors.KindOf(err))

	// тот же номер с другой ролью — не конфликт
	_, err = svc.Register(&models.RegisterRequest{
		PhoneNumber: "+998901234567",
		Username:    "x",
		Password:    "secret",
		Role:        "student",
	})
	require.NoError(t, err)
}

func TestRegisterWithOTP(t *testing.T) {
	sms := &fakeSMS{}
	svc, users, regs, _ := newRegisterFixture(sms)

	resp, err := svc.Register(&models.RegisterRequest{
		PhoneNumber: "+998901234567",
		Username:    "aziz",
		Password:    "secret",
		Role:        "student",
		OTPSend:     true,
	})
	require.NoError(t, err)
	require.True(t, resp.OTPSent)
	require.Equal(t, []string{"+998901234567"}, sms.sent)

	// пользователя ещё нет, есть только отложенная регистрация
	u, err := users.GetByPhone("+998901234567")
	require.NoError(t, err)
	require.Nil(t, u)

	p, err := regs.GetPendingByPhone("+998901234567")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "aziz", p.Username)
}

func TestRegisterSupersedesPending(t *testing.T) {
	sms := &fakeSMS{}
	svc, _, regs, _ := newRegisterFixture(sms)

	first, err := svc.Register(&models.RegisterRequest{
		PhoneNumber: "+998901234567",
		Username:    "first",
		Password:    "secret",
		Role:        "student",
		OTPSend:     true,
	})
	require.NoError(t, err)

	second, err := svc.Register(&models.RegisterRequest{
		PhoneNumber: "+998901234567",
		Username:    "second",
		Password:    "secret",
		Role:        "student",
		OTPSend:     true,
	})
	require.NoError(t, err)
	require.NotEqual(t, first.UserID, second.UserID)

	p, err := regs.GetPendingByPhone("+998901234567")
	require.NoError(t, err)
	require.Equal(t, "second", p.Username)

	// код первой регистрации вытеснен вместе с ней
	entry, err := regs.LatestUnusedOTP("+998901234567")
	require.NoError(t, err)
	require.Equal(t, second.UserID, entry.PendingUserID)
}

func TestRegisterSMSFailureKeepsPending(t *testing.T) {
	sms := &fakeSMS{err: errors.New("gateway down")}
	svc, _, regs, _ := newRegisterFixture(sms)

	resp, err := svc.Register(&models.RegisterRequest{
		PhoneNumber: "+998901234567",
		Username:    "aziz",
		Password:    "secret",
		Role:        "student",
		OTPSend:     true,
	})
	require.NoError(t, err)
	// сбой шлюза клиенту не виден
	require.True(t, resp.OTPSent)

	// регистрация и код остаются, код можно доставить повторно
	p, err := regs.GetPendingByPhone("+998901234567")
	require.NoError(t, err)
	require.NotNil(t, p)
	entry, err := regs.LatestUnusedOTP("+998901234567")
	require.NoError(t, err)
	require.NotNil(t, entry)
}

func TestVerifyOTP(t *testing.T) {
	svc, users, regs, otp := newRegisterFixture(&fakeSMS{})

	_, err := svc.Register(&models.RegisterRequest{
		PhoneNumber: "+998901234567",
		Username:    "aziz",
		Password:    "secret",
		Role:        "student",
		OTPSend:     true,
	})
	require.NoError(t, err)

	// код знает только SMS-шлюз; в тесте подменяем хеш на известный код
	entry, err := regs.LatestUnusedOTP("+998901234567")
	require.NoError(t, err)
	for _, e := range regs.otps {
		if e.ID == entry.ID {
			e.CodeHash = otp.HashCode("123456")
		}
	}

	resp, err := svc.VerifyOTP(&models.VerifyOTPRequest{
		PhoneNumber: "+998901234567",
		Code:        "123456",
	})
	require.NoError(t, err)

	u, err := users.GetByID(resp.UserID)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "student", u.RoleName)

	// отложенная регистрация закрыта, повторная проверка не проходит
	p, err := regs.GetPendingByPhone("+998901234567")
	require.NoError(t, err)
	require.Nil(t, p)
	_, err = svc.VerifyOTP(&models.VerifyOTPRequest{
		PhoneNumber: "+998901234567",
		Code:        "123456",
	})
	require.Equal(t, apperrors.Validation, apperrors.KindOf(err))
}

func TestVerifyOTPFailuresLookAlike(t *testing.T) {
	svc, _, regs, otp := newRegisterFixture(&fakeSMS{})

	_, err := svc.Register(&models.RegisterRequest{
		PhoneNumber: "+998901234567",
		Username:    "aziz",
		Password:    "secret",
		Role:        "student",
		OTPSend:     true,
	})
	require.NoError(t, err)

	entry, err := regs.LatestUnusedOTP("+998901234567")
	require.NoError(t, err)
	for _, e := range regs.otps {
		if e.ID == entry.ID {
			e.CodeHash = otp.HashCode("123456")
		}
	}

	// неверный код
	_, errWrong := svc.VerifyOTP(&models.VerifyOTPRequest{
		PhoneNumber: "+998901234567",
		Code:        "000000",
	})
	// номер без регистрации
	_, errNone := svc.VerifyOTP(&models.VerifyOTPRequest{
		PhoneNumber: "+998909999999",
		Code:        "123456",
	})
	// просроченный код
	for _, e := range regs.otps {
		e.ExpiresAt = time.Now().Add(-time.Minute)
	}
	_, errExpired := svc.VerifyOTP(&models.VerifyOTPRequest{
		PhoneNumber: "+998901234567",
		Code:        "123456",
	})

	for _, err := range []error{errWrong, errNone, errExpired} {
		require.Equal(t, apperrors.Validation, apperrors.KindOf(err))
		require.Equal(t, "verification code is invalid or expired", err.Error())
	}
}
