package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateCodeFormat(t *testing.T) {
	svc := NewOTPService(&fakeSMS{})

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := svc.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			require.True(t, c >= '0' && c <= '9', "code %q is not numeric", code)
		}
		seen[code] = true
	}
	// 50 подряд одинаковых кодов — это сломанный генератор
	require.Greater(t, len(seen), 1)
}

func TestMatchCode(t *testing.T) {
	svc := NewOTPService(&fakeSMS{})

	hash := svc.HashCode("123456")
	require.True(t, svc.MatchCode(hash, "123456"))
	require.False(t, svc.MatchCode(hash, "654321"))
	require.False(t, svc.MatchCode(hash, ""))
	require.NotEqual(t, "123456", hash)
}

func TestDispatch(t *testing.T) {
	sms := &fakeSMS{}
	svc := NewOTPService(sms)

	require.NoError(t, svc.Dispatch("+998901234567", "042137"))
	require.Equal(t, []string{"+998901234567"}, sms.sent)
	require.Contains(t, sms.text, "042137")
}

func TestTTL(t *testing.T) {
	svc := NewOTPService(&fakeSMS{})
	require.Equal(t, 5*time.Minute, svc.TTL())
}
