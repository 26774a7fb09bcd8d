package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tikoncha/internal/apperrors"
)

func TestNormalizeDomain(t *testing.T) {
	cases := map[string]string{
		"tiktok.com":                       "tiktok.com",
		"TikTok.com":                       "tiktok.com",
		"https://www.tiktok.com":           "tiktok.com",
		"http://tiktok.com/video/1?x=1#y":  "tiktok.com",
		"  youtube.com  ":                  "youtube.com",
		"www.m.youtube.com":                "m.youtube.com",
	}
	for raw, want := range cases {
		got, err := normalizeDomain(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}
}

func TestNormalizeDomainInvalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "localhost", "https://", "www."} {
		_, err := normalizeDomain(raw)
		require.Error(t, err, raw)
		require.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	}
}
