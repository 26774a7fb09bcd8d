package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"tikoncha/internal/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestValidPhone(t *testing.T) {
	valid := []string{"+998901234567", "+998000000000"}
	invalid := []string{
		"", "998901234567", "+99890123456", "+9989012345678",
		"+7990123456", "+99890123456a", " +998901234567",
	}
	for _, p := range valid {
		require.True(t, validPhone(p), p)
	}
	for _, p := range invalid {
		require.False(t, validPhone(p), p)
	}
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{apperrors.E(apperrors.Validation, "bad input"), http.StatusBadRequest, "bad input"},
		{apperrors.E(apperrors.Unauthorized, "no"), http.StatusUnauthorized, "no"},
		{apperrors.E(apperrors.Forbidden, "no"), http.StatusForbidden, "no"},
		{apperrors.E(apperrors.NotFound, "gone"), http.StatusNotFound, "gone"},
		{apperrors.E(apperrors.Conflict, "dup"), http.StatusConflict, "dup"},
		// голые ошибки драйвера наружу не утекают
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
		respondError(c, tc.err)

		require.Equal(t, tc.code, w.Code)
		require.Contains(t, w.Body.String(), tc.body)
		require.NotContains(t, w.Body.String(), "pq:")
	}
}
