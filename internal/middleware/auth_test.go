package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, claims Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func freshClaims(ttl time.Duration) Claims {
	return Claims{
		Role:  "student",
		Phone: "+998901234567",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "8a9b4f2e-0000-0000-0000-000000000001",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
}

func newRouter(leeway time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret, leeway))
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	}
	r.GET("/users/me", handler)
	r.GET("/healthz", handler)
	r.POST("/auth/token", handler)
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAccepts(t *testing.T) {
	r := newRouter(0)
	token := signToken(t, testSecret, freshClaims(time.Hour))

	w := get(r, "/users/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "8a9b4f2e")
	require.Contains(t, w.Body.String(), "student")
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := newRouter(0)

	w := get(r, "/users/me", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectionsLookAlike(t *testing.T) {
	r := newRouter(0)

	badSig := signToken(t, []byte("other-secret"), freshClaims(time.Hour))
	expired := signToken(t, testSecret, freshClaims(-time.Hour))

	wSig := get(r, "/users/me", badSig)
	wExp := get(r, "/users/me", expired)
	require.Equal(t, http.StatusUnauthorized, wSig.Code)
	require.Equal(t, http.StatusUnauthorized, wExp.Code)
	require.Equal(t, wSig.Body.String(), wExp.Body.String())
}

func TestAuthMiddlewareLeeway(t *testing.T) {
	r := newRouter(time.Minute)
	justExpired := signToken(t, testSecret, freshClaims(-time.Second))

	w := get(r, "/users/me", justExpired)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareNoSubject(t *testing.T) {
	r := newRouter(0)
	claims := freshClaims(time.Hour)
	claims.Subject = ""

	w := get(r, "/users/me", signToken(t, testSecret, claims))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewarePublicPaths(t *testing.T) {
	r := newRouter(0)

	w := get(r, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDecodeToken(t *testing.T) {
	claims := freshClaims(time.Minute)
	raw := signToken(t, testSecret, claims)

	got, err := DecodeToken(testSecret, 0, raw)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, got.Subject)
	require.Equal(t, claims.Role, got.Role)

	_, err = DecodeToken([]byte("other-secret"), 0, raw)
	require.Error(t, err)

	// alg=none отклоняется до проверки подписи
	unsigned, signErr := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, signErr)
	_, err = DecodeToken(testSecret, 0, unsigned)
	require.Error(t, err)
}
