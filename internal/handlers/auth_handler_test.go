package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/middleware"
	"tikoncha/internal/models"
	"tikoncha/internal/services"
)

type stubAuthService struct {
	user *models.User
}

func (s *stubAuthService) HashPassword(string) (string, error)   { return "", nil }
func (s *stubAuthService) VerifyPassword(string, string) bool    { return false }
func (s *stubAuthService) PhoneTaken(string) (bool, error)       { return s.user != nil, nil }
func (s *stubAuthService) PhoneTakenForRole(phone, role string) (bool, error) {
	return s.user != nil && s.user.RoleName == role, nil
}

func (s *stubAuthService) Login(phone, password string) (*models.User, error) {
	if s.user != nil && s.user.PhoneNumber == phone && password == "secret" {
		return s.user, nil
	}
	return nil, apperrors.E(apperrors.Unauthorized, "incorrect phone number or password")
}

type stubTokenService struct{}

func (s *stubTokenService) Issue(user *models.User) (*models.TokenResponse, error) {
	return &models.TokenResponse{
		AccessToken: "stub-token",
		TokenType:   "bearer",
		UserID:      user.ID,
		UserRole:    user.RoleName,
	}, nil
}

func (s *stubTokenService) Decode(string) (*middleware.Claims, error) {
	return nil, apperrors.E(apperrors.Unauthorized, "could not validate credentials")
}

var _ services.AuthService = (*stubAuthService)(nil)
var _ services.TokenService = (*stubTokenService)(nil)

func newAuthRouter(user *models.User) *gin.Engine {
	h := NewAuthHandler(&stubAuthService{user: user}, &stubTokenService{})
	r := gin.New()
	r.POST("/auth/token", h.Token)
	r.GET("/auth/check-phone", h.CheckPhone)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenSuccess(t *testing.T) {
	user := &models.User{ID: uuid.New(), PhoneNumber: "+998901234567", RoleName: "parent"}
	r := newAuthRouter(user)

	w := postForm(r, "/auth/token", url.Values{
		"username": {"+998901234567"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "stub-token")
	require.Contains(t, w.Body.String(), "bearer")
}

func TestTokenBadPhoneFormat(t *testing.T) {
	r := newAuthRouter(nil)

	w := postForm(r, "/auth/token", url.Values{
		"username": {"901234567"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenMissingFields(t *testing.T) {
	r := newAuthRouter(nil)

	w := postForm(r, "/auth/token", url.Values{"username": {"+998901234567"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenRejectionsLookAlike(t *testing.T) {
	user := &models.User{ID: uuid.New(), PhoneNumber: "+998901234567", RoleName: "parent"}
	r := newAuthRouter(user)

	wrongPass := postForm(r, "/auth/token", url.Values{
		"username": {"+998901234567"},
		"password": {"nope"},
	})
	unknownPhone := postForm(r, "/auth/token", url.Values{
		"username": {"+998909999999"},
		"password": {"secret"},
	})

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, unknownPhone.Code)
	require.Equal(t, wrongPass.Body.String(), unknownPhone.Body.String())
}

func TestCheckPhone(t *testing.T) {
	user := &models.User{ID: uuid.New(), PhoneNumber: "+998901234567", RoleName: "parent"}
	r := newAuthRouter(user)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/check-phone?phone=%2B998901234567", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"exists":true`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/check-phone?phone=%2B998901234567&role=student", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), `"exists":false`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/check-phone?phone=%2B998901234567&role=admin", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
