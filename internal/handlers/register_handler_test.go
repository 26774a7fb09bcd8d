package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/services"
)

type stubRegisterService struct {
	lastRegister *models.RegisterRequest
	registerErr  error
	verifyErr    error
}

var _ services.RegisterService = (*stubRegisterService)(nil)

func (s *stubRegisterService) Register(req *models.RegisterRequest) (*models.RegisterResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.lastRegister = req
	return &models.RegisterResponse{Message: "user created", UserID: uuid.New()}, nil
}

func (s *stubRegisterService) VerifyOTP(req *models.VerifyOTPRequest) (*models.VerifyOTPResponse, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return &models.VerifyOTPResponse{Message: "phone number confirmed", UserID: uuid.New()}, nil
}

func newRegisterRouter(svc *stubRegisterService) *gin.Engine {
	h := NewRegisterHandler(svc)
	r := gin.New()
	r.POST("/register/create_user", h.CreateUser)
	r.POST("/register/verify-otp", h.VerifyOTP)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateUser(t *testing.T) {
	svc := &stubRegisterService{}
	r := newRegisterRouter(svc)

	w := postJSON(r, "/register/create_user",
		`{"phone_number":"+998901234567","username":"aziz","password":"secret","role":"student","otp_send":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.lastRegister)
	require.True(t, svc.lastRegister.OTPSend)
}

func TestCreateUserBadPhone(t *testing.T) {
	r := newRegisterRouter(&stubRegisterService{})

	w := postJSON(r, "/register/create_user",
		`{"phone_number":"901234567","username":"aziz","password":"secret","role":"student"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserMissingFields(t *testing.T) {
	r := newRegisterRouter(&stubRegisterService{})

	w := postJSON(r, "/register/create_user", `{"phone_number":"+998901234567"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserConflict(t *testing.T) {
	svc := &stubRegisterService{
		registerErr: apperrors.E(apperrors.Conflict, "phone number already registered"),
	}
	r := newRegisterRouter(svc)

	w := postJSON(r, "/register/create_user",
		`{"phone_number":"+998901234567","username":"aziz","password":"secret","role":"student"}`)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestVerifyOTPHandler(t *testing.T) {
	r := newRegisterRouter(&stubRegisterService{})

	w := postJSON(r, "/register/verify-otp", `{"phone_number":"+998901234567","code":"123456"}`)
	// Подтверждение создаёт пользователя, поэтому 201, как и у create_user.
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "phone number confirmed")
}

func TestVerifyOTPHandlerInvalidCode(t *testing.T) {
	svc := &stubRegisterService{
		verifyErr: apperrors.E(apperrors.Validation, "verification code is invalid or expired"),
	}
	r := newRegisterRouter(svc)

	w := postJSON(r, "/register/verify-otp", `{"phone_number":"+998901234567","code":"000000"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid or expired")
}
