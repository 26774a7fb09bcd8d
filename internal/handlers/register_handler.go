package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tikoncha/internal/models"
	"tikoncha/internal/services"
)

type RegisterHandler struct {
	registerService services.RegisterService
}

func NewRegisterHandler(registerService services.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerService: registerService}
}

// @Summary      Регистрация пользователя
// @Description  Создаёт аккаунт. При otp_send=true аккаунт остаётся в ожидании до подтверждения кода из SMS.
// @Tags         Register
// @Accept       json
// @Produce      json
// @Param        body  body      models.RegisterRequest  true  "Данные регистрации"
// @Success      201   {object}  models.RegisterResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /register/create_user [post]
func (h *RegisterHandler) CreateUser(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !validPhone(req.PhoneNumber) {
		badRequest(c, "phone number must match +998XXXXXXXXX")
		return
	}

	resp, err := h.registerService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[register][create] phone=%s role=%s otp_sent=%v", req.PhoneNumber, req.Role, resp.OTPSent)
	c.JSON(http.StatusCreated, resp)
}

// @Summary      Подтверждение кода из SMS
// @Tags         Register
// @Accept       json
// @Produce      json
// @Param        body  body      models.VerifyOTPRequest  true  "Номер и код"
// @Success      201   {object}  models.VerifyOTPResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /register/verify-otp [post]
func (h *RegisterHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !validPhone(req.PhoneNumber) {
		badRequest(c, "phone number must match +998XXXXXXXXX")
		return
	}

	resp, err := h.registerService.VerifyOTP(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
