package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tikoncha/internal/authz"
	"tikoncha/internal/services"
)

type AuthHandler struct {
	authService  services.AuthService
	tokenService services.TokenService
}

func NewAuthHandler(authService services.AuthService, tokenService services.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService}
}

// @Summary      Вход в систему
// @Description  Выдаёт bearer-токен. В поле username передаётся номер телефона.
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Номер телефона (+998XXXXXXXXX)"
// @Param        password  formData  string  true  "Пароль"
// @Success      200  {object}  models.TokenResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	phone := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if phone == "" || password == "" {
		badRequest(c, "username and password are required")
		return
	}
	if !validPhone(phone) {
		badRequest(c, "phone number must match +998XXXXXXXXX")
		return
	}

	user, err := h.authService.Login(phone, password)
	if err != nil {
		log.Printf("[auth][token] login rejected for phone=%q", phone)
		respondError(c, err)
		return
	}
	resp, err := h.tokenService.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[auth][token] issued for user=%s role=%s", user.ID, user.RoleName)
	c.JSON(http.StatusOK, resp)
}

// @Summary      Проверка номера
// @Description  Есть ли аккаунт с таким номером и ролью
// @Tags         Auth
// @Produce      json
// @Param        phone  query  string  true   "Номер телефона"
// @Param        role   query  string  false  "Роль"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /auth/check-phone [get]
func (h *AuthHandler) CheckPhone(c *gin.Context) {
	phone := c.Query("phone")
	if !validPhone(phone) {
		badRequest(c, "phone number must match +998XXXXXXXXX")
		return
	}
	role := c.Query("role")
	if role != "" && !authz.Valid(role) {
		badRequest(c, "unknown role")
		return
	}

	var (
		exists bool
		err    error
	)
	if role == "" {
		exists, err = h.authService.PhoneTaken(phone)
	} else {
		exists, err = h.authService.PhoneTakenForRole(phone, role)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"exists": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": true})
}
