package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/services"
)

type IntegrationsHandler struct {
	telegram *services.TelegramService
}

func NewIntegrationsHandler(telegram *services.TelegramService) *IntegrationsHandler {
	return &IntegrationsHandler{telegram: telegram}
}

// @Summary      Код привязки Telegram
// @Description  Одноразовый код; родитель отправляет боту /start <код>.
// @Tags         Integrations
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Router       /integrations/telegram/request-link [post]
func (h *IntegrationsHandler) RequestTelegramLink(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	code, expiresAt, err := h.telegram.IssueLinkCode(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":       code,
		"expires_at": expiresAt,
	})
}

// @Summary      Telegram webhook
// @Tags         Integrations
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "Update"
// @Success      200  {object}  map[string]string
// @Router       /integrations/telegram/webhook [post]
func (h *IntegrationsHandler) TelegramWebhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "invalid update payload")
		return
	}
	h.telegram.HandleUpdate(c.Request.Context(), update)
	// Телеграму всегда 200, иначе он ретраит.
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
