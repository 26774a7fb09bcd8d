package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/services"
)

// BlockingHandler serves the student-facing blocking endpoints.
type BlockingHandler struct {
	blocking services.BlockingService
}

func NewBlockingHandler(blocking services.BlockingService) *BlockingHandler {
	return &BlockingHandler{blocking: blocking}
}

// @Summary      Статус блокировки
// @Description  Действует ли сейчас школьная политика для текущего ученика.
// @Tags         Blocking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.BlockingStatus
// @Router       /blocking/status [get]
func (h *BlockingHandler) Status(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	status, err := h.blocking.Status(uid, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// @Summary      Заблокированные приложения
// @Tags         Blocking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.PolicyAppDetail
// @Router       /blocking/apps [get]
func (h *BlockingHandler) BlockedApps(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	apps, err := h.blocking.BlockedApps(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if apps == nil {
		apps = []*models.PolicyAppDetail{}
	}
	c.JSON(http.StatusOK, apps)
}

// @Summary      Заблокированные сайты
// @Tags         Blocking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.PolicyWebDetail
// @Router       /blocking/websites [get]
func (h *BlockingHandler) BlockedWebsites(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	webs, err := h.blocking.BlockedWebsites(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if webs == nil {
		webs = []*models.PolicyWebDetail{}
	}
	c.JSON(http.StatusOK, webs)
}

// @Summary      Расписание смен
// @Tags         Blocking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  services.ScheduleEntry
// @Router       /blocking/schedule [get]
func (h *BlockingHandler) Schedule(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	entries, err := h.blocking.Schedule(uid, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type exceptionBody struct {
	AppID  uuid.UUID `json:"app_id" binding:"required"`
	Reason string    `json:"reason" binding:"required"`
}

// @Summary      Экстренное исключение
// @Description  Создаёт срочный запрос на разблокировку для рассмотрения персоналом.
// @Tags         Blocking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  exceptionBody  true  "Приложение и причина"
// @Success      201  {object}  models.AppRequest
// @Router       /blocking/exception [post]
func (h *BlockingHandler) RequestException(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	var body exceptionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	req, err := h.blocking.RequestException(uid, body.AppID, body.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}
