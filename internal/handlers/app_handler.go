package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/services"
)

type AppHandler struct {
	apps services.AppService
}

func NewAppHandler(apps services.AppService) *AppHandler {
	return &AppHandler{apps: apps}
}

// @Summary      Добавить приложение в каталог
// @Tags         Apps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.App  true  "Приложение"
// @Success      201  {object}  models.App
// @Failure      409  {object}  map[string]string
// @Router       /apps [post]
func (h *AppHandler) Create(c *gin.Context) {
	var app models.App
	if err := c.ShouldBindJSON(&app); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.apps.Create(&app); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// @Summary      Каталог приложений
// @Tags         Apps
// @Produce      json
// @Param        limit   query  int  false  "Лимит"
// @Param        offset  query  int  false  "Смещение"
// @Success      200  {array}  models.App
// @Router       /apps [get]
func (h *AppHandler) List(c *gin.Context) {
	apps, err := h.apps.List(intQuery(c, "limit", 50), intQuery(c, "offset", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	if apps == nil {
		apps = []*models.App{}
	}
	c.JSON(http.StatusOK, apps)
}

// @Summary      Приложение по ID
// @Tags         Apps
// @Produce      json
// @Param        id  path  string  true  "App ID"
// @Success      200  {object}  models.App
// @Failure      404  {object}  map[string]string
// @Router       /apps/{id} [get]
func (h *AppHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	app, err := h.apps.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// @Summary      Обновить приложение
// @Tags         Apps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string      true  "App ID"
// @Param        body  body  models.App  true  "Приложение"
// @Success      200  {object}  models.App
// @Router       /apps/{id} [put]
func (h *AppHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var app models.App
	if err := c.ShouldBindJSON(&app); err != nil {
		badRequest(c, err.Error())
		return
	}
	app.ID = id
	if err := h.apps.Update(&app); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// @Summary      Удалить приложение
// @Tags         Apps
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "App ID"
// @Success      200  {object}  map[string]string
// @Router       /apps/{id} [delete]
func (h *AppHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.apps.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "app deleted"})
}

type appRequestBody struct {
	AppID  uuid.UUID `json:"app_id" binding:"required"`
	Reason string    `json:"reason"`
}

// @Summary      Запросить разблокировку приложения
// @Tags         Apps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  appRequestBody  true  "Запрос"
// @Success      201  {object}  models.AppRequest
// @Router       /apps/requests [post]
func (h *AppHandler) SubmitRequest(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	var body appRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	req := &models.AppRequest{
		AppID:      body.AppID,
		FromUserID: uid,
		Reason:     body.Reason,
	}
	if err := h.apps.SubmitRequest(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// @Summary      Список запросов на разблокировку
// @Tags         Apps
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "pending/approved/rejected/error"
// @Success      200  {array}  models.AppRequest
// @Router       /apps/requests [get]
func (h *AppHandler) ListRequests(c *gin.Context) {
	reqs, err := h.apps.ListRequests(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	if reqs == nil {
		reqs = []*models.AppRequest{}
	}
	c.JSON(http.StatusOK, reqs)
}

type resolveRequestBody struct {
	Approve bool   `json:"approve"`
	Basis   string `json:"basis"`
}

// @Summary      Решение по запросу
// @Description  Одобряет или отклоняет запрос; переход статуса журналируется.
// @Tags         Apps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "Request ID"
// @Param        body  body  resolveRequestBody  true  "Решение"
// @Success      200  {object}  models.AppRequest
// @Failure      409  {object}  map[string]string
// @Router       /apps/requests/{id}/resolve [post]
func (h *AppHandler) ResolveRequest(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var body resolveRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.apps.ResolveRequest(id, body.Approve, adminID, body.Basis); err != nil {
		respondError(c, err)
		return
	}
	req, err := h.apps.GetRequest(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
