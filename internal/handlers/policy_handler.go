package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tikoncha/internal/models"
	"tikoncha/internal/services"
)

type PolicyHandler struct {
	policies services.PolicyService
}

func NewPolicyHandler(policies services.PolicyService) *PolicyHandler {
	return &PolicyHandler{policies: policies}
}

// @Summary      Создать политику
// @Tags         Policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.Policy  true  "Политика"
// @Success      201  {object}  models.Policy
// @Router       /policies [post]
func (h *PolicyHandler) Create(c *gin.Context) {
	var p models.Policy
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.policies.Create(&p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary      Список политик
// @Tags         Policies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Policy
// @Router       /policies [get]
func (h *PolicyHandler) List(c *gin.Context) {
	policies, err := h.policies.List()
	if err != nil {
		respondError(c, err)
		return
	}
	if policies == nil {
		policies = []*models.Policy{}
	}
	c.JSON(http.StatusOK, policies)
}

// @Summary      Политика по ID
// @Tags         Policies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Policy ID"
// @Success      200  {object}  models.Policy
// @Failure      404  {object}  map[string]string
// @Router       /policies/{id} [get]
func (h *PolicyHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	p, err := h.policies.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Обновить политику
// @Tags         Policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string         true  "Policy ID"
// @Param        body  body  models.Policy  true  "Политика"
// @Success      200  {object}  models.Policy
// @Router       /policies/{id} [put]
func (h *PolicyHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var p models.Policy
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err.Error())
		return
	}
	p.ID = id
	if err := h.policies.Update(&p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Удалить политику
// @Tags         Policies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Policy ID"
// @Success      200  {object}  map[string]string
// @Router       /policies/{id} [delete]
func (h *PolicyHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.policies.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "policy deleted"})
}

type attachAppBody struct {
	AppID    uuid.UUID `json:"app_id" binding:"required"`
	Duration int       `json:"duration"`
}

// @Summary      Прикрепить приложение к политике
// @Tags         Policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string         true  "Policy ID"
// @Param        body  body  attachAppBody  true  "Приложение и лимит минут"
// @Success      201  {object}  models.PolicyApp
// @Failure      409  {object}  map[string]string
// @Router       /policies/{id}/apps [post]
func (h *PolicyHandler) AttachApp(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var body attachAppBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	pa, err := h.policies.AttachApp(id, body.AppID, body.Duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pa)
}

// @Summary      Приложения политики
// @Tags         Policies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Policy ID"
// @Success      200  {array}  models.PolicyAppDetail
// @Router       /policies/{id}/apps [get]
func (h *PolicyHandler) ListApps(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	apps, err := h.policies.ListApps(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if apps == nil {
		apps = []*models.PolicyAppDetail{}
	}
	c.JSON(http.StatusOK, apps)
}

// @Summary      Открепить приложение
// @Tags         Policies
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "Policy ID"
// @Param        app_id  path  string  true  "App ID"
// @Success      200  {object}  map[string]string
// @Router       /policies/{id}/apps/{app_id} [delete]
func (h *PolicyHandler) DetachApp(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	appID, ok := uuidParam(c, "app_id")
	if !ok {
		return
	}
	if err := h.policies.DetachApp(id, appID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "app detached"})
}

type attachWebBody struct {
	WebsiteID uuid.UUID `json:"website_id" binding:"required"`
	Duration  int       `json:"duration"`
}

// @Summary      Прикрепить сайт к политике
// @Tags         Policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string         true  "Policy ID"
// @Param        body  body  attachWebBody  true  "Сайт и лимит минут"
// @Success      201  {object}  models.PolicyWeb
// @Failure      409  {object}  map[string]string
// @Router       /policies/{id}/websites [post]
func (h *PolicyHandler) AttachWeb(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var body attachWebBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	pw, err := h.policies.AttachWeb(id, body.WebsiteID, body.Duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pw)
}

// @Summary      Сайты политики
// @Tags         Policies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Policy ID"
// @Success      200  {array}  models.PolicyWebDetail
// @Router       /policies/{id}/websites [get]
func (h *PolicyHandler) ListWebs(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	webs, err := h.policies.ListWebs(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if webs == nil {
		webs = []*models.PolicyWebDetail{}
	}
	c.JSON(http.StatusOK, webs)
}

// @Summary      Открепить сайт
// @Tags         Policies
// @Produce      json
// @Security     BearerAuth
// @Param        id          path  string  true  "Policy ID"
// @Param        website_id  path  string  true  "Website ID"
// @Success      200  {object}  map[string]string
// @Router       /policies/{id}/websites/{website_id} [delete]
func (h *PolicyHandler) DetachWeb(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	websiteID, ok := uuidParam(c, "website_id")
	if !ok {
		return
	}
	if err := h.policies.DetachWeb(id, websiteID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "website detached"})
}
