package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tikoncha/internal/models"
	"tikoncha/internal/services"
)

type WebsiteHandler struct {
	websites services.WebsiteService
}

func NewWebsiteHandler(websites services.WebsiteService) *WebsiteHandler {
	return &WebsiteHandler{websites: websites}
}

// @Summary      Добавить сайт в каталог
// @Tags         Websites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.Website  true  "Сайт"
// @Success      201  {object}  models.Website
// @Failure      409  {object}  map[string]string
// @Router       /websites [post]
func (h *WebsiteHandler) Create(c *gin.Context) {
	var w models.Website
	if err := c.ShouldBindJSON(&w); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.websites.Create(&w); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// @Summary      Каталог сайтов
// @Tags         Websites
// @Produce      json
// @Param        limit   query  int  false  "Лимит"
// @Param        offset  query  int  false  "Смещение"
// @Success      200  {array}  models.Website
// @Router       /websites [get]
func (h *WebsiteHandler) List(c *gin.Context) {
	sites, err := h.websites.List(intQuery(c, "limit", 50), intQuery(c, "offset", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	if sites == nil {
		sites = []*models.Website{}
	}
	c.JSON(http.StatusOK, sites)
}

// @Summary      Сайт по ID
// @Tags         Websites
// @Produce      json
// @Param        id  path  string  true  "Website ID"
// @Success      200  {object}  models.Website
// @Failure      404  {object}  map[string]string
// @Router       /websites/{id} [get]
func (h *WebsiteHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	w, err := h.websites.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// @Summary      Обновить сайт
// @Tags         Websites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string          true  "Website ID"
// @Param        body  body  models.Website  true  "Сайт"
// @Success      200  {object}  models.Website
// @Router       /websites/{id} [put]
func (h *WebsiteHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var w models.Website
	if err := c.ShouldBindJSON(&w); err != nil {
		badRequest(c, err.Error())
		return
	}
	w.ID = id
	if err := h.websites.Update(&w); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// @Summary      Удалить сайт
// @Tags         Websites
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Website ID"
// @Success      200  {object}  map[string]string
// @Router       /websites/{id} [delete]
func (h *WebsiteHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.websites.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "website deleted"})
}
