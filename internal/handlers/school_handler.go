package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
	"tikoncha/internal/services"
)

type SchoolHandler struct {
	schools services.SchoolService
}

func NewSchoolHandler(schools services.SchoolService) *SchoolHandler {
	return &SchoolHandler{schools: schools}
}

// @Summary      Создать школу
// @Tags         Schools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.School  true  "Школа"
// @Success      201  {object}  models.School
// @Router       /schools [post]
func (h *SchoolHandler) Create(c *gin.Context) {
	var s models.School
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.schools.Create(&s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// @Summary      Список школ
// @Tags         Schools
// @Produce      json
// @Param        region_id    query  string  false  "Фильтр по региону"
// @Param        district_id  query  string  false  "Фильтр по району"
// @Param        limit        query  int     false  "Лимит"
// @Param        offset       query  int     false  "Смещение"
// @Success      200  {array}  models.School
// @Router       /schools [get]
func (h *SchoolHandler) List(c *gin.Context) {
	regionID, ok := uuidQuery(c, "region_id")
	if !ok {
		return
	}
	districtID, ok := uuidQuery(c, "district_id")
	if !ok {
		return
	}
	f := repositories.SchoolFilter{
		RegionID:   regionID,
		DistrictID: districtID,
		Limit:      intQuery(c, "limit", 50),
		Offset:     intQuery(c, "offset", 0),
	}
	schools, err := h.schools.List(f)
	if err != nil {
		respondError(c, err)
		return
	}
	if schools == nil {
		schools = []*models.School{}
	}
	c.JSON(http.StatusOK, schools)
}

// @Summary      Школа по ID
// @Tags         Schools
// @Produce      json
// @Param        id  path  string  true  "School ID"
// @Success      200  {object}  models.School
// @Failure      404  {object}  map[string]string
// @Router       /schools/{id} [get]
func (h *SchoolHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	s, err := h.schools.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary      Обновить школу
// @Tags         Schools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string         true  "School ID"
// @Param        body  body  models.School  true  "Школа"
// @Success      200  {object}  models.School
// @Router       /schools/{id} [put]
func (h *SchoolHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var s models.School
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, err.Error())
		return
	}
	s.ID = id
	if err := h.schools.Update(&s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary      Удалить школу
// @Tags         Schools
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "School ID"
// @Success      200  {object}  map[string]string
// @Router       /schools/{id} [delete]
func (h *SchoolHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.schools.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "school deleted"})
}
