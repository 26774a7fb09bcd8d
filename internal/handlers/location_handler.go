package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tikoncha/internal/models"
	"tikoncha/internal/services"
)

type LocationHandler struct {
	locations services.LocationService
}

func NewLocationHandler(locations services.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// @Summary      Создать регион
// @Tags         Locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.Region  true  "Регион"
// @Success      201  {object}  models.Region
// @Router       /locations/regions [post]
func (h *LocationHandler) CreateRegion(c *gin.Context) {
	var r models.Region
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.locations.CreateRegion(&r); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// @Summary      Список регионов
// @Tags         Locations
// @Produce      json
// @Success      200  {array}  models.Region
// @Router       /locations/regions [get]
func (h *LocationHandler) ListRegions(c *gin.Context) {
	regions, err := h.locations.ListRegions()
	if err != nil {
		respondError(c, err)
		return
	}
	if regions == nil {
		regions = []*models.Region{}
	}
	c.JSON(http.StatusOK, regions)
}

// @Summary      Регион по ID
// @Tags         Locations
// @Produce      json
// @Param        id  path  string  true  "Region ID"
// @Success      200  {object}  models.Region
// @Failure      404  {object}  map[string]string
// @Router       /locations/regions/{id} [get]
func (h *LocationHandler) GetRegion(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	r, err := h.locations.GetRegion(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      Обновить регион
// @Tags         Locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string         true  "Region ID"
// @Param        body  body  models.Region  true  "Регион"
// @Success      200  {object}  models.Region
// @Router       /locations/regions/{id} [put]
func (h *LocationHandler) UpdateRegion(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var r models.Region
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err.Error())
		return
	}
	r.ID = id
	if err := h.locations.UpdateRegion(&r); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      Удалить регион
// @Tags         Locations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Region ID"
// @Success      200  {object}  map[string]string
// @Router       /locations/regions/{id} [delete]
func (h *LocationHandler) DeleteRegion(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.locations.DeleteRegion(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "region deleted"})
}

// @Summary      Создать район
// @Tags         Locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.District  true  "Район"
// @Success      201  {object}  models.District
// @Router       /locations/districts [post]
func (h *LocationHandler) CreateDistrict(c *gin.Context) {
	var d models.District
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.locations.CreateDistrict(&d); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// @Summary      Список районов
// @Tags         Locations
// @Produce      json
// @Param        region_id  query  string  false  "Фильтр по региону"
// @Success      200  {array}  models.District
// @Router       /locations/districts [get]
func (h *LocationHandler) ListDistricts(c *gin.Context) {
	regionID, ok := uuidQuery(c, "region_id")
	if !ok {
		return
	}
	districts, err := h.locations.ListDistricts(regionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if districts == nil {
		districts = []*models.District{}
	}
	c.JSON(http.StatusOK, districts)
}

// @Summary      Район по ID
// @Tags         Locations
// @Produce      json
// @Param        id  path  string  true  "District ID"
// @Success      200  {object}  models.District
// @Failure      404  {object}  map[string]string
// @Router       /locations/districts/{id} [get]
func (h *LocationHandler) GetDistrict(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	d, err := h.locations.GetDistrict(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      Обновить район
// @Tags         Locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string           true  "District ID"
// @Param        body  body  models.District  true  "Район"
// @Success      200  {object}  models.District
// @Router       /locations/districts/{id} [put]
func (h *LocationHandler) UpdateDistrict(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var d models.District
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, err.Error())
		return
	}
	d.ID = id
	if err := h.locations.UpdateDistrict(&d); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      Удалить район
// @Tags         Locations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "District ID"
// @Success      200  {object}  map[string]string
// @Router       /locations/districts/{id} [delete]
func (h *LocationHandler) DeleteDistrict(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.locations.DeleteDistrict(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "district deleted"})
}

// @Summary      Статистика справочника
// @Tags         Locations
// @Produce      json
// @Success      200  {object}  models.LocationStatistics
// @Router       /locations/statistics [get]
func (h *LocationHandler) Statistics(c *gin.Context) {
	stats, err := h.locations.Statistics()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
