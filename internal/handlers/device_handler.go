package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/services"
)

type DeviceHandler struct {
	devices services.DeviceService
	oses    services.OSService
}

func NewDeviceHandler(devices services.DeviceService, oses services.OSService) *DeviceHandler {
	return &DeviceHandler{devices: devices, oses: oses}
}

// @Summary      Создать запись ОС
// @Tags         Devices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.OS  true  "ОС"
// @Success      201  {object}  models.OS
// @Router       /operating-systems [post]
func (h *DeviceHandler) CreateOS(c *gin.Context) {
	var os models.OS
	if err := c.ShouldBindJSON(&os); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.oses.Create(&os); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, os)
}

// @Summary      Список ОС
// @Tags         Devices
// @Produce      json
// @Success      200  {array}  models.OS
// @Router       /operating-systems [get]
func (h *DeviceHandler) ListOS(c *gin.Context) {
	oses, err := h.oses.List()
	if err != nil {
		respondError(c, err)
		return
	}
	if oses == nil {
		oses = []*models.OS{}
	}
	c.JSON(http.StatusOK, oses)
}

// @Summary      Поддерживаемые типы ОС
// @Tags         Devices
// @Produce      json
// @Success      200  {array}  string
// @Router       /operating-systems/types [get]
func (h *DeviceHandler) OSTypes(c *gin.Context) {
	c.JSON(http.StatusOK, models.OSTypes)
}

// @Summary      Обновить запись ОС
// @Tags         Devices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string     true  "OS ID"
// @Param        body  body  models.OS  true  "ОС"
// @Success      200  {object}  models.OS
// @Router       /operating-systems/{id} [put]
func (h *DeviceHandler) UpdateOS(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var os models.OS
	if err := c.ShouldBindJSON(&os); err != nil {
		badRequest(c, err.Error())
		return
	}
	os.ID = id
	if err := h.oses.Update(&os); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, os)
}

// @Summary      Удалить запись ОС
// @Tags         Devices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "OS ID"
// @Success      200  {object}  map[string]string
// @Router       /operating-systems/{id} [delete]
func (h *DeviceHandler) DeleteOS(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.oses.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "operating system deleted"})
}

// @Summary      Зарегистрировать устройство
// @Description  Находит или создаёт устройство в каталоге и привязывает его к текущему пользователю.
// @Tags         Devices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.Device  true  "Устройство"
// @Success      201  {object}  models.UserDevice
// @Router       /devices [post]
func (h *DeviceHandler) Register(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	var d models.Device
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, err.Error())
		return
	}
	ud, err := h.devices.RegisterDevice(uid, &d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ud)
}

// @Summary      Мои устройства
// @Tags         Devices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.UserDeviceDetail
// @Router       /devices [get]
func (h *DeviceHandler) ListMine(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	devices, err := h.devices.ListUserDevices(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if devices == nil {
		devices = []*models.UserDeviceDetail{}
	}
	c.JSON(http.StatusOK, devices)
}

// @Summary      Отключить устройство
// @Tags         Devices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "UserDevice ID"
// @Success      200  {object}  map[string]string
// @Router       /devices/{id} [delete]
func (h *DeviceHandler) Deactivate(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.devices.DeactivateDevice(id, uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "device deactivated"})
}

type installAppRequest struct {
	AppID uuid.UUID `json:"app_id" binding:"required"`
}

// @Summary      Установленное приложение
// @Description  Фиксирует установку приложения из каталога на устройство пользователя.
// @Tags         Devices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "UserDevice ID"
// @Param        body  body  installAppRequest  true  "Приложение"
// @Success      201  {object}  models.UserApp
// @Router       /devices/{id}/apps [post]
func (h *DeviceHandler) InstallApp(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	deviceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req installAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ua, err := h.devices.InstallApp(uid, deviceID, req.AppID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ua)
}

// @Summary      Приложения на устройстве
// @Tags         Devices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "UserDevice ID"
// @Success      200  {array}  models.UserApp
// @Router       /devices/{id}/apps [get]
func (h *DeviceHandler) ListInstalledApps(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	deviceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	apps, err := h.devices.ListInstalledApps(uid, deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	if apps == nil {
		apps = []*models.UserApp{}
	}
	c.JSON(http.StatusOK, apps)
}

// @Summary      Удалить приложение с устройства
// @Tags         Devices
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "UserDevice ID"
// @Param        app_id  path  string  true  "App ID"
// @Success      200  {object}  map[string]string
// @Router       /devices/{id}/apps/{app_id} [delete]
func (h *DeviceHandler) UninstallApp(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	deviceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	appID, ok := uuidParam(c, "app_id")
	if !ok {
		return
	}
	if err := h.devices.UninstallApp(uid, deviceID, appID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "app uninstalled"})
}
