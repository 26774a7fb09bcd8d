package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/services"
)

// ProfileHandler covers student info, parent info and preferences.
type ProfileHandler struct {
	profiles services.ProfileService
}

func NewProfileHandler(profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// @Summary      Сохранить анкету ученика
// @Tags         Profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.StudentInfo  true  "Анкета"
// @Success      200  {object}  models.StudentInfo
// @Failure      400  {object}  map[string]string
// @Router       /students/info [post]
func (h *ProfileHandler) SaveStudentInfo(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	var si models.StudentInfo
	if err := c.ShouldBindJSON(&si); err != nil {
		badRequest(c, err.Error())
		return
	}
	si.UserID = uid
	if err := h.profiles.SaveStudentInfo(&si); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, si)
}

// @Summary      Анкета ученика
// @Tags         Profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.StudentInfo
// @Failure      404  {object}  map[string]string
// @Router       /students/info [get]
func (h *ProfileHandler) GetStudentInfo(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	si, err := h.profiles.GetStudentInfo(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, si)
}

// @Summary      Дети родителя
// @Tags         Profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.StudentInfo
// @Router       /parents/children [get]
func (h *ProfileHandler) ListChildren(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	children, err := h.profiles.ListChildren(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if children == nil {
		children = []*models.StudentInfo{}
	}
	c.JSON(http.StatusOK, children)
}

// @Summary      Сохранить анкету родителя
// @Tags         Profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.ParentInfo  true  "Анкета"
// @Success      200  {object}  models.ParentInfo
// @Router       /parents/info [post]
func (h *ProfileHandler) SaveParentInfo(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	var pi models.ParentInfo
	if err := c.ShouldBindJSON(&pi); err != nil {
		badRequest(c, err.Error())
		return
	}
	pi.UserID = uid
	if err := h.profiles.SaveParentInfo(&pi); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pi)
}

// @Summary      Анкета родителя
// @Tags         Profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.ParentInfo
// @Failure      404  {object}  map[string]string
// @Router       /parents/info [get]
func (h *ProfileHandler) GetParentInfo(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	pi, err := h.profiles.GetParentInfo(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pi)
}

// @Summary      Сохранить настройки интерфейса
// @Tags         Profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.UserPreference  true  "Язык и тема"
// @Success      200  {object}  models.UserPreference
// @Router       /preferences [post]
func (h *ProfileHandler) SavePreferences(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	var p models.UserPreference
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err.Error())
		return
	}
	p.UserID = uid
	if err := h.profiles.SavePreferences(&p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Настройки интерфейса
// @Tags         Profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.UserPreference
// @Failure      404  {object}  map[string]string
// @Router       /preferences [get]
func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	p, err := h.profiles.GetPreferences(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Доступные языки и темы
// @Tags         Profiles
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /preferences/options [get]
func (h *ProfileHandler) PreferenceOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": models.Languages,
		"themes":    models.Themes,
	})
}
