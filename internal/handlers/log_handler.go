package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/authz"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
	"tikoncha/internal/services"
)

type LogHandler struct {
	logs services.LogService
}

func NewLogHandler(logs services.LogService) *LogHandler {
	return &LogHandler{logs: logs}
}

// @Summary      Создать действие
// @Tags         Logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.Action  true  "Действие"
// @Success      201  {object}  models.Action
// @Router       /logs/actions [post]
func (h *LogHandler) CreateAction(c *gin.Context) {
	var a models.Action
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.logs.CreateAction(&a); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Summary      Каталог действий
// @Tags         Logs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Action
// @Router       /logs/actions [get]
func (h *LogHandler) ListActions(c *gin.Context) {
	actions, err := h.logs.ListActions()
	if err != nil {
		respondError(c, err)
		return
	}
	if actions == nil {
		actions = []*models.Action{}
	}
	c.JSON(http.StatusOK, actions)
}

// @Summary      Записать событие
// @Description  Событие с агента устройства. Подозрительные действия уходят родителям.
// @Tags         Logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  models.Log  true  "Событие"
// @Success      201  {object}  models.Log
// @Router       /logs [post]
func (h *LogHandler) Record(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	var l models.Log
	if err := c.ShouldBindJSON(&l); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.logs.Record(uid, &l); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// parseDateRange reads from/to query params as YYYY-MM-DD. По умолчанию —
// последние 7 дней.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -7)
	to := now
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(c, "invalid from date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(c, "invalid to date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = t.AddDate(0, 0, 1) // включительно
	}
	return from, to, true
}

// @Summary      Список событий
// @Tags         Logs
// @Produce      json
// @Security     BearerAuth
// @Param        user_id    query  string  false  "Ученик (для персонала/родителей)"
// @Param        device_id  query  string  false  "UserDevice ID"
// @Param        from       query  string  false  "YYYY-MM-DD"
// @Param        to         query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  models.Log
// @Router       /logs [get]
func (h *LogHandler) List(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	f := repositories.LogFilter{
		UserID: uid,
		From:   from,
		To:     to,
		Limit:  intQuery(c, "limit", 100),
		Offset: intQuery(c, "offset", 0),
	}
	// Персонал может смотреть чужие логи.
	if target, ok := uuidQuery(c, "user_id"); !ok {
		return
	} else if target != nil {
		if !authz.IsStaff(currentRole(c)) && currentRole(c) != authz.RoleParent {
			respondError(c, apperrors.E(apperrors.Forbidden, "not allowed to view other users' logs"))
			return
		}
		f.UserID = *target
	}
	if deviceID, ok := uuidQuery(c, "device_id"); !ok {
		return
	} else if deviceID != nil {
		f.UserDeviceID = *deviceID
	}

	logs, err := h.logs.List(f)
	if err != nil {
		respondError(c, err)
		return
	}
	if logs == nil {
		logs = []*models.Log{}
	}
	c.JSON(http.StatusOK, logs)
}

// @Summary      Сводка по дням
// @Tags         Logs
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query  string  false  "Ученик (для персонала/родителей)"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  models.LogDaySummary
// @Router       /logs/summary [get]
func (h *LogHandler) Summary(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	target := uid
	if t, ok := uuidQuery(c, "user_id"); !ok {
		return
	} else if t != nil {
		if !authz.IsStaff(currentRole(c)) && currentRole(c) != authz.RoleParent {
			respondError(c, apperrors.E(apperrors.Forbidden, "not allowed to view other users' logs"))
			return
		}
		target = *t
	}

	rows, err := h.logs.SummaryByDay(target, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	if rows == nil {
		rows = []*models.LogDaySummary{}
	}
	c.JSON(http.StatusOK, rows)
}
