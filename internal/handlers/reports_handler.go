package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/authz"
	"tikoncha/internal/services"
)

type ReportHandler struct {
	reports  services.ReportService
	profiles services.ProfileService
}

func NewReportHandler(reports services.ReportService, profiles services.ProfileService) *ReportHandler {
	return &ReportHandler{reports: reports, profiles: profiles}
}

// @Summary      PDF-отчёт об использовании
// @Description  Доступен персоналу и родителю, привязанному к ученику.
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path   string  true   "Ученик"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /reports/usage/{user_id} [get]
func (h *ReportHandler) Usage(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.E(apperrors.Unauthorized, "could not validate credentials"))
		return
	}
	studentID, ok := uuidParam(c, "user_id")
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	if !authz.IsStaff(currentRole(c)) {
		// Родитель — только по своим детям.
		linked := false
		children, err := h.profiles.ListChildren(uid)
		if err != nil {
			respondError(c, err)
			return
		}
		for _, child := range children {
			if child.UserID == studentID {
				linked = true
				break
			}
		}
		if !linked && uid != studentID {
			respondError(c, apperrors.E(apperrors.Forbidden, "not allowed to view this student's report"))
			return
		}
	}

	path, err := h.reports.UsageReport(studentID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": path})
}
