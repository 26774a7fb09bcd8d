package models

import (
	"time"

	"github.com/google/uuid"
)

type App struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Package      string    `json:"package"`
	Icon         string    `json:"icon,omitempty"`
	InstallCount int       `json:"install_count"`
	Type         string    `json:"type,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}

type UserApp struct {
	ID           uuid.UUID `json:"id"`
	UserDeviceID uuid.UUID `json:"user_device_id"`
	AppID        uuid.UUID `json:"app_id"`
	AddedAt      time.Time `json:"added_at"`
	IsActive     bool      `json:"is_active"`
}

// AppRequest is a student's ask to unblock an app; staff resolve it and
// every status change is journaled in AppRequestLog.
type AppRequest struct {
	ID         uuid.UUID `json:"id"`
	AppID      uuid.UUID `json:"app_id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	Reason     string    `json:"reason,omitempty"`
	Status     string    `json:"status"`
}

type AppRequestLog struct {
	ID                 uuid.UUID  `json:"id"`
	AppRequestID       uuid.UUID  `json:"app_request_id"`
	StatusWas          string     `json:"status_was"`
	StatusChangedTo    string     `json:"status_changed_to"`
	ResponsibleAdminID *uuid.UUID `json:"responsible_admin_id,omitempty"`
	Basis              string     `json:"basis,omitempty"`
}

type Website struct {
	ID         uuid.UUID `json:"id"`
	Domain     string    `json:"domain"`
	Icon       string    `json:"icon,omitempty"`
	VisitCount int       `json:"visit_count"`
	Type       string    `json:"type,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}
