package models

import (
	"time"

	"github.com/google/uuid"
)

type OS struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Version   string    `json:"version,omitempty"`
	UI        string    `json:"ui,omitempty"` // Android skin, empty for other OS types
	UIVersion string    `json:"ui_version,omitempty"`
}

type Device struct {
	ID      uuid.UUID `json:"id"`
	Brand   string    `json:"brand"`
	Model   string    `json:"model"`
	OSID    uuid.UUID `json:"os_id"`
	RAM     int       `json:"ram,omitempty"`
	Storage int       `json:"storage,omitempty"`
	IMEI    string    `json:"imei,omitempty"`
}

// UserDevice links a user to a physical device. Logs and installed apps
// hang off this link, not the device itself.
type UserDevice struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	DeviceID uuid.UUID `json:"device_id"`
	IsActive bool      `json:"is_active"`
}

// UserDeviceDetail is the joined shape returned by device listings.
type UserDeviceDetail struct {
	UserDevice
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	OSType    string `json:"os_type"`
	OSVersion string `json:"os_version,omitempty"`
}

type Action struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Degree string    `json:"degree"`
}

type Log struct {
	ID           uuid.UUID  `json:"id"`
	UserDeviceID uuid.UUID  `json:"user_device_id"`
	UserAppID    *uuid.UUID `json:"user_app_id,omitempty"`
	ActionID     uuid.UUID  `json:"action_id"`
	DoneAt       time.Time  `json:"done_at"`
	Location     string     `json:"location,omitempty"`
	Details      string     `json:"details,omitempty"`
}

// LogDaySummary is one row of the per-day usage summary.
type LogDaySummary struct {
	Day        time.Time `json:"day"`
	ActionName string    `json:"action_name"`
	Degree     string    `json:"degree"`
	Count      int       `json:"count"`
}
