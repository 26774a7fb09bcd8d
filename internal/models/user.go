package models

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PhoneNumber  string     `json:"phone_number"`
	RoleID       *uuid.UUID `json:"role_id,omitempty"`
	RoleName     string     `json:"role"`
	PasswordHash string     `json:"-"` // не отдаём наружу

	// Telegram alert channel, nil until the parent links a chat.
	TelegramChatID *int64 `json:"-"`
}

// PendingUser holds a registration awaiting OTP confirmation. At most one
// live row per phone number; a newer registration supersedes it.
type PendingUser struct {
	ID           uuid.UUID `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	RoleName     string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// OTPEntry stores only the sha256 hash of an issued code. Rows are never
// updated except for the one-way used flip on accepted verification.
type OTPEntry struct {
	ID            uuid.UUID `json:"id"`
	PendingUserID uuid.UUID `json:"pending_user_id"`
	PhoneNumber   string    `json:"phone_number"`
	CodeHash      string    `json:"-"`
	ExpiresAt     time.Time `json:"expires_at"`
	Used          bool      `json:"used"`
}
