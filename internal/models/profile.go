package models

import "github.com/google/uuid"

type StudentInfo struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Patronymic string     `json:"patronymic,omitempty"`
	Age        int        `json:"age"`
	Gender     string     `json:"gender"`
	SchoolID   uuid.UUID  `json:"school_id"`
	Shift      string     `json:"shift"`
	FatherID   *uuid.UUID `json:"father_id,omitempty"`
	MotherID   *uuid.UUID `json:"mother_id,omitempty"`
}

type ParentInfo struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Patronymic string    `json:"patronymic,omitempty"`
	Age        int       `json:"age"`
	Gender     string    `json:"gender"`
	PassportID string    `json:"passport_id,omitempty"`
}

type UserPreference struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Language string    `json:"language,omitempty"`
	Theme    string    `json:"theme,omitempty"`
}
