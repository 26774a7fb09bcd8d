package models

import "github.com/google/uuid"

// Policy is a per-role blocking profile attached to schools. The whitelist
// flags flip the interpretation of the attached app/web lists.
type Policy struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	IsWhitelistApp bool      `json:"is_whitelist_app"`
	IsWhitelistWeb bool      `json:"is_whitelist_web"`
	TargetedRoleID uuid.UUID `json:"targeted_role_id"`
}

type PolicyApp struct {
	ID       uuid.UUID `json:"id"`
	PolicyID uuid.UUID `json:"policy_id"`
	AppID    uuid.UUID `json:"app_id"`
	Duration int       `json:"duration,omitempty"` // allowed minutes per day, 0 = full block
}

type PolicyWeb struct {
	ID        uuid.UUID `json:"id"`
	PolicyID  uuid.UUID `json:"policy_id"`
	WebsiteID uuid.UUID `json:"website_id"`
	Duration  int       `json:"duration,omitempty"`
}

// PolicyAppDetail joins the app catalog entry onto a policy attachment.
type PolicyAppDetail struct {
	PolicyApp
	Name    string `json:"name"`
	Package string `json:"package"`
	Type    string `json:"type,omitempty"`
}

type PolicyWebDetail struct {
	PolicyWeb
	Domain string `json:"domain"`
	Type   string `json:"type,omitempty"`
}
