package models

import "github.com/google/uuid"

type Region struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Coordinate string    `json:"coordinate,omitempty"`
}

type District struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Coordinate string    `json:"coordinate,omitempty"`
	RegionID   uuid.UUID `json:"region_id"`
}

type School struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	RegionID   uuid.UUID  `json:"region_id"`
	DistrictID uuid.UUID  `json:"district_id"`
	Address    string     `json:"address,omitempty"`
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	Radius     *float64   `json:"radius,omitempty"`
	PolicyID   *uuid.UUID `json:"policy_id,omitempty"`
}

// LocationStatistics backs GET /locations/statistics.
type LocationStatistics struct {
	Regions   int `json:"regions"`
	Districts int `json:"districts"`
	Schools   int `json:"schools"`
}
