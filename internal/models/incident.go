package models

import "time"

// IncidentStatus represents the handling state of a field incident
type IncidentStatus string

const (
	IncidentStatusOpen       IncidentStatus = "OPEN"
	IncidentStatusInProgress IncidentStatus = "IN_PROGRESS"
	IncidentStatusResolved   IncidentStatus = "RESOLVED"
	IncidentStatusClosed     IncidentStatus = "CLOSED"
)

// OpenIncidentStatuses are the states counted as unresolved for dashboard
// alerts and plot health.
func OpenIncidentStatuses() []IncidentStatus {
	return []IncidentStatus{IncidentStatusOpen, IncidentStatusInProgress}
}

// Incident is a pest, disease, or weather event reported against a season.
type Incident struct {
	Base
	SeasonID     uint           `gorm:"not null;index" json:"season_id"`
	Season       *Season        `gorm:"foreignKey:SeasonID" json:"season,omitempty"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	Severity     string         `json:"severity"`
	Status       IncidentStatus `gorm:"not null;default:'OPEN'" json:"status"`
	ReportedDate time.Time      `gorm:"not null" json:"reported_date"`
}
