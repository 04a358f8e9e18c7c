package models

import "time"

// SeasonStatus represents the lifecycle state of a growing season
type SeasonStatus string

const (
	SeasonStatusPlanned   SeasonStatus = "PLANNED"
	SeasonStatusActive    SeasonStatus = "ACTIVE"
	SeasonStatusCompleted SeasonStatus = "COMPLETED"
	SeasonStatusCancelled SeasonStatus = "CANCELLED"
	SeasonStatusArchived  SeasonStatus = "ARCHIVED"
)

// AllSeasonStatuses returns every season status in a fixed order, used to
// zero-fill dashboard counts.
func AllSeasonStatuses() []SeasonStatus {
	return []SeasonStatus{
		SeasonStatusPlanned,
		SeasonStatusActive,
		SeasonStatusCompleted,
		SeasonStatusCancelled,
		SeasonStatusArchived,
	}
}

// Terminal reports whether the status locks the season against expense
// mutations.
func (s SeasonStatus) Terminal() bool {
	return s == SeasonStatusCompleted || s == SeasonStatusCancelled || s == SeasonStatusArchived
}

// Crop is reference data describing what is grown in a season.
type Crop struct {
	Base
	Name    string `gorm:"not null" json:"name"`
	Variety string `json:"variety"`
	Unit    string `json:"unit"`
}

// Season represents one growing season on a plot. Ownership resolves
// season -> plot -> farm -> owner.
type Season struct {
	Base
	PlotID             uint         `gorm:"not null;index" json:"plot_id"`
	Plot               *Plot        `gorm:"foreignKey:PlotID" json:"plot,omitempty"`
	CropID             *uint        `json:"crop_id,omitempty"`
	Crop               *Crop        `gorm:"foreignKey:CropID" json:"crop,omitempty"`
	Name               string       `gorm:"not null" json:"name"`
	Status             SeasonStatus `gorm:"not null;default:'ACTIVE'" json:"status"`
	StartDate          time.Time    `gorm:"not null" json:"start_date"`
	EndDate            *time.Time   `json:"end_date,omitempty"`
	PlannedHarvestDate *time.Time   `json:"planned_harvest_date,omitempty"`
	ExpectedYieldKg    *float64     `json:"expected_yield_kg,omitempty"`
	ActualYieldKg      *float64     `json:"actual_yield_kg,omitempty"`
}
