package models

import "time"

// Expense is a cost item recorded against a season. TotalCost is derived as
// UnitPrice * Quantity and must be positive.
type Expense struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	SeasonID    uint      `gorm:"not null;index" json:"season_id"`
	Season      *Season   `gorm:"foreignKey:SeasonID" json:"season,omitempty"`
	ItemName    string    `gorm:"not null" json:"item_name"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	TotalCost   float64   `gorm:"not null" json:"total_cost"`
	ExpenseDate time.Time `gorm:"not null" json:"expense_date"`
}

// Harvest records a quantity harvested from a season at a unit price.
// Revenue contribution is QuantityKg * UnitPrice.
type Harvest struct {
	Base
	SeasonID    uint      `gorm:"not null;index" json:"season_id"`
	Season      *Season   `gorm:"foreignKey:SeasonID" json:"season,omitempty"`
	HarvestDate time.Time `gorm:"not null" json:"harvest_date"`
	QuantityKg  float64   `gorm:"not null" json:"quantity_kg"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
}
