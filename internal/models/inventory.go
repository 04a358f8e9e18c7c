package models

import "time"

// Warehouse is a storage location belonging to a farm.
type Warehouse struct {
	Base
	FarmID   uint   `gorm:"not null;index" json:"farm_id"`
	Farm     *Farm  `gorm:"foreignKey:FarmID" json:"farm,omitempty"`
	Name     string `gorm:"not null" json:"name"`
	Location string `json:"location"`
}

// SupplyItem is reference data for a stocked input (fertilizer, seed, ...).
type SupplyItem struct {
	Base
	Name string `gorm:"not null" json:"name"`
	Unit string `gorm:"not null" json:"unit"`
}

// SupplyLot is a batch of a supply item, optionally with an expiry date.
type SupplyLot struct {
	Base
	SupplyItemID uint        `gorm:"not null;index" json:"supply_item_id"`
	SupplyItem   *SupplyItem `gorm:"foreignKey:SupplyItemID" json:"supply_item,omitempty"`
	BatchCode    string      `gorm:"not null" json:"batch_code"`
	ExpiryDate   *time.Time  `json:"expiry_date,omitempty"`
}

// StockMovement is one signed ledger entry for a supply lot at a warehouse.
// On-hand quantity for a lot at a warehouse is the sum of its deltas.
type StockMovement struct {
	Base
	WarehouseID   uint       `gorm:"not null;index" json:"warehouse_id"`
	Warehouse     *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	SupplyLotID   uint       `gorm:"not null;index" json:"supply_lot_id"`
	SupplyLot     *SupplyLot `gorm:"foreignKey:SupplyLotID" json:"supply_lot,omitempty"`
	QuantityDelta float64    `gorm:"not null" json:"quantity_delta"`
	MovedAt       time.Time  `gorm:"not null" json:"moved_at"`
	Note          string     `json:"note"`
}
