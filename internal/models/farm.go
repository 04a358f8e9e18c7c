package models

// Farm represents a farm owned by exactly one user. All season-scoped access
// control resolves through this ownership.
type Farm struct {
	Base
	OwnerID    uint        `gorm:"not null;index" json:"owner_id"`
	Owner      *User       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name       string      `gorm:"not null" json:"name"`
	Province   string      `json:"province"`
	Ward       string      `json:"ward"`
	AreaHa     *float64    `json:"area_ha,omitempty"`
	Active     bool        `gorm:"default:true" json:"active"`
	Plots      []Plot      `gorm:"foreignKey:FarmID" json:"plots,omitempty"`
	Warehouses []Warehouse `gorm:"foreignKey:FarmID" json:"warehouses,omitempty"`
}

// Plot is a cultivated parcel within a farm.
type Plot struct {
	Base
	FarmID   uint     `gorm:"not null;index" json:"farm_id"`
	Farm     *Farm    `gorm:"foreignKey:FarmID" json:"farm,omitempty"`
	Name     string   `gorm:"not null" json:"name"`
	AreaHa   *float64 `json:"area_ha,omitempty"`
	SoilType string   `json:"soil_type"`
	Seasons  []Season `gorm:"foreignKey:PlotID" json:"seasons,omitempty"`
}
