package models

// Document is a knowledge-base article curated by administrators and
// surfaced to farmers. Tags narrow it to a crop, growth stage, or topic.
type Document struct {
	Base
	Title       string `gorm:"not null" json:"title"`
	URL         string `gorm:"not null" json:"url"`
	Description string `json:"description"`
	Crop        string `json:"crop"`
	Stage       string `json:"stage"`
	Topic       string `json:"topic"`
	Active      bool   `gorm:"default:true" json:"active"`
	Public      bool   `gorm:"default:false" json:"public"`
	CreatedByID uint   `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
