package models

// UserStatus represents the account status of a user
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusLocked    UserStatus = "LOCKED"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User represents the user model in the database.
// Either username or email is accepted as a login identifier.
type User struct {
	Base
	Username   string     `gorm:"uniqueIndex;not null" json:"username"`
	Email      string     `gorm:"uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"not null" json:"-"`
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone"`
	ProvinceID *uint      `json:"province_id,omitempty"`
	WardID     *uint      `json:"ward_id,omitempty"`
	Status     UserStatus `gorm:"not null;default:'ACTIVE'" json:"status"`
	Roles      []Role     `gorm:"many2many:user_roles" json:"roles,omitempty"`
	Farms      []Farm     `gorm:"foreignKey:OwnerID" json:"farms,omitempty"`
}
