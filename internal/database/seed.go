package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"farmbook/internal/logger"
	"farmbook/internal/models"
)

// Seed inserts reference roles, reference crops, and bootstrap accounts. It
// is idempotent and safe to run on every startup.
func Seed(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedCrops(db); err != nil {
		return err
	}
	if err := seedUser(db, "admin", "admin@farmbook.local", "admin123!", "System Administrator", models.RoleAdmin); err != nil {
		return err
	}
	if err := seedUser(db, "farmer", "farmer@farmbook.local", "farmer123!", "Demo Farmer", models.RoleFarmer); err != nil {
		return err
	}
	return nil
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Code: models.RoleAdmin, Name: "Administrator", Description: "Full system access"},
		{Code: models.RoleFarmer, Name: "Farmer", Description: "Farm owner and operator"},
		{Code: models.RoleBuyer, Name: "Buyer", Description: "Produce buyer"},
	}

	for _, role := range roles {
		var count int64
		if err := db.Model(&models.Role{}).Where("code = ?", role.Code).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check role %s: %w", role.Code, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Code, err)
		}
		logger.Get().Infow("seeded role", "code", role.Code)
	}
	return nil
}

// seedCrops inserts the reference crop catalog seasons are tagged with.
// Matching is by name so operator-added crops are never duplicated.
func seedCrops(db *gorm.DB) error {
	crops := []models.Crop{
		{Name: "Rice", Variety: "ST25", Unit: "kg"},
		{Name: "Coffee", Variety: "Robusta", Unit: "kg"},
		{Name: "Dragon Fruit", Variety: "White Flesh", Unit: "kg"},
		{Name: "Mango", Variety: "Cat Chu", Unit: "kg"},
		{Name: "Pepper", Variety: "Black", Unit: "kg"},
	}

	for _, crop := range crops {
		var count int64
		if err := db.Model(&models.Crop{}).Where("name = ?", crop.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check crop %s: %w", crop.Name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&crop).Error; err != nil {
			return fmt.Errorf("failed to seed crop %s: %w", crop.Name, err)
		}
		logger.Get().Infow("seeded crop", "name", crop.Name)
	}
	return nil
}

func seedUser(db *gorm.DB, username, email, password, fullName, roleCode string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check user %s: %w", username, err)
	}
	if count > 0 {
		return nil
	}

	var role models.Role
	if err := db.Where("code = ?", roleCode).First(&role).Error; err != nil {
		return fmt.Errorf("failed to load role %s: %w", roleCode, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password for %s: %w", username, err)
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		FullName: fullName,
		Status:   models.UserStatusActive,
		Roles:    []models.Role{role},
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed user %s: %w", username, err)
	}

	logger.Get().Infow("seeded user", "username", username, "role", roleCode)
	return nil
}
