package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"farmbook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestRole creates a role with the given code, or returns the existing one.
func CreateTestRole(t *testing.T, db *gorm.DB, code string) *models.Role {
	t.Helper()

	var role models.Role
	if err := db.Where("code = ?", code).First(&role).Error; err == nil {
		return &role
	}

	role = models.Role{Code: code, Name: code}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("failed to create test role: %v", err)
	}
	return &role
}

// CreateTestUser creates an active user holding the FARMER role. The password
// is always "password123".
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRoles(t, db, models.RoleFarmer)
}

// CreateTestUserWithRoles creates an active user holding the given role codes.
func CreateTestUserWithRoles(t *testing.T, db *gorm.DB, roleCodes ...string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	roles := make([]models.Role, 0, len(roleCodes))
	for _, code := range roleCodes {
		roles = append(roles, *CreateTestRole(t, db, code))
	}

	n := nextID()
	user := &models.User{
		Username: fmt.Sprintf("user%d", n),
		Email:    fmt.Sprintf("user%d@test.com", n),
		Password: string(hash),
		FullName: fmt.Sprintf("Test User %d", n),
		Status:   models.UserStatusActive,
		Roles:    roles,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestFarm creates an active farm for the given owner.
func CreateTestFarm(t *testing.T, db *gorm.DB, ownerID uint) *models.Farm {
	t.Helper()

	farm := &models.Farm{
		OwnerID: ownerID,
		Name:    fmt.Sprintf("Test Farm %d", nextID()),
		Active:  true,
	}
	if err := db.Create(farm).Error; err != nil {
		t.Fatalf("failed to create test farm: %v", err)
	}
	return farm
}

// CreateTestPlot creates a plot on the given farm with the given area.
func CreateTestPlot(t *testing.T, db *gorm.DB, farmID uint, areaHa *float64) *models.Plot {
	t.Helper()

	plot := &models.Plot{
		FarmID: farmID,
		Name:   fmt.Sprintf("Test Plot %d", nextID()),
		AreaHa: areaHa,
	}
	if err := db.Create(plot).Error; err != nil {
		t.Fatalf("failed to create test plot: %v", err)
	}
	return plot
}

// CreateTestDocument creates an active knowledge-base document authored by
// the given user.
func CreateTestDocument(t *testing.T, db *gorm.DB, creatorID uint) *models.Document {
	t.Helper()

	n := nextID()
	doc := &models.Document{
		Title:       fmt.Sprintf("Test Document %d", n),
		URL:         fmt.Sprintf("https://docs.example.com/%d", n),
		Active:      true,
		CreatedByID: creatorID,
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("failed to create test document: %v", err)
	}
	return doc
}

// CreateTestCrop creates a catalog crop measured in kilograms.
func CreateTestCrop(t *testing.T, db *gorm.DB, name string) *models.Crop {
	t.Helper()

	crop := &models.Crop{Name: name, Unit: "kg"}
	if err := db.Create(crop).Error; err != nil {
		t.Fatalf("failed to create test crop: %v", err)
	}
	return crop
}

// CreateTestSeason creates a season on the given plot with the given status,
// starting 30 days ago.
func CreateTestSeason(t *testing.T, db *gorm.DB, plotID uint, status models.SeasonStatus) *models.Season {
	t.Helper()

	season := &models.Season{
		PlotID:    plotID,
		Name:      fmt.Sprintf("Test Season %d", nextID()),
		Status:    status,
		StartDate: time.Now().AddDate(0, 0, -30),
	}
	if err := db.Create(season).Error; err != nil {
		t.Fatalf("failed to create test season: %v", err)
	}
	return season
}

// CreateTestExpense creates an expense on the given season dated today.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, seasonID uint, totalCost float64) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		SeasonID:    seasonID,
		ItemName:    fmt.Sprintf("Test Item %d", nextID()),
		UnitPrice:   totalCost,
		Quantity:    1,
		TotalCost:   totalCost,
		ExpenseDate: time.Now(),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestHarvest creates a harvest batch on the given season dated today.
func CreateTestHarvest(t *testing.T, db *gorm.DB, seasonID uint, quantityKg, unitPrice float64) *models.Harvest {
	t.Helper()

	harvest := &models.Harvest{
		SeasonID:    seasonID,
		HarvestDate: time.Now(),
		QuantityKg:  quantityKg,
		UnitPrice:   unitPrice,
	}
	if err := db.Create(harvest).Error; err != nil {
		t.Fatalf("failed to create test harvest: %v", err)
	}
	return harvest
}

// CreateTestIncident creates an incident on the given season.
func CreateTestIncident(t *testing.T, db *gorm.DB, seasonID uint, status models.IncidentStatus) *models.Incident {
	t.Helper()

	incident := &models.Incident{
		SeasonID:     seasonID,
		Title:        fmt.Sprintf("Test Incident %d", nextID()),
		Severity:     "MEDIUM",
		Status:       status,
		ReportedDate: time.Now(),
	}
	if err := db.Create(incident).Error; err != nil {
		t.Fatalf("failed to create test incident: %v", err)
	}
	return incident
}

// CreateTestTask creates a field task on the given season with the given due
// date and status.
func CreateTestTask(t *testing.T, db *gorm.DB, seasonID uint, dueDate time.Time, status models.TaskStatus) *models.FieldTask {
	t.Helper()

	task := &models.FieldTask{
		SeasonID: seasonID,
		Title:    fmt.Sprintf("Test Task %d", nextID()),
		Status:   status,
		DueDate:  dueDate,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestWarehouse creates a warehouse on the given farm.
func CreateTestWarehouse(t *testing.T, db *gorm.DB, farmID uint) *models.Warehouse {
	t.Helper()

	house := &models.Warehouse{
		FarmID: farmID,
		Name:   fmt.Sprintf("Test Warehouse %d", nextID()),
	}
	if err := db.Create(house).Error; err != nil {
		t.Fatalf("failed to create test warehouse: %v", err)
	}
	return house
}

// CreateTestSupplyLot creates a supply item plus one lot, optionally expiring.
func CreateTestSupplyLot(t *testing.T, db *gorm.DB, expiryDate *time.Time) *models.SupplyLot {
	t.Helper()

	n := nextID()
	item := &models.SupplyItem{
		Name: fmt.Sprintf("Test Supply %d", n),
		Unit: "kg",
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test supply item: %v", err)
	}

	lot := &models.SupplyLot{
		SupplyItemID: item.ID,
		BatchCode:    fmt.Sprintf("LOT-%d", n),
		ExpiryDate:   expiryDate,
	}
	if err := db.Create(lot).Error; err != nil {
		t.Fatalf("failed to create test supply lot: %v", err)
	}
	return lot
}

// CreateTestMovement books a stock delta for the lot at the warehouse.
func CreateTestMovement(t *testing.T, db *gorm.DB, warehouseID, lotID uint, delta float64) *models.StockMovement {
	t.Helper()

	movement := &models.StockMovement{
		WarehouseID:   warehouseID,
		SupplyLotID:   lotID,
		QuantityDelta: delta,
		MovedAt:       time.Now(),
	}
	if err := db.Create(movement).Error; err != nil {
		t.Fatalf("failed to create test stock movement: %v", err)
	}
	return movement
}

// Float64 returns a pointer to the given value, for optional numeric fields.
func Float64(v float64) *float64 {
	return &v
}
