package services

import (
	"time"

	"farmbook/internal/models"
	"farmbook/internal/pagination"
)

// Profile is the profile snapshot embedded in session payloads.
type Profile struct {
	ID         uint   `json:"id"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	ProvinceID *uint  `json:"province_id"`
	WardID     *uint  `json:"ward_id"`
}

// Session is the payload returned by authenticate, refresh, and me.
type Session struct {
	Token      string   `json:"token,omitempty"`
	TokenType  string   `json:"token_type,omitempty"`
	ExpiresIn  int64    `json:"expires_in,omitempty"`
	UserID     uint     `json:"user_id"`
	Email      string   `json:"email"`
	Username   string   `json:"username"`
	Roles      []string `json:"roles"`
	Role       string   `json:"role"`
	Profile    Profile  `json:"profile"`
	RedirectTo string   `json:"redirect_to"`
}

// AuthServicer defines the contract for the authentication token lifecycle.
type AuthServicer interface {
	Authenticate(identifier, password string) (*Session, error)
	VerifyToken(token string, isRefresh bool) (*TokenClaims, error)
	Introspect(token string) bool
	Logout(token string) error
	Refresh(token string) (*Session, error)
	Me(userID uint) (*Session, error)
}

// UserServicer defines the contract for user management.
type UserServicer interface {
	CreateUser(username, email, password, fullName, phone string, roleCodes []string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
}

// OwnershipResolver defines the contract for walking the
// season -> plot -> farm -> owner chain.
type OwnershipResolver interface {
	ResolveOwnedFarm(ownerID, farmID uint) (*models.Farm, error)
	ResolveOwnedPlot(ownerID, plotID uint) (*models.Plot, error)
	ResolveOwnedSeason(ownerID, seasonID uint) (*models.Season, error)
	ListOwnedFarms(ownerID uint) ([]models.Farm, error)
	ListOwnedSeasons(ownerID uint) ([]models.Season, error)
}

// FarmServicer defines the contract for farm management.
type FarmServicer interface {
	CreateFarm(ownerID uint, name, province, ward string, areaHa *float64) (*models.Farm, error)
	GetFarm(ownerID, farmID uint) (*models.Farm, error)
	ListFarms(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Farm], error)
	UpdateFarm(ownerID, farmID uint, name, province, ward string, areaHa *float64) (*models.Farm, error)
	DeactivateFarm(ownerID, farmID uint) error
}

// PlotServicer defines the contract for plot management.
type PlotServicer interface {
	CreatePlot(ownerID, farmID uint, name, soilType string, areaHa *float64) (*models.Plot, error)
	GetPlot(ownerID, plotID uint) (*models.Plot, error)
	ListFarmPlots(ownerID, farmID uint) ([]models.Plot, error)
	UpdatePlot(ownerID, plotID uint, name, soilType string, areaHa *float64) (*models.Plot, error)
	DeletePlot(ownerID, plotID uint) error
}

// SeasonInput carries the mutable fields of a season.
type SeasonInput struct {
	Name               string
	CropID             *uint
	StartDate          time.Time
	EndDate            *time.Time
	PlannedHarvestDate *time.Time
	ExpectedYieldKg    *float64
	ActualYieldKg      *float64
}

// SeasonServicer defines the contract for season management.
type SeasonServicer interface {
	CreateSeason(ownerID, plotID uint, input SeasonInput) (*models.Season, error)
	GetSeason(ownerID, seasonID uint) (*models.Season, error)
	ListSeasons(ownerID uint, plotID *uint, status *models.SeasonStatus) ([]models.Season, error)
	UpdateSeason(ownerID, seasonID uint, input SeasonInput) (*models.Season, error)
	TransitionSeason(ownerID, seasonID uint, status models.SeasonStatus) (*models.Season, error)
	ListCrops() ([]models.Crop, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	From      *time.Time
	To        *time.Time
	MinAmount *float64
	MaxAmount *float64
	Query     string
}

// ExpenseServicer defines the contract for season expense bookkeeping.
type ExpenseServicer interface {
	CreateExpense(ownerID, seasonID uint, itemName string, unitPrice, quantity float64, expenseDate time.Time) (*models.Expense, error)
	GetExpense(ownerID, expenseID uint) (*models.Expense, error)
	ListSeasonExpenses(ownerID, seasonID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	UpdateExpense(ownerID, expenseID uint, itemName string, unitPrice, quantity float64, expenseDate time.Time) (*models.Expense, error)
	DeleteExpense(ownerID, expenseID uint) error
}

// HarvestSummary aggregates the harvests of one season.
type HarvestSummary struct {
	SeasonID           uint     `json:"season_id"`
	Batches            int64    `json:"batches"`
	TotalQuantityKg    float64  `json:"total_quantity_kg"`
	TotalRevenue       float64  `json:"total_revenue"`
	YieldVsPlanPercent *float64 `json:"yield_vs_plan_percent"`
}

// HarvestServicer defines the contract for harvest records.
type HarvestServicer interface {
	RecordHarvest(ownerID, seasonID uint, harvestDate time.Time, quantityKg, unitPrice float64) (*models.Harvest, error)
	ListSeasonHarvests(ownerID, seasonID uint) ([]models.Harvest, error)
	SeasonHarvestSummary(ownerID, seasonID uint) (*HarvestSummary, error)
	DeleteHarvest(ownerID, harvestID uint) error
}

// IncidentServicer defines the contract for incident reports.
type IncidentServicer interface {
	ReportIncident(ownerID, seasonID uint, title, description, severity string) (*models.Incident, error)
	ListSeasonIncidents(ownerID, seasonID uint) ([]models.Incident, error)
	UpdateIncidentStatus(ownerID, incidentID uint, status models.IncidentStatus) (*models.Incident, error)
}

// TaskServicer defines the contract for field tasks.
type TaskServicer interface {
	CreateTask(ownerID, seasonID uint, title, description, assigneeName string, dueDate time.Time, plannedDate *time.Time) (*models.FieldTask, error)
	ListSeasonTasks(ownerID, seasonID uint) ([]models.FieldTask, error)
	CompleteTask(ownerID, taskID uint) (*models.FieldTask, error)
	CancelTask(ownerID, taskID uint) (*models.FieldTask, error)
}

// InventoryServicer defines the contract for warehouses and supply stock.
type InventoryServicer interface {
	CreateWarehouse(ownerID, farmID uint, name, location string) (*models.Warehouse, error)
	ListFarmWarehouses(ownerID, farmID uint) ([]models.Warehouse, error)
	CreateSupplyItem(name, unit string) (*models.SupplyItem, error)
	CreateSupplyLot(itemID uint, batchCode string, expiryDate *time.Time) (*models.SupplyLot, error)
	RecordMovement(ownerID, warehouseID, lotID uint, delta float64, note string) (*models.StockMovement, error)
	OnHand(ownerID, warehouseID, lotID uint) (float64, error)
}

// DocumentInput carries the mutable fields of a knowledge-base document.
type DocumentInput struct {
	Title       string
	URL         string
	Description string
	Crop        string
	Stage       string
	Topic       string
	Active      *bool
	Public      *bool
}

// DocumentFilter holds optional tag filters for listing documents.
type DocumentFilter struct {
	Crop  *string
	Topic *string
}

// DocumentServicer defines the contract for the knowledge-base library.
type DocumentServicer interface {
	CreateDocument(creatorID uint, input DocumentInput) (*models.Document, error)
	GetDocument(documentID uint) (*models.Document, error)
	UpdateDocument(documentID uint, input DocumentInput) (*models.Document, error)
	DeleteDocument(documentID uint) error
	SetDocumentActive(documentID uint, active bool) (*models.Document, error)
	ListDocuments(onlyActive bool, filter DocumentFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Document], error)
}

// SeasonContext identifies the season a dashboard overview is scoped to.
type SeasonContext struct {
	SeasonID           uint       `json:"season_id"`
	SeasonName         string     `json:"season_name"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	PlannedHarvestDate *time.Time `json:"planned_harvest_date"`
}

// OverviewCounts holds entity counts for the overview.
type OverviewCounts struct {
	ActiveFarms     int            `json:"active_farms"`
	ActivePlots     int            `json:"active_plots"`
	SeasonsByStatus map[string]int `json:"seasons_by_status"`
}

// OverviewKpis holds computed season KPIs. Nil means not computable.
type OverviewKpis struct {
	CostPerHectare    *float64 `json:"cost_per_hectare"`
	OnTimePercent     *float64 `json:"on_time_percent"`
	AvgYieldTonsPerHa *float64 `json:"avg_yield_tons_per_ha"`
}

// OverviewExpenses holds the expense totals for the overview.
type OverviewExpenses struct {
	TotalExpense float64 `json:"total_expense"`
}

// OverviewHarvest holds harvest totals and yield-vs-plan for the overview.
type OverviewHarvest struct {
	TotalQuantityKg    float64  `json:"total_quantity_kg"`
	TotalRevenue       float64  `json:"total_revenue"`
	ExpectedYieldKg    *float64 `json:"expected_yield_kg"`
	YieldVsPlanPercent *float64 `json:"yield_vs_plan_percent"`
}

// OverviewAlerts holds attention counters across all owned farms.
type OverviewAlerts struct {
	OpenIncidents int `json:"open_incidents"`
	ExpiringLots  int `json:"expiring_lots"`
	LowStockItems int `json:"low_stock_items"`
}

// DashboardOverview is the aggregated dashboard response.
type DashboardOverview struct {
	SeasonContext *SeasonContext   `json:"season_context"`
	Counts        OverviewCounts   `json:"counts"`
	Kpis          OverviewKpis     `json:"kpis"`
	Expenses      OverviewExpenses `json:"expenses"`
	Harvest       OverviewHarvest  `json:"harvest"`
	Alerts        OverviewAlerts   `json:"alerts"`
}

// DashboardTask is a task row for the today/upcoming dashboard tables.
type DashboardTask struct {
	TaskID       uint      `json:"task_id"`
	Title        string    `json:"title"`
	PlotName     string    `json:"plot_name"`
	Type         string    `json:"type"`
	AssigneeName string    `json:"assignee_name"`
	DueDate      time.Time `json:"due_date"`
	Status       string    `json:"status"`
}

// PlotStatusReport describes the latest season and health of one plot.
type PlotStatusReport struct {
	PlotID   uint     `json:"plot_id"`
	PlotName string   `json:"plot_name"`
	AreaHa   *float64 `json:"area_ha"`
	CropName string   `json:"crop_name"`
	Stage    string   `json:"stage"`
	Health   string   `json:"health"`
}

// LowStockAlert describes a supply lot at or below the low-stock threshold.
type LowStockAlert struct {
	SupplyLotID   uint    `json:"supply_lot_id"`
	BatchCode     string  `json:"batch_code"`
	ItemName      string  `json:"item_name"`
	WarehouseName string  `json:"warehouse_name"`
	OnHand        float64 `json:"on_hand"`
	Unit          string  `json:"unit"`
}

// DashboardServicer defines the contract for owner-scoped dashboard reads.
type DashboardServicer interface {
	Overview(ownerID uint, seasonID *uint) (*DashboardOverview, error)
	TodayTasks(ownerID uint, seasonID *uint, page pagination.PageRequest) (*pagination.PageResponse[DashboardTask], error)
	UpcomingTasks(ownerID uint, days int, seasonID *uint) ([]DashboardTask, error)
	PlotStatus(ownerID uint) ([]PlotStatusReport, error)
	LowStock(ownerID uint, limit int) ([]LowStockAlert, error)
}
