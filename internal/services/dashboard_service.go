package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
	"farmbook/internal/pagination"
)

const (
	// lowStockThreshold is the on-hand quantity at or below which a supply
	// lot counts as low stock.
	lowStockThreshold = 5.0
	// expiryWindowDays is the look-ahead window for expiring-lot alerts.
	expiryWindowDays = 30
	// alertLowStockCap bounds the low-stock count shown in overview alerts.
	alertLowStockCap = 100
)

// taskTypeRules are matched in order against title+description; the first
// hit wins and the default is scouting.
var taskTypeRules = []struct {
	taskType string
	keywords []string
}{
	{"irrigation", []string{"irrigat", "water"}},
	{"fertilizing", []string{"fertil", "npk"}},
	{"spraying", []string{"spray", "pest", "insect"}},
	{"harvesting", []string{"harvest", "collect"}},
	{"scouting", []string{"inspect", "scout"}},
}

// dashboardService composes read-only metrics scoped to one owner and one
// resolved season context.
type dashboardService struct {
	db        *gorm.DB
	ownership OwnershipResolver
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, ownership OwnershipResolver) DashboardServicer {
	return &dashboardService{db: db, ownership: ownership}
}

// Overview aggregates counts, KPIs, expense and harvest totals, and alert
// counters for the owner. When seasonID is nil the context falls back to the
// newest ACTIVE season, then the newest season overall, then no season.
func (s *dashboardService) Overview(ownerID uint, seasonID *uint) (*DashboardOverview, error) {
	season, err := s.resolveSeasonContext(ownerID, seasonID)
	if err != nil {
		return nil, err
	}

	counts, err := s.buildCounts(ownerID)
	if err != nil {
		return nil, err
	}
	kpis, err := s.buildKpis(season)
	if err != nil {
		return nil, err
	}
	expenses, err := s.buildExpenses(season)
	if err != nil {
		return nil, err
	}
	harvest, err := s.buildHarvest(season)
	if err != nil {
		return nil, err
	}
	alerts, err := s.buildAlerts(ownerID)
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		SeasonContext: buildSeasonContext(season),
		Counts:        *counts,
		Kpis:          *kpis,
		Expenses:      *expenses,
		Harvest:       *harvest,
		Alerts:        *alerts,
	}, nil
}

// TodayTasks returns the owner's tasks due today, optionally narrowed to one
// season, paginated.
func (s *dashboardService) TodayTasks(ownerID uint, seasonID *uint, page pagination.PageRequest) (*pagination.PageResponse[DashboardTask], error) {
	page.Defaults()

	dayStart := startOfDay(time.Now())
	base := s.ownedTaskQuery(ownerID, seasonID).
		Where("field_tasks.due_date >= ? AND field_tasks.due_date < ?", dayStart, dayStart.AddDate(0, 0, 1))

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var tasks []models.FieldTask
	err := base.Preload("Season.Plot").
		Order("field_tasks.due_date ASC, field_tasks.id ASC").
		Scopes(pagination.Paginate(page)).
		Find(&tasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(mapDashboardTasks(tasks), page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpcomingTasks returns tasks due after today and within the next N days,
// excluding done and cancelled tasks.
func (s *dashboardService) UpcomingTasks(ownerID uint, days int, seasonID *uint) ([]DashboardTask, error) {
	if days <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be positive")
	}

	dayStart := startOfDay(time.Now())
	var tasks []models.FieldTask
	err := s.ownedTaskQuery(ownerID, seasonID).
		Where("field_tasks.due_date >= ? AND field_tasks.due_date < ?",
			dayStart.AddDate(0, 0, 1), dayStart.AddDate(0, 0, days+1)).
		Where("field_tasks.status NOT IN ?", models.ClosedTaskStatuses()).
		Preload("Season.Plot").
		Order("field_tasks.due_date ASC, field_tasks.id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return mapDashboardTasks(tasks), nil
}

// PlotStatus reports, for every owned plot, the crop and stage of its latest
// season and a health label derived from that season's open incidents.
func (s *dashboardService) PlotStatus(ownerID uint) ([]PlotStatusReport, error) {
	var plots []models.Plot
	err := s.db.
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("farms.owner_id = ?", ownerID).
		Order("plots.id ASC").
		Find(&plots).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	reports := make([]PlotStatusReport, 0, len(plots))
	for _, plot := range plots {
		report, err := s.buildPlotStatus(plot)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

// LowStock scans every warehouse of every owned farm and collects supply lots
// whose on-hand quantity is at or below the threshold, stopping once limit
// alerts are collected. Iteration order is fixed: farms, warehouses, and lots
// each by id ascending, so the first N results are deterministic.
func (s *dashboardService) LowStock(ownerID uint, limit int) ([]LowStockAlert, error) {
	if limit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be positive")
	}

	farms, err := s.ownership.ListOwnedFarms(ownerID)
	if err != nil {
		return nil, err
	}

	alerts := make([]LowStockAlert, 0, limit)
	for _, farm := range farms {
		warehouses, err := s.farmWarehouses(farm.ID)
		if err != nil {
			return nil, err
		}
		for _, warehouse := range warehouses {
			lotIDs, err := s.movedLotIDs(warehouse.ID)
			if err != nil {
				return nil, err
			}
			for _, lotID := range lotIDs {
				var lot models.SupplyLot
				if err := s.db.Preload("SupplyItem").First(&lot, lotID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						continue
					}
					return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
				}

				onHand, err := s.onHandQuantity(warehouse.ID, lot.ID)
				if err != nil {
					return nil, err
				}
				if onHand > lowStockThreshold {
					continue
				}

				itemName, unit := "Unknown", "unit"
				if lot.SupplyItem != nil {
					itemName, unit = lot.SupplyItem.Name, lot.SupplyItem.Unit
				}
				alerts = append(alerts, LowStockAlert{
					SupplyLotID:   lot.ID,
					BatchCode:     lot.BatchCode,
					ItemName:      itemName,
					WarehouseName: warehouse.Name,
					OnHand:        onHand,
					Unit:          unit,
				})
				if len(alerts) >= limit {
					return alerts, nil
				}
			}
		}
	}
	return alerts, nil
}

// resolveSeasonContext picks the season the overview is scoped to.
// Priority: explicitly requested (must be owned), newest ACTIVE season by
// start date, newest season overall, none.
func (s *dashboardService) resolveSeasonContext(ownerID uint, seasonID *uint) (*models.Season, error) {
	if seasonID != nil {
		return s.ownership.ResolveOwnedSeason(ownerID, *seasonID)
	}

	var season models.Season
	err := ownedSeasonQuery(s.db, ownerID).
		Where("seasons.status = ?", models.SeasonStatusActive).
		Order("seasons.start_date DESC").
		Preload("Plot").
		First(&season).Error
	if err == nil {
		return &season, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = ownedSeasonQuery(s.db, ownerID).
		Order("seasons.start_date DESC").
		Preload("Plot").
		First(&season).Error
	if err == nil {
		return &season, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
}

func buildSeasonContext(season *models.Season) *SeasonContext {
	if season == nil {
		return nil
	}
	return &SeasonContext{
		SeasonID:           season.ID,
		SeasonName:         season.Name,
		StartDate:          season.StartDate,
		EndDate:            season.EndDate,
		PlannedHarvestDate: season.PlannedHarvestDate,
	}
}

func (s *dashboardService) buildCounts(ownerID uint) (*OverviewCounts, error) {
	var activeFarms int64
	err := s.db.Model(&models.Farm{}).
		Where("owner_id = ? AND active = ?", ownerID, true).
		Count(&activeFarms).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var activePlots int64
	err = s.db.Model(&models.Plot{}).
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("farms.owner_id = ?", ownerID).
		Count(&activePlots).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	seasonsByStatus := make(map[string]int, len(models.AllSeasonStatuses()))
	for _, status := range models.AllSeasonStatuses() {
		var count int64
		err := ownedSeasonQuery(s.db, ownerID).
			Where("seasons.status = ?", status).
			Count(&count).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		seasonsByStatus[string(status)] = int(count)
	}

	return &OverviewCounts{
		ActiveFarms:     int(activeFarms),
		ActivePlots:     int(activePlots),
		SeasonsByStatus: seasonsByStatus,
	}, nil
}

func (s *dashboardService) buildKpis(season *models.Season) (*OverviewKpis, error) {
	kpis := &OverviewKpis{}
	if season == nil {
		return kpis, nil
	}

	plotArea := 0.0
	if season.Plot != nil && season.Plot.AreaHa != nil {
		plotArea = *season.Plot.AreaHa
	}

	totalExpense, err := s.seasonExpenseTotal(season.ID)
	if err != nil {
		return nil, err
	}
	if plotArea > 0 {
		kpis.CostPerHectare = f64(round2(totalExpense / plotArea))
	}

	var totalCompleted int64
	err = s.db.Model(&models.FieldTask{}).
		Where("season_id = ? AND status = ?", season.ID, models.TaskStatusDone).
		Count(&totalCompleted).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if totalCompleted > 0 {
		var onTime int64
		err = s.db.Model(&models.FieldTask{}).
			Where("season_id = ? AND status = ? AND completed_date IS NOT NULL AND completed_date <= due_date",
				season.ID, models.TaskStatusDone).
			Count(&onTime).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		kpis.OnTimePercent = f64(round1(float64(onTime) * 100 / float64(totalCompleted)))
	}

	if season.ActualYieldKg != nil && plotArea > 0 {
		tons := round4(*season.ActualYieldKg / 1000)
		kpis.AvgYieldTonsPerHa = f64(round2(tons / plotArea))
	}

	return kpis, nil
}

func (s *dashboardService) buildExpenses(season *models.Season) (*OverviewExpenses, error) {
	if season == nil {
		return &OverviewExpenses{}, nil
	}
	total, err := s.seasonExpenseTotal(season.ID)
	if err != nil {
		return nil, err
	}
	return &OverviewExpenses{TotalExpense: total}, nil
}

func (s *dashboardService) buildHarvest(season *models.Season) (*OverviewHarvest, error) {
	harvest := &OverviewHarvest{}
	if season == nil {
		return harvest, nil
	}

	err := s.db.Model(&models.Harvest{}).
		Where("season_id = ?", season.ID).
		Select("COALESCE(SUM(quantity_kg), 0)").
		Scan(&harvest.TotalQuantityKg).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Model(&models.Harvest{}).
		Where("season_id = ?", season.ID).
		Select("COALESCE(SUM(quantity_kg * unit_price), 0)").
		Scan(&harvest.TotalRevenue).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	harvest.ExpectedYieldKg = season.ExpectedYieldKg
	if season.ExpectedYieldKg != nil && *season.ExpectedYieldKg > 0 {
		expected := *season.ExpectedYieldKg
		harvest.YieldVsPlanPercent = f64(round1((harvest.TotalQuantityKg - expected) * 100 / expected))
	}

	return harvest, nil
}

func (s *dashboardService) buildAlerts(ownerID uint) (*OverviewAlerts, error) {
	var openIncidents int64
	err := s.db.Model(&models.Incident{}).
		Joins("JOIN seasons ON seasons.id = incidents.season_id AND seasons.deleted_at IS NULL").
		Joins("JOIN plots ON plots.id = seasons.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("farms.owner_id = ? AND incidents.status IN ?", ownerID, models.OpenIncidentStatuses()).
		Count(&openIncidents).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	expiringLots, err := s.countExpiringLots(ownerID)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.LowStock(ownerID, alertLowStockCap)
	if err != nil {
		return nil, err
	}

	return &OverviewAlerts{
		OpenIncidents: int(openIncidents),
		ExpiringLots:  expiringLots,
		LowStockItems: len(lowStock),
	}, nil
}

// countExpiringLots counts lots with movements at owned warehouses whose
// expiry falls within the look-ahead window. A lot stocked at two warehouses
// counts once per warehouse.
func (s *dashboardService) countExpiringLots(ownerID uint) (int, error) {
	threshold := startOfDay(time.Now()).AddDate(0, 0, expiryWindowDays)

	farms, err := s.ownership.ListOwnedFarms(ownerID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, farm := range farms {
		warehouses, err := s.farmWarehouses(farm.ID)
		if err != nil {
			return 0, err
		}
		for _, warehouse := range warehouses {
			lotIDs, err := s.movedLotIDs(warehouse.ID)
			if err != nil {
				return 0, err
			}
			for _, lotID := range lotIDs {
				var lot models.SupplyLot
				if err := s.db.First(&lot, lotID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						continue
					}
					return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				if lot.ExpiryDate != nil && !lot.ExpiryDate.After(threshold) {
					count++
				}
			}
		}
	}
	return count, nil
}

func (s *dashboardService) buildPlotStatus(plot models.Plot) (*PlotStatusReport, error) {
	report := &PlotStatusReport{
		PlotID:   plot.ID,
		PlotName: plot.Name,
		AreaHa:   plot.AreaHa,
		CropName: "N/A",
		Stage:    "N/A",
		Health:   "HEALTHY",
	}

	var latest models.Season
	err := s.db.Preload("Crop").
		Where("plot_id = ?", plot.ID).
		Order("start_date DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return report, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if latest.Crop != nil {
		report.CropName = latest.Crop.Name
	}
	report.Stage = string(latest.Status)

	var openCount int64
	err = s.db.Model(&models.Incident{}).
		Where("season_id = ? AND status IN ?", latest.ID, models.OpenIncidentStatuses()).
		Count(&openCount).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	switch {
	case openCount > 2:
		report.Health = "CRITICAL"
	case openCount > 0:
		report.Health = "WARNING"
	}

	return report, nil
}

func (s *dashboardService) ownedTaskQuery(ownerID uint, seasonID *uint) *gorm.DB {
	query := s.db.Model(&models.FieldTask{}).
		Joins("JOIN seasons ON seasons.id = field_tasks.season_id AND seasons.deleted_at IS NULL").
		Joins("JOIN plots ON plots.id = seasons.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("farms.owner_id = ?", ownerID)
	if seasonID != nil {
		query = query.Where("field_tasks.season_id = ?", *seasonID)
	}
	return query
}

func (s *dashboardService) farmWarehouses(farmID uint) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	if err := s.db.Where("farm_id = ?", farmID).Order("id ASC").Find(&warehouses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return warehouses, nil
}

func (s *dashboardService) movedLotIDs(warehouseID uint) ([]uint, error) {
	var lotIDs []uint
	err := s.db.Model(&models.StockMovement{}).
		Where("warehouse_id = ?", warehouseID).
		Distinct().
		Order("supply_lot_id ASC").
		Pluck("supply_lot_id", &lotIDs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lotIDs, nil
}

func (s *dashboardService) onHandQuantity(warehouseID, lotID uint) (float64, error) {
	var onHand float64
	err := s.db.Model(&models.StockMovement{}).
		Where("warehouse_id = ? AND supply_lot_id = ?", warehouseID, lotID).
		Select("COALESCE(SUM(quantity_delta), 0)").
		Scan(&onHand).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return onHand, nil
}

func (s *dashboardService) seasonExpenseTotal(seasonID uint) (float64, error) {
	var total float64
	err := s.db.Model(&models.Expense{}).
		Where("season_id = ?", seasonID).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

func mapDashboardTasks(tasks []models.FieldTask) []DashboardTask {
	rows := make([]DashboardTask, 0, len(tasks))
	for _, task := range tasks {
		plotName := ""
		if task.Season != nil && task.Season.Plot != nil {
			plotName = task.Season.Plot.Name
		}
		dueDate := task.DueDate
		if dueDate.IsZero() && task.PlannedDate != nil {
			dueDate = *task.PlannedDate
		}
		rows = append(rows, DashboardTask{
			TaskID:       task.ID,
			Title:        task.Title,
			PlotName:     plotName,
			Type:         inferTaskType(task.Title, task.Description),
			AssigneeName: task.AssigneeName,
			DueDate:      dueDate,
			Status:       string(task.Status),
		})
	}
	return rows
}

// inferTaskType classifies a task by case-insensitive substring matching on
// title and description. Categories are checked in a fixed order and the
// first match wins; unmatched tasks default to scouting.
func inferTaskType(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, rule := range taskTypeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.taskType
			}
		}
	}
	return "scouting"
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

func f64(v float64) *float64 { return &v }
