package services

import (
	"testing"
	"time"

	"farmbook/internal/models"
	"farmbook/internal/pagination"
	"farmbook/internal/testutil"
)

func TestOverviewSeasonContext(t *testing.T) {
	t.Run("explicit_season_wins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		active := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		completed := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusCompleted)

		overview, err := svc.Overview(user.ID, &completed.ID)
		testutil.AssertNoError(t, err)
		if overview.SeasonContext == nil || overview.SeasonContext.SeasonID != completed.ID {
			t.Errorf("expected explicit season %d as context, got %+v", completed.ID, overview.SeasonContext)
		}
		_ = active
	})

	t.Run("explicit_foreign_season_masked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		otherFarm := testutil.CreateTestFarm(t, db, other.ID)
		otherPlot := testutil.CreateTestPlot(t, db, otherFarm.ID, nil)
		foreign := testutil.CreateTestSeason(t, db, otherPlot.ID, models.SeasonStatusActive)

		_, err := svc.Overview(owner.ID, &foreign.ID)
		testutil.AssertAppError(t, err, "SEASON_NOT_FOUND")
	})

	t.Run("newest_active_season_preferred", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)

		older := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		db.Model(older).Update("start_date", time.Now().AddDate(0, -6, 0))
		newerCompleted := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusCompleted)
		db.Model(newerCompleted).Update("start_date", time.Now().AddDate(0, 0, -1))

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.SeasonContext == nil || overview.SeasonContext.SeasonID != older.ID {
			t.Errorf("expected newest ACTIVE season %d, got %+v", older.ID, overview.SeasonContext)
		}
	})

	t.Run("falls_back_to_newest_overall", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)

		older := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusCompleted)
		db.Model(older).Update("start_date", time.Now().AddDate(-1, 0, 0))
		newer := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusArchived)
		db.Model(newer).Update("start_date", time.Now().AddDate(0, 0, -2))

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.SeasonContext == nil || overview.SeasonContext.SeasonID != newer.ID {
			t.Errorf("expected newest season %d, got %+v", newer.ID, overview.SeasonContext)
		}
	})

	t.Run("no_seasons_no_context", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFarm(t, db, user.ID)

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.SeasonContext != nil {
			t.Errorf("expected nil season context, got %+v", overview.SeasonContext)
		}
		if overview.Kpis.CostPerHectare != nil {
			t.Error("expected nil cost KPI without a season")
		}
	})
}

func TestOverviewKpis(t *testing.T) {
	t.Run("cost_per_hectare", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, testutil.Float64(2.0))
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		testutil.CreateTestExpense(t, db, user.ID, season.ID, 600)
		testutil.CreateTestExpense(t, db, user.ID, season.ID, 400)

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.Kpis.CostPerHectare == nil || *overview.Kpis.CostPerHectare != 500.00 {
			t.Errorf("expected cost per hectare 500.00, got %v", overview.Kpis.CostPerHectare)
		}
		if overview.Expenses.TotalExpense != 1000 {
			t.Errorf("expected total expense 1000, got %f", overview.Expenses.TotalExpense)
		}
	})

	t.Run("zero_area_yields_nil_cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		testutil.CreateTestExpense(t, db, user.ID, season.ID, 1000)

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.Kpis.CostPerHectare != nil {
			t.Errorf("expected nil cost per hectare, got %v", *overview.Kpis.CostPerHectare)
		}
	})

	t.Run("on_time_percent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)

		due := time.Now().AddDate(0, 0, -1)
		onTime := testutil.CreateTestTask(t, db, season.ID, due, models.TaskStatusDone)
		db.Model(onTime).Update("completed_date", due.AddDate(0, 0, -1))
		late := testutil.CreateTestTask(t, db, season.ID, due, models.TaskStatusDone)
		db.Model(late).Update("completed_date", due.AddDate(0, 0, 2))
		lateToo := testutil.CreateTestTask(t, db, season.ID, due, models.TaskStatusDone)
		db.Model(lateToo).Update("completed_date", due.AddDate(0, 0, 3))

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.Kpis.OnTimePercent == nil || *overview.Kpis.OnTimePercent != 33.3 {
			t.Errorf("expected on-time percent 33.3, got %v", overview.Kpis.OnTimePercent)
		}
	})

	t.Run("no_done_tasks_nil_on_time", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		testutil.CreateTestTask(t, db, season.ID, time.Now(), models.TaskStatusPending)

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.Kpis.OnTimePercent != nil {
			t.Errorf("expected nil on-time percent, got %v", *overview.Kpis.OnTimePercent)
		}
	})

	t.Run("avg_yield_tons_per_ha", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, testutil.Float64(2.0))
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		db.Model(season).Update("actual_yield_kg", 5000.0)

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.Kpis.AvgYieldTonsPerHa == nil || *overview.Kpis.AvgYieldTonsPerHa != 2.5 {
			t.Errorf("expected avg yield 2.5 t/ha, got %v", overview.Kpis.AvgYieldTonsPerHa)
		}
	})
}

func TestOverviewHarvestAndAlerts(t *testing.T) {
	t.Run("yield_vs_plan", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		db.Model(season).Update("expected_yield_kg", 1000.0)
		testutil.CreateTestHarvest(t, db, season.ID, 700, 10)
		testutil.CreateTestHarvest(t, db, season.ID, 500, 12)

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.Harvest.TotalQuantityKg != 1200 {
			t.Errorf("expected 1200 kg, got %f", overview.Harvest.TotalQuantityKg)
		}
		if overview.Harvest.TotalRevenue != 13000 {
			t.Errorf("expected revenue 13000, got %f", overview.Harvest.TotalRevenue)
		}
		if overview.Harvest.YieldVsPlanPercent == nil || *overview.Harvest.YieldVsPlanPercent != 20.0 {
			t.Errorf("expected yield vs plan 20.0, got %v", overview.Harvest.YieldVsPlanPercent)
		}
	})

	t.Run("alert_counters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)

		testutil.CreateTestIncident(t, db, season.ID, models.IncidentStatusOpen)
		testutil.CreateTestIncident(t, db, season.ID, models.IncidentStatusInProgress)
		testutil.CreateTestIncident(t, db, season.ID, models.IncidentStatusResolved)

		house := testutil.CreateTestWarehouse(t, db, farm.ID)
		soon := time.Now().AddDate(0, 0, 10)
		expiring := testutil.CreateTestSupplyLot(t, db, &soon)
		testutil.CreateTestMovement(t, db, house.ID, expiring.ID, 50)
		far := time.Now().AddDate(0, 6, 0)
		healthy := testutil.CreateTestSupplyLot(t, db, &far)
		testutil.CreateTestMovement(t, db, house.ID, healthy.ID, 3)

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.Alerts.OpenIncidents != 2 {
			t.Errorf("expected 2 open incidents, got %d", overview.Alerts.OpenIncidents)
		}
		if overview.Alerts.ExpiringLots != 1 {
			t.Errorf("expected 1 expiring lot, got %d", overview.Alerts.ExpiringLots)
		}
		if overview.Alerts.LowStockItems != 1 {
			t.Errorf("expected 1 low-stock item, got %d", overview.Alerts.LowStockItems)
		}
	})

	t.Run("counts_by_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusCompleted)

		overview, err := svc.Overview(user.ID, nil)
		testutil.AssertNoError(t, err)
		if overview.Counts.ActiveFarms != 1 {
			t.Errorf("expected 1 active farm, got %d", overview.Counts.ActiveFarms)
		}
		if overview.Counts.ActivePlots != 1 {
			t.Errorf("expected 1 plot, got %d", overview.Counts.ActivePlots)
		}
		if overview.Counts.SeasonsByStatus["ACTIVE"] != 2 {
			t.Errorf("expected 2 active seasons, got %d", overview.Counts.SeasonsByStatus["ACTIVE"])
		}
		if overview.Counts.SeasonsByStatus["COMPLETED"] != 1 {
			t.Errorf("expected 1 completed season, got %d", overview.Counts.SeasonsByStatus["COMPLETED"])
		}
		if overview.Counts.SeasonsByStatus["PLANNED"] != 0 {
			t.Errorf("expected zero-filled PLANNED count, got %d", overview.Counts.SeasonsByStatus["PLANNED"])
		}
	})
}

func TestLowStock(t *testing.T) {
	t.Run("threshold_is_inclusive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		house := testutil.CreateTestWarehouse(t, db, farm.ID)

		atThreshold := testutil.CreateTestSupplyLot(t, db, nil)
		testutil.CreateTestMovement(t, db, house.ID, atThreshold.ID, 5)
		justAbove := testutil.CreateTestSupplyLot(t, db, nil)
		testutil.CreateTestMovement(t, db, house.ID, justAbove.ID, 6)

		alerts, err := svc.LowStock(user.ID, 10)
		testutil.AssertNoError(t, err)
		if len(alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].SupplyLotID != atThreshold.ID {
			t.Errorf("expected lot %d, got %d", atThreshold.ID, alerts[0].SupplyLotID)
		}
		if alerts[0].OnHand != 5 {
			t.Errorf("expected on-hand 5, got %f", alerts[0].OnHand)
		}
	})

	t.Run("sums_signed_deltas", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		house := testutil.CreateTestWarehouse(t, db, farm.ID)

		lot := testutil.CreateTestSupplyLot(t, db, nil)
		testutil.CreateTestMovement(t, db, house.ID, lot.ID, 20)
		testutil.CreateTestMovement(t, db, house.ID, lot.ID, -16)

		alerts, err := svc.LowStock(user.ID, 10)
		testutil.AssertNoError(t, err)
		if len(alerts) != 1 || alerts[0].OnHand != 4 {
			t.Fatalf("expected a single alert at on-hand 4, got %+v", alerts)
		}
	})

	t.Run("stops_at_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		house := testutil.CreateTestWarehouse(t, db, farm.ID)

		for i := 0; i < 5; i++ {
			lot := testutil.CreateTestSupplyLot(t, db, nil)
			testutil.CreateTestMovement(t, db, house.ID, lot.ID, 1)
		}

		alerts, err := svc.LowStock(user.ID, 3)
		testutil.AssertNoError(t, err)
		if len(alerts) != 3 {
			t.Errorf("expected 3 alerts, got %d", len(alerts))
		}
	})

	t.Run("rejects_nonpositive_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.LowStock(user.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestPlotStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDashboardService(db, NewOwnershipService(db))
	user := testutil.CreateTestUser(t, db)
	farm := testutil.CreateTestFarm(t, db, user.ID)

	bare := testutil.CreateTestPlot(t, db, farm.ID, nil)

	warning := testutil.CreateTestPlot(t, db, farm.ID, nil)
	warningSeason := testutil.CreateTestSeason(t, db, warning.ID, models.SeasonStatusActive)
	testutil.CreateTestIncident(t, db, warningSeason.ID, models.IncidentStatusOpen)

	critical := testutil.CreateTestPlot(t, db, farm.ID, nil)
	criticalSeason := testutil.CreateTestSeason(t, db, critical.ID, models.SeasonStatusActive)
	for i := 0; i < 3; i++ {
		testutil.CreateTestIncident(t, db, criticalSeason.ID, models.IncidentStatusOpen)
	}

	reports, err := svc.PlotStatus(user.ID)
	testutil.AssertNoError(t, err)
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}

	byPlot := make(map[uint]PlotStatusReport, len(reports))
	for _, report := range reports {
		byPlot[report.PlotID] = report
	}

	if got := byPlot[bare.ID]; got.Health != "HEALTHY" || got.CropName != "N/A" || got.Stage != "N/A" {
		t.Errorf("expected bare plot to be HEALTHY/N/A, got %+v", got)
	}
	if got := byPlot[warning.ID]; got.Health != "WARNING" || got.Stage != "ACTIVE" {
		t.Errorf("expected WARNING plot, got %+v", got)
	}
	if got := byPlot[critical.ID]; got.Health != "CRITICAL" {
		t.Errorf("expected CRITICAL plot, got %+v", got)
	}
}

func TestTaskBoards(t *testing.T) {
	t.Run("today_and_upcoming_windows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)

		now := time.Now()
		today := testutil.CreateTestTask(t, db, season.ID, now, models.TaskStatusPending)
		tomorrow := testutil.CreateTestTask(t, db, season.ID, now.AddDate(0, 0, 1), models.TaskStatusPending)
		nextWeek := testutil.CreateTestTask(t, db, season.ID, now.AddDate(0, 0, 6), models.TaskStatusPending)
		farAway := testutil.CreateTestTask(t, db, season.ID, now.AddDate(0, 0, 30), models.TaskStatusPending)
		doneTomorrow := testutil.CreateTestTask(t, db, season.ID, now.AddDate(0, 0, 1), models.TaskStatusDone)

		todayPage, err := svc.TodayTasks(user.ID, nil, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(todayPage.Data) != 1 || todayPage.Data[0].TaskID != today.ID {
			t.Errorf("expected only today's task, got %+v", todayPage.Data)
		}

		upcoming, err := svc.UpcomingTasks(user.ID, 7, nil)
		testutil.AssertNoError(t, err)
		if len(upcoming) != 2 {
			t.Fatalf("expected 2 upcoming tasks, got %d", len(upcoming))
		}
		if upcoming[0].TaskID != tomorrow.ID || upcoming[1].TaskID != nextWeek.ID {
			t.Errorf("unexpected upcoming order: %+v", upcoming)
		}
		_ = farAway
		_ = doneTomorrow
	})

	t.Run("foreign_tasks_invisible", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, NewOwnershipService(db))
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		otherFarm := testutil.CreateTestFarm(t, db, other.ID)
		otherPlot := testutil.CreateTestPlot(t, db, otherFarm.ID, nil)
		otherSeason := testutil.CreateTestSeason(t, db, otherPlot.ID, models.SeasonStatusActive)
		testutil.CreateTestTask(t, db, otherSeason.ID, time.Now(), models.TaskStatusPending)

		todayPage, err := svc.TodayTasks(owner.ID, nil, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(todayPage.Data) != 0 {
			t.Errorf("expected no visible tasks, got %+v", todayPage.Data)
		}
	})
}

func TestInferTaskType(t *testing.T) {
	cases := []struct {
		title       string
		description string
		want        string
	}{
		{"Water the north field", "", "irrigation"},
		{"Apply NPK", "", "fertilizing"},
		{"Pest control", "spray the rows", "spraying"},
		{"Collect produce", "", "harvesting"},
		{"Inspect seedlings", "", "scouting"},
		{"Misc paperwork", "", "scouting"},
		{"Fertilize before watering", "", "irrigation"},
	}
	for _, tc := range cases {
		if got := inferTaskType(tc.title, tc.description); got != tc.want {
			t.Errorf("inferTaskType(%q, %q) = %q, want %q", tc.title, tc.description, got, tc.want)
		}
	}
}
