package services

import (
	"testing"
	"time"

	"farmbook/internal/models"
	"farmbook/internal/pagination"
	"farmbook/internal/testutil"
)

func TestCreateExpense(t *testing.T) {
	t.Run("derives_total_cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)

		expense, err := svc.CreateExpense(user.ID, season.ID, "  Urea 46  ", 12.5, 4, time.Now())
		testutil.AssertNoError(t, err)
		if expense.ItemName != "Urea 46" {
			t.Errorf("expected trimmed item name, got %q", expense.ItemName)
		}
		if expense.TotalCost != 50 {
			t.Errorf("expected total cost 50, got %f", expense.TotalCost)
		}
		if expense.UserID != user.ID || expense.SeasonID != season.ID {
			t.Errorf("unexpected ownership fields: %+v", expense)
		}
	})

	t.Run("rejects_terminal_season", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)

		for _, status := range []models.SeasonStatus{
			models.SeasonStatusCompleted,
			models.SeasonStatusCancelled,
			models.SeasonStatusArchived,
		} {
			season := testutil.CreateTestSeason(t, db, plot.ID, status)
			_, err := svc.CreateExpense(user.ID, season.ID, "Seeds", 10, 1, time.Now())
			testutil.AssertAppError(t, err, "EXPENSE_PERIOD_LOCKED")
		}
	})

	t.Run("rejects_nonpositive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)

		_, err := svc.CreateExpense(user.ID, season.ID, "Seeds", 0, 5, time.Now())
		testutil.AssertAppError(t, err, "EXPENSE_AMOUNT_INVALID")

		_, err = svc.CreateExpense(user.ID, season.ID, "Seeds", -1, 5, time.Now())
		testutil.AssertAppError(t, err, "EXPENSE_AMOUNT_INVALID")
	})

	t.Run("rejects_blank_item_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)

		_, err := svc.CreateExpense(user.ID, season.ID, "   ", 10, 1, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_date_before_season_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)

		_, err := svc.CreateExpense(user.ID, season.ID, "Seeds", 10, 1, season.StartDate.AddDate(0, 0, -5))
		testutil.AssertAppError(t, err, "INVALID_SEASON_DATES")
	})

	t.Run("upper_bound_falls_back_to_planned_harvest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		planned := season.StartDate.AddDate(0, 0, 10)
		db.Model(season).Update("planned_harvest_date", planned)

		_, err := svc.CreateExpense(user.ID, season.ID, "Seeds", 10, 1, planned)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateExpense(user.ID, season.ID, "Seeds", 10, 1, planned.AddDate(0, 0, 2))
		testutil.AssertAppError(t, err, "INVALID_SEASON_DATES")
	})

	t.Run("foreign_season_masked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		otherFarm := testutil.CreateTestFarm(t, db, other.ID)
		otherPlot := testutil.CreateTestPlot(t, db, otherFarm.ID, nil)
		foreign := testutil.CreateTestSeason(t, db, otherPlot.ID, models.SeasonStatusActive)

		_, err := svc.CreateExpense(owner.ID, foreign.ID, "Seeds", 10, 1, time.Now())
		testutil.AssertAppError(t, err, "SEASON_NOT_FOUND")
	})
}

func TestListSeasonExpenses(t *testing.T) {
	t.Run("newest_first_and_paginated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)

		old := testutil.CreateTestExpense(t, db, user.ID, season.ID, 10)
		db.Model(old).Update("expense_date", time.Now().AddDate(0, 0, -10))
		recent := testutil.CreateTestExpense(t, db, user.ID, season.ID, 20)

		result, err := svc.ListSeasonExpenses(user.ID, season.ID, pagination.PageRequest{Page: 1, PageSize: 1}, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 || result.TotalPages != 2 {
			t.Errorf("expected 2 items over 2 pages, got %d/%d", result.TotalItems, result.TotalPages)
		}
		if len(result.Data) != 1 || result.Data[0].ID != recent.ID {
			t.Errorf("expected newest expense first, got %+v", result.Data)
		}
	})

	t.Run("filters_by_amount_and_query", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)

		small := testutil.CreateTestExpense(t, db, user.ID, season.ID, 50)
		db.Model(small).Update("item_name", "Drip tape")
		big := testutil.CreateTestExpense(t, db, user.ID, season.ID, 500)
		db.Model(big).Update("item_name", "Tractor rental")

		result, err := svc.ListSeasonExpenses(user.ID, season.ID, pagination.PageRequest{}, ExpenseFilter{
			MinAmount: testutil.Float64(100),
		})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 1 || result.Data[0].ID != big.ID {
			t.Errorf("expected only the big expense, got %+v", result.Data)
		}

		result, err = svc.ListSeasonExpenses(user.ID, season.ID, pagination.PageRequest{}, ExpenseFilter{
			Query: "drip",
		})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 1 || result.Data[0].ID != small.ID {
			t.Errorf("expected case-insensitive name match, got %+v", result.Data)
		}
	})

	t.Run("filters_by_date_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)

		inRange := testutil.CreateTestExpense(t, db, user.ID, season.ID, 10)
		db.Model(inRange).Update("expense_date", time.Now().AddDate(0, 0, -5))
		outOfRange := testutil.CreateTestExpense(t, db, user.ID, season.ID, 10)
		db.Model(outOfRange).Update("expense_date", time.Now().AddDate(0, 0, -20))

		from := time.Now().AddDate(0, 0, -7)
		to := time.Now()
		result, err := svc.ListSeasonExpenses(user.ID, season.ID, pagination.PageRequest{}, ExpenseFilter{
			From: &from,
			To:   &to,
		})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 1 || result.Data[0].ID != inRange.ID {
			t.Errorf("expected only the in-range expense, got %+v", result.Data)
		}
	})
}

func TestUpdateExpense(t *testing.T) {
	t.Run("rederives_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		expense := testutil.CreateTestExpense(t, db, user.ID, season.ID, 100)

		updated, err := svc.UpdateExpense(user.ID, expense.ID, "Compost", 30, 3, time.Now())
		testutil.AssertNoError(t, err)
		if updated.TotalCost != 90 {
			t.Errorf("expected total 90, got %f", updated.TotalCost)
		}
		if updated.ItemName != "Compost" {
			t.Errorf("expected item name rewritten, got %q", updated.ItemName)
		}
	})

	t.Run("locked_once_season_terminal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		expense := testutil.CreateTestExpense(t, db, user.ID, season.ID, 100)
		db.Model(season).Update("status", models.SeasonStatusCompleted)

		_, err := svc.UpdateExpense(user.ID, expense.ID, "Compost", 30, 3, time.Now())
		testutil.AssertAppError(t, err, "EXPENSE_PERIOD_LOCKED")
	})

	t.Run("foreign_expense_masked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		otherFarm := testutil.CreateTestFarm(t, db, other.ID)
		otherPlot := testutil.CreateTestPlot(t, db, otherFarm.ID, nil)
		foreignSeason := testutil.CreateTestSeason(t, db, otherPlot.ID, models.SeasonStatusActive)
		foreign := testutil.CreateTestExpense(t, db, other.ID, foreignSeason.ID, 100)

		_, err := svc.UpdateExpense(owner.ID, foreign.ID, "Compost", 30, 3, time.Now())
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestDeleteExpense(t *testing.T) {
	t.Run("removes_open_season_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		expense := testutil.CreateTestExpense(t, db, user.ID, season.ID, 100)

		err := svc.DeleteExpense(user.ID, expense.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetExpense(user.ID, expense.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})

	t.Run("locked_once_season_terminal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)
		plot := testutil.CreateTestPlot(t, db, farm.ID, nil)
		season := testutil.CreateTestSeason(t, db, plot.ID, models.SeasonStatusActive)
		expense := testutil.CreateTestExpense(t, db, user.ID, season.ID, 100)
		db.Model(season).Update("status", models.SeasonStatusArchived)

		err := svc.DeleteExpense(user.ID, expense.ID)
		testutil.AssertAppError(t, err, "EXPENSE_PERIOD_LOCKED")
	})
}
