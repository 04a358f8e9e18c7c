package services

import (
	"testing"

	"farmbook/internal/pagination"
	"farmbook/internal/testutil"
)

func TestCreateFarm(t *testing.T) {
	t.Run("creates_active_farm", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFarmService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)

		farm, err := svc.CreateFarm(user.ID, "  Mekong Farm  ", "Dong Thap", "Tan Binh", testutil.Float64(3.5))
		testutil.AssertNoError(t, err)
		if farm.Name != "Mekong Farm" {
			t.Errorf("expected trimmed name, got %q", farm.Name)
		}
		if !farm.Active {
			t.Error("expected new farm to be active")
		}
		if farm.OwnerID != user.ID {
			t.Errorf("expected owner %d, got %d", user.ID, farm.OwnerID)
		}
	})

	t.Run("rejects_blank_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFarmService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateFarm(user.ID, "   ", "", "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_nonpositive_area", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFarmService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateFarm(user.ID, "Mekong Farm", "", "", testutil.Float64(0))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListFarms(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFarmService(db, NewOwnershipService(db))
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	first := testutil.CreateTestFarm(t, db, owner.ID)
	second := testutil.CreateTestFarm(t, db, owner.ID)
	testutil.CreateTestFarm(t, db, other.ID)

	result, err := svc.ListFarms(owner.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 2 {
		t.Fatalf("expected 2 farms, got %d", result.TotalItems)
	}
	if result.Data[0].ID != second.ID || result.Data[1].ID != first.ID {
		t.Errorf("expected newest first, got %+v", result.Data)
	}
}

func TestDeactivateFarm(t *testing.T) {
	t.Run("marks_inactive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFarmService(db, NewOwnershipService(db))
		user := testutil.CreateTestUser(t, db)
		farm := testutil.CreateTestFarm(t, db, user.ID)

		err := svc.DeactivateFarm(user.ID, farm.ID)
		testutil.AssertNoError(t, err)

		got, err := svc.GetFarm(user.ID, farm.ID)
		testutil.AssertNoError(t, err)
		if got.Active {
			t.Error("expected farm to be inactive")
		}
	})

	t.Run("foreign_farm_masked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFarmService(db, NewOwnershipService(db))
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestFarm(t, db, other.ID)

		err := svc.DeactivateFarm(owner.ID, foreign.ID)
		testutil.AssertAppError(t, err, "FARM_NOT_FOUND")
	})
}
