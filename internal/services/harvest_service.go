package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
)

// harvestService records and summarizes harvest batches per season.
type harvestService struct {
	db        *gorm.DB
	ownership OwnershipResolver
}

// NewHarvestService creates a new HarvestServicer.
func NewHarvestService(db *gorm.DB, ownership OwnershipResolver) HarvestServicer {
	return &harvestService{db: db, ownership: ownership}
}

// RecordHarvest appends a harvest batch to an owned season. Cancelled and
// archived seasons refuse new batches.
func (s *harvestService) RecordHarvest(ownerID, seasonID uint, harvestDate time.Time, quantityKg, unitPrice float64) (*models.Harvest, error) {
	season, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID)
	if err != nil {
		return nil, err
	}
	if season.Status == models.SeasonStatusCancelled || season.Status == models.SeasonStatusArchived {
		return nil, apperrors.ErrSeasonLocked
	}
	if quantityKg <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Harvest quantity must be positive")
	}
	if unitPrice < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unit price cannot be negative")
	}
	if harvestDate.IsZero() {
		harvestDate = time.Now()
	}

	harvest := &models.Harvest{
		SeasonID:    season.ID,
		HarvestDate: harvestDate,
		QuantityKg:  quantityKg,
		UnitPrice:   unitPrice,
	}
	if err := s.db.Create(harvest).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return harvest, nil
}

// ListSeasonHarvests returns an owned season's batches, newest first.
func (s *harvestService) ListSeasonHarvests(ownerID, seasonID uint) ([]models.Harvest, error) {
	if _, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID); err != nil {
		return nil, err
	}

	var harvests []models.Harvest
	err := s.db.Where("season_id = ?", seasonID).
		Order("harvest_date DESC, id DESC").
		Find(&harvests).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return harvests, nil
}

// SeasonHarvestSummary aggregates batch totals and, when the season carries an
// expected yield, the percent deviation from plan.
func (s *harvestService) SeasonHarvestSummary(ownerID, seasonID uint) (*HarvestSummary, error) {
	season, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID)
	if err != nil {
		return nil, err
	}

	var row struct {
		Batches    int64
		TotalKg    float64
		TotalValue float64
	}
	err = s.db.Model(&models.Harvest{}).
		Select("COUNT(*) AS batches, COALESCE(SUM(quantity_kg), 0) AS total_kg, COALESCE(SUM(quantity_kg * unit_price), 0) AS total_value").
		Where("season_id = ?", seasonID).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &HarvestSummary{
		SeasonID:        season.ID,
		Batches:         row.Batches,
		TotalQuantityKg: row.TotalKg,
		TotalRevenue:    row.TotalValue,
	}
	if season.ExpectedYieldKg != nil && *season.ExpectedYieldKg > 0 {
		summary.YieldVsPlanPercent = f64(round1((row.TotalKg - *season.ExpectedYieldKg) * 100 / *season.ExpectedYieldKg))
	}
	return summary, nil
}

// findSeasonHarvest loads one batch on an owned season.
func (s *harvestService) findSeasonHarvest(ownerID, harvestID uint) (*models.Harvest, error) {
	var harvest models.Harvest
	err := s.db.Model(&models.Harvest{}).
		Joins("JOIN seasons ON seasons.id = harvests.season_id AND seasons.deleted_at IS NULL").
		Joins("JOIN plots ON plots.id = seasons.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("harvests.id = ? AND farms.owner_id = ?", harvestID, ownerID).
		First(&harvest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHarvestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &harvest, nil
}

// DeleteHarvest removes a batch from a non-terminal season.
func (s *harvestService) DeleteHarvest(ownerID, harvestID uint) error {
	harvest, err := s.findSeasonHarvest(ownerID, harvestID)
	if err != nil {
		return err
	}
	season, err := s.ownership.ResolveOwnedSeason(ownerID, harvest.SeasonID)
	if err != nil {
		return err
	}
	if season.Status == models.SeasonStatusCancelled || season.Status == models.SeasonStatusArchived {
		return apperrors.ErrSeasonLocked
	}
	if err := s.db.Delete(harvest).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
