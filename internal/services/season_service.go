package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
)

// seasonService handles growing-season management within owned plots.
type seasonService struct {
	db        *gorm.DB
	ownership OwnershipResolver
}

// NewSeasonService creates a new SeasonServicer.
func NewSeasonService(db *gorm.DB, ownership OwnershipResolver) SeasonServicer {
	return &seasonService{db: db, ownership: ownership}
}

// CreateSeason starts a new ACTIVE season on an owned plot.
func (s *seasonService) CreateSeason(ownerID, plotID uint, input SeasonInput) (*models.Season, error) {
	plot, err := s.ownership.ResolveOwnedPlot(ownerID, plotID)
	if err != nil {
		return nil, err
	}
	if err := validateSeasonInput(input); err != nil {
		return nil, err
	}
	if input.CropID != nil {
		if err := s.requireCrop(*input.CropID); err != nil {
			return nil, err
		}
	}

	season := &models.Season{
		PlotID:             plot.ID,
		CropID:             input.CropID,
		Name:               strings.TrimSpace(input.Name),
		Status:             models.SeasonStatusActive,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		PlannedHarvestDate: input.PlannedHarvestDate,
		ExpectedYieldKg:    input.ExpectedYieldKg,
		ActualYieldKg:      input.ActualYieldKg,
	}
	if err := s.db.Create(season).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return season, nil
}

// GetSeason returns one owned season.
func (s *seasonService) GetSeason(ownerID, seasonID uint) (*models.Season, error) {
	return s.ownership.ResolveOwnedSeason(ownerID, seasonID)
}

// ListSeasons returns the owner's seasons, optionally narrowed to one plot or
// one status, newest start date first.
func (s *seasonService) ListSeasons(ownerID uint, plotID *uint, status *models.SeasonStatus) ([]models.Season, error) {
	query := ownedSeasonQuery(s.db, ownerID)
	if plotID != nil {
		query = query.Where("seasons.plot_id = ?", *plotID)
	}
	if status != nil {
		query = query.Where("seasons.status = ?", *status)
	}

	var seasons []models.Season
	if err := query.Order("seasons.start_date DESC, seasons.id DESC").Find(&seasons).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return seasons, nil
}

// UpdateSeason rewrites the mutable fields of a non-terminal season.
func (s *seasonService) UpdateSeason(ownerID, seasonID uint, input SeasonInput) (*models.Season, error) {
	season, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID)
	if err != nil {
		return nil, err
	}
	if season.Status.Terminal() {
		return nil, apperrors.ErrSeasonLocked
	}
	if err := validateSeasonInput(input); err != nil {
		return nil, err
	}
	if input.CropID != nil {
		if err := s.requireCrop(*input.CropID); err != nil {
			return nil, err
		}
	}

	season.Name = strings.TrimSpace(input.Name)
	season.CropID = input.CropID
	season.StartDate = input.StartDate
	season.EndDate = input.EndDate
	season.PlannedHarvestDate = input.PlannedHarvestDate
	season.ExpectedYieldKg = input.ExpectedYieldKg
	season.ActualYieldKg = input.ActualYieldKg
	if err := s.db.Save(season).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return season, nil
}

// TransitionSeason moves a season to a new status. Terminal seasons only
// accept COMPLETED -> ARCHIVED.
func (s *seasonService) TransitionSeason(ownerID, seasonID uint, status models.SeasonStatus) (*models.Season, error) {
	season, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID)
	if err != nil {
		return nil, err
	}
	if !validSeasonStatus(status) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown season status")
	}
	if season.Status.Terminal() {
		if !(season.Status == models.SeasonStatusCompleted && status == models.SeasonStatusArchived) {
			return nil, apperrors.ErrSeasonLocked
		}
	}

	season.Status = status
	if err := s.db.Save(season).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return season, nil
}

// ListCrops returns the crop catalog in name order. Crops are shared
// reference data, so the list is not owner-scoped.
func (s *seasonService) ListCrops() ([]models.Crop, error) {
	var crops []models.Crop
	if err := s.db.Order("name ASC").Find(&crops).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return crops, nil
}

func (s *seasonService) requireCrop(cropID uint) error {
	var crop models.Crop
	if err := s.db.First(&crop, cropID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown crop")
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateSeasonInput checks name presence and date coherence: the start date
// must not fall after the end date or the planned harvest date.
func validateSeasonInput(input SeasonInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Season name is required")
	}
	if input.StartDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Season start date is required")
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return apperrors.ErrInvalidSeasonDates
	}
	if input.PlannedHarvestDate != nil && input.PlannedHarvestDate.Before(input.StartDate) {
		return apperrors.ErrInvalidSeasonDates
	}
	if input.ExpectedYieldKg != nil && *input.ExpectedYieldKg < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Expected yield cannot be negative")
	}
	if input.ActualYieldKg != nil && *input.ActualYieldKg < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Actual yield cannot be negative")
	}
	return nil
}

func validSeasonStatus(status models.SeasonStatus) bool {
	for _, known := range models.AllSeasonStatuses() {
		if status == known {
			return true
		}
	}
	return false
}
