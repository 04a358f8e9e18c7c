package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
)

// ownershipService resolves which farms, plots, and seasons a user may access
// by walking the season -> plot -> farm -> owner chain. Records of other
// owners are reported as not found rather than forbidden, so the existence of
// foreign resources is never revealed.
type ownershipService struct {
	db *gorm.DB
}

// NewOwnershipService creates a new OwnershipResolver.
func NewOwnershipService(db *gorm.DB) OwnershipResolver {
	return &ownershipService{db: db}
}

// ResolveOwnedFarm returns the farm only when it belongs to ownerID.
func (s *ownershipService) ResolveOwnedFarm(ownerID, farmID uint) (*models.Farm, error) {
	var farm models.Farm
	err := s.db.Where("id = ? AND owner_id = ?", farmID, ownerID).First(&farm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFarmNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &farm, nil
}

// ResolveOwnedPlot returns the plot only when its farm belongs to ownerID.
func (s *ownershipService) ResolveOwnedPlot(ownerID, plotID uint) (*models.Plot, error) {
	var plot models.Plot
	err := s.db.
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("plots.id = ? AND farms.owner_id = ?", plotID, ownerID).
		First(&plot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlotNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &plot, nil
}

// ResolveOwnedSeason returns the season, with its plot preloaded, only when
// the owning farm belongs to ownerID.
func (s *ownershipService) ResolveOwnedSeason(ownerID, seasonID uint) (*models.Season, error) {
	var season models.Season
	err := ownedSeasonQuery(s.db, ownerID).
		Preload("Plot").
		Where("seasons.id = ?", seasonID).
		First(&season).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSeasonNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &season, nil
}

// ListOwnedFarms returns every farm of the owner, id ascending.
func (s *ownershipService) ListOwnedFarms(ownerID uint) ([]models.Farm, error) {
	var farms []models.Farm
	if err := s.db.Where("owner_id = ?", ownerID).Order("id ASC").Find(&farms).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return farms, nil
}

// ListOwnedSeasons returns every season across the owner's farms.
func (s *ownershipService) ListOwnedSeasons(ownerID uint) ([]models.Season, error) {
	var seasons []models.Season
	err := ownedSeasonQuery(s.db, ownerID).Order("seasons.id ASC").Find(&seasons).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return seasons, nil
}

// ownedSeasonQuery scopes a season query to one owner via the plot and farm
// joins. Shared with the dashboard aggregator.
func ownedSeasonQuery(db *gorm.DB, ownerID uint) *gorm.DB {
	return db.Model(&models.Season{}).
		Joins("JOIN plots ON plots.id = seasons.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("farms.owner_id = ?", ownerID)
}
