package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
)

// plotService handles plot management within owned farms.
type plotService struct {
	db        *gorm.DB
	ownership OwnershipResolver
}

// NewPlotService creates a new PlotServicer.
func NewPlotService(db *gorm.DB, ownership OwnershipResolver) PlotServicer {
	return &plotService{db: db, ownership: ownership}
}

// CreatePlot adds a plot to an owned farm.
func (s *plotService) CreatePlot(ownerID, farmID uint, name, soilType string, areaHa *float64) (*models.Plot, error) {
	farm, err := s.ownership.ResolveOwnedFarm(ownerID, farmID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Plot name is required")
	}
	if areaHa != nil && *areaHa <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Plot area must be positive")
	}

	plot := &models.Plot{
		FarmID:   farm.ID,
		Name:     strings.TrimSpace(name),
		SoilType: soilType,
		AreaHa:   areaHa,
	}
	if err := s.db.Create(plot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plot, nil
}

// GetPlot returns one owned plot.
func (s *plotService) GetPlot(ownerID, plotID uint) (*models.Plot, error) {
	return s.ownership.ResolveOwnedPlot(ownerID, plotID)
}

// ListFarmPlots returns the plots of one owned farm.
func (s *plotService) ListFarmPlots(ownerID, farmID uint) ([]models.Plot, error) {
	farm, err := s.ownership.ResolveOwnedFarm(ownerID, farmID)
	if err != nil {
		return nil, err
	}

	var plots []models.Plot
	if err := s.db.Where("farm_id = ?", farm.ID).Order("id ASC").Find(&plots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plots, nil
}

// UpdatePlot rewrites the plot's descriptive fields.
func (s *plotService) UpdatePlot(ownerID, plotID uint, name, soilType string, areaHa *float64) (*models.Plot, error) {
	plot, err := s.ownership.ResolveOwnedPlot(ownerID, plotID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Plot name is required")
	}
	if areaHa != nil && *areaHa <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Plot area must be positive")
	}

	plot.Name = strings.TrimSpace(name)
	plot.SoilType = soilType
	plot.AreaHa = areaHa
	if err := s.db.Save(plot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plot, nil
}

// DeletePlot removes a plot that has no unfinished seasons.
func (s *plotService) DeletePlot(ownerID, plotID uint) error {
	plot, err := s.ownership.ResolveOwnedPlot(ownerID, plotID)
	if err != nil {
		return err
	}

	var unfinished int64
	err = s.db.Model(&models.Season{}).
		Where("plot_id = ? AND status NOT IN ?", plot.ID, []models.SeasonStatus{
			models.SeasonStatusCompleted,
			models.SeasonStatusCancelled,
			models.SeasonStatusArchived,
		}).
		Count(&unfinished).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if unfinished > 0 {
		return apperrors.ErrPlotInUse
	}

	if err := s.db.Delete(plot).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
