package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
	"farmbook/internal/pagination"
)

// farmService handles farm management for one owner.
type farmService struct {
	db        *gorm.DB
	ownership OwnershipResolver
}

// NewFarmService creates a new FarmServicer.
func NewFarmService(db *gorm.DB, ownership OwnershipResolver) FarmServicer {
	return &farmService{db: db, ownership: ownership}
}

// CreateFarm registers a new active farm for the owner.
func (s *farmService) CreateFarm(ownerID uint, name, province, ward string, areaHa *float64) (*models.Farm, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Farm name is required")
	}
	if areaHa != nil && *areaHa <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Farm area must be positive")
	}

	farm := &models.Farm{
		OwnerID:  ownerID,
		Name:     strings.TrimSpace(name),
		Province: province,
		Ward:     ward,
		AreaHa:   areaHa,
		Active:   true,
	}
	if err := s.db.Create(farm).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return farm, nil
}

// GetFarm returns one owned farm.
func (s *farmService) GetFarm(ownerID, farmID uint) (*models.Farm, error) {
	return s.ownership.ResolveOwnedFarm(ownerID, farmID)
}

// ListFarms returns the owner's farms, paginated, newest first.
func (s *farmService) ListFarms(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Farm], error) {
	page.Defaults()

	base := s.db.Model(&models.Farm{}).Where("owner_id = ?", ownerID)
	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var farms []models.Farm
	if err := base.Order("id DESC").Scopes(pagination.Paginate(page)).Find(&farms).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(farms, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateFarm rewrites the farm's descriptive fields.
func (s *farmService) UpdateFarm(ownerID, farmID uint, name, province, ward string, areaHa *float64) (*models.Farm, error) {
	farm, err := s.ownership.ResolveOwnedFarm(ownerID, farmID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Farm name is required")
	}
	if areaHa != nil && *areaHa <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Farm area must be positive")
	}

	farm.Name = strings.TrimSpace(name)
	farm.Province = province
	farm.Ward = ward
	farm.AreaHa = areaHa
	if err := s.db.Save(farm).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return farm, nil
}

// DeactivateFarm marks the farm inactive. Inactive farms stop counting toward
// dashboard farm counts but keep their history.
func (s *farmService) DeactivateFarm(ownerID, farmID uint) error {
	farm, err := s.ownership.ResolveOwnedFarm(ownerID, farmID)
	if err != nil {
		return err
	}
	if err := s.db.Model(farm).Update("active", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
