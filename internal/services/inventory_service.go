package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
)

// inventoryService manages warehouses, supply lots, and stock movements.
type inventoryService struct {
	db        *gorm.DB
	ownership OwnershipResolver
}

// NewInventoryService creates a new InventoryServicer.
func NewInventoryService(db *gorm.DB, ownership OwnershipResolver) InventoryServicer {
	return &inventoryService{db: db, ownership: ownership}
}

// CreateWarehouse adds a storage location to an owned farm.
func (s *inventoryService) CreateWarehouse(ownerID, farmID uint, name, location string) (*models.Warehouse, error) {
	farm, err := s.ownership.ResolveOwnedFarm(ownerID, farmID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Warehouse name is required")
	}

	house := &models.Warehouse{
		FarmID:   farm.ID,
		Name:     name,
		Location: strings.TrimSpace(location),
	}
	if err := s.db.Create(house).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return house, nil
}

// ListFarmWarehouses returns an owned farm's warehouses in creation order.
func (s *inventoryService) ListFarmWarehouses(ownerID, farmID uint) ([]models.Warehouse, error) {
	if _, err := s.ownership.ResolveOwnedFarm(ownerID, farmID); err != nil {
		return nil, err
	}

	var houses []models.Warehouse
	if err := s.db.Where("farm_id = ?", farmID).Order("id ASC").Find(&houses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return houses, nil
}

// CreateSupplyItem registers a supply catalog entry. Items are shared across
// owners, they carry no stock by themselves.
func (s *inventoryService) CreateSupplyItem(name, unit string) (*models.SupplyItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Supply item name is required")
	}

	item := &models.SupplyItem{
		Name: name,
		Unit: strings.TrimSpace(unit),
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// CreateSupplyLot registers a batch of a supply item.
func (s *inventoryService) CreateSupplyLot(itemID uint, batchCode string, expiryDate *time.Time) (*models.SupplyLot, error) {
	var item models.SupplyItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSupplyItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	lot := &models.SupplyLot{
		SupplyItemID: item.ID,
		BatchCode:    strings.TrimSpace(batchCode),
		ExpiryDate:   expiryDate,
	}
	if err := s.db.Create(lot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lot, nil
}

// RecordMovement books a stock delta of a lot in an owned warehouse.
// Positive deltas receive stock, negative deltas issue it.
func (s *inventoryService) RecordMovement(ownerID, warehouseID, lotID uint, delta float64, note string) (*models.StockMovement, error) {
	house, err := s.findOwnedWarehouse(ownerID, warehouseID)
	if err != nil {
		return nil, err
	}
	if delta == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Stock movement quantity cannot be zero")
	}

	var lot models.SupplyLot
	if err := s.db.First(&lot, lotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSupplyLotNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	movement := &models.StockMovement{
		WarehouseID:   house.ID,
		SupplyLotID:   lot.ID,
		QuantityDelta: delta,
		MovedAt:       time.Now(),
		Note:          strings.TrimSpace(note),
	}
	if err := s.db.Create(movement).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return movement, nil
}

// OnHand sums the movement deltas of one lot in an owned warehouse.
func (s *inventoryService) OnHand(ownerID, warehouseID, lotID uint) (float64, error) {
	if _, err := s.findOwnedWarehouse(ownerID, warehouseID); err != nil {
		return 0, err
	}

	var quantity float64
	err := s.db.Model(&models.StockMovement{}).
		Select("COALESCE(SUM(quantity_delta), 0)").
		Where("warehouse_id = ? AND supply_lot_id = ?", warehouseID, lotID).
		Scan(&quantity).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return quantity, nil
}

func (s *inventoryService) findOwnedWarehouse(ownerID, warehouseID uint) (*models.Warehouse, error) {
	var house models.Warehouse
	err := s.db.Model(&models.Warehouse{}).
		Joins("JOIN farms ON farms.id = warehouses.farm_id AND farms.deleted_at IS NULL").
		Where("warehouses.id = ? AND farms.owner_id = ?", warehouseID, ownerID).
		First(&house).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWarehouseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &house, nil
}
