package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/services"
)

// InventoryHandler handles warehouse and supply stock requests.
type InventoryHandler struct {
	inventoryService services.InventoryServicer
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService services.InventoryServicer) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// WarehouseRequest represents the payload for creating a warehouse.
type WarehouseRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=150"`
	Location string `json:"location" binding:"max=200"`
}

// SupplyItemRequest represents the payload for registering a supply item.
type SupplyItemRequest struct {
	Name string `json:"name" binding:"required,min=1,max=150"`
	Unit string `json:"unit" binding:"max=30"`
}

// SupplyLotRequest represents the payload for registering a supply lot.
type SupplyLotRequest struct {
	SupplyItemID uint    `json:"supply_item_id" binding:"required"`
	BatchCode    string  `json:"batch_code" binding:"max=100"`
	ExpiryDate   *string `json:"expiry_date"`
}

// StockMovementRequest represents the payload for booking a stock movement.
type StockMovementRequest struct {
	SupplyLotID   uint    `json:"supply_lot_id" binding:"required"`
	QuantityDelta float64 `json:"quantity_delta" binding:"required"`
	Note          string  `json:"note" binding:"max=500"`
}

// CreateWarehouse adds a warehouse to an owned farm.
// @Summary     Create a warehouse
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Farm ID"
// @Param       request body WarehouseRequest true "Warehouse details"
// @Success     201 {object} models.Warehouse "Warehouse created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Farm not found"
// @Router      /farms/{id}/warehouses [post]
func (h *InventoryHandler) CreateWarehouse(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	farmID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	house, err := h.inventoryService.CreateWarehouse(identity.UserID, farmID, req.Name, req.Location)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"warehouse": house})
}

// ListFarmWarehouses returns an owned farm's warehouses.
// @Summary     List farm warehouses
// @Tags        inventory
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Farm ID"
// @Success     200 {object} []models.Warehouse "Warehouses"
// @Failure     404 {object} ErrorResponse "Farm not found"
// @Router      /farms/{id}/warehouses [get]
func (h *InventoryHandler) ListFarmWarehouses(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	farmID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	houses, err := h.inventoryService.ListFarmWarehouses(identity.UserID, farmID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"warehouses": houses})
}

// CreateSupplyItem registers a supply catalog entry.
// @Summary     Create a supply item
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SupplyItemRequest true "Supply item details"
// @Success     201 {object} models.SupplyItem "Supply item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /supplies/items [post]
func (h *InventoryHandler) CreateSupplyItem(c *gin.Context) {
	var req SupplyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.inventoryService.CreateSupplyItem(req.Name, req.Unit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"supply_item": item})
}

// CreateSupplyLot registers a batch of a supply item.
// @Summary     Create a supply lot
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SupplyLotRequest true "Supply lot details"
// @Success     201 {object} models.SupplyLot "Supply lot created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Supply item not found"
// @Router      /supplies/lots [post]
func (h *InventoryHandler) CreateSupplyLot(c *gin.Context) {
	var req SupplyLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expiryDate, err := parseOptionalDate(req.ExpiryDate, "expiry_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	lot, err := h.inventoryService.CreateSupplyLot(req.SupplyItemID, req.BatchCode, expiryDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"supply_lot": lot})
}

// RecordMovement books a stock delta in an owned warehouse.
// @Summary     Record stock movement
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Warehouse ID"
// @Param       request body StockMovementRequest true "Movement details"
// @Success     201 {object} models.StockMovement "Movement booked"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Warehouse or lot not found"
// @Router      /warehouses/{id}/movements [post]
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	warehouseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	movement, err := h.inventoryService.RecordMovement(identity.UserID, warehouseID, req.SupplyLotID, req.QuantityDelta, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"movement": movement})
}

// OnHand returns the current stock of a lot in an owned warehouse.
// @Summary     On-hand stock
// @Tags        inventory
// @Produce     json
// @Security    BearerAuth
// @Param       id     path  int true "Warehouse ID"
// @Param       lot_id path  int true "Supply lot ID"
// @Success     200 {object} map[string]float64 "On-hand quantity"
// @Failure     404 {object} ErrorResponse "Warehouse not found"
// @Router      /warehouses/{id}/lots/{lot_id}/on-hand [get]
func (h *InventoryHandler) OnHand(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	warehouseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	lotID, err := parsePathID(c, "lot_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	quantity, err := h.inventoryService.OnHand(identity.UserID, warehouseID, lotID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"on_hand": quantity})
}
