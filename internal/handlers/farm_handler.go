package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/pagination"
	"farmbook/internal/services"
)

// FarmHandler handles farm management requests.
type FarmHandler struct {
	farmService services.FarmServicer
}

// NewFarmHandler creates a new FarmHandler.
func NewFarmHandler(farmService services.FarmServicer) *FarmHandler {
	return &FarmHandler{farmService: farmService}
}

// FarmRequest represents the payload for creating or updating a farm.
type FarmRequest struct {
	Name     string   `json:"name" binding:"required,min=1,max=150"`
	Province string   `json:"province" binding:"max=100"`
	Ward     string   `json:"ward" binding:"max=100"`
	AreaHa   *float64 `json:"area_ha" binding:"omitempty,gt=0"`
}

// CreateFarm registers a farm for the authenticated owner.
// @Summary     Create a farm
// @Tags        farms
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FarmRequest true "Farm details"
// @Success     201 {object} models.Farm "Farm created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /farms [post]
func (h *FarmHandler) CreateFarm(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	farm, err := h.farmService.CreateFarm(identity.UserID, req.Name, req.Province, req.Ward, req.AreaHa)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"farm": farm})
}

// ListFarms returns the authenticated owner's farms.
// @Summary     List farms
// @Tags        farms
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Farm] "Paginated farms"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /farms [get]
func (h *FarmHandler) ListFarms(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.farmService.ListFarms(identity.UserID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFarm returns one of the owner's farms.
// @Summary     Get farm by ID
// @Tags        farms
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Farm ID"
// @Success     200 {object} models.Farm "Farm details"
// @Failure     404 {object} ErrorResponse "Farm not found"
// @Router      /farms/{id} [get]
func (h *FarmHandler) GetFarm(c *gin.Context) {
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

	farm, err := h.farmService.GetFarm(identity.UserID, farmID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"farm": farm})
}

// UpdateFarm rewrites a farm's details.
// @Summary     Update farm
// @Tags        farms
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Farm ID"
// @Param       request body FarmRequest true "Updated farm details"
// @Success     200 {object} models.Farm "Updated farm"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Farm not found"
// @Router      /farms/{id} [put]
func (h *FarmHandler) UpdateFarm(c *gin.Context) {
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

	var req FarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	farm, err := h.farmService.UpdateFarm(identity.UserID, farmID, req.Name, req.Province, req.Ward, req.AreaHa)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"farm": farm})
}

// DeactivateFarm marks a farm inactive. Its history stays readable.
// @Summary     Deactivate farm
// @Tags        farms
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Farm ID"
// @Success     200 {object} map[string]string "Acknowledgement"
// @Failure     404 {object} ErrorResponse "Farm not found"
// @Router      /farms/{id} [delete]
func (h *FarmHandler) DeactivateFarm(c *gin.Context) {
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

	if err := h.farmService.DeactivateFarm(identity.UserID, farmID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Farm deactivated"})
}
