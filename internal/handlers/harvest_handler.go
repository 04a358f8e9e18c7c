package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/services"
)

// HarvestHandler handles harvest record requests.
type HarvestHandler struct {
	harvestService services.HarvestServicer
}

// NewHarvestHandler creates a new HarvestHandler.
func NewHarvestHandler(harvestService services.HarvestServicer) *HarvestHandler {
	return &HarvestHandler{harvestService: harvestService}
}

// HarvestRequest represents the payload for recording a harvest batch.
type HarvestRequest struct {
	HarvestDate string  `json:"harvest_date"`
	QuantityKg  float64 `json:"quantity_kg" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

// RecordHarvest appends a harvest batch to an owned season.
// @Summary     Record a harvest batch
// @Tags        harvests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Season ID"
// @Param       request body HarvestRequest true "Harvest details"
// @Success     201 {object} models.Harvest "Harvest recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Failure     409 {object} ErrorResponse "Season is cancelled or archived"
// @Router      /seasons/{id}/harvests [post]
func (h *HarvestHandler) RecordHarvest(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	seasonID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req HarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	harvestDate, err := parseOptionalDate(&req.HarvestDate, "harvest_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var date time.Time
	if harvestDate != nil {
		date = *harvestDate
	}
	harvest, err := h.harvestService.RecordHarvest(identity.UserID, seasonID, date, req.QuantityKg, req.UnitPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"harvest": harvest})
}

// ListSeasonHarvests returns a season's harvest batches.
// @Summary     List season harvests
// @Tags        harvests
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Season ID"
// @Success     200 {object} []models.Harvest "Harvest batches"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Router      /seasons/{id}/harvests [get]
func (h *HarvestHandler) ListSeasonHarvests(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	seasonID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	harvests, err := h.harvestService.ListSeasonHarvests(identity.UserID, seasonID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"harvests": harvests})
}

// SeasonHarvestSummary returns aggregated totals for a season's harvests.
// @Summary     Season harvest summary
// @Tags        harvests
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Season ID"
// @Success     200 {object} services.HarvestSummary "Summary"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Router      /seasons/{id}/harvests/summary [get]
func (h *HarvestHandler) SeasonHarvestSummary(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	seasonID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.harvestService.SeasonHarvestSummary(identity.UserID, seasonID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DeleteHarvest removes a batch from a non-finished season.
// @Summary     Delete harvest batch
// @Tags        harvests
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Harvest ID"
// @Success     200 {object} map[string]string "Acknowledgement"
// @Failure     404 {object} ErrorResponse "Harvest not found"
// @Failure     409 {object} ErrorResponse "Season is cancelled or archived"
// @Router      /harvests/{id} [delete]
func (h *HarvestHandler) DeleteHarvest(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	harvestID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.harvestService.DeleteHarvest(identity.UserID, harvestID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Harvest deleted"})
}
