package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
	"farmbook/internal/services"
)

// SeasonHandler handles season management requests.
type SeasonHandler struct {
	seasonService services.SeasonServicer
}

// NewSeasonHandler creates a new SeasonHandler.
func NewSeasonHandler(seasonService services.SeasonServicer) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService}
}

// SeasonRequest represents the payload for creating or updating a season.
type SeasonRequest struct {
	Name               string   `json:"name" binding:"required,min=1,max=150"`
	CropID             *uint    `json:"crop_id"`
	StartDate          string   `json:"start_date" binding:"required"`
	EndDate            *string  `json:"end_date"`
	PlannedHarvestDate *string  `json:"planned_harvest_date"`
	ExpectedYieldKg    *float64 `json:"expected_yield_kg" binding:"omitempty,gte=0"`
	ActualYieldKg      *float64 `json:"actual_yield_kg" binding:"omitempty,gte=0"`
}

// SeasonTransitionRequest represents the payload for a status transition.
type SeasonTransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r SeasonRequest) toInput() (services.SeasonInput, error) {
	startDate, err := parseDate(r.StartDate, "start_date")
	if err != nil {
		return services.SeasonInput{}, err
	}
	endDate, err := parseOptionalDate(r.EndDate, "end_date")
	if err != nil {
		return services.SeasonInput{}, err
	}
	plannedHarvest, err := parseOptionalDate(r.PlannedHarvestDate, "planned_harvest_date")
	if err != nil {
		return services.SeasonInput{}, err
	}

	return services.SeasonInput{
		Name:               r.Name,
		CropID:             r.CropID,
		StartDate:          startDate,
		EndDate:            endDate,
		PlannedHarvestDate: plannedHarvest,
		ExpectedYieldKg:    r.ExpectedYieldKg,
		ActualYieldKg:      r.ActualYieldKg,
	}, nil
}

// CreateSeason starts a season on one of the owner's plots.
// @Summary     Create a season
// @Tags        seasons
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Plot ID"
// @Param       request body SeasonRequest true "Season details"
// @Success     201 {object} models.Season "Season created"
// @Failure     400 {object} ErrorResponse "Invalid input or dates"
// @Failure     404 {object} ErrorResponse "Plot not found"
// @Router      /plots/{id}/seasons [post]
func (h *SeasonHandler) CreateSeason(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	plotID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	season, err := h.seasonService.CreateSeason(identity.UserID, plotID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"season": season})
}

// ListSeasons returns the owner's seasons with optional filters.
// @Summary     List seasons
// @Tags        seasons
// @Produce     json
// @Security    BearerAuth
// @Param       plot_id query int    false "Filter by plot"
// @Param       status  query string false "Filter by status"
// @Success     200 {object} []models.Season "Seasons"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /seasons [get]
func (h *SeasonHandler) ListSeasons(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var plotID *uint
	if raw := c.Query("plot_id"); raw != "" {
		parsed, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid plot_id"))
			return
		}
		id := uint(parsed)
		plotID = &id
	}

	var status *models.SeasonStatus
	if raw := c.Query("status"); raw != "" {
		parsed := models.SeasonStatus(raw)
		status = &parsed
	}

	seasons, err := h.seasonService.ListSeasons(identity.UserID, plotID, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}

// ListCrops returns the reference crop catalog used to tag seasons.
// @Summary     List crops
// @Tags        seasons
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} []models.Crop "Crop catalog"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /crops [get]
func (h *SeasonHandler) ListCrops(c *gin.Context) {
	crops, err := h.seasonService.ListCrops()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"crops": crops})
}

// GetSeason returns one owned season.
// @Summary     Get season by ID
// @Tags        seasons
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Season ID"
// @Success     200 {object} models.Season "Season details"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Router      /seasons/{id} [get]
func (h *SeasonHandler) GetSeason(c *gin.Context) {
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

	season, err := h.seasonService.GetSeason(identity.UserID, seasonID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"season": season})
}

// UpdateSeason rewrites a season's mutable fields.
// @Summary     Update season
// @Tags        seasons
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Season ID"
// @Param       request body SeasonRequest true "Updated season details"
// @Success     200 {object} models.Season "Updated season"
// @Failure     400 {object} ErrorResponse "Invalid input or dates"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Failure     409 {object} ErrorResponse "Season is finished"
// @Router      /seasons/{id} [put]
func (h *SeasonHandler) UpdateSeason(c *gin.Context) {
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

	var req SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	season, err := h.seasonService.UpdateSeason(identity.UserID, seasonID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"season": season})
}

// TransitionSeason moves a season to a new status.
// @Summary     Transition season status
// @Tags        seasons
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Season ID"
// @Param       request body SeasonTransitionRequest true "Target status"
// @Success     200 {object} models.Season "Updated season"
// @Failure     400 {object} ErrorResponse "Unknown status"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Failure     409 {object} ErrorResponse "Season is finished"
// @Router      /seasons/{id}/status [put]
func (h *SeasonHandler) TransitionSeason(c *gin.Context) {
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

	var req SeasonTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	season, err := h.seasonService.TransitionSeason(identity.UserID, seasonID, models.SeasonStatus(req.Status))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"season": season})
}
