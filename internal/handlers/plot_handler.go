package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/services"
)

// PlotHandler handles plot management requests.
type PlotHandler struct {
	plotService services.PlotServicer
}

// NewPlotHandler creates a new PlotHandler.
func NewPlotHandler(plotService services.PlotServicer) *PlotHandler {
	return &PlotHandler{plotService: plotService}
}

// PlotRequest represents the payload for creating or updating a plot.
type PlotRequest struct {
	Name     string   `json:"name" binding:"required,min=1,max=150"`
	SoilType string   `json:"soil_type" binding:"max=100"`
	AreaHa   *float64 `json:"area_ha" binding:"omitempty,gt=0"`
}

// CreatePlot adds a plot to one of the owner's farms.
// @Summary     Create a plot
// @Tags        plots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Farm ID"
// @Param       request body PlotRequest true "Plot details"
// @Success     201 {object} models.Plot "Plot created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Farm not found"
// @Router      /farms/{id}/plots [post]
func (h *PlotHandler) CreatePlot(c *gin.Context) {
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

	var req PlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plot, err := h.plotService.CreatePlot(identity.UserID, farmID, req.Name, req.SoilType, req.AreaHa)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"plot": plot})
}

// ListFarmPlots returns the plots of one owned farm.
// @Summary     List farm plots
// @Tags        plots
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Farm ID"
// @Success     200 {object} []models.Plot "Plots"
// @Failure     404 {object} ErrorResponse "Farm not found"
// @Router      /farms/{id}/plots [get]
func (h *PlotHandler) ListFarmPlots(c *gin.Context) {
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

	plots, err := h.plotService.ListFarmPlots(identity.UserID, farmID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plots": plots})
}

// GetPlot returns one owned plot.
// @Summary     Get plot by ID
// @Tags        plots
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Plot ID"
// @Success     200 {object} models.Plot "Plot details"
// @Failure     404 {object} ErrorResponse "Plot not found"
// @Router      /plots/{id} [get]
func (h *PlotHandler) GetPlot(c *gin.Context) {
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

	plot, err := h.plotService.GetPlot(identity.UserID, plotID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plot": plot})
}

// UpdatePlot rewrites a plot's details.
// @Summary     Update plot
// @Tags        plots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Plot ID"
// @Param       request body PlotRequest true "Updated plot details"
// @Success     200 {object} models.Plot "Updated plot"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Plot not found"
// @Router      /plots/{id} [put]
func (h *PlotHandler) UpdatePlot(c *gin.Context) {
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

	var req PlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plot, err := h.plotService.UpdatePlot(identity.UserID, plotID, req.Name, req.SoilType, req.AreaHa)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plot": plot})
}

// DeletePlot removes a plot with no unfinished seasons.
// @Summary     Delete plot
// @Tags        plots
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Plot ID"
// @Success     200 {object} map[string]string "Acknowledgement"
// @Failure     404 {object} ErrorResponse "Plot not found"
// @Failure     409 {object} ErrorResponse "Plot has unfinished seasons"
// @Router      /plots/{id} [delete]
func (h *PlotHandler) DeletePlot(c *gin.Context) {
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

	if err := h.plotService.DeletePlot(identity.UserID, plotID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plot deleted"})
}
