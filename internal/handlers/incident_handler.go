package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
	"farmbook/internal/services"
)

// IncidentHandler handles incident report requests.
type IncidentHandler struct {
	incidentService services.IncidentServicer
}

// NewIncidentHandler creates a new IncidentHandler.
func NewIncidentHandler(incidentService services.IncidentServicer) *IncidentHandler {
	return &IncidentHandler{incidentService: incidentService}
}

// IncidentRequest represents the payload for reporting an incident.
type IncidentRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Severity    string `json:"severity" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
}

// IncidentStatusRequest represents the payload for a status change.
type IncidentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReportIncident opens an incident on an owned season.
// @Summary     Report an incident
// @Tags        incidents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Season ID"
// @Param       request body IncidentRequest true "Incident details"
// @Success     201 {object} models.Incident "Incident reported"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Router      /seasons/{id}/incidents [post]
func (h *IncidentHandler) ReportIncident(c *gin.Context) {
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

	var req IncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	incident, err := h.incidentService.ReportIncident(identity.UserID, seasonID, req.Title, req.Description, req.Severity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"incident": incident})
}

// ListSeasonIncidents returns a season's incidents.
// @Summary     List season incidents
// @Tags        incidents
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Season ID"
// @Success     200 {object} []models.Incident "Incidents"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Router      /seasons/{id}/incidents [get]
func (h *IncidentHandler) ListSeasonIncidents(c *gin.Context) {
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

	incidents, err := h.incidentService.ListSeasonIncidents(identity.UserID, seasonID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"incidents": incidents})
}

// UpdateIncidentStatus moves an incident to a new status.
// @Summary     Update incident status
// @Tags        incidents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Incident ID"
// @Param       request body IncidentStatusRequest true "Target status"
// @Success     200 {object} models.Incident "Updated incident"
// @Failure     400 {object} ErrorResponse "Unknown status"
// @Failure     404 {object} ErrorResponse "Incident not found"
// @Router      /incidents/{id}/status [put]
func (h *IncidentHandler) UpdateIncidentStatus(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incidentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncidentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	incident, err := h.incidentService.UpdateIncidentStatus(identity.UserID, incidentID, models.IncidentStatus(req.Status))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"incident": incident})
}
