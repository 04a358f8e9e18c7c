package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/pagination"
	"farmbook/internal/services"
)

const (
	defaultUpcomingDays  = 7
	defaultLowStockLimit = 100
)

// DashboardHandler handles dashboard aggregation requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns the aggregated dashboard for the authenticated owner.
// @Summary     Dashboard overview
// @Description Aggregated counts, KPIs, expense and harvest totals, and alerts for one season context
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       season_id query int false "Explicit season context"
// @Success     200 {object} services.DashboardOverview "Overview"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Router      /dashboard/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	seasonID, err := optionalQueryID(c, "season_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.dashboardService.Overview(identity.UserID, seasonID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// TodayTasks returns the tasks due today.
// @Summary     Today's tasks
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       season_id query int false "Restrict to one season"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.DashboardTask] "Tasks due today"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /dashboard/tasks/today [get]
func (h *DashboardHandler) TodayTasks(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	seasonID, err := optionalQueryID(c, "season_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.dashboardService.TodayTasks(identity.UserID, seasonID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpcomingTasks returns open tasks due within the coming days.
// @Summary     Upcoming tasks
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       days      query int false "Window in days (default 7)"
// @Param       season_id query int false "Restrict to one season"
// @Success     200 {object} []services.DashboardTask "Upcoming open tasks"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /dashboard/tasks/upcoming [get]
func (h *DashboardHandler) UpcomingTasks(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days := defaultUpcomingDays
	if raw := c.Query("days"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 1 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid days"))
			return
		}
		days = parsed
	}

	seasonID, err := optionalQueryID(c, "season_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tasks, err := h.dashboardService.UpcomingTasks(identity.UserID, days, seasonID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// PlotStatus returns per-plot health reports.
// @Summary     Plot status board
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} []services.PlotStatusReport "Plot reports"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /dashboard/plots/status [get]
func (h *DashboardHandler) PlotStatus(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reports, err := h.dashboardService.PlotStatus(identity.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plots": reports})
}

// LowStock returns supply lots at or below the low-stock threshold.
// @Summary     Low-stock alerts
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Maximum alerts (default 100)"
// @Success     200 {object} []services.LowStockAlert "Alerts"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /dashboard/inventory/low-stock [get]
func (h *DashboardHandler) LowStock(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := defaultLowStockLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 1 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid limit"))
			return
		}
		limit = parsed
	}

	alerts, err := h.dashboardService.LowStock(identity.UserID, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func optionalQueryID(c *gin.Context, param string) (*uint, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	id := uint(parsed)
	return &id, nil
}
