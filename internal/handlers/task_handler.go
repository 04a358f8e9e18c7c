package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/services"
)

// TaskHandler handles field task requests.
type TaskHandler struct {
	taskService services.TaskServicer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService services.TaskServicer) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// TaskRequest represents the payload for scheduling a task.
type TaskRequest struct {
	Title        string  `json:"title" binding:"required,min=1,max=200"`
	Description  string  `json:"description" binding:"max=2000"`
	AssigneeName string  `json:"assignee_name" binding:"max=150"`
	DueDate      string  `json:"due_date" binding:"required"`
	PlannedDate  *string `json:"planned_date"`
}

// CreateTask schedules a task on an owned season.
// @Summary     Create a field task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Season ID"
// @Param       request body TaskRequest true "Task details"
// @Success     201 {object} models.FieldTask "Task created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Failure     409 {object} ErrorResponse "Season is finished"
// @Router      /seasons/{id}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
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

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	dueDate, err := parseDate(req.DueDate, "due_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	plannedDate, err := parseOptionalDate(req.PlannedDate, "planned_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(identity.UserID, seasonID, req.Title, req.Description, req.AssigneeName, dueDate, plannedDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// ListSeasonTasks returns a season's tasks.
// @Summary     List season tasks
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Season ID"
// @Success     200 {object} []models.FieldTask "Tasks"
// @Failure     404 {object} ErrorResponse "Season not found"
// @Router      /seasons/{id}/tasks [get]
func (h *TaskHandler) ListSeasonTasks(c *gin.Context) {
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

	tasks, err := h.taskService.ListSeasonTasks(identity.UserID, seasonID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CompleteTask marks a task done.
// @Summary     Complete task
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Task ID"
// @Success     200 {object} models.FieldTask "Completed task"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Failure     409 {object} ErrorResponse "Task already closed"
// @Router      /tasks/{id}/complete [put]
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.taskService.CompleteTask(identity.UserID, taskID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// CancelTask marks a task cancelled.
// @Summary     Cancel task
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Task ID"
// @Success     200 {object} models.FieldTask "Cancelled task"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Failure     409 {object} ErrorResponse "Task already closed"
// @Router      /tasks/{id}/cancel [put]
func (h *TaskHandler) CancelTask(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.taskService.CancelTask(identity.UserID, taskID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}
