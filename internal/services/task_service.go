package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
)

// taskService manages field tasks scheduled against seasons.
type taskService struct {
	db        *gorm.DB
	ownership OwnershipResolver
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(db *gorm.DB, ownership OwnershipResolver) TaskServicer {
	return &taskService{db: db, ownership: ownership}
}

// CreateTask schedules a task on an owned season.
func (s *taskService) CreateTask(ownerID, seasonID uint, title, description, assigneeName string, dueDate time.Time, plannedDate *time.Time) (*models.FieldTask, error) {
	season, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID)
	if err != nil {
		return nil, err
	}
	if season.Status.Terminal() {
		return nil, apperrors.ErrSeasonLocked
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Task title is required")
	}
	if dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Task due date is required")
	}

	task := &models.FieldTask{
		SeasonID:     season.ID,
		Title:        title,
		Description:  strings.TrimSpace(description),
		Status:       models.TaskStatusPending,
		DueDate:      dueDate,
		PlannedDate:  plannedDate,
		AssigneeName: strings.TrimSpace(assigneeName),
	}
	if err := s.db.Create(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return task, nil
}

// ListSeasonTasks returns an owned season's tasks ordered by due date.
func (s *taskService) ListSeasonTasks(ownerID, seasonID uint) ([]models.FieldTask, error) {
	if _, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID); err != nil {
		return nil, err
	}

	var tasks []models.FieldTask
	err := s.db.Where("season_id = ?", seasonID).
		Order("due_date ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tasks, nil
}

// CompleteTask marks an open task DONE and stamps the completion time.
func (s *taskService) CompleteTask(ownerID, taskID uint) (*models.FieldTask, error) {
	return s.closeTask(ownerID, taskID, models.TaskStatusDone)
}

// CancelTask marks an open task CANCELLED.
func (s *taskService) CancelTask(ownerID, taskID uint) (*models.FieldTask, error) {
	return s.closeTask(ownerID, taskID, models.TaskStatusCancelled)
}

func (s *taskService) closeTask(ownerID, taskID uint, status models.TaskStatus) (*models.FieldTask, error) {
	task, err := s.findOwnedTask(ownerID, taskID)
	if err != nil {
		return nil, err
	}
	for _, closed := range models.ClosedTaskStatuses() {
		if task.Status == closed {
			return nil, apperrors.ErrTaskAlreadyClosed
		}
	}

	task.Status = status
	if status == models.TaskStatusDone {
		now := time.Now()
		task.CompletedDate = &now
	}
	if err := s.db.Save(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return task, nil
}

func (s *taskService) findOwnedTask(ownerID, taskID uint) (*models.FieldTask, error) {
	var task models.FieldTask
	err := s.db.Model(&models.FieldTask{}).
		Joins("JOIN seasons ON seasons.id = field_tasks.season_id AND seasons.deleted_at IS NULL").
		Joins("JOIN plots ON plots.id = seasons.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("field_tasks.id = ? AND farms.owner_id = ?", taskID, ownerID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &task, nil
}
