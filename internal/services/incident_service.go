package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
)

// incidentService tracks pest, disease, and weather incidents per season.
type incidentService struct {
	db        *gorm.DB
	ownership OwnershipResolver
}

// NewIncidentService creates a new IncidentServicer.
func NewIncidentService(db *gorm.DB, ownership OwnershipResolver) IncidentServicer {
	return &incidentService{db: db, ownership: ownership}
}

// ReportIncident opens an incident on an owned season.
func (s *incidentService) ReportIncident(ownerID, seasonID uint, title, description, severity string) (*models.Incident, error) {
	season, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Incident title is required")
	}

	incident := &models.Incident{
		SeasonID:     season.ID,
		Title:        title,
		Description:  strings.TrimSpace(description),
		Severity:     strings.ToUpper(strings.TrimSpace(severity)),
		Status:       models.IncidentStatusOpen,
		ReportedDate: time.Now(),
	}
	if err := s.db.Create(incident).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return incident, nil
}

// ListSeasonIncidents returns an owned season's incidents, newest report first.
func (s *incidentService) ListSeasonIncidents(ownerID, seasonID uint) ([]models.Incident, error) {
	if _, err := s.ownership.ResolveOwnedSeason(ownerID, seasonID); err != nil {
		return nil, err
	}

	var incidents []models.Incident
	err := s.db.Where("season_id = ?", seasonID).
		Order("reported_date DESC, id DESC").
		Find(&incidents).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return incidents, nil
}

// UpdateIncidentStatus moves an owned incident to a new status.
func (s *incidentService) UpdateIncidentStatus(ownerID, incidentID uint, status models.IncidentStatus) (*models.Incident, error) {
	if !validIncidentStatus(status) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown incident status")
	}

	incident, err := s.findOwnedIncident(ownerID, incidentID)
	if err != nil {
		return nil, err
	}
	incident.Status = status
	if err := s.db.Save(incident).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return incident, nil
}

func (s *incidentService) findOwnedIncident(ownerID, incidentID uint) (*models.Incident, error) {
	var incident models.Incident
	err := s.db.Model(&models.Incident{}).
		Joins("JOIN seasons ON seasons.id = incidents.season_id AND seasons.deleted_at IS NULL").
		Joins("JOIN plots ON plots.id = seasons.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("incidents.id = ? AND farms.owner_id = ?", incidentID, ownerID).
		First(&incident).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncidentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &incident, nil
}

func validIncidentStatus(status models.IncidentStatus) bool {
	switch status {
	case models.IncidentStatusOpen, models.IncidentStatusInProgress,
		models.IncidentStatusResolved, models.IncidentStatusClosed:
		return true
	}
	return false
}
