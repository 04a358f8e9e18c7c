package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/models"
	"farmbook/internal/pagination"
)

// documentService manages the knowledge-base library. Documents are global
// reference material, so reads are not owner-scoped; writes are reserved for
// administrators at the routing layer.
type documentService struct {
	db *gorm.DB
}

// NewDocumentService creates a new DocumentServicer.
func NewDocumentService(db *gorm.DB) DocumentServicer {
	return &documentService{db: db}
}

// CreateDocument publishes a document and records who created it. A document
// is active by default and private unless marked public.
func (s *documentService) CreateDocument(creatorID uint, input DocumentInput) (*models.Document, error) {
	if err := validateDocumentInput(&input); err != nil {
		return nil, err
	}

	doc := &models.Document{
		Title:       input.Title,
		URL:         input.URL,
		Description: input.Description,
		Crop:        input.Crop,
		Stage:       input.Stage,
		Topic:       input.Topic,
		Active:      true,
		Public:      false,
		CreatedByID: creatorID,
	}
	if input.Active != nil {
		doc.Active = *input.Active
	}
	if input.Public != nil {
		doc.Public = *input.Public
	}
	if err := s.db.Create(doc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return doc, nil
}

// GetDocument loads one document by ID.
func (s *documentService) GetDocument(documentID uint) (*models.Document, error) {
	var doc models.Document
	if err := s.db.First(&doc, documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &doc, nil
}

// UpdateDocument rewrites a document's content and tags. Nil Active or
// Public flags leave the current values in place.
func (s *documentService) UpdateDocument(documentID uint, input DocumentInput) (*models.Document, error) {
	doc, err := s.GetDocument(documentID)
	if err != nil {
		return nil, err
	}
	if err := validateDocumentInput(&input); err != nil {
		return nil, err
	}

	doc.Title = input.Title
	doc.URL = input.URL
	doc.Description = input.Description
	doc.Crop = input.Crop
	doc.Stage = input.Stage
	doc.Topic = input.Topic
	if input.Active != nil {
		doc.Active = *input.Active
	}
	if input.Public != nil {
		doc.Public = *input.Public
	}
	if err := s.db.Save(doc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return doc, nil
}

// DeleteDocument soft-deletes a document.
func (s *documentService) DeleteDocument(documentID uint) error {
	doc, err := s.GetDocument(documentID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(doc).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SetDocumentActive toggles a document's visibility without touching its
// content.
func (s *documentService) SetDocumentActive(documentID uint, active bool) (*models.Document, error) {
	doc, err := s.GetDocument(documentID)
	if err != nil {
		return nil, err
	}
	doc.Active = active
	if err := s.db.Save(doc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return doc, nil
}

// ListDocuments returns a page of documents, newest first. With onlyActive
// set, inactive documents are hidden; tag filters match case-insensitively.
func (s *documentService) ListDocuments(onlyActive bool, filter DocumentFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Document], error) {
	page.Defaults()

	query := s.db.Model(&models.Document{})
	if onlyActive {
		query = query.Where("active = ?", true)
	}
	if filter.Crop != nil {
		query = query.Where("LOWER(crop) = LOWER(?)", strings.TrimSpace(*filter.Crop))
	}
	if filter.Topic != nil {
		query = query.Where("LOWER(topic) = LOWER(?)", strings.TrimSpace(*filter.Topic))
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var docs []models.Document
	err := query.Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&docs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(docs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// validateDocumentInput trims free-text fields and requires a title and URL.
func validateDocumentInput(input *DocumentInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.URL = strings.TrimSpace(input.URL)
	input.Description = strings.TrimSpace(input.Description)
	input.Crop = strings.TrimSpace(input.Crop)
	input.Stage = strings.TrimSpace(input.Stage)
	input.Topic = strings.TrimSpace(input.Topic)

	if input.Title == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Document title is required")
	}
	if input.URL == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Document URL is required")
	}
	return nil
}
