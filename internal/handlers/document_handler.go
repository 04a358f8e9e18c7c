package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "farmbook/internal/errors"
	"farmbook/internal/pagination"
	"farmbook/internal/services"
)

// DocumentHandler handles knowledge-base document requests. Write endpoints
// sit under the admin group; the listing endpoint serves every signed-in user.
type DocumentHandler struct {
	documentService services.DocumentServicer
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService services.DocumentServicer) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// DocumentRequest represents the payload for creating or updating a document.
type DocumentRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	URL         string `json:"url" binding:"required,url,max=1000"`
	Description string `json:"description"`
	Crop        string `json:"crop" binding:"max=50"`
	Stage       string `json:"stage" binding:"max=50"`
	Topic       string `json:"topic" binding:"max=50"`
	Active      *bool  `json:"active"`
	Public      *bool  `json:"public"`
}

// DocumentActiveRequest represents the payload for toggling visibility.
type DocumentActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (r DocumentRequest) toInput() services.DocumentInput {
	return services.DocumentInput{
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description,
		Crop:        r.Crop,
		Stage:       r.Stage,
		Topic:       r.Topic,
		Active:      r.Active,
		Public:      r.Public,
	}
}

// CreateDocument publishes a knowledge-base document.
// @Summary     Create document
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DocumentRequest true "Document details"
// @Success     201 {object} models.Document "Document created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	doc, err := h.documentService.CreateDocument(identity.UserID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

// UpdateDocument rewrites a document's content and tags.
// @Summary     Update document
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Document ID"
// @Param       request body DocumentRequest true "Updated document details"
// @Success     200 {object} models.Document "Updated document"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /admin/documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	documentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	doc, err := h.documentService.UpdateDocument(documentID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// DeleteDocument removes a document from the library.
// @Summary     Delete document
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Document ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /admin/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	documentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.documentService.DeleteDocument(documentID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

// SetDocumentActive toggles a document's visibility.
// @Summary     Toggle document visibility
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Document ID"
// @Param       request body DocumentActiveRequest true "Visibility flag"
// @Success     200 {object} models.Document "Updated document"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Router      /admin/documents/{id}/active [patch]
func (h *DocumentHandler) SetDocumentActive(c *gin.Context) {
	documentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DocumentActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	doc, err := h.documentService.SetDocumentActive(documentID, *req.Active)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// ListAllDocuments returns every document, active or not.
// @Summary     List all documents
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       crop      query string false "Filter by crop tag"
// @Param       topic     query string false "Filter by topic tag"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Document] "Paginated documents"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /admin/documents [get]
func (h *DocumentHandler) ListAllDocuments(c *gin.Context) {
	h.listDocuments(c, false)
}

// ListDocuments returns the active documents visible to farmers.
// @Summary     List documents
// @Tags        documents
// @Produce     json
// @Security    BearerAuth
// @Param       crop      query string false "Filter by crop tag"
// @Param       topic     query string false "Filter by topic tag"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Document] "Paginated documents"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Router      /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	h.listDocuments(c, true)
}

func (h *DocumentHandler) listDocuments(c *gin.Context, onlyActive bool) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.DocumentFilter
	if raw := c.Query("crop"); raw != "" {
		filter.Crop = &raw
	}
	if raw := c.Query("topic"); raw != "" {
		filter.Topic = &raw
	}

	result, err := h.documentService.ListDocuments(onlyActive, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
