// Package http provides the HTTP handlers for the identifier registry.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustregistry/internal/httputil"
	"github.com/allisson/trustregistry/internal/identifier/http/dto"
	identifierUseCase "github.com/allisson/trustregistry/internal/identifier/usecase"
	"github.com/allisson/trustregistry/internal/principal"
)

// IdentifierHandler handles HTTP requests for identifier records.
type IdentifierHandler struct {
	useCase identifierUseCase.IdentifierUseCase
	logger  *slog.Logger
}

// NewIdentifierHandler creates a new identifier handler.
func NewIdentifierHandler(useCase identifierUseCase.IdentifierUseCase, logger *slog.Logger) *IdentifierHandler {
	return &IdentifierHandler{useCase: useCase, logger: logger}
}

// RegisterHandler registers an identifier controlled by the sender.
// POST /v1/identifiers
func (h *IdentifierHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	record, err := h.useCase.Register(c.Request.Context(), req.ID, req.DocumentRef, req.PublicKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecordToResponse(record))
}

// UpdateHandler replaces the document reference and public key of an identifier.
// PUT /v1/identifiers
func (h *IdentifierHandler) UpdateHandler(c *gin.Context) {
	var req dto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	record, err := h.useCase.Update(c.Request.Context(), req.ID, req.DocumentRef, req.PublicKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// ResolveHandler returns the record of an identifier.
// GET /v1/identifiers/resolve?id=
func (h *IdentifierHandler) ResolveHandler(c *gin.Context) {
	id, err := httputil.RequiredQuery(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	record, err := h.useCase.Resolve(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// ListHandler lists the identifiers registered by a controller.
// GET /v1/identifiers?controller=&offset=&limit=
func (h *IdentifierHandler) ListHandler(c *gin.Context) {
	controller, err := httputil.RequiredQuery(c, "controller")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	records, err := h.useCase.ListByController(c.Request.Context(), principal.Principal(controller), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordsToListResponse(records))
}

// GetRecoveryManagerHandler returns the configured recovery manager.
// GET /v1/identifiers/recovery-manager
func (h *IdentifierHandler) GetRecoveryManagerHandler(c *gin.Context) {
	manager, err := h.useCase.RecoveryManager(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RecoveryManagerResponse{RecoveryManager: manager.String()})
}

// SetRecoveryManagerHandler replaces the recovery manager.
// PUT /v1/identifiers/recovery-manager
func (h *IdentifierHandler) SetRecoveryManagerHandler(c *gin.Context) {
	var req dto.SetRecoveryManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	err := h.useCase.SetRecoveryManager(c.Request.Context(), principal.Principal(req.Manager))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ControllerTransferHandler transfers control of an identifier on behalf of
// the recovery manager.
// POST /v1/identifiers/controller-transfers
func (h *IdentifierHandler) ControllerTransferHandler(c *gin.Context) {
	var req dto.ControllerTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	record, err := h.useCase.UpdateControllerByRecovery(
		c.Request.Context(),
		req.ID,
		principal.Principal(req.NewController),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}
