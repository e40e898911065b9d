// Package http provides the HTTP handlers for the recovery coordinator.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustregistry/internal/httputil"
	identifierDto "github.com/allisson/trustregistry/internal/identifier/http/dto"
	"github.com/allisson/trustregistry/internal/principal"
	"github.com/allisson/trustregistry/internal/recovery/http/dto"
	recoveryUseCase "github.com/allisson/trustregistry/internal/recovery/usecase"
)

// RecoveryHandler handles HTTP requests for guardian based recovery.
type RecoveryHandler struct {
	useCase recoveryUseCase.RecoveryUseCase
	logger  *slog.Logger
}

// NewRecoveryHandler creates a new recovery handler.
func NewRecoveryHandler(useCase recoveryUseCase.RecoveryUseCase, logger *slog.Logger) *RecoveryHandler {
	return &RecoveryHandler{useCase: useCase, logger: logger}
}

// SetGuardiansHandler replaces the guardian set of the sender.
// PUT /v1/recovery/guardians
func (h *RecoveryHandler) SetGuardiansHandler(c *gin.Context) {
	var req dto.SetGuardiansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	set, err := h.useCase.SetGuardians(c.Request.Context(), req.GuardianPrincipals(), req.Threshold)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGuardianSetToResponse(set))
}

// ApproveHandler casts the sender's approval for recovering an owner.
// POST /v1/recovery/:owner/approvals
func (h *RecoveryHandler) ApproveHandler(c *gin.Context) {
	owner := principal.Principal(c.Param("owner"))

	if err := h.useCase.ApproveRecovery(c.Request.Context(), owner); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExecuteHandler transfers an identifier of the owner once the threshold is met.
// POST /v1/recovery/:owner/execute
func (h *RecoveryHandler) ExecuteHandler(c *gin.Context) {
	owner := principal.Principal(c.Param("owner"))

	var req dto.ExecuteRecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	record, err := h.useCase.ExecuteRecovery(
		c.Request.Context(),
		owner,
		principal.Principal(req.NewController),
		req.ID,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, identifierDto.MapRecordToResponse(record))
}

// GetHandler returns the guardian set and approvals count of an owner.
// GET /v1/recovery/:owner
func (h *RecoveryHandler) GetHandler(c *gin.Context) {
	owner := principal.Principal(c.Param("owner"))

	set, err := h.useCase.GetGuardians(c.Request.Context(), owner)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGuardianSetToResponse(set))
}

// GetApprovalHandler reports whether a guardian approved in the current epoch.
// GET /v1/recovery/:owner/approvals/:guardian
func (h *RecoveryHandler) GetApprovalHandler(c *gin.Context) {
	owner := principal.Principal(c.Param("owner"))
	guardian := principal.Principal(c.Param("guardian"))

	approved, err := h.useCase.HasApproved(c.Request.Context(), owner, guardian)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ApprovalResponse{
		Owner:       owner.String(),
		Guardian:    guardian.String(),
		HasApproved: approved,
	})
}
