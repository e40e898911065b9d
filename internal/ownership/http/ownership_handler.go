// Package http provides the HTTP handlers for registry ownership.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustregistry/internal/httputil"
	"github.com/allisson/trustregistry/internal/ownership/domain"
	"github.com/allisson/trustregistry/internal/ownership/http/dto"
	ownershipUseCase "github.com/allisson/trustregistry/internal/ownership/usecase"
	"github.com/allisson/trustregistry/internal/principal"
)

// OwnershipHandler handles HTTP requests for registry ownership.
type OwnershipHandler struct {
	useCase ownershipUseCase.OwnershipUseCase
	logger  *slog.Logger
}

// NewOwnershipHandler creates a new ownership handler.
func NewOwnershipHandler(useCase ownershipUseCase.OwnershipUseCase, logger *slog.Logger) *OwnershipHandler {
	return &OwnershipHandler{useCase: useCase, logger: logger}
}

// GetHandler returns the owner of a registry.
// GET /v1/owners/:registry
func (h *OwnershipHandler) GetHandler(c *gin.Context) {
	registry := domain.Registry(c.Param("registry"))

	owner, err := h.useCase.Owner(c.Request.Context(), registry)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOwnershipToResponse(&domain.Ownership{Registry: registry, Owner: owner}))
}

// TransferHandler hands a registry to a new owner.
// POST /v1/owners/:registry/transfer
func (h *OwnershipHandler) TransferHandler(c *gin.Context) {
	var req dto.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	ownership, err := h.useCase.TransferOwnership(
		c.Request.Context(),
		domain.Registry(c.Param("registry")),
		principal.Principal(req.NewOwner),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOwnershipToResponse(ownership))
}
