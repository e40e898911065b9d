// Package http provides the HTTP handlers for the issuer trust list.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustregistry/internal/httputil"
	"github.com/allisson/trustregistry/internal/issuer/http/dto"
	issuerUseCase "github.com/allisson/trustregistry/internal/issuer/usecase"
	"github.com/allisson/trustregistry/internal/principal"
)

// IssuerHandler handles HTTP requests for the issuer trust list.
type IssuerHandler struct {
	useCase issuerUseCase.IssuerUseCase
	logger  *slog.Logger
}

// NewIssuerHandler creates a new issuer handler.
func NewIssuerHandler(useCase issuerUseCase.IssuerUseCase, logger *slog.Logger) *IssuerHandler {
	return &IssuerHandler{useCase: useCase, logger: logger}
}

// AddHandler lists an issuer as trusted.
// PUT /v1/issuers/:issuer
func (h *IssuerHandler) AddHandler(c *gin.Context) {
	var req dto.AddIssuerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	entry, err := h.useCase.AddIssuer(c.Request.Context(), principal.Principal(c.Param("issuer")), req.MetadataRef)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIssuerToResponse(entry))
}

// RemoveHandler removes an issuer from the trust list.
// DELETE /v1/issuers/:issuer
func (h *IssuerHandler) RemoveHandler(c *gin.Context) {
	if err := h.useCase.RemoveIssuer(c.Request.Context(), principal.Principal(c.Param("issuer"))); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetHandler reports whether an issuer is trusted and its metadata reference.
// GET /v1/issuers/:issuer
func (h *IssuerHandler) GetHandler(c *gin.Context) {
	entry, err := h.useCase.Get(c.Request.Context(), principal.Principal(c.Param("issuer")))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIssuerToResponse(entry))
}
