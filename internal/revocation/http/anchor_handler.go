// Package http provides the HTTP handlers for the credential revocation registry.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/httputil"
	"github.com/allisson/trustregistry/internal/revocation/http/dto"
	revocationUseCase "github.com/allisson/trustregistry/internal/revocation/usecase"
)

// AnchorHandler handles HTTP requests for credential anchors.
type AnchorHandler struct {
	useCase revocationUseCase.RevocationUseCase
	logger  *slog.Logger
}

// NewAnchorHandler creates a new credential anchor handler.
func NewAnchorHandler(useCase revocationUseCase.RevocationUseCase, logger *slog.Logger) *AnchorHandler {
	return &AnchorHandler{useCase: useCase, logger: logger}
}

// AnchorHandler anchors a credential hash to the sender.
// POST /v1/credentials
func (h *AnchorHandler) AnchorHandler(c *gin.Context) {
	var req dto.AnchorCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	credentialHash, err := hash.Parse(req.Hash)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	anchor, err := h.useCase.AnchorCredential(c.Request.Context(), credentialHash, req.ContentRef)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAnchorToResponse(anchor))
}

// RevokeHandler revokes an anchored credential.
// POST /v1/credentials/:hash/revoke
func (h *AnchorHandler) RevokeHandler(c *gin.Context) {
	credentialHash, err := hash.Parse(c.Param("hash"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.RevokeCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.useCase.RevokeCredential(c.Request.Context(), credentialHash, req.Reason); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetHandler returns the anchor of a credential hash and its revocation status.
// GET /v1/credentials/:hash
func (h *AnchorHandler) GetHandler(c *gin.Context) {
	credentialHash, err := hash.Parse(c.Param("hash"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	anchor, err := h.useCase.GetAnchor(c.Request.Context(), credentialHash)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAnchorToResponse(anchor))
}
