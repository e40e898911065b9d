// Package http provides the HTTP handlers for the directory hub.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustregistry/internal/directory/http/dto"
	directoryUseCase "github.com/allisson/trustregistry/internal/directory/usecase"
	"github.com/allisson/trustregistry/internal/httputil"
)

// DirectoryHandler handles HTTP requests for the directory.
type DirectoryHandler struct {
	useCase directoryUseCase.DirectoryUseCase
	logger  *slog.Logger
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(useCase directoryUseCase.DirectoryUseCase, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{useCase: useCase, logger: logger}
}

// SetHandler overwrites the directory.
// PUT /v1/directory
func (h *DirectoryHandler) SetHandler(c *gin.Context) {
	var req dto.SetAddressesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	addresses, err := h.useCase.SetAddresses(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAddressesToResponse(addresses))
}

// GetHandler returns the directory.
// GET /v1/directory
func (h *DirectoryHandler) GetHandler(c *gin.Context) {
	addresses, err := h.useCase.GetAddresses(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAddressesToResponse(addresses))
}
