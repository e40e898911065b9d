// Package http provides the HTTP handlers for the access control registry.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustregistry/internal/access/domain"
	"github.com/allisson/trustregistry/internal/access/http/dto"
	accessUseCase "github.com/allisson/trustregistry/internal/access/usecase"
	"github.com/allisson/trustregistry/internal/httputil"
	"github.com/allisson/trustregistry/internal/principal"
)

// AccessHandler handles HTTP requests for access grants.
type AccessHandler struct {
	useCase accessUseCase.AccessUseCase
	logger  *slog.Logger
}

// NewAccessHandler creates a new access handler.
func NewAccessHandler(useCase accessUseCase.AccessUseCase, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{useCase: useCase, logger: logger}
}

// GrantHandler grants a permission on behalf of the sender.
// POST /v1/access/grants
func (h *AccessHandler) GrantHandler(c *gin.Context) {
	var req dto.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	permission, err := h.useCase.Grant(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPermissionToResponse(permission))
}

// GrantBatchHandler grants several permissions atomically.
// POST /v1/access/grants/batch
func (h *AccessHandler) GrantBatchHandler(c *gin.Context) {
	var req dto.GrantBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	permissions, err := h.useCase.GrantBatch(
		c.Request.Context(),
		dto.Principals(req.Grantees),
		req.Attributes,
		req.Expiries,
		req.ConsentRefs,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPermissionsToListResponse(permissions))
}

// RevokeHandler revokes a permission of the sender.
// POST /v1/access/revocations
func (h *AccessHandler) RevokeHandler(c *gin.Context) {
	var req dto.RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.useCase.Revoke(c.Request.Context(), req.ToDomain()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RevokeBatchHandler revokes several permissions atomically.
// POST /v1/access/revocations/batch
func (h *AccessHandler) RevokeBatchHandler(c *gin.Context) {
	var req dto.RevokeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	err := h.useCase.RevokeBatch(c.Request.Context(), dto.Principals(req.Grantees), req.Attributes)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckHandler reports whether a grantee currently has access.
// GET /v1/access/check?subject=&grantee=&attribute=
func (h *AccessHandler) CheckHandler(c *gin.Context) {
	key, ok := h.parseKey(c)
	if !ok {
		return
	}

	granted, err := h.useCase.HasAccess(c.Request.Context(), key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AccessCheckResponse{
		Subject:   key.Subject.String(),
		Grantee:   key.Grantee.String(),
		Attribute: key.Attribute,
		HasAccess: granted,
	})
}

// GetPermissionHandler returns the stored permission for a key.
// GET /v1/access/permissions?subject=&grantee=&attribute=
func (h *AccessHandler) GetPermissionHandler(c *gin.Context) {
	key, ok := h.parseKey(c)
	if !ok {
		return
	}

	permission, err := h.useCase.GetPermission(c.Request.Context(), key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPermissionToResponse(permission))
}

func (h *AccessHandler) parseKey(c *gin.Context) (domain.Key, bool) {
	var values [3]string
	for i, name := range []string{"subject", "grantee", "attribute"} {
		value, err := httputil.RequiredQuery(c, name)
		if err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return domain.Key{}, false
		}
		values[i] = value
	}

	return domain.Key{
		Subject:   principal.Principal(values[0]),
		Grantee:   principal.Principal(values[1]),
		Attribute: values[2],
	}, true
}
