// Package http provides the HTTP handler for reading the registry event log.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustregistry/internal/events/http/dto"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	"github.com/allisson/trustregistry/internal/httputil"
)

// EventHandler serves the append-only event log to external observers.
type EventHandler struct {
	eventUseCase eventsUseCase.EventUseCase
	logger       *slog.Logger
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventUseCase eventsUseCase.EventUseCase, logger *slog.Logger) *EventHandler {
	return &EventHandler{eventUseCase: eventUseCase, logger: logger}
}

// ListHandler returns events in the order they were recorded.
// GET /v1/events?offset=0&limit=50
func (h *EventHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	events, err := h.eventUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}
