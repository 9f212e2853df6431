package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lqphu369/vehicle-rental-service/internal/application"
	"github.com/lqphu369/vehicle-rental-service/internal/response"
)

// RouteHandler handles HTTP requests for geocoding and route planning.
type RouteHandler struct {
	service *application.RouteService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service *application.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes registers the geocoding and routing routes.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/api/v1/geocode", h.Geocode)
	r.POST("/api/v1/sessions/:id/route", h.PlanRoute)
}

// Geocode handles POST /api/v1/geocode.
func (h *RouteHandler) Geocode(c *gin.Context) {
	var req application.GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Geocode(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PlanRoute handles POST /api/v1/sessions/:id/route.
func (h *RouteHandler) PlanRoute(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid session ID")
		return
	}

	var req application.PlanRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.PlanRoute(c.Request.Context(), sessionID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
