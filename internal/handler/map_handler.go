package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lqphu369/vehicle-rental-service/internal/application"
	vehicleDomain "github.com/lqphu369/vehicle-rental-service/internal/domain/vehicle"
	"github.com/lqphu369/vehicle-rental-service/internal/response"
)

// MapHandler handles HTTP requests for the vehicle map and listings.
type MapHandler struct {
	maps     *application.MapService
	vehicles *application.VehicleService
}

// NewMapHandler creates a new MapHandler.
func NewMapHandler(maps *application.MapService, vehicles *application.VehicleService) *MapHandler {
	return &MapHandler{maps: maps, vehicles: vehicles}
}

// RegisterRoutes registers the public map and vehicle routes.
func (h *MapHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/map/vehicles", h.MapVehicles)
	r.POST("/api/v1/map/entries", h.BuildEntries)
	r.GET("/api/v1/vehicles", h.ListVehicles)
	r.GET("/api/v1/vehicles/:id", h.GetVehicle)
}

// MapVehicles handles GET /api/v1/map/vehicles.
func (h *MapHandler) MapVehicles(c *gin.Context) {
	filter := c.DefaultQuery("filter", "all")

	result, err := h.maps.MapVehicles(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// BuildEntries handles POST /api/v1/map/entries. It classifies an
// externally-supplied vehicle payload into map entries; a malformed payload
// yields an empty map rather than an error.
func (h *MapHandler) BuildEntries(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "failed to read payload")
		return
	}

	records := h.maps.ParseVehiclePayload(payload)
	entries := h.maps.BuildMapEntries(records, time.Now())

	response.Success(c, entries)
}

// ListVehicles handles GET /api/v1/vehicles.
func (h *MapHandler) ListVehicles(c *gin.Context) {
	opts := vehicleDomain.ListOptions{
		Filter:      c.DefaultQuery("filter", "all"),
		VehicleType: vehicleDomain.VehicleType(c.Query("type")),
		Sort:        c.Query("sort"),
	}

	result, err := h.vehicles.ListVehicles(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetVehicle handles GET /api/v1/vehicles/:id.
func (h *MapHandler) GetVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}

	result, err := h.vehicles.GetVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
