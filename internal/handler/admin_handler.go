package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lqphu369/vehicle-rental-service/internal/application"
	"github.com/lqphu369/vehicle-rental-service/internal/auth"
	"github.com/lqphu369/vehicle-rental-service/internal/middleware"
	"github.com/lqphu369/vehicle-rental-service/internal/response"
)

// AdminHandler handles admin HTTP requests for fleet and rental management.
type AdminHandler struct {
	rentals  *application.RentalService
	vehicles *application.VehicleService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(rentals *application.RentalService, vehicles *application.VehicleService) *AdminHandler {
	return &AdminHandler{rentals: rentals, vehicles: vehicles}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/rentals", h.ListRentals)
		admin.GET("/stats/rentals", h.RentalStats)
		admin.POST("/vehicles", h.CreateVehicle)
		admin.PUT("/vehicles/:id/position", h.UpdateVehiclePosition)
		admin.PUT("/vehicles/:id/status", h.SetVehicleStatus)
	}
}

// ListRentals handles GET /api/v1/admin/rentals.
func (h *AdminHandler) ListRentals(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.rentals.ListAllRentals(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// RentalStats handles GET /api/v1/admin/stats/rentals.
func (h *AdminHandler) RentalStats(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		response.BadRequest(c, "invalid year")
		return
	}

	stats, err := h.rentals.GetRentalStats(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// CreateVehicle handles POST /api/v1/admin/vehicles.
func (h *AdminHandler) CreateVehicle(c *gin.Context) {
	var req application.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.vehicles.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateVehiclePosition handles PUT /api/v1/admin/vehicles/:id/position.
func (h *AdminHandler) UpdateVehiclePosition(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}

	var req struct {
		Lat float64 `json:"lat" binding:"required"`
		Lng float64 `json:"lng" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.vehicles.UpdateVehiclePosition(c.Request.Context(), vehicleID, req.Lat, req.Lng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SetVehicleStatus handles PUT /api/v1/admin/vehicles/:id/status.
func (h *AdminHandler) SetVehicleStatus(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.vehicles.SetVehicleStatus(c.Request.Context(), vehicleID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
