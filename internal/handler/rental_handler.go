package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lqphu369/vehicle-rental-service/internal/application"
	"github.com/lqphu369/vehicle-rental-service/internal/auth"
	"github.com/lqphu369/vehicle-rental-service/internal/middleware"
	"github.com/lqphu369/vehicle-rental-service/internal/response"
)

// RentalHandler handles HTTP requests for rental operations.
type RentalHandler struct {
	service *application.RentalService
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(service *application.RentalService) *RentalHandler {
	return &RentalHandler{service: service}
}

// RegisterRoutes registers all rental routes on the given router group.
func (h *RentalHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	r.POST("/api/v1/rentals/quote", h.QuoteRental)

	rentals := r.Group("/api/v1/rentals")
	rentals.Use(authMW)
	{
		rentals.POST("", middleware.RequireRole(auth.RoleRenter), h.CreateRental)
		rentals.GET("", h.ListRentals)
		rentals.GET("/:id", h.GetRental)
		rentals.POST("/:id/approve", middleware.RequireRole(auth.RoleAdmin), h.ApproveRental)
		rentals.POST("/:id/return", middleware.RequireRole(auth.RoleRenter), h.ReturnRental)
		rentals.POST("/:id/cancel", h.CancelRental)
	}
}

// QuoteRental handles POST /api/v1/rentals/quote. Quotes are public so the
// map popup can preview prices before login.
func (h *RentalHandler) QuoteRental(c *gin.Context) {
	var req application.QuoteRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.QuoteRental(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateRental handles POST /api/v1/rentals.
func (h *RentalHandler) CreateRental(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRental(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListRentals handles GET /api/v1/rentals. Renters see their own rentals.
func (h *RentalHandler) ListRentals(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)

	result, err := h.service.GetRenterRentals(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetRental handles GET /api/v1/rentals/:id.
func (h *RentalHandler) GetRental(c *gin.Context) {
	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid rental ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	result, err := h.service.GetRental(c.Request.Context(), rentalID, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ApproveRental handles POST /api/v1/rentals/:id/approve.
func (h *RentalHandler) ApproveRental(c *gin.Context) {
	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid rental ID")
		return
	}

	if err := h.service.ApproveRental(c.Request.Context(), rentalID); err != nil {
		response.Error(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	result, err := h.service.GetRental(c.Request.Context(), rentalID, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ReturnRental handles POST /api/v1/rentals/:id/return.
func (h *RentalHandler) ReturnRental(c *gin.Context) {
	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid rental ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// Body is optional; an empty return carries no rating.
	var req application.ReturnRentalRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.service.ReturnRental(c.Request.Context(), rentalID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelRental handles POST /api/v1/rentals/:id/cancel.
func (h *RentalHandler) CancelRental(c *gin.Context) {
	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid rental ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	result, err := h.service.CancelRental(c.Request.Context(), rentalID, userID, role, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
