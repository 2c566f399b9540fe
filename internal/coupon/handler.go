package coupon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func getAccessContext(c *gin.Context) (middleware.AccessContext, bool) {
	raw, exists := c.Get("access_context")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return middleware.AccessContext{}, false
	}
	ctx, ok := raw.(middleware.AccessContext)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access context"})
		return middleware.AccessContext{}, false
	}
	return ctx, true
}

func parseIDs(c *gin.Context) (uint, uint, bool) {
	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, 0, false
	}
	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil || couponID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon ID"})
		return 0, 0, false
	}
	return uint(eventID), uint(couponID), true
}

// ===========================
// 🎯 Create Coupon - POST /events/:event_id/coupons
func (h *Handler) CreateCoupon(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	coupon, err := h.Service.CreateCoupon(uint(eventID), &req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entity": coupon})
}

// ===========================
// 📄 List Coupons - GET /events/:event_id/coupons
func (h *Handler) ListCoupons(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	coupons, err := h.Service.ListCoupons(uint(eventID), accessContext)
	if err != nil {
		if errors.Is(err, event.ErrNotAccessible) {
			c.JSON(http.StatusOK, gin.H{"items": []Coupon{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch coupons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": coupons})
}

// ===========================
// 🛠 Update Coupon - PUT /events/:event_id/coupons/:id
func (h *Handler) UpdateCoupon(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, couponID, ok := parseIDs(c)
	if !ok {
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	coupon, err := h.Service.UpdateCoupon(eventID, couponID, &req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entity": coupon})
}

// ===========================
// ✅ Toggle Coupon - PATCH /events/:event_id/coupons/:id/toggle
func (h *Handler) ToggleCoupon(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, couponID, ok := parseIDs(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	coupon, err := h.Service.ToggleCoupon(eventID, couponID, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_active": coupon.IsActive})
}

// ===========================
// ❌ Delete Coupon - DELETE /events/:event_id/coupons/:id
func (h *Handler) DeleteCoupon(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, couponID, ok := parseIDs(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	result, err := h.Service.DeleteCoupon(eventID, couponID, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
