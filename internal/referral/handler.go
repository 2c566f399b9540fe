package referral

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
	referralID, err := strconv.Atoi(c.Param("id"))
	if err != nil || referralID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid referral code ID"})
		return 0, 0, false
	}
	return uint(eventID), uint(referralID), true
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrOwnerRequired) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// ===========================
// 🎯 Create Referral Code - POST /events/:event_id/referrals
func (h *Handler) CreateReferral(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req ReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	rc, err := h.Service.CreateReferral(uint(eventID), &req, accessContext, ip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entity": rc})
}

// ===========================
// 📄 List Referral Codes - GET /events/:event_id/referrals
func (h *Handler) ListReferrals(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	codes, err := h.Service.ListReferrals(uint(eventID), accessContext)
	if err != nil {
		if errors.Is(err, event.ErrNotAccessible) {
			c.JSON(http.StatusOK, gin.H{"items": []ReferralCode{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch referral codes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": codes})
}

// ===========================
// 🛠 Update Referral Code - PUT /events/:event_id/referrals/:id
func (h *Handler) UpdateReferral(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, referralID, ok := parseIDs(c)
	if !ok {
		return
	}

	var req ReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	rc, err := h.Service.UpdateReferral(eventID, referralID, &req, accessContext, ip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entity": rc})
}

// ===========================
// ✅ Toggle Referral Code - PATCH /events/:event_id/referrals/:id/toggle
func (h *Handler) ToggleReferral(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, referralID, ok := parseIDs(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	rc, err := h.Service.ToggleReferral(eventID, referralID, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_active": rc.IsActive})
}

// ===========================
// ❌ Delete Referral Code - DELETE /events/:event_id/referrals/:id
func (h *Handler) DeleteReferral(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, referralID, ok := parseIDs(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	result, err := h.Service.DeleteReferral(eventID, referralID, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===========================
// 📊 Referral Usage Stats - GET /events/:event_id/referrals/stats
func (h *Handler) GetUsageStats(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	stats, err := h.Service.GetUsageStats(uint(eventID), accessContext)
	if err != nil {
		if errors.Is(err, event.ErrNotAccessible) {
			c.JSON(http.StatusOK, gin.H{"items": []UsageStats{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch referral stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": stats})
}
