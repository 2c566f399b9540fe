package checkin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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

func parseEventID(c *gin.Context) (uint, bool) {
	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, false
	}
	return uint(eventID), true
}

// ===========================
// ✅ QR Check-in - POST /events/:event_id/checkin/qr
func (h *Handler) CheckinByQR(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	var req QRCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	result, err := h.Service.CheckinByQR(eventID, req.CheckinCode, accessContext, ip)
	if err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===========================
// 🔐 Request OTP - POST /events/:event_id/checkin/otp/request
func (h *Handler) RequestOTP(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.RequestOTP(eventID, req.RegistrationID, accessContext, ip); err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to the attendee's email"})
}

// ===========================
// 🔓 Verify OTP - POST /events/:event_id/checkin/otp/verify
func (h *Handler) VerifyOTP(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	result, err := h.Service.VerifyOTP(eventID, req.RegistrationID, req.OTP, accessContext, ip)
	if err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ===========================
// 📊 Check-in Stats - GET /events/:event_id/checkin/stats
func (h *Handler) GetStats(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	stats, err := h.Service.GetStats(eventID, accessContext)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
