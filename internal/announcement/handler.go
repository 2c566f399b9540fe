package announcement

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

// ===========================
// 🎯 Create Announcement - POST /events/:event_id/announcements
func (h *Handler) CreateAnnouncement(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	a, err := h.Service.CreateAnnouncement(uint(eventID), &req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"entity": a})
}

// ===========================
// 📄 List Announcements - GET /events/:event_id/announcements
func (h *Handler) ListAnnouncements(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	list, err := h.Service.ListAnnouncements(uint(eventID), accessContext)
	if err != nil {
		if errors.Is(err, event.ErrNotAccessible) {
			c.JSON(http.StatusOK, gin.H{"items": []Announcement{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch announcements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": list})
}

// ===========================
// 🔁 Retry Announcement - POST /events/:event_id/announcements/:id/retry
func (h *Handler) RetryAnnouncement(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	announcementID, err := strconv.Atoi(c.Param("id"))
	if err != nil || announcementID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)

	a, err := h.Service.RetryAnnouncement(uint(eventID), uint(announcementID), accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"entity": a})
}
