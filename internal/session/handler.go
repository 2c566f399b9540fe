package session

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

// respondError maps schedule conflicts to the structured code the
// console pins to the schedule field
func respondError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidScheduleTime) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"code":  "INVALID_SCHEDULE_TIME",
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// ===========================
// 🎯 Create Session - POST /events/:event_id/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	sess, err := h.Service.CreateSession(uint(eventID), &req, accessContext, ip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entity": sess})
}

// ===========================
// 📄 List Sessions - GET /events/:event_id/sessions
func (h *Handler) ListSessions(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	sessions, err := h.Service.ListSessions(uint(eventID), accessContext)
	if err != nil {
		if errors.Is(err, event.ErrNotAccessible) {
			c.JSON(http.StatusOK, gin.H{"items": []Session{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": sessions})
}

// ===========================
// 🛠 Update Session - PUT /events/:event_id/sessions/:id
func (h *Handler) UpdateSession(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || sessionID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	sess, err := h.Service.UpdateSession(uint(eventID), uint(sessionID), &req, accessContext, ip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entity": sess})
}

// ===========================
// ❌ Delete Session - DELETE /events/:event_id/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || sessionID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.DeleteSession(uint(eventID), uint(sessionID), accessContext, ip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session deleted successfully"})
}
