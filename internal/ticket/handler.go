package ticket

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
	ticketID, err := strconv.Atoi(c.Param("id"))
	if err != nil || ticketID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket ID"})
		return 0, 0, false
	}
	return uint(eventID), uint(ticketID), true
}

// ===========================
// 🎯 Create Ticket - POST /events/:event_id/tickets
func (h *Handler) CreateTicket(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	t, err := h.Service.CreateTicket(uint(eventID), &req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entity": t})
}

// ===========================
// 📄 List Tickets - GET /events/:event_id/tickets
func (h *Handler) ListTickets(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	tickets, err := h.Service.ListTickets(uint(eventID), accessContext)
	if err != nil {
		if errors.Is(err, event.ErrNotAccessible) {
			c.JSON(http.StatusOK, gin.H{"items": []Ticket{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tickets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": tickets})
}

// ===========================
// 🛠 Update Ticket - PUT /events/:event_id/tickets/:id
func (h *Handler) UpdateTicket(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, ticketID, ok := parseIDs(c)
	if !ok {
		return
	}

	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	t, err := h.Service.UpdateTicket(eventID, ticketID, &req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entity": t})
}

// ===========================
// ✅ Toggle Ticket - PATCH /events/:event_id/tickets/:id/toggle
func (h *Handler) ToggleTicket(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, ticketID, ok := parseIDs(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	t, err := h.Service.ToggleTicket(eventID, ticketID, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_active": t.IsActive})
}

// ===========================
// ❌ Delete Ticket - DELETE /events/:event_id/tickets/:id
func (h *Handler) DeleteTicket(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}

	eventID, ticketID, ok := parseIDs(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	result, err := h.Service.DeleteTicket(eventID, ticketID, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
