package reports

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

func parseEventID(c *gin.Context) (uint, bool) {
	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, false
	}
	return uint(eventID), true
}

// ===========================
// 📊 Revenue Summary - GET /events/:event_id/reports/revenue
func (h *Handler) GetRevenueSummary(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	summary, err := h.Service.GetRevenueSummary(eventID, accessContext)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ===========================
// 📈 Time Series - GET /events/:event_id/reports/timeseries
func (h *Handler) GetTimeSeries(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	points, err := h.Service.GetTimeSeries(eventID, accessContext)
	if err != nil {
		if errors.Is(err, event.ErrNotAccessible) {
			c.JSON(http.StatusOK, gin.H{"items": []TimeSeriesPoint{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch time series"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": points})
}

// ===========================
// 📄 Export Registrations - GET /events/:event_id/reports/export
func (h *Handler) ExportRegistrations(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	data, filename, err := h.Service.ExportRegistrations(eventID, accessContext)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ===========================
// 🎫 Ticket PDF - GET /events/:event_id/registrations/:id/ticket.pdf
func (h *Handler) GetTicketPDF(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	registrationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || registrationID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration ID"})
		return
	}

	data, filename, err := h.Service.GetTicketPDF(eventID, uint(registrationID), accessContext)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", data)
}
