package regfield

import (
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

func eventIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("event_id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 📄 List Fields - GET /events/:event_id/fields
func (h *Handler) ListFields(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	resp, err := h.Service.ListFields(eventID, accessContext)
	if err != nil {
		// Lacking access to the event reads as an empty form, not a failure
		c.JSON(http.StatusOK, &FieldListResponse{Items: []FieldView{}})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ===========================
// 🎯 Create Field - POST /events/:event_id/fields
func (h *Handler) CreateField(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	field, err := h.Service.CreateField(eventID, &req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entity": field})
}

// ===========================
// 🛠 Update Field - PUT /events/:event_id/fields/:id
func (h *Handler) UpdateField(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	fieldID, err := strconv.Atoi(c.Param("id"))
	if err != nil || fieldID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid field ID"})
		return
	}

	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	field, err := h.Service.UpdateField(eventID, uint(fieldID), &req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entity": field})
}

// ===========================
// ❌ Delete Field - DELETE /events/:event_id/fields/:id
func (h *Handler) DeleteField(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	fieldID, err := strconv.Atoi(c.Param("id"))
	if err != nil || fieldID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid field ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.DeleteField(eventID, uint(fieldID), accessContext, ip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "field deleted successfully"})
}

// ===========================
// 🔀 Reorder Fields - PATCH /events/:event_id/fields/order
func (h *Handler) ReorderFields(c *gin.Context) {
	accessContext, ok := getAccessContext(c)
	if !ok {
		return
	}
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.ReorderFields(eventID, &req, accessContext, ip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order updated"})
}
