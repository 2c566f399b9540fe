package event

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/middleware"
)

// ErrNotAccessible covers the class the console renders as an empty
// state: the event does not exist, sits outside the caller's organizer
// scope, or the caller has no read grant. Database failures are a
// different class and pass through untouched.
var ErrNotAccessible = errors.New("event not found or not accessible")

// Service wraps business logic for organizer events
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(req *CreateEventRequest, accessContext middleware.AccessContext, ip string) (*Event, error) {
	organizerID := accessContext.GetAccessibleOrganizerID()
	if organizerID == nil {
		return nil, errors.New("user is not linked to an organizer account")
	}

	if !accessContext.CanWrite() {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "EVENT_CREATED",
			map[string]interface{}{"title": req.Title, "error": "write access denied"}, ip, "failure")
		return nil, errors.New("write access denied")
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.New("invalid start_time format. Use RFC3339")
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.New("invalid end_time format. Use RFC3339")
	}
	if !endTime.After(startTime) {
		return nil, errors.New("end_time must be after start_time")
	}

	if (req.Mode == ModeOffline || req.Mode == ModeHybrid) && req.Location == "" {
		return nil, errors.New("location is required for offline and hybrid events")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	event := &Event{
		OrganizerID: *organizerID,
		Title:       req.Title,
		Description: req.Description,
		Mode:        req.Mode,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    req.Location,
		Capacity:    req.Capacity,
		IsActive:    isActive,
		CreatedBy:   accessContext.UserID,
	}

	if err := s.Repo.CreateEvent(event); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "EVENT_CREATED",
			map[string]interface{}{"title": req.Title, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &event.ID, "EVENT_CREATED",
		map[string]interface{}{
			"event_id":   event.ID,
			"title":      event.Title,
			"mode":       event.Mode,
			"start_time": event.StartTime.Format(time.RFC3339),
		}, ip, "success")

	return event, nil
}

// ===========================
// 🔍 Get Event by ID with ownership validation
func (s *Service) GetEventByID(id uint, accessContext middleware.AccessContext) (*Event, error) {
	organizerID := accessContext.GetAccessibleOrganizerID()
	if organizerID == nil {
		return nil, ErrNotAccessible
	}

	if !accessContext.CanRead() {
		return nil, ErrNotAccessible
	}

	event, err := s.Repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAccessible
		}
		return nil, err
	}

	if event.OrganizerID != *organizerID {
		return nil, ErrNotAccessible
	}

	return event, nil
}

// ===========================
// 📆 Upcoming Events
func (s *Service) GetUpcomingEvents(accessContext middleware.AccessContext) ([]Event, error) {
	organizerID := accessContext.GetAccessibleOrganizerID()
	if organizerID == nil {
		return nil, errors.New("no accessible organizer")
	}

	if !accessContext.CanRead() {
		return nil, errors.New("read access denied")
	}

	return s.Repo.GetUpcomingEvents(*organizerID)
}

// ===========================
// 📄 List Events with Pagination
func (s *Service) ListEvents(accessContext middleware.AccessContext, limit, offset int, search string) ([]Event, error) {
	organizerID := accessContext.GetAccessibleOrganizerID()
	if organizerID == nil {
		return nil, errors.New("no accessible organizer")
	}

	if !accessContext.CanRead() {
		return nil, errors.New("read access denied")
	}

	return s.Repo.ListEventsByOrganizer(*organizerID, limit, offset, search)
}

// ===========================
// 📊 Dashboard Stats
func (s *Service) GetEventStats(accessContext middleware.AccessContext) (*EventStatsResponse, error) {
	organizerID := accessContext.GetAccessibleOrganizerID()
	if organizerID == nil {
		return nil, errors.New("no accessible organizer")
	}

	if !accessContext.CanRead() {
		return nil, errors.New("read access denied")
	}

	return s.Repo.GetEventStats(*organizerID)
}

// ===========================
// 🛠 Update Event (with ownership check and audit logging)
func (s *Service) UpdateEvent(id uint, req *UpdateEventRequest, accessContext middleware.AccessContext, ip string) (*Event, error) {
	organizerID := accessContext.GetAccessibleOrganizerID()
	if organizerID == nil {
		return nil, errors.New("no accessible organizer")
	}

	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}

	event, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	if event.OrganizerID != *organizerID {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &id, "EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "error": "unauthorized access"}, ip, "failure")
		return nil, errors.New("unauthorized: cannot update this event")
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.New("invalid start_time format. Use RFC3339")
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.New("invalid end_time format. Use RFC3339")
	}
	if !endTime.After(startTime) {
		return nil, errors.New("end_time must be after start_time")
	}

	if (req.Mode == ModeOffline || req.Mode == ModeHybrid) && req.Location == "" {
		return nil, errors.New("location is required for offline and hybrid events")
	}

	originalTitle := event.Title
	originalMode := event.Mode

	event.Title = req.Title
	event.Description = req.Description
	event.Mode = req.Mode
	event.StartTime = startTime
	event.EndTime = endTime
	event.Location = req.Location
	event.Capacity = req.Capacity
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}

	if err := s.Repo.UpdateEvent(event); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &id, "EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "event_title": originalTitle, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	changes := make(map[string]interface{})
	if originalTitle != event.Title {
		changes["title_changed"] = map[string]string{"from": originalTitle, "to": event.Title}
	}
	if originalMode != event.Mode {
		changes["mode_changed"] = map[string]string{"from": originalMode, "to": event.Mode}
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &event.ID, "EVENT_UPDATED",
		map[string]interface{}{"event_id": event.ID, "event_title": event.Title, "changes": changes}, ip, "success")

	return event, nil
}

// ===========================
// ❌ Delete Event (with ownership check and audit logging)
func (s *Service) DeleteEvent(id uint, accessContext middleware.AccessContext, ip string) error {
	organizerID := accessContext.GetAccessibleOrganizerID()
	if organizerID == nil {
		return errors.New("no accessible organizer")
	}

	if !accessContext.CanWrite() {
		return errors.New("write access denied")
	}

	event, err := s.Repo.GetEventByID(id)
	if err != nil {
		return err
	}

	if event.OrganizerID != *organizerID {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &id, "EVENT_DELETED",
			map[string]interface{}{"event_id": id, "error": "unauthorized access"}, ip, "failure")
		return errors.New("unauthorized: cannot delete this event")
	}

	eventTitle := event.Title

	if err := s.Repo.DeleteEvent(id, *organizerID); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &id, "EVENT_DELETED",
			map[string]interface{}{"event_id": id, "event_title": eventTitle, "error": err.Error()}, ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &id, "EVENT_DELETED",
		map[string]interface{}{"event_id": id, "event_title": eventTitle}, ip, "success")

	return nil
}
