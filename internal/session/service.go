package session

import (
	"context"
	"errors"
	"time"

	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/middleware"
)

// ErrInvalidScheduleTime is mapped by the handler to the structured
// INVALID_SCHEDULE_TIME error code the console pins to the schedule field
var ErrInvalidScheduleTime = errors.New("end time must be strictly after start time")

type Service struct {
	Repo     *Repository
	EventSvc *event.Service
	AuditSvc auditlog.Service
}

func NewService(r *Repository, eventSvc *event.Service, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, EventSvc: eventSvc, AuditSvc: auditSvc}
}

// buildSession validates the request against the owning event and
// returns a populated model
func (s *Service) buildSession(ev *event.Event, req *SessionRequest, existing *Session) (*Session, error) {
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.New("invalid start_time format. Use RFC3339")
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.New("invalid end_time format. Use RFC3339")
	}
	if !endTime.After(startTime) {
		return nil, ErrInvalidScheduleTime
	}

	// venue requirement is driven by the event's mode
	needsVenue := ev.Mode == event.ModeOffline || ev.Mode == event.ModeHybrid
	if needsVenue {
		if req.Venue == nil || req.Venue.Name == "" || req.Venue.Address == "" || req.Venue.City == "" {
			return nil, errors.New("venue name, address and city are required for offline and hybrid events")
		}
	}

	target := existing
	if target == nil {
		target = &Session{EventID: ev.ID}
	}

	target.Title = req.Title
	target.Description = req.Description
	target.SpeakerName = req.SpeakerName
	target.SpeakerBio = req.SpeakerBio
	target.StartTime = startTime
	target.EndTime = endTime

	if req.Venue != nil && needsVenue {
		target.Venue = *req.Venue
	} else {
		target.Venue = Venue{}
	}

	return target, nil
}

// ===========================
// 🎯 Create Session
func (s *Service) CreateSession(eventID uint, req *SessionRequest, accessContext middleware.AccessContext, ip string) (*Session, error) {
	ev, err := s.EventSvc.GetEventByID(eventID, accessContext)
	if err != nil {
		return nil, err
	}
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}

	sess, err := s.buildSession(ev, req, nil)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.Repo.CountOverlapping(eventID, sess)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrInvalidScheduleTime
	}

	if err := s.Repo.Create(sess); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "SESSION_CREATED",
			map[string]interface{}{"title": req.Title, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "SESSION_CREATED",
		map[string]interface{}{"session_id": sess.ID, "title": sess.Title}, ip, "success")

	return sess, nil
}

// ===========================
// 📄 List Sessions
func (s *Service) ListSessions(eventID uint, accessContext middleware.AccessContext) ([]Session, error) {
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}
	return s.Repo.ListByEvent(eventID)
}

// ===========================
// 🛠 Update Session
func (s *Service) UpdateSession(eventID, sessionID uint, req *SessionRequest, accessContext middleware.AccessContext, ip string) (*Session, error) {
	ev, err := s.EventSvc.GetEventByID(eventID, accessContext)
	if err != nil {
		return nil, err
	}
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}

	existing, err := s.Repo.GetByID(sessionID, eventID)
	if err != nil {
		return nil, errors.New("session not found")
	}

	sess, err := s.buildSession(ev, req, existing)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.Repo.CountOverlapping(eventID, sess)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrInvalidScheduleTime
	}

	if err := s.Repo.Update(sess); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "SESSION_UPDATED",
			map[string]interface{}{"session_id": sessionID, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "SESSION_UPDATED",
		map[string]interface{}{"session_id": sess.ID, "title": sess.Title}, ip, "success")

	return sess, nil
}

// ===========================
// ❌ Delete Session
func (s *Service) DeleteSession(eventID, sessionID uint, accessContext middleware.AccessContext, ip string) error {
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return err
	}
	if !accessContext.CanWrite() {
		return errors.New("write access denied")
	}

	sess, err := s.Repo.GetByID(sessionID, eventID)
	if err != nil {
		return errors.New("session not found")
	}

	if err := s.Repo.Delete(sessionID, eventID); err != nil {
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "SESSION_DELETED",
		map[string]interface{}{"session_id": sessionID, "title": sess.Title}, ip, "success")

	return nil
}
