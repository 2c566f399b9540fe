package announcement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/middleware"
	"github.com/evently-hq/event-management-backend/utils"
)

type Service struct {
	Repo     *Repository
	EventSvc *event.Service
	AuditSvc auditlog.Service
}

func NewService(r *Repository, eventSvc *event.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		EventSvc: eventSvc,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 🎯 Create Announcement
// The row is stored pending and the actual fan-out happens on the
// consumer side, so the request returns as soon as kafka accepts it.
func (s *Service) CreateAnnouncement(eventID uint, req *AnnouncementRequest, accessContext middleware.AccessContext, ip string) (*Announcement, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	a := &Announcement{
		EventID:   eventID,
		Subject:   req.Subject,
		Body:      req.Body,
		Channel:   req.Channel,
		Audience:  req.Audience,
		Status:    StatusPending,
		CreatedBy: accessContext.UserID,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(DispatchMessage{AnnouncementID: a.ID, EventID: eventID})
	if err != nil {
		return nil, err
	}
	if err := utils.PublishAnnouncement(context.Background(), fmt.Sprintf("event-%d", eventID), payload); err != nil {
		// keep the row; the organizer can retry from the log
		_ = s.Repo.MarkFailed(a.ID, "enqueue failed: "+err.Error())
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "ANNOUNCEMENT_CREATED",
			map[string]interface{}{"announcement_id": a.ID, "error": err.Error()}, ip, "failure")
		return nil, errors.New("announcement could not be queued for delivery")
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "ANNOUNCEMENT_CREATED",
		map[string]interface{}{"announcement_id": a.ID, "channel": a.Channel, "audience": a.Audience}, ip, "success")

	return a, nil
}

// ===========================
// 📄 List Announcements
func (s *Service) ListAnnouncements(eventID uint, accessContext middleware.AccessContext) ([]Announcement, error) {
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}
	return s.Repo.ListByEvent(eventID)
}

// ===========================
// 🔁 Retry Announcement
// Re-enqueues a failed blast. Pending and sent rows are left alone.
func (s *Service) RetryAnnouncement(eventID, announcementID uint, accessContext middleware.AccessContext, ip string) (*Announcement, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	a, err := s.Repo.GetByID(announcementID)
	if err != nil {
		return nil, errors.New("announcement not found")
	}
	if a.EventID != eventID {
		return nil, errors.New("announcement does not belong to this event")
	}
	if a.Status != StatusFailed {
		return nil, errors.New("only failed announcements can be retried")
	}

	payload, err := json.Marshal(DispatchMessage{AnnouncementID: a.ID, EventID: eventID})
	if err != nil {
		return nil, err
	}
	if err := utils.PublishAnnouncement(context.Background(), fmt.Sprintf("event-%d", eventID), payload); err != nil {
		return nil, errors.New("announcement could not be queued for delivery")
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "ANNOUNCEMENT_RETRIED",
		map[string]interface{}{"announcement_id": a.ID}, ip, "success")

	return a, nil
}
