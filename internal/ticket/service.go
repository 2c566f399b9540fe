package ticket

import (
	"context"
	"errors"

	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/middleware"
)

// ErrSoldOut is returned when a registration races past the last seat
var ErrSoldOut = errors.New("ticket is sold out")

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

func validateTicketInput(req *TicketRequest) error {
	if req.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if req.Capacity < 0 {
		return errors.New("capacity cannot be negative")
	}
	return nil
}

// DeleteAction decides between removing a ticket and retiring it.
// Rows with recorded sales stay for reporting and refunds.
func DeleteAction(sold int) string {
	if sold > 0 {
		return "disabled"
	}
	return "deleted"
}

// ===========================
// 🎯 Create Ticket
func (s *Service) CreateTicket(eventID uint, req *TicketRequest, accessContext middleware.AccessContext, ip string) (*Ticket, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}
	if err := validateTicketInput(req); err != nil {
		return nil, err
	}

	t := &Ticket{
		EventID:  eventID,
		Name:     req.Name,
		Price:    req.Price,
		Capacity: req.Capacity,
		IsActive: true,
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "TICKET_CREATED",
		map[string]interface{}{"ticket_id": t.ID, "name": t.Name, "price": t.Price}, ip, "success")

	return t, nil
}

// ===========================
// 📄 List Tickets
func (s *Service) ListTickets(eventID uint, accessContext middleware.AccessContext) ([]Ticket, error) {
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}
	return s.Repo.ListByEvent(eventID)
}

// ===========================
// 🛠 Update Ticket
func (s *Service) UpdateTicket(eventID, ticketID uint, req *TicketRequest, accessContext middleware.AccessContext, ip string) (*Ticket, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}
	if err := validateTicketInput(req); err != nil {
		return nil, err
	}

	t, err := s.Repo.GetByID(ticketID)
	if err != nil {
		return nil, errors.New("ticket not found")
	}
	if t.EventID != eventID {
		return nil, errors.New("ticket does not belong to this event")
	}
	if req.Capacity != 0 && req.Capacity < t.Sold {
		return nil, errors.New("capacity cannot be below tickets already sold")
	}

	t.Name = req.Name
	t.Price = req.Price
	t.Capacity = req.Capacity
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(t); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "TICKET_UPDATED",
		map[string]interface{}{"ticket_id": t.ID, "name": t.Name}, ip, "success")

	return t, nil
}

// ===========================
// ✅ Toggle Ticket
// Returns the authoritative state so the console can settle its
// optimistic switch against what the server actually stored.
func (s *Service) ToggleTicket(eventID, ticketID uint, accessContext middleware.AccessContext, ip string) (*Ticket, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	t, err := s.Repo.GetByID(ticketID)
	if err != nil {
		return nil, errors.New("ticket not found")
	}
	if t.EventID != eventID {
		return nil, errors.New("ticket does not belong to this event")
	}

	t.IsActive = !t.IsActive
	if err := s.Repo.Update(t); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "TICKET_TOGGLED",
		map[string]interface{}{"ticket_id": t.ID, "is_active": t.IsActive}, ip, "success")

	return t, nil
}

// ===========================
// ❌ Delete Ticket
func (s *Service) DeleteTicket(eventID, ticketID uint, accessContext middleware.AccessContext, ip string) (*DeleteResult, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	t, err := s.Repo.GetByID(ticketID)
	if err != nil {
		return nil, errors.New("ticket not found")
	}
	if t.EventID != eventID {
		return nil, errors.New("ticket does not belong to this event")
	}

	action := DeleteAction(t.Sold)
	if action == "disabled" {
		t.IsActive = false
		if err := s.Repo.Update(t); err != nil {
			return nil, err
		}
	} else {
		if err := s.Repo.Delete(t.ID); err != nil {
			return nil, err
		}
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "TICKET_DELETED",
		map[string]interface{}{"ticket_id": t.ID, "action": action}, ip, "success")

	result := &DeleteResult{Action: action}
	if action == "disabled" {
		result.Message = "ticket has sales and was disabled instead of deleted"
	} else {
		result.Message = "ticket deleted successfully"
	}
	return result, nil
}
