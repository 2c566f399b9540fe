package reports

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evently-hq/event-management-backend/internal/auth"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/internal/registration"
	"github.com/evently-hq/event-management-backend/internal/ticket"
	"github.com/evently-hq/event-management-backend/middleware"
)

type Service struct {
	Repo       *Repository
	EventRepo  *event.Repository
	RegRepo    *registration.Repository
	TicketRepo *ticket.Repository
	AuthSvc    auth.Service
}

func NewService(repo *Repository, eventRepo *event.Repository, regRepo *registration.Repository, ticketRepo *ticket.Repository, authSvc auth.Service) *Service {
	return &Service{
		Repo:       repo,
		EventRepo:  eventRepo,
		RegRepo:    regRepo,
		TicketRepo: ticketRepo,
		AuthSvc:    authSvc,
	}
}

func (s *Service) guardEvent(eventID uint, accessContext middleware.AccessContext) (*event.Event, error) {
	if !accessContext.CanRead() {
		return nil, event.ErrNotAccessible
	}
	ev, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, event.ErrNotAccessible
		}
		return nil, err
	}
	organizerID := accessContext.GetAccessibleOrganizerID()
	if organizerID == nil || ev.OrganizerID != *organizerID {
		return nil, event.ErrNotAccessible
	}
	return ev, nil
}

// ===========================
// 📊 Revenue Summary
func (s *Service) GetRevenueSummary(eventID uint, accessContext middleware.AccessContext) (*RevenueSummary, error) {
	if _, err := s.guardEvent(eventID, accessContext); err != nil {
		return nil, err
	}

	gross, count, err := s.Repo.GrossAndCount(eventID)
	if err != nil {
		return nil, err
	}
	byTicket, err := s.Repo.RevenueByTicket(eventID)
	if err != nil {
		return nil, err
	}
	byReferral, err := s.Repo.RevenueByReferral(eventID)
	if err != nil {
		return nil, err
	}
	discountTotal, err := s.Repo.CouponDiscountTotal(eventID)
	if err != nil {
		return nil, err
	}

	return &RevenueSummary{
		GrossRevenue:        gross,
		ConfirmedCount:      count,
		CouponDiscountTotal: discountTotal,
		ByTicket:            byTicket,
		ByReferral:          byReferral,
	}, nil
}

// ===========================
// 📈 Time Series
func (s *Service) GetTimeSeries(eventID uint, accessContext middleware.AccessContext) ([]TimeSeriesPoint, error) {
	if _, err := s.guardEvent(eventID, accessContext); err != nil {
		return nil, err
	}
	return s.Repo.TimeSeries(eventID)
}

// ===========================
// 📄 Export Registrations (XLSX)
func (s *Service) ExportRegistrations(eventID uint, accessContext middleware.AccessContext) ([]byte, string, error) {
	if _, err := s.guardEvent(eventID, accessContext); err != nil {
		return nil, "", err
	}

	rows, err := s.Repo.ExportRows(eventID)
	if err != nil {
		return nil, "", err
	}
	summary, err := s.GetRevenueSummary(eventID, accessContext)
	if err != nil {
		return nil, "", err
	}
	return BuildRegistrationsWorkbook(rows, summary)
}

// ===========================
// 🎫 Ticket PDF
// Organizers can print any pass for their event; attendees only their own.
func (s *Service) GetTicketPDF(eventID, registrationID uint, accessContext middleware.AccessContext) ([]byte, string, error) {
	reg, err := s.RegRepo.GetByID(registrationID)
	if err != nil || reg.EventID != eventID {
		return nil, "", errors.New("registration not found")
	}
	if reg.Status != registration.StatusConfirmed {
		return nil, "", errors.New("registration is not confirmed")
	}

	ev, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		return nil, "", errors.New("event not found")
	}

	organizerID := accessContext.GetAccessibleOrganizerID()
	isOrganizerSide := accessContext.CanRead() && organizerID != nil && ev.OrganizerID == *organizerID
	if !isOrganizerSide && reg.UserID != accessContext.UserID {
		return nil, "", errors.New("access denied")
	}

	data := TicketPassData{
		EventTitle:  ev.Title,
		EventTime:   ev.StartTime.Format("Mon, 2 Jan 2006 15:04") + " - " + ev.EndTime.Format("15:04 MST"),
		Location:    ev.Location,
		TicketName:  "General",
		CheckinCode: reg.CheckinCode,
	}
	if user, err := s.AuthSvc.GetUserByID(reg.UserID); err == nil {
		data.AttendeeName = user.FullName
	}
	if tkt, err := s.TicketRepo.GetByID(reg.TicketID); err == nil {
		data.TicketName = tkt.Name
	}
	return BuildTicketPDF(data)
}
