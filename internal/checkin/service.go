package checkin

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/auth"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/internal/registration"
	"github.com/evently-hq/event-management-backend/middleware"
	"github.com/evently-hq/event-management-backend/utils"
)

// ErrAlreadyCheckedIn marks a second scan of the same pass
var ErrAlreadyCheckedIn = errors.New("already checked in")

// OTPTTL is how long an issued code stays redeemable
const OTPTTL = 5 * time.Minute

type Service struct {
	RegRepo   *registration.Repository
	EventRepo *event.Repository
	AuthSvc   auth.Service
	AuditSvc  auditlog.Service
}

func NewService(regRepo *registration.Repository, eventRepo *event.Repository, authSvc auth.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		RegRepo:   regRepo,
		EventRepo: eventRepo,
		AuthSvc:   authSvc,
		AuditSvc:  auditSvc,
	}
}

// GenerateOTP draws a 6-digit code from crypto/rand
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *Service) guardEvent(eventID uint, accessContext middleware.AccessContext) error {
	if !accessContext.CanWrite() {
		return errors.New("write access denied")
	}
	ev, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		return errors.New("event not found")
	}
	organizerID := accessContext.GetAccessibleOrganizerID()
	if organizerID == nil || ev.OrganizerID != *organizerID {
		return errors.New("event does not belong to your organization")
	}
	return nil
}

func (s *Service) markAttendance(reg *registration.Registration, eventID uint, accessContext middleware.AccessContext, ip, method string) (*CheckinResult, error) {
	ctx := context.Background()

	if reg.EventID != eventID {
		return nil, errors.New("registration does not belong to this event")
	}
	if reg.Status != registration.StatusConfirmed {
		return nil, errors.New("registration is not confirmed")
	}

	now := time.Now()
	marked, err := s.RegRepo.MarkCheckedIn(reg.ID, now)
	if err != nil {
		return nil, err
	}
	if !marked {
		s.AuditSvc.LogAction(ctx, &accessContext.UserID, &eventID, "CHECKIN_REJECTED",
			map[string]interface{}{"registration_id": reg.ID, "method": method, "reason": "already checked in"}, ip, "failure")
		return nil, ErrAlreadyCheckedIn
	}

	s.AuditSvc.LogAction(ctx, &accessContext.UserID, &eventID, "CHECKIN_COMPLETED",
		map[string]interface{}{"registration_id": reg.ID, "method": method}, ip, "success")

	result := &CheckinResult{
		RegistrationID: reg.ID,
		CheckedInAt:    now.Format(time.RFC3339),
	}
	if user, err := s.AuthSvc.GetUserByID(reg.UserID); err == nil {
		result.AttendeeName = user.FullName
	}
	return result, nil
}

// ===========================
// ✅ QR Check-in
func (s *Service) CheckinByQR(eventID uint, code string, accessContext middleware.AccessContext, ip string) (*CheckinResult, error) {
	if err := s.guardEvent(eventID, accessContext); err != nil {
		return nil, err
	}

	reg, err := s.RegRepo.GetByCheckinCode(code)
	if err != nil {
		return nil, errors.New("check-in code not found")
	}
	return s.markAttendance(reg, eventID, accessContext, ip, "qr")
}

// ===========================
// 🔐 Request OTP
// The code lands in the attendee's inbox, never in the API response.
func (s *Service) RequestOTP(eventID, registrationID uint, accessContext middleware.AccessContext, ip string) error {
	if err := s.guardEvent(eventID, accessContext); err != nil {
		return err
	}

	reg, err := s.RegRepo.GetByID(registrationID)
	if err != nil {
		return errors.New("registration not found")
	}
	if reg.EventID != eventID {
		return errors.New("registration does not belong to this event")
	}
	if reg.Status != registration.StatusConfirmed {
		return errors.New("registration is not confirmed")
	}
	if reg.CheckedInAt != nil {
		return ErrAlreadyCheckedIn
	}

	otp, err := GenerateOTP()
	if err != nil {
		return err
	}
	if err := utils.StoreCheckinOTP(reg.ID, otp, OTPTTL); err != nil {
		return err
	}

	ev, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		return err
	}
	user, err := s.AuthSvc.GetUserByID(reg.UserID)
	if err != nil {
		return errors.New("attendee account not found")
	}
	go func() {
		if err := utils.SendCheckinOTP(user.Email, ev.Title, otp); err != nil {
			log.Printf("check-in OTP email failed for %s: %v", user.Email, err)
		}
	}()

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "CHECKIN_OTP_ISSUED",
		map[string]interface{}{"registration_id": reg.ID}, ip, "success")

	return nil
}

// ===========================
// 🔓 Verify OTP
// The redis GETDEL makes each code single-use even under concurrent
// verification attempts.
func (s *Service) VerifyOTP(eventID, registrationID uint, otp string, accessContext middleware.AccessContext, ip string) (*CheckinResult, error) {
	if err := s.guardEvent(eventID, accessContext); err != nil {
		return nil, err
	}

	reg, err := s.RegRepo.GetByID(registrationID)
	if err != nil {
		return nil, errors.New("registration not found")
	}

	stored, err := utils.ConsumeCheckinOTP(registrationID)
	if err != nil || stored == "" {
		return nil, errors.New("OTP expired or not issued")
	}
	if stored != otp {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "CHECKIN_REJECTED",
			map[string]interface{}{"registration_id": registrationID, "method": "otp", "reason": "wrong code"}, ip, "failure")
		return nil, errors.New("invalid OTP")
	}

	return s.markAttendance(reg, eventID, accessContext, ip, "otp")
}

// ===========================
// 📊 Check-in Stats
func (s *Service) GetStats(eventID uint, accessContext middleware.AccessContext) (*StatsResponse, error) {
	if !accessContext.CanRead() {
		return nil, errors.New("read access denied")
	}
	ev, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		return nil, errors.New("event not found")
	}
	organizerID := accessContext.GetAccessibleOrganizerID()
	if organizerID == nil || ev.OrganizerID != *organizerID {
		return nil, errors.New("event does not belong to your organization")
	}

	total, checkedIn, err := s.RegRepo.CountByEvent(eventID)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{Total: total, CheckedIn: checkedIn}, nil
}
