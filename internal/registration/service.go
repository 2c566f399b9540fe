package registration

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/evently-hq/event-management-backend/config"
	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/auth"
	"github.com/evently-hq/event-management-backend/internal/coupon"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/internal/referral"
	"github.com/evently-hq/event-management-backend/internal/regfield"
	"github.com/evently-hq/event-management-backend/internal/ticket"
	"github.com/evently-hq/event-management-backend/middleware"
	"github.com/evently-hq/event-management-backend/utils"
	"gorm.io/gorm"
)

// ValidationError carries per-field messages so the form can pin each
// one to its input
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "registration responses failed validation"
}

type Service struct {
	Repo        *Repository
	EventRepo   *event.Repository
	TicketRepo  *ticket.Repository
	CouponSvc   *coupon.Service
	CouponRepo  *coupon.Repository
	ReferralSvc *referral.Service
	RefRepo     *referral.Repository
	FieldSvc    *regfield.Service
	AuthSvc     auth.Service
	AuditSvc    auditlog.Service
	client      *razorpay.Client
	cfg         *config.Config
}

func NewService(
	repo *Repository,
	eventRepo *event.Repository,
	ticketRepo *ticket.Repository,
	couponSvc *coupon.Service,
	couponRepo *coupon.Repository,
	referralSvc *referral.Service,
	refRepo *referral.Repository,
	fieldSvc *regfield.Service,
	authSvc auth.Service,
	auditSvc auditlog.Service,
	cfg *config.Config,
) *Service {
	return &Service{
		Repo:        repo,
		EventRepo:   eventRepo,
		TicketRepo:  ticketRepo,
		CouponSvc:   couponSvc,
		CouponRepo:  couponRepo,
		ReferralSvc: referralSvc,
		RefRepo:     refRepo,
		FieldSvc:    fieldSvc,
		AuthSvc:     authSvc,
		AuditSvc:    auditSvc,
		client:      razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret),
		cfg:         cfg,
	}
}

// ===========================
// 🎯 Register
// Everything is validated before the first write: field answers,
// ticket availability, coupon and referral codes. Free tickets confirm
// in one transaction; paid tickets open a payment order and confirm in
// VerifyPayment.
func (s *Service) Register(eventID uint, req *RegisterRequest, userID uint, ip string) (*RegisterResponse, error) {
	ctx := context.Background()

	ev, err := s.EventRepo.GetEventByID(eventID)
	if err != nil || !ev.IsActive {
		return nil, errors.New("event not found or not open for registration")
	}

	exists, err := s.Repo.ExistsForUser(eventID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("you are already registered for this event")
	}

	// field answers first, so no invalid draft reaches storage
	fields, err := s.FieldSvc.FieldsForEvent(eventID)
	if err != nil {
		return nil, err
	}
	if fieldErrs := regfield.ValidateAnswers(fields, req.Responses); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	tkt, err := s.TicketRepo.GetByID(req.TicketID)
	if err != nil || tkt.EventID != eventID || !tkt.IsActive {
		return nil, errors.New("ticket not available")
	}
	if tkt.Capacity > 0 && tkt.Sold >= tkt.Capacity {
		return nil, ticket.ErrSoldOut
	}
	if ev.Capacity > 0 {
		total, _, err := s.Repo.CountByEvent(eventID)
		if err != nil {
			return nil, err
		}
		if total >= int64(ev.Capacity) {
			return nil, errors.New("event is at capacity")
		}
	}

	amount := tkt.Price
	var cpn *coupon.Coupon
	if req.CouponCode != "" {
		cpn, err = s.CouponSvc.ResolveForRedemption(eventID, req.CouponCode)
		if err != nil {
			return nil, err
		}
		amount = coupon.Apply(cpn, amount)
	}

	var ref *referral.ReferralCode
	if req.ReferralCode != "" {
		ref, err = s.ReferralSvc.ResolveForUse(eventID, req.ReferralCode)
		if err != nil {
			return nil, err
		}
	}

	responses, err := json.Marshal(req.Responses)
	if err != nil {
		return nil, errors.New("invalid responses payload")
	}

	reg := &Registration{
		EventID:     eventID,
		TicketID:    tkt.ID,
		UserID:      userID,
		Responses:   responses,
		Amount:      amount,
		CheckinCode: NewCheckinCode(),
	}
	if cpn != nil {
		reg.CouponID = &cpn.ID
	}
	if ref != nil {
		reg.ReferralID = &ref.ID
	}

	// free path: confirm immediately, counters move in one transaction
	if amount == 0 {
		reg.Status = StatusConfirmed
		if err := s.confirmInTransaction(reg, tkt.ID, reg.CouponID, reg.ReferralID, true); err != nil {
			s.AuditSvc.LogAction(ctx, &userID, &eventID, "REGISTRATION_CREATED",
				map[string]interface{}{"ticket_id": tkt.ID, "error": err.Error()}, ip, "failure")
			return nil, err
		}

		s.AuditSvc.LogAction(ctx, &userID, &eventID, "REGISTRATION_CREATED",
			map[string]interface{}{"registration_id": reg.ID, "ticket_id": tkt.ID, "amount": amount}, ip, "success")

		s.sendConfirmationEmail(userID, ev.Title, reg.CheckinCode)
		return &RegisterResponse{Registration: reg}, nil
	}

	// paid path: open a razorpay order, store a pending row
	order, err := s.client.Order.Create(map[string]interface{}{
		"amount":          int(amount * 100),
		"currency":        "INR",
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"event_id":  eventID,
			"ticket_id": tkt.ID,
			"user_id":   userID,
		},
	}, nil)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &userID, &eventID, "REGISTRATION_PAYMENT_INITIATED",
			map[string]interface{}{"ticket_id": tkt.ID, "error": err.Error()}, ip, "failure")
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}
	orderID, ok := order["id"].(string)
	if !ok {
		return nil, errors.New("unable to extract order_id from Razorpay response")
	}

	reg.Status = StatusPending
	reg.OrderID = orderID
	if err := s.Repo.Create(s.Repo.DB, reg); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, &eventID, "REGISTRATION_PAYMENT_INITIATED",
		map[string]interface{}{"registration_id": reg.ID, "order_id": orderID, "amount": amount}, ip, "success")

	return &RegisterResponse{
		OrderID:     orderID,
		Amount:      amount,
		Currency:    "INR",
		RazorpayKey: s.cfg.RazorpayKey,
	}, nil
}

func (s *Service) confirmInTransaction(reg *Registration, ticketID uint, couponID, referralID *uint, createRow bool) error {
	return s.Repo.Transaction(func(tx *gorm.DB) error {
		if createRow {
			if err := s.Repo.Create(tx, reg); err != nil {
				return err
			}
		}
		if err := s.TicketRepo.IncrementSold(tx, ticketID); err != nil {
			return ticket.ErrSoldOut
		}
		if couponID != nil {
			if err := s.CouponRepo.IncrementUsage(tx, *couponID); err != nil {
				return errors.New("coupon usage limit reached")
			}
		}
		if referralID != nil {
			if err := s.RefRepo.IncrementUsage(tx, *referralID); err != nil {
				return errors.New("referral code usage limit reached")
			}
		}
		return nil
	})
}

// ===========================
// ✅ Verify Payment
func (s *Service) VerifyPayment(req *VerifyPaymentRequest, ip string) (*Registration, error) {
	ctx := context.Background()

	expected := hmac.New(sha256.New, []byte(s.cfg.RazorpaySecret))
	expected.Write([]byte(req.OrderID + "|" + req.PaymentID))
	if hex.EncodeToString(expected.Sum(nil)) != req.RazorpaySig {
		s.AuditSvc.LogAction(ctx, nil, nil, "REGISTRATION_VERIFICATION_FAILED",
			map[string]interface{}{"order_id": req.OrderID, "reason": "invalid payment signature"}, ip, "failure")
		return nil, errors.New("invalid payment signature")
	}

	payment, err := s.client.Payment.Fetch(req.PaymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay payment fetch failed: %w", err)
	}
	status, ok := payment["status"].(string)
	if !ok {
		return nil, errors.New("invalid payment status format")
	}

	reg, err := s.Repo.GetByOrderID(req.OrderID)
	if err != nil {
		return nil, errors.New("registration not found for given order ID")
	}

	if reg.Status == StatusConfirmed {
		return reg, nil // already processed
	}

	if status != "captured" {
		_ = s.Repo.MarkFailedByOrderID(req.OrderID, req.PaymentID)
		s.AuditSvc.LogAction(ctx, &reg.UserID, &reg.EventID, "REGISTRATION_PAYMENT_FAILED",
			map[string]interface{}{"order_id": req.OrderID, "razorpay_status": status}, ip, "failure")
		return nil, errors.New("payment was not captured")
	}

	claimed, err := s.settleOrder(reg, req.OrderID, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// a concurrent verify call settled this order first
		return s.Repo.GetByOrderID(req.OrderID)
	}
	reg.Status = StatusConfirmed
	reg.PaymentID = req.PaymentID

	s.AuditSvc.LogAction(ctx, &reg.UserID, &reg.EventID, "REGISTRATION_CONFIRMED",
		map[string]interface{}{"registration_id": reg.ID, "order_id": req.OrderID, "amount": reg.Amount}, ip, "success")

	if ev, err := s.EventRepo.GetEventByID(reg.EventID); err == nil {
		s.sendConfirmationEmail(reg.UserID, ev.Title, reg.CheckinCode)
	}
	return reg, nil
}

// settleOrder confirms the pending row and moves the sold and usage
// counters in one transaction. The conditional pending->confirmed
// update is the claim on the order; a caller that loses it leaves
// every counter untouched.
func (s *Service) settleOrder(reg *Registration, orderID, paymentID string) (bool, error) {
	claimed := false
	err := s.Repo.Transaction(func(tx *gorm.DB) error {
		var err error
		claimed, err = s.Repo.ConfirmByOrderID(tx, orderID, paymentID)
		if err != nil || !claimed {
			return err
		}
		if err := s.TicketRepo.IncrementSold(tx, reg.TicketID); err != nil {
			return ticket.ErrSoldOut
		}
		if reg.CouponID != nil {
			if err := s.CouponRepo.IncrementUsage(tx, *reg.CouponID); err != nil {
				return errors.New("coupon usage limit reached")
			}
		}
		if reg.ReferralID != nil {
			if err := s.RefRepo.IncrementUsage(tx, *reg.ReferralID); err != nil {
				return errors.New("referral code usage limit reached")
			}
		}
		return nil
	})
	return claimed, err
}

func (s *Service) sendConfirmationEmail(userID uint, eventTitle, checkinCode string) {
	user, err := s.AuthSvc.GetUserByID(userID)
	if err != nil {
		return
	}
	go func() {
		if err := utils.SendRegistrationConfirmation(user.Email, eventTitle, checkinCode); err != nil {
			log.Printf("registration confirmation email failed for %s: %v", user.Email, err)
		}
	}()
}

// ===========================
// 📄 List Registrations (organizer view)
func (s *Service) ListRegistrations(eventID uint, accessContext middleware.AccessContext, limit, offset int) ([]RegistrationRow, error) {
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
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.Repo.ListByEvent(eventID, limit, offset)
}

// ===========================
// 📊 Registration Counts
func (s *Service) GetCounts(eventID uint, accessContext middleware.AccessContext) (total, checkedIn int64, err error) {
	if !accessContext.CanRead() {
		return 0, 0, errors.New("read access denied")
	}
	return s.Repo.CountByEvent(eventID)
}
