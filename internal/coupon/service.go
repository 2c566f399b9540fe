package coupon

import (
	"context"
	"errors"
	"time"

	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/middleware"
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

// DeleteAction decides between removing a coupon and retiring it.
// Rows with recorded redemptions stay for reporting.
func DeleteAction(usageCount int) string {
	if usageCount > 0 {
		return "disabled"
	}
	return "deleted"
}

func (s *Service) buildCoupon(eventID uint, req *CouponRequest, existing *Coupon) (*Coupon, error) {
	code := NormalizeCode(req.Code)
	if err := ValidateCode(code); err != nil {
		return nil, err
	}

	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return nil, errors.New("invalid expires_at format. Use RFC3339")
	}

	if err := ValidateCouponInput(req.DiscountType, req.DiscountValue, req.MaxUsage, expiresAt, time.Now()); err != nil {
		return nil, err
	}

	var excludeID uint
	if existing != nil {
		excludeID = existing.ID
	}
	exists, err := s.Repo.CodeExists(eventID, code, excludeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("a coupon with this code already exists for this event")
	}

	c := existing
	if c == nil {
		c = &Coupon{EventID: eventID, IsActive: true}
	}
	c.Code = code
	c.DiscountType = req.DiscountType
	c.DiscountValue = req.DiscountValue
	c.MaxUsage = req.MaxUsage
	c.ExpiresAt = expiresAt
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return c, nil
}

// ===========================
// 🎯 Create Coupon
func (s *Service) CreateCoupon(eventID uint, req *CouponRequest, accessContext middleware.AccessContext, ip string) (*Coupon, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	c, err := s.buildCoupon(eventID, req, nil)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "COUPON_CREATED",
		map[string]interface{}{"coupon_id": c.ID, "code": c.Code}, ip, "success")

	return c, nil
}

// ===========================
// 📄 List Coupons
func (s *Service) ListCoupons(eventID uint, accessContext middleware.AccessContext) ([]Coupon, error) {
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}
	return s.Repo.ListByEvent(eventID)
}

// ===========================
// 🛠 Update Coupon
func (s *Service) UpdateCoupon(eventID, couponID uint, req *CouponRequest, accessContext middleware.AccessContext, ip string) (*Coupon, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByID(couponID)
	if err != nil {
		return nil, errors.New("coupon not found")
	}
	if existing.EventID != eventID {
		return nil, errors.New("coupon does not belong to this event")
	}

	c, err := s.buildCoupon(eventID, req, existing)
	if err != nil {
		return nil, err
	}
	if c.MaxUsage < c.UsageCount {
		return nil, errors.New("max_usage cannot be below redemptions already recorded")
	}
	if err := s.Repo.Update(c); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "COUPON_UPDATED",
		map[string]interface{}{"coupon_id": c.ID, "code": c.Code}, ip, "success")

	return c, nil
}

// ===========================
// ✅ Toggle Coupon
func (s *Service) ToggleCoupon(eventID, couponID uint, accessContext middleware.AccessContext, ip string) (*Coupon, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	c, err := s.Repo.GetByID(couponID)
	if err != nil {
		return nil, errors.New("coupon not found")
	}
	if c.EventID != eventID {
		return nil, errors.New("coupon does not belong to this event")
	}

	c.IsActive = !c.IsActive
	if err := s.Repo.Update(c); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "COUPON_TOGGLED",
		map[string]interface{}{"coupon_id": c.ID, "is_active": c.IsActive}, ip, "success")

	return c, nil
}

// ===========================
// ❌ Delete Coupon
func (s *Service) DeleteCoupon(eventID, couponID uint, accessContext middleware.AccessContext, ip string) (*DeleteResult, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	c, err := s.Repo.GetByID(couponID)
	if err != nil {
		return nil, errors.New("coupon not found")
	}
	if c.EventID != eventID {
		return nil, errors.New("coupon does not belong to this event")
	}

	action := DeleteAction(c.UsageCount)
	if action == "disabled" {
		c.IsActive = false
		if err := s.Repo.Update(c); err != nil {
			return nil, err
		}
	} else {
		if err := s.Repo.Delete(c.ID); err != nil {
			return nil, err
		}
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "COUPON_DELETED",
		map[string]interface{}{"coupon_id": c.ID, "action": action}, ip, "success")

	result := &DeleteResult{Action: action}
	if action == "disabled" {
		result.Message = "coupon has redemptions and was disabled instead of deleted"
	} else {
		result.Message = "coupon deleted successfully"
	}
	return result, nil
}

// ===========================
// 🔍 Resolve Coupon For Redemption
// Used by the registration flow, not exposed as a route.
func (s *Service) ResolveForRedemption(eventID uint, code string) (*Coupon, error) {
	c, err := s.Repo.GetByCode(eventID, NormalizeCode(code))
	if err != nil {
		return nil, errors.New("coupon code not found")
	}
	if err := Redeemable(c, time.Now()); err != nil {
		return nil, err
	}
	return c, nil
}
