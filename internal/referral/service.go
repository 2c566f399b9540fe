package referral

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/auth"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/middleware"
)

// ErrOwnerRequired is returned before anything is written when the
// request arrives without an assigned member
var ErrOwnerRequired = errors.New("User assignment is required")

var codePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,20}$`)

// DeleteAction decides between removing a referral code and retiring
// it. Rows with recorded uses stay for revenue attribution.
func DeleteAction(usageCount int) string {
	if usageCount > 0 {
		return "disabled"
	}
	return "deleted"
}

type Service struct {
	Repo     *Repository
	EventSvc *event.Service
	AuthSvc  auth.Service
	AuditSvc auditlog.Service
}

func NewService(r *Repository, eventSvc *event.Service, authSvc auth.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		EventSvc: eventSvc,
		AuthSvc:  authSvc,
		AuditSvc: auditSvc,
	}
}

func (s *Service) buildReferral(eventID uint, req *ReferralRequest, existing *ReferralCode) (*ReferralCode, error) {
	// owner first: a missing assignment must fail before any other
	// work so the request leaves no trace
	if req.OwnerID == 0 {
		return nil, ErrOwnerRequired
	}
	if _, err := s.AuthSvc.GetUserByID(req.OwnerID); err != nil {
		return nil, errors.New("assigned user not found")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !codePattern.MatchString(code) {
		return nil, errors.New("code must be 3-20 characters of A-Z, 0-9, underscore or hyphen")
	}
	if req.MaxUsage < 1 || req.MaxUsage > 10000 {
		return nil, errors.New("max_usage must be between 1 and 10000")
	}

	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return nil, errors.New("invalid expires_at format. Use RFC3339")
	}
	if !expiresAt.After(time.Now()) {
		return nil, errors.New("expires_at must be in the future")
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
		return nil, errors.New("a referral code with this code already exists for this event")
	}

	rc := existing
	if rc == nil {
		rc = &ReferralCode{EventID: eventID, IsActive: true}
	}
	rc.Code = code
	rc.OwnerID = req.OwnerID
	rc.MaxUsage = req.MaxUsage
	rc.ExpiresAt = expiresAt
	if req.IsActive != nil {
		rc.IsActive = *req.IsActive
	}
	return rc, nil
}

// ===========================
// 🎯 Create Referral Code
func (s *Service) CreateReferral(eventID uint, req *ReferralRequest, accessContext middleware.AccessContext, ip string) (*ReferralCode, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	rc, err := s.buildReferral(eventID, req, nil)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(rc); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "REFERRAL_CREATED",
		map[string]interface{}{"referral_id": rc.ID, "code": rc.Code, "owner_id": rc.OwnerID}, ip, "success")

	return rc, nil
}

// ===========================
// 📄 List Referral Codes
func (s *Service) ListReferrals(eventID uint, accessContext middleware.AccessContext) ([]ReferralCode, error) {
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}
	return s.Repo.ListByEvent(eventID)
}

// ===========================
// 🛠 Update Referral Code
func (s *Service) UpdateReferral(eventID, referralID uint, req *ReferralRequest, accessContext middleware.AccessContext, ip string) (*ReferralCode, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByID(referralID)
	if err != nil {
		return nil, errors.New("referral code not found")
	}
	if existing.EventID != eventID {
		return nil, errors.New("referral code does not belong to this event")
	}

	rc, err := s.buildReferral(eventID, req, existing)
	if err != nil {
		return nil, err
	}
	if rc.MaxUsage < rc.UsageCount {
		return nil, errors.New("max_usage cannot be below uses already recorded")
	}
	if err := s.Repo.Update(rc); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "REFERRAL_UPDATED",
		map[string]interface{}{"referral_id": rc.ID, "code": rc.Code}, ip, "success")

	return rc, nil
}

// ===========================
// ✅ Toggle Referral Code
func (s *Service) ToggleReferral(eventID, referralID uint, accessContext middleware.AccessContext, ip string) (*ReferralCode, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	rc, err := s.Repo.GetByID(referralID)
	if err != nil {
		return nil, errors.New("referral code not found")
	}
	if rc.EventID != eventID {
		return nil, errors.New("referral code does not belong to this event")
	}

	rc.IsActive = !rc.IsActive
	if err := s.Repo.Update(rc); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "REFERRAL_TOGGLED",
		map[string]interface{}{"referral_id": rc.ID, "is_active": rc.IsActive}, ip, "success")

	return rc, nil
}

// ===========================
// ❌ Delete Referral Code
func (s *Service) DeleteReferral(eventID, referralID uint, accessContext middleware.AccessContext, ip string) (*DeleteResult, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}

	rc, err := s.Repo.GetByID(referralID)
	if err != nil {
		return nil, errors.New("referral code not found")
	}
	if rc.EventID != eventID {
		return nil, errors.New("referral code does not belong to this event")
	}

	action := DeleteAction(rc.UsageCount)
	if action == "disabled" {
		rc.IsActive = false
		if err := s.Repo.Update(rc); err != nil {
			return nil, err
		}
	} else {
		if err := s.Repo.Delete(rc.ID); err != nil {
			return nil, err
		}
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "REFERRAL_DELETED",
		map[string]interface{}{"referral_id": rc.ID, "action": action}, ip, "success")

	result := &DeleteResult{Action: action}
	if action == "disabled" {
		result.Message = "referral code has uses and was disabled instead of deleted"
	} else {
		result.Message = "referral code deleted successfully"
	}
	return result, nil
}

// ===========================
// 📊 Usage Stats
func (s *Service) GetUsageStats(eventID uint, accessContext middleware.AccessContext) ([]UsageStats, error) {
	if _, err := s.EventSvc.GetEventByID(eventID, accessContext); err != nil {
		return nil, err
	}
	return s.Repo.UsageStats(eventID)
}

// ===========================
// 🔍 Resolve Referral For Use
// Called by the registration flow when a referral code is supplied.
func (s *Service) ResolveForUse(eventID uint, code string) (*ReferralCode, error) {
	rc, err := s.Repo.GetByCode(eventID, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, errors.New("referral code not found")
	}
	if !rc.IsActive {
		return nil, errors.New("referral code is not active")
	}
	if !rc.ExpiresAt.After(time.Now()) {
		return nil, errors.New("referral code has expired")
	}
	if rc.UsageCount >= rc.MaxUsage {
		return nil, errors.New("referral code usage limit reached")
	}
	return rc, nil
}
