package registration

import (
	"time"

	"gorm.io/datatypes"
)

// Registration lifecycle
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Registration ties an attendee to an event through a ticket. The
// Responses payload holds the answers to the event's custom fields,
// keyed by field name. The partial unique index allows one live
// registration per attendee per event; cancelled rows don't block
// registering again.
type Registration struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventID     uint           `gorm:"not null;index;uniqueIndex:uniq_event_attendee,where:status <> 'cancelled'" json:"event_id"`
	TicketID    uint           `gorm:"not null;index" json:"ticket_id"`
	UserID      uint           `gorm:"not null;index;uniqueIndex:uniq_event_attendee,where:status <> 'cancelled'" json:"user_id"`
	CouponID    *uint          `gorm:"index" json:"coupon_id,omitempty"`
	ReferralID  *uint          `gorm:"index" json:"referral_id,omitempty"`
	Responses   datatypes.JSON `gorm:"type:jsonb" json:"responses"`
	Amount      float64        `gorm:"not null;default:0" json:"amount"`
	Status      string         `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	OrderID     string         `gorm:"type:varchar(64);index" json:"order_id,omitempty"`
	PaymentID   string         `gorm:"type:varchar(64)" json:"payment_id,omitempty"`
	CheckinCode string         `gorm:"type:varchar(16);uniqueIndex" json:"checkin_code"`
	CheckedInAt *time.Time     `json:"checked_in_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// RegisterRequest is the attendee-facing payload
type RegisterRequest struct {
	TicketID     uint                   `json:"ticket_id" binding:"required"`
	CouponCode   string                 `json:"coupon_code"`
	ReferralCode string                 `json:"referral_code"`
	Responses    map[string]interface{} `json:"responses"`
}

// RegisterResponse covers both outcomes: free tickets confirm
// immediately, paid tickets hand back a payment order to complete.
type RegisterResponse struct {
	Registration *Registration `json:"registration,omitempty"`
	OrderID      string        `json:"order_id,omitempty"`
	Amount       float64       `json:"amount,omitempty"`
	Currency     string        `json:"currency,omitempty"`
	RazorpayKey  string        `json:"razorpay_key,omitempty"`
}

// VerifyPaymentRequest completes a paid registration
type VerifyPaymentRequest struct {
	OrderID     string `json:"order_id" binding:"required"`
	PaymentID   string `json:"payment_id" binding:"required"`
	RazorpaySig string `json:"razorpay_signature" binding:"required"`
}

// RegistrationRow is the organizer list view with the attendee joined in
type RegistrationRow struct {
	Registration
	AttendeeName  string `json:"attendee_name"`
	AttendeeEmail string `json:"attendee_email"`
	TicketName    string `json:"ticket_name"`
}
