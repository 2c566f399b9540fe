package referral

import (
	"time"
)

// ReferralCode is an event-scoped code attributed to a member of the
// organizer's team. UsageCount is server-owned.
type ReferralCode struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    uint      `gorm:"not null;uniqueIndex:uq_referrals_event_code" json:"event_id"`
	Code       string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_referrals_event_code" json:"code"`
	OwnerID    uint      `gorm:"not null;index" json:"owner_id"`
	MaxUsage   int       `gorm:"not null" json:"max_usage"`
	UsageCount int       `gorm:"not null;default:0" json:"usage_count"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	OwnerName  string `gorm:"-" json:"owner_name,omitempty"`
	OwnerEmail string `gorm:"-" json:"owner_email,omitempty"`
}

// ReferralRequest is the payload for create and update. OwnerID comes
// from the member search picker and is mandatory.
type ReferralRequest struct {
	Code      string `json:"code" binding:"required"`
	OwnerID   uint   `json:"owner_id"`
	MaxUsage  int    `json:"max_usage" binding:"required"`
	ExpiresAt string `json:"expires_at" binding:"required"` // RFC3339
	IsActive  *bool  `json:"is_active,omitempty"`
}

// UsageStats backs the per-code performance table
type UsageStats struct {
	CodeID     uint   `json:"code_id"`
	Code       string `json:"code"`
	OwnerID    uint   `json:"owner_id"`
	OwnerName  string `json:"owner_name"`
	UsageCount int    `json:"usage_count"`
	MaxUsage   int    `json:"max_usage"`
}

// DeleteResult mirrors the ticket and coupon delete contract
type DeleteResult struct {
	Action  string `json:"action"` // "deleted" or "disabled"
	Message string `json:"message"`
}
