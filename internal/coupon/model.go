package coupon

import (
	"time"
)

// Discount kinds
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// Coupon is an event-scoped discount code. UsageCount is server-owned
// and only moves when a registration redeems the code.
type Coupon struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EventID       uint      `gorm:"not null;uniqueIndex:uq_coupons_event_code" json:"event_id"`
	Code          string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_coupons_event_code" json:"code"`
	DiscountType  string    `gorm:"type:varchar(10);not null" json:"discount_type"`
	DiscountValue float64   `gorm:"not null" json:"discount_value"`
	MaxUsage      int       `gorm:"not null" json:"max_usage"`
	UsageCount    int       `gorm:"not null;default:0" json:"usage_count"`
	ExpiresAt     time.Time `gorm:"not null" json:"expires_at"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CouponRequest is the payload for create and update
type CouponRequest struct {
	Code          string  `json:"code" binding:"required"`
	DiscountType  string  `json:"discount_type" binding:"required,oneof=percent fixed"`
	DiscountValue float64 `json:"discount_value" binding:"required"`
	MaxUsage      int     `json:"max_usage" binding:"required"`
	ExpiresAt     string  `json:"expires_at" binding:"required"` // RFC3339
	IsActive      *bool   `json:"is_active,omitempty"`
}

// DeleteResult mirrors the ticket delete contract: codes that have
// been redeemed are retired, never removed.
type DeleteResult struct {
	Action  string `json:"action"` // "deleted" or "disabled"
	Message string `json:"message"`
}
