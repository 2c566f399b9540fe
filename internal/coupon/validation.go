package coupon

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,20}$`)

// NormalizeCode uppercases and trims a code before the shape check,
// so "early-bird" and "EARLY-BIRD" are the same code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode checks the normalized code shape
func ValidateCode(code string) error {
	if !codePattern.MatchString(code) {
		return errors.New("code must be 3-20 characters of A-Z, 0-9, underscore or hyphen")
	}
	return nil
}

// ValidateCouponInput checks everything the database cannot express.
// expiresAt must be strictly in the future at create or edit time.
func ValidateCouponInput(discountType string, discountValue float64, maxUsage int, expiresAt, now time.Time) error {
	switch discountType {
	case DiscountPercent:
		if discountValue <= 0 || discountValue > 100 {
			return errors.New("percent discount must be between 0 and 100")
		}
	case DiscountFixed:
		if discountValue <= 0 {
			return errors.New("fixed discount must be positive")
		}
	default:
		return errors.New("discount_type must be percent or fixed")
	}
	if maxUsage < 1 || maxUsage > 10000 {
		return errors.New("max_usage must be between 1 and 10000")
	}
	if !expiresAt.After(now) {
		return errors.New("expires_at must be in the future")
	}
	return nil
}

// Redeemable reports whether a stored coupon can still be applied
func Redeemable(c *Coupon, now time.Time) error {
	if !c.IsActive {
		return errors.New("coupon is not active")
	}
	if !c.ExpiresAt.After(now) {
		return errors.New("coupon has expired")
	}
	if c.UsageCount >= c.MaxUsage {
		return errors.New("coupon usage limit reached")
	}
	return nil
}

// Apply returns the price after the coupon's discount, floored at zero
func Apply(c *Coupon, price float64) float64 {
	var discounted float64
	switch c.DiscountType {
	case DiscountPercent:
		discounted = price * (1 - c.DiscountValue/100)
	case DiscountFixed:
		discounted = price - c.DiscountValue
	default:
		return price
	}
	if discounted < 0 {
		return 0
	}
	return discounted
}
