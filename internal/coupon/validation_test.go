package coupon

import (
	"testing"
	"time"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"early-bird", "EARLY-BIRD"},
		{"  SAVE20  ", "SAVE20"},
		{"vip_pass", "VIP_PASS"},
	}
	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateCode(t *testing.T) {
	valid := []string{"ABC", "SAVE20", "EARLY-BIRD", "VIP_PASS_2026", "A1B2C3D4E5F6G7H8I9J0"}
	for _, code := range valid {
		if err := ValidateCode(code); err != nil {
			t.Errorf("ValidateCode(%q) unexpected error: %v", code, err)
		}
	}

	invalid := []string{"", "AB", "lower", "HAS SPACE", "TOO-LONG-FOR-THE-LIMIT", "EMOJI🎫"}
	for _, code := range invalid {
		if err := ValidateCode(code); err == nil {
			t.Errorf("ValidateCode(%q) expected error, got nil", code)
		}
	}
}

func TestValidateCouponInput(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name          string
		discountType  string
		discountValue float64
		maxUsage      int
		expiresAt     time.Time
		wantErr       bool
	}{
		{"valid percent", DiscountPercent, 25, 100, future, false},
		{"valid fixed", DiscountFixed, 150, 1, future, false},
		{"percent over 100", DiscountPercent, 101, 100, future, true},
		{"zero percent", DiscountPercent, 0, 100, future, true},
		{"negative fixed", DiscountFixed, -5, 100, future, true},
		{"unknown type", "bogus", 10, 100, future, true},
		{"zero max usage", DiscountPercent, 10, 0, future, true},
		{"max usage over cap", DiscountPercent, 10, 10001, future, true},
		{"expires exactly now", DiscountPercent, 10, 100, now, true},
		{"expired", DiscountPercent, 10, 100, now.Add(-time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCouponInput(tt.discountType, tt.discountValue, tt.maxUsage, tt.expiresAt, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCouponInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedeemable(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	base := Coupon{
		Code: "SAVE20", DiscountType: DiscountPercent, DiscountValue: 20,
		MaxUsage: 10, UsageCount: 0, ExpiresAt: now.Add(time.Hour), IsActive: true,
	}

	t.Run("fresh coupon redeems", func(t *testing.T) {
		c := base
		if err := Redeemable(&c, now); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("inactive rejected", func(t *testing.T) {
		c := base
		c.IsActive = false
		if err := Redeemable(&c, now); err == nil {
			t.Error("expected error for inactive coupon")
		}
	})
	t.Run("expired rejected", func(t *testing.T) {
		c := base
		c.ExpiresAt = now.Add(-time.Minute)
		if err := Redeemable(&c, now); err == nil {
			t.Error("expected error for expired coupon")
		}
	})
	t.Run("cap reached rejected", func(t *testing.T) {
		c := base
		c.UsageCount = 10
		if err := Redeemable(&c, now); err == nil {
			t.Error("expected error when usage cap reached")
		}
	})
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		coupon Coupon
		price  float64
		want   float64
	}{
		{"percent", Coupon{DiscountType: DiscountPercent, DiscountValue: 25}, 200, 150},
		{"fixed", Coupon{DiscountType: DiscountFixed, DiscountValue: 50}, 200, 150},
		{"fixed floors at zero", Coupon{DiscountType: DiscountFixed, DiscountValue: 500}, 200, 0},
		{"full percent", Coupon{DiscountType: DiscountPercent, DiscountValue: 100}, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(&tt.coupon, tt.price); got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}
