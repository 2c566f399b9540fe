package coupon

import (
	"testing"
)

func TestDeleteActionKeepsCouponsWithRedemptions(t *testing.T) {
	tests := []struct {
		name       string
		usageCount int
		want       string
	}{
		{"unused coupons are removed", 0, "deleted"},
		{"one redemption disables", 1, "disabled"},
		{"many redemptions disable", 500, "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeleteAction(tt.usageCount); got != tt.want {
				t.Errorf("DeleteAction(%d) = %q, want %q", tt.usageCount, got, tt.want)
			}
		})
	}
}
