package referral

import (
	"errors"
	"testing"
)

// A missing owner must fail before the service touches any
// collaborator, so a nil-dependency Service is enough to prove the
// request leaves no trace.
func TestBuildReferralRequiresOwnerBeforeAnyWork(t *testing.T) {
	s := &Service{}
	req := &ReferralRequest{
		Code:      "TEAM-ALPHA",
		OwnerID:   0,
		MaxUsage:  50,
		ExpiresAt: "2030-01-01T00:00:00Z",
	}

	_, err := s.buildReferral(7, req, nil)
	if !errors.Is(err, ErrOwnerRequired) {
		t.Fatalf("buildReferral() error = %v, want ErrOwnerRequired", err)
	}
	if err.Error() != "User assignment is required" {
		t.Errorf("error message = %q, want %q", err.Error(), "User assignment is required")
	}
}

func TestDeleteActionKeepsReferralsWithUses(t *testing.T) {
	tests := []struct {
		name       string
		usageCount int
		want       string
	}{
		{"unused codes are removed", 0, "deleted"},
		{"one use disables", 1, "disabled"},
		{"many uses disable", 120, "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeleteAction(tt.usageCount); got != tt.want {
				t.Errorf("DeleteAction(%d) = %q, want %q", tt.usageCount, got, tt.want)
			}
		})
	}
}

func TestReferralCodePattern(t *testing.T) {
	valid := []string{"REF-01", "TEAM_BLUE", "ABC"}
	for _, code := range valid {
		if !codePattern.MatchString(code) {
			t.Errorf("codePattern rejected %q", code)
		}
	}
	invalid := []string{"ab", "has space", "lower-case", ""}
	for _, code := range invalid {
		if codePattern.MatchString(code) {
			t.Errorf("codePattern accepted %q", code)
		}
	}
}
