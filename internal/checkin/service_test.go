package checkin

import (
	"regexp"
	"testing"
)

func TestGenerateOTPIsSixDigits(t *testing.T) {
	shape := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 200; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP() error: %v", err)
		}
		if !shape.MatchString(otp) {
			t.Fatalf("GenerateOTP() = %q, want six digits", otp)
		}
	}
}
