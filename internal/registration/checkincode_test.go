package registration

import (
	"regexp"
	"testing"
)

var codeShape = regexp.MustCompile(`^EVT-[0-9A-F]{8}$`)

func TestNewCheckinCodeShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := NewCheckinCode()
		if !codeShape.MatchString(code) {
			t.Fatalf("NewCheckinCode() = %q, want shape EVT-XXXXXXXX", code)
		}
	}
}

func TestNewCheckinCodeIsUnpredictable(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := NewCheckinCode()
		if seen[code] {
			t.Fatalf("duplicate code %q after %d draws", code, i)
		}
		seen[code] = true
	}
}
