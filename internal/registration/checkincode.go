package registration

import (
	"strings"

	"github.com/google/uuid"
)

// NewCheckinCode issues the code printed on the attendee's QR pass.
// Shape: EVT-XXXXXXXX where X is an uppercase hex digit.
func NewCheckinCode() string {
	id := uuid.New()
	return "EVT-" + strings.ToUpper(id.String()[:8])
}
