package checkin

// QRCheckinRequest carries the scanned pass code
type QRCheckinRequest struct {
	CheckinCode string `json:"checkin_code" binding:"required"`
}

// OTPRequest asks for a one-time code on behalf of a registration
type OTPRequest struct {
	RegistrationID uint `json:"registration_id" binding:"required"`
}

// OTPVerifyRequest redeems the one-time code
type OTPVerifyRequest struct {
	RegistrationID uint   `json:"registration_id" binding:"required"`
	OTP            string `json:"otp" binding:"required"`
}

// CheckinResult is returned on a successful scan or OTP redemption
type CheckinResult struct {
	RegistrationID uint   `json:"registration_id"`
	AttendeeName   string `json:"attendee_name,omitempty"`
	CheckedInAt    string `json:"checked_in_at"`
}

// StatsResponse backs the check-in counter on the event dashboard
type StatsResponse struct {
	Total     int64 `json:"total"`
	CheckedIn int64 `json:"checked_in"`
}
