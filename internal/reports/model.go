package reports

// TicketRevenue is one ticket type's slice of the gross
type TicketRevenue struct {
	TicketID   uint    `json:"ticket_id"`
	TicketName string  `json:"ticket_name"`
	Sold       int64   `json:"sold"`
	Revenue    float64 `json:"revenue"`
}

// ReferralRevenue attributes confirmed registrations to a referral code
type ReferralRevenue struct {
	ReferralID    uint    `json:"referral_id"`
	Code          string  `json:"code"`
	OwnerName     string  `json:"owner_name"`
	Registrations int64   `json:"registrations"`
	Revenue       float64 `json:"revenue"`
}

// RevenueSummary backs the revenue dashboard for one event
type RevenueSummary struct {
	GrossRevenue        float64           `json:"gross_revenue"`
	ConfirmedCount      int64             `json:"confirmed_count"`
	CouponDiscountTotal float64           `json:"coupon_discount_total"`
	ByTicket            []TicketRevenue   `json:"by_ticket"`
	ByReferral          []ReferralRevenue `json:"by_referral"`
}

// TimeSeriesPoint is one day on the registrations/check-ins chart
type TimeSeriesPoint struct {
	Date          string `json:"date"`
	Registrations int64  `json:"registrations"`
	Checkins      int64  `json:"checkins"`
}

// RegistrationExportRow is one line of the XLSX export
type RegistrationExportRow struct {
	ID            uint    `json:"id"`
	AttendeeName  string  `json:"attendee_name"`
	AttendeeEmail string  `json:"attendee_email"`
	TicketName    string  `json:"ticket_name"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	CheckinCode   string  `json:"checkin_code"`
	CheckedIn     bool    `json:"checked_in"`
	CreatedAt     string  `json:"created_at"`
}

// TicketPassData is everything printed on the PDF pass
type TicketPassData struct {
	EventTitle   string
	EventTime    string
	Location     string
	AttendeeName string
	TicketName   string
	CheckinCode  string
}
