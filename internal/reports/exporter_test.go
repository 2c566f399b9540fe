package reports

import (
	"bytes"
	"testing"
)

func TestBuildRegistrationsWorkbook(t *testing.T) {
	rows := []RegistrationExportRow{
		{ID: 1, AttendeeName: "Asha Rao", AttendeeEmail: "asha@example.com", TicketName: "General", Amount: 499, Status: "confirmed", CheckinCode: "EVT-1A2B3C4D", CheckedIn: true, CreatedAt: "2026-07-01 10:00"},
		{ID: 2, AttendeeName: "Vikram Shah", AttendeeEmail: "vikram@example.com", TicketName: "VIP", Amount: 1499, Status: "confirmed", CheckinCode: "EVT-5E6F7A8B", CheckedIn: false, CreatedAt: "2026-07-02 14:30"},
	}
	summary := &RevenueSummary{
		GrossRevenue:   1998,
		ConfirmedCount: 2,
		ByTicket: []TicketRevenue{
			{TicketID: 1, TicketName: "General", Sold: 1, Revenue: 499},
			{TicketID: 2, TicketName: "VIP", Sold: 1, Revenue: 1499},
		},
	}

	data, filename, err := BuildRegistrationsWorkbook(rows, summary)
	if err != nil {
		t.Fatalf("BuildRegistrationsWorkbook() error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("workbook is empty")
	}
	// xlsx is a zip container
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("workbook does not look like a zip archive")
	}
	if filename == "" {
		t.Error("filename is empty")
	}
}

func TestBuildTicketPDF(t *testing.T) {
	data, filename, err := BuildTicketPDF(TicketPassData{
		EventTitle:   "DevConf 2026",
		EventTime:    "Sat, 5 Sep 2026 09:00 - 18:00 IST",
		Location:     "Bengaluru",
		AttendeeName: "Asha Rao",
		TicketName:   "General",
		CheckinCode:  "EVT-1A2B3C4D",
	})
	if err != nil {
		t.Fatalf("BuildTicketPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF")
	}
	if filename != "ticket_EVT-1A2B3C4D.pdf" {
		t.Errorf("filename = %q", filename)
	}
}
