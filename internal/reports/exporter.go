package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
)

// BuildRegistrationsWorkbook produces the XLSX download: one sheet of
// registrations, one sheet of revenue by ticket type.
func BuildRegistrationsWorkbook(rows []RegistrationExportRow, summary *RevenueSummary) ([]byte, string, error) {
	f := excelize.NewFile()

	sheet := "Registrations"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Attendee", "Email", "Ticket", "Amount", "Status", "Check-in Code", "Checked In", "Registered At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.AttendeeName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.AttendeeEmail)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.TicketName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Amount)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.CheckinCode)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.CheckedIn)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.CreatedAt)
	}

	revSheet := "Revenue"
	if _, err := f.NewSheet(revSheet); err != nil {
		return nil, "", err
	}
	f.SetCellValue(revSheet, "A1", "Gross Revenue")
	f.SetCellValue(revSheet, "B1", summary.GrossRevenue)
	f.SetCellValue(revSheet, "A2", "Confirmed Registrations")
	f.SetCellValue(revSheet, "B2", summary.ConfirmedCount)
	f.SetCellValue(revSheet, "A3", "Coupon Discounts Given")
	f.SetCellValue(revSheet, "B3", summary.CouponDiscountTotal)

	f.SetCellValue(revSheet, "A5", "Ticket")
	f.SetCellValue(revSheet, "B5", "Sold")
	f.SetCellValue(revSheet, "C5", "Revenue")
	for i, t := range summary.ByTicket {
		row := i + 6
		f.SetCellValue(revSheet, fmt.Sprintf("A%d", row), t.TicketName)
		f.SetCellValue(revSheet, fmt.Sprintf("B%d", row), t.Sold)
		f.SetCellValue(revSheet, fmt.Sprintf("C%d", row), t.Revenue)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("registrations_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// BuildTicketPDF renders a printable pass with the check-in code both
// as text and as a scannable QR.
func BuildTicketPDF(data TicketPassData) ([]byte, string, error) {
	qr, err := qrcode.Encode(data.CheckinCode, qrcode.Medium, 256)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, data.EventTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, data.EventTime, "", 1, "C", false, 0, "")
	if data.Location != "" {
		pdf.CellFormat(0, 7, data.Location, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, data.AttendeeName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, data.TicketName, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qr))
	pageW, _ := pdf.GetPageSize()
	qrSize := 50.0
	pdf.ImageOptions("qr", (pageW-qrSize)/2, pdf.GetY(), qrSize, qrSize, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + qrSize + 4)

	pdf.SetFont("Courier", "B", 14)
	pdf.CellFormat(0, 8, data.CheckinCode, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ticket_%s.pdf", data.CheckinCode)
	return buf.Bytes(), filename, nil
}
