package reports

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) RevenueByTicket(eventID uint) ([]TicketRevenue, error) {
	var rows []TicketRevenue
	err := r.DB.Table("registrations r").
		Select("t.id AS ticket_id, t.name AS ticket_name, COUNT(r.id) AS sold, COALESCE(SUM(r.amount), 0) AS revenue").
		Joins("JOIN tickets t ON t.id = r.ticket_id").
		Where("r.event_id = ? AND r.status = ?", eventID, "confirmed").
		Group("t.id, t.name").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) RevenueByReferral(eventID uint) ([]ReferralRevenue, error) {
	var rows []ReferralRevenue
	err := r.DB.Table("registrations r").
		Select("rc.id AS referral_id, rc.code, u.full_name AS owner_name, COUNT(r.id) AS registrations, COALESCE(SUM(r.amount), 0) AS revenue").
		Joins("JOIN referral_codes rc ON rc.id = r.referral_id").
		Joins("LEFT JOIN users u ON u.id = rc.owner_id").
		Where("r.event_id = ? AND r.status = ?", eventID, "confirmed").
		Group("rc.id, rc.code, u.full_name").
		Order("registrations DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) GrossAndCount(eventID uint) (gross float64, count int64, err error) {
	row := struct {
		Gross float64
		Count int64
	}{}
	err = r.DB.Table("registrations").
		Select("COALESCE(SUM(amount), 0) AS gross, COUNT(id) AS count").
		Where("event_id = ? AND status = ?", eventID, "confirmed").
		Scan(&row).Error
	return row.Gross, row.Count, err
}

// CouponDiscountTotal is the gap between the ticket list price and
// what coupon-carrying registrations actually paid
func (r *Repository) CouponDiscountTotal(eventID uint) (float64, error) {
	var total float64
	err := r.DB.Table("registrations r").
		Select("COALESCE(SUM(t.price - r.amount), 0)").
		Joins("JOIN tickets t ON t.id = r.ticket_id").
		Where("r.event_id = ? AND r.status = ? AND r.coupon_id IS NOT NULL", eventID, "confirmed").
		Scan(&total).Error
	return total, err
}

func (r *Repository) TimeSeries(eventID uint) ([]TimeSeriesPoint, error) {
	var points []TimeSeriesPoint
	err := r.DB.Table("registrations").
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS date, COUNT(id) AS registrations, COUNT(checked_in_at) AS checkins").
		Where("event_id = ? AND status = ?", eventID, "confirmed").
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date ASC").
		Scan(&points).Error
	return points, err
}

func (r *Repository) ExportRows(eventID uint) ([]RegistrationExportRow, error) {
	var rows []RegistrationExportRow
	err := r.DB.Table("registrations r").
		Select(`r.id, u.full_name AS attendee_name, u.email AS attendee_email, t.name AS ticket_name,
			r.amount, r.status, r.checkin_code,
			(r.checked_in_at IS NOT NULL) AS checked_in,
			TO_CHAR(r.created_at, 'YYYY-MM-DD HH24:MI') AS created_at`).
		Joins("LEFT JOIN users u ON u.id = r.user_id").
		Joins("LEFT JOIN tickets t ON t.id = r.ticket_id").
		Where("r.event_id = ?", eventID).
		Order("r.created_at ASC").
		Scan(&rows).Error
	return rows, err
}
