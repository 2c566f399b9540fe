package registration

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(tx *gorm.DB, reg *Registration) error {
	return tx.Create(reg).Error
}

func (r *Repository) GetByID(id uint) (*Registration, error) {
	var reg Registration
	if err := r.DB.First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *Repository) GetByOrderID(orderID string) (*Registration, error) {
	var reg Registration
	if err := r.DB.Where("order_id = ?", orderID).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *Repository) GetByCheckinCode(code string) (*Registration, error) {
	var reg Registration
	if err := r.DB.Where("checkin_code = ?", code).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// ExistsForUser reports whether the user already holds a live
// registration for the event
func (r *Repository) ExistsForUser(eventID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&Registration{}).
		Where("event_id = ? AND user_id = ? AND status != ?", eventID, userID, StatusCancelled).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) ListByEvent(eventID uint, limit, offset int) ([]RegistrationRow, error) {
	var rows []RegistrationRow
	err := r.DB.Table("registrations r").
		Select("r.*, u.full_name AS attendee_name, u.email AS attendee_email, t.name AS ticket_name").
		Joins("LEFT JOIN users u ON u.id = r.user_id").
		Joins("LEFT JOIN tickets t ON t.id = r.ticket_id").
		Where("r.event_id = ?", eventID).
		Order("r.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) CountByEvent(eventID uint) (total, checkedIn int64, err error) {
	q := r.DB.Model(&Registration{}).Where("event_id = ? AND status = ?", eventID, StatusConfirmed)
	if err = q.Count(&total).Error; err != nil {
		return
	}
	err = r.DB.Model(&Registration{}).
		Where("event_id = ? AND status = ? AND checked_in_at IS NOT NULL", eventID, StatusConfirmed).
		Count(&checkedIn).Error
	return
}

// ConfirmByOrderID flips a pending registration after payment capture.
// RowsAffected 0 means another call already claimed the order; the
// caller must not move any counter in that case.
func (r *Repository) ConfirmByOrderID(tx *gorm.DB, orderID, paymentID string) (bool, error) {
	result := tx.Model(&Registration{}).
		Where("order_id = ? AND status = ?", orderID, StatusPending).
		Updates(map[string]interface{}{
			"status":     StatusConfirmed,
			"payment_id": paymentID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) MarkFailedByOrderID(orderID, paymentID string) error {
	return r.DB.Model(&Registration{}).
		Where("order_id = ? AND status = ?", orderID, StatusPending).
		Updates(map[string]interface{}{
			"status":     StatusCancelled,
			"payment_id": paymentID,
		}).Error
}

// MarkCheckedIn records attendance exactly once. RowsAffected 0 means
// the code was already used.
func (r *Repository) MarkCheckedIn(id uint, at time.Time) (bool, error) {
	result := r.DB.Model(&Registration{}).
		Where("id = ? AND status = ? AND checked_in_at IS NULL", id, StatusConfirmed).
		Update("checked_in_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Recipients returns user IDs for announcement audiences
func (r *Repository) Recipients(eventID uint, audience string) ([]uint, error) {
	q := r.DB.Model(&Registration{}).
		Where("event_id = ? AND status = ?", eventID, StatusConfirmed)
	switch audience {
	case "checked_in":
		q = q.Where("checked_in_at IS NOT NULL")
	case "not_checked_in":
		q = q.Where("checked_in_at IS NULL")
	}
	var ids []uint
	err := q.Pluck("user_id", &ids).Error
	return ids, err
}

// Transaction runs fn inside one database transaction
func (r *Repository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.DB.Transaction(fn)
}
