package announcement

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

func (r *Repository) Create(a *Announcement) error {
	return r.DB.Create(a).Error
}

func (r *Repository) GetByID(id uint) (*Announcement, error) {
	var a Announcement
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListByEvent(eventID uint) ([]Announcement, error) {
	var list []Announcement
	err := r.DB.Where("event_id = ?", eventID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) MarkSent(id uint, recipients int) error {
	now := time.Now()
	return r.DB.Model(&Announcement{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          StatusSent,
			"recipient_count": recipients,
			"sent_at":         &now,
			"failure_reason":  "",
		}).Error
}

func (r *Repository) MarkFailed(id uint, reason string) error {
	return r.DB.Model(&Announcement{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         StatusFailed,
			"failure_reason": reason,
		}).Error
}
