package session

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(s *Session) error {
	return r.DB.Create(s).Error
}

func (r *Repository) GetByID(id, eventID uint) (*Session, error) {
	var s Session
	err := r.DB.Where("id = ? AND event_id = ?", id, eventID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByEvent returns sessions in schedule order
func (r *Repository) ListByEvent(eventID uint) ([]Session, error) {
	var sessions []Session
	err := r.DB.
		Where("event_id = ?", eventID).
		Order("start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *Repository) Update(s *Session) error {
	return r.DB.Save(s).Error
}

func (r *Repository) Delete(id, eventID uint) error {
	return r.DB.Where("id = ? AND event_id = ?", id, eventID).Delete(&Session{}).Error
}

// CountOverlapping finds sessions whose window intersects [start, end),
// excluding the session being edited
func (r *Repository) CountOverlapping(eventID uint, s *Session) (int64, error) {
	var count int64
	query := r.DB.Model(&Session{}).
		Where("event_id = ? AND start_time < ? AND end_time > ?", eventID, s.EndTime, s.StartTime)
	if s.ID != 0 {
		query = query.Where("id <> ?", s.ID)
	}
	err := query.Count(&count).Error
	return count, err
}
