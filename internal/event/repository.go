package event

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID with registration count
func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	err := r.DB.First(&e, id).Error
	if err != nil {
		return nil, err
	}

	var count int64
	err = r.DB.Table("registrations").
		Where("registrations.event_id = ? AND registrations.status <> 'cancelled'", id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	e.RegistrationCount = int(count)
	return &e, nil
}

// ===========================
// 📆 Get Upcoming Events for an organizer
func (r *Repository) GetUpcomingEvents(organizerID uint) ([]Event, error) {
	var events []Event

	err := r.DB.
		Where("organizer_id = ? AND end_time >= NOW() AND is_active = TRUE", organizerID).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		events[i].RegistrationCount = r.countRegistrations(events[i].ID)
	}

	return events, nil
}

// ===========================
// 📄 List Events With Pagination & Search
func (r *Repository) ListEventsByOrganizer(organizerID uint, limit, offset int, search string) ([]Event, error) {
	var events []Event

	query := r.DB.Where("organizer_id = ?", organizerID)

	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", ilike, ilike)
	}

	err := query.
		Order("start_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		events[i].RegistrationCount = r.countRegistrations(events[i].ID)
	}

	return events, nil
}

// ===========================
// 📊 Dashboard Stats
func (r *Repository) GetEventStats(organizerID uint) (*EventStatsResponse, error) {
	stats := &EventStatsResponse{}

	if err := r.DB.Model(&Event{}).
		Where("organizer_id = ?", organizerID).
		Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&Event{}).
		Where("organizer_id = ? AND start_time >= NOW()", organizerID).
		Count(&stats.UpcomingEvents).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&Event{}).
		Where("organizer_id = ? AND is_active = TRUE", organizerID).
		Count(&stats.ActiveEvents).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Table("registrations").
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("events.organizer_id = ? AND registrations.status <> 'cancelled'", organizerID).
		Count(&stats.TotalRegistrations).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// ❌ Delete Event (scoped to organizer)
func (r *Repository) DeleteEvent(id uint, organizerID uint) error {
	return r.DB.Where("id = ? AND organizer_id = ?", id, organizerID).Delete(&Event{}).Error
}

func (r *Repository) countRegistrations(eventID uint) int {
	var count int64
	r.DB.Table("registrations").
		Where("registrations.event_id = ? AND registrations.status <> 'cancelled'", eventID).
		Count(&count)
	return int(count)
}
