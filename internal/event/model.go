package event

import (
	"time"
)

// Event modes decide whether sessions need a venue
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Event is an organizer-owned event
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrganizerID uint      `gorm:"not null;index" json:"organizer_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Mode        string    `gorm:"type:varchar(20);not null;default:offline" json:"mode"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	Location    string    `gorm:"type:text" json:"location"`
	Capacity    int       `gorm:"default:0" json:"capacity"` // 0 = unlimited
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	RegistrationCount int `gorm:"-" json:"registration_count"`
}

// CreateEventRequest is the payload for POST /events
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Mode        string `json:"mode" binding:"required,oneof=online offline hybrid"`
	StartTime   string `json:"start_time" binding:"required"` // RFC3339
	EndTime     string `json:"end_time" binding:"required"`   // RFC3339
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// UpdateEventRequest is the payload for PUT /events/:id
type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Mode        string `json:"mode" binding:"required,oneof=online offline hybrid"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// EventStatsResponse backs the dashboard header cards
type EventStatsResponse struct {
	TotalEvents        int64 `json:"total_events"`
	UpcomingEvents     int64 `json:"upcoming_events"`
	ActiveEvents       int64 `json:"active_events"`
	TotalRegistrations int64 `json:"total_registrations"`
}
