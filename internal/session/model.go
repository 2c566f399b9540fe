package session

import (
	"time"
)

// Venue is the physical location of a session; required when the owning
// event runs offline or hybrid
type Venue struct {
	Name    string `gorm:"column:venue_name;size:255" json:"name"`
	Address string `gorm:"column:venue_address;size:255" json:"address"`
	City    string `gorm:"column:venue_city;size:100" json:"city"`
	State   string `gorm:"column:venue_state;size:100" json:"state"`
	Country string `gorm:"column:venue_country;size:100" json:"country"`
	ZipCode string `gorm:"column:venue_zip_code;size:20" json:"zipCode"`
}

// Session is a scheduled slot inside an event
type Session struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     uint      `gorm:"not null;index" json:"event_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	SpeakerName string    `gorm:"size:150" json:"speaker_name"`
	SpeakerBio  string    `gorm:"type:text" json:"speaker_bio"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	Venue       Venue     `gorm:"embedded" json:"venue"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// SessionRequest is the create/update payload
type SessionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	SpeakerName string `json:"speaker_name"`
	SpeakerBio  string `json:"speaker_bio"`
	StartTime   string `json:"start_time" binding:"required"` // RFC3339
	EndTime     string `json:"end_time" binding:"required"`   // RFC3339
	Venue       *Venue `json:"venue,omitempty"`
}
