package announcement

import (
	"time"
)

// Delivery channels
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// Audience filters
const (
	AudienceAll          = "all"
	AudienceCheckedIn    = "checked_in"
	AudienceNotCheckedIn = "not_checked_in"
)

// Dispatch lifecycle
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Announcement is one message blast to an event's attendees. The row
// doubles as the dispatch log: status moves pending → sent/failed as
// the consumer works through it.
type Announcement struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	EventID        uint       `gorm:"not null;index" json:"event_id"`
	Subject        string     `gorm:"type:varchar(255);not null" json:"subject"`
	Body           string     `gorm:"type:text;not null" json:"body"`
	Channel        string     `gorm:"type:varchar(10);not null" json:"channel"`
	Audience       string     `gorm:"type:varchar(20);not null;default:all" json:"audience"`
	Status         string     `gorm:"type:varchar(10);not null;default:pending;index" json:"status"`
	RecipientCount int        `gorm:"not null;default:0" json:"recipient_count"`
	FailureReason  string     `gorm:"type:text" json:"failure_reason,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	CreatedBy      uint       `gorm:"not null" json:"created_by"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// AnnouncementRequest is the organizer-facing payload
type AnnouncementRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Channel  string `json:"channel" binding:"required,oneof=email whatsapp"`
	Audience string `json:"audience" binding:"required,oneof=all checked_in not_checked_in"`
}

// DispatchMessage is what travels over kafka
type DispatchMessage struct {
	AnnouncementID uint `json:"announcement_id"`
	EventID        uint `json:"event_id"`
}
