package ticket

import (
	"time"
)

// Ticket is a purchasable ticket type for an event. Sold is
// server-owned and only moves through registration flows.
type Ticket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Price     float64   `gorm:"not null;default:0" json:"price"`
	Capacity  int       `gorm:"not null;default:0" json:"capacity"` // 0 = unlimited
	Sold      int       `gorm:"not null;default:0" json:"sold"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TicketRequest is the payload for create and update
type TicketRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// DeleteResult tells the console whether the row was removed or
// only retired because sales already exist
type DeleteResult struct {
	Action  string `json:"action"` // "deleted" or "disabled"
	Message string `json:"message"`
}
