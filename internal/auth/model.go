package auth

import (
	"time"

	"gorm.io/gorm"
)

// User represents a console account (organizer, staff, volunteer, attendee)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FullName     string         `gorm:"column:full_name;size:100;not null" json:"name"`
	Email        string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"size:20" json:"phone"`
	PasswordHash string         `gorm:"column:password_hash;size:255;not null" json:"-"`
	RoleID       uint           `gorm:"column:role_id" json:"-"`
	Role         UserRole       `gorm:"foreignKey:RoleID" json:"role"`
	OrganizerID  *uint          `gorm:"column:organizer_id;index" json:"-"` // staff/volunteer belong to an organizer account
	Status       string         `gorm:"default:active" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserRole is the role lookup table seeded at startup
type UserRole struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RoleName    string `gorm:"size:50;uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"size:255" json:"description"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// MemberResponse is the shape returned by the member search endpoint,
// consumed by the referral owner-assignment dropdown
type MemberResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type PublicRoleResponse struct {
	ID          uint   `json:"id"`
	RoleName    string `json:"role_name"`
	Description string `json:"description"`
}
