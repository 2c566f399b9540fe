package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindRoleByName(name string) (*UserRole, error)
	Update(user *User) error

	// Member search for the referral owner-assignment dropdown
	SearchMembers(organizerID uint, search string, limit int) ([]User, error)

	// Recipient resolution for announcements
	GetUserEmailsByIDs(userIDs []uint) ([]string, error)
	GetUserPhonesByIDs(userIDs []uint) ([]string, error)

	GetPublicRoles() ([]UserRole, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create a new user
func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	return &u, err
}

// Find user by ID (with role preload)
func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").First(&user, userID).Error
	return user, err
}

// Find user role by name
func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", name).First(&role).Error
	return &role, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

// SearchMembers matches name or email against the organizer's staff,
// volunteers and attendees. An empty search term returns the first page
// unfiltered so assignment dropdowns are never empty before typing.
func (r *repository) SearchMembers(organizerID uint, search string, limit int) ([]User, error) {
	var users []User

	query := r.db.Preload("Role").
		Joins("JOIN user_roles ON user_roles.id = users.role_id").
		Where("users.organizer_id = ? OR users.id = ?", organizerID, organizerID)

	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("users.full_name ILIKE ? OR users.email ILIKE ?", ilike, ilike)
	}

	err := query.
		Order("users.full_name ASC").
		Limit(limit).
		Find(&users).Error

	return users, err
}

func (r *repository) GetUserEmailsByIDs(userIDs []uint) ([]string, error) {
	var emails []string
	err := r.db.Model(&User{}).
		Where("id IN ?", userIDs).
		Pluck("email", &emails).Error
	return emails, err
}

func (r *repository) GetUserPhonesByIDs(userIDs []uint) ([]string, error) {
	var phones []string
	err := r.db.Model(&User{}).
		Where("id IN ? AND phone <> ''", userIDs).
		Pluck("phone", &phones).Error
	return phones, err
}

// GetPublicRoles returns roles a visitor may self-register with
func (r *repository) GetPublicRoles() ([]UserRole, error) {
	var roles []UserRole
	err := r.db.Where("role_name IN ?", []string{"organizer", "attendee"}).Find(&roles).Error
	return roles, err
}
