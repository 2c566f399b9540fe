package ticket

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(t *Ticket) error {
	return r.DB.Create(t).Error
}

func (r *Repository) GetByID(id uint) (*Ticket, error) {
	var t Ticket
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ListByEvent(eventID uint) ([]Ticket, error) {
	var tickets []Ticket
	err := r.DB.Where("event_id = ?", eventID).Order("id ASC").Find(&tickets).Error
	return tickets, err
}

func (r *Repository) Update(t *Ticket) error {
	return r.DB.Save(t).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Ticket{}, id).Error
}

// IncrementSold bumps sold inside a transaction and fails when the
// capacity would be exceeded. capacity 0 means unlimited.
func (r *Repository) IncrementSold(tx *gorm.DB, id uint) error {
	result := tx.Model(&Ticket{}).
		Where("id = ? AND is_active = ? AND (capacity = 0 OR sold < capacity)", id, true).
		UpdateColumn("sold", gorm.Expr("sold + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
