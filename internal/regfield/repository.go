package regfield

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
// 📄 List fields of an event in display order
func (r *Repository) ListByEvent(eventID uint) ([]FieldDefinition, error) {
	var fields []FieldDefinition
	err := r.DB.
		Where("event_id = ?", eventID).
		Order("display_order ASC, id ASC").
		Find(&fields).Error
	return fields, err
}

// ===========================
// 🔍 Get one field scoped to its event
func (r *Repository) GetByID(id, eventID uint) (*FieldDefinition, error) {
	var f FieldDefinition
	err := r.DB.Where("id = ? AND event_id = ?", id, eventID).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ===========================
// 🎯 Create
func (r *Repository) Create(f *FieldDefinition) error {
	return r.DB.Create(f).Error
}

// ===========================
// 🛠 Update
func (r *Repository) Update(f *FieldDefinition) error {
	return r.DB.Save(f).Error
}

// ===========================
// ❌ Delete
func (r *Repository) Delete(id, eventID uint) error {
	return r.DB.Where("id = ? AND event_id = ?", id, eventID).Delete(&FieldDefinition{}).Error
}

// NameExists checks the per-event unique name constraint. excludeID skips
// the field being updated.
func (r *Repository) NameExists(eventID uint, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&FieldDefinition{}).
		Where("event_id = ? AND name = ?", eventID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// NextDisplayOrder returns the position for a newly appended field
func (r *Repository) NextDisplayOrder(eventID uint) (int, error) {
	var count int64
	err := r.DB.Model(&FieldDefinition{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return int(count), err
}

// ===========================
// 🔀 Persist a full new ordering in one transaction
func (r *Repository) Reorder(eventID uint, ids []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for position, id := range ids {
			res := tx.Model(&FieldDefinition{}).
				Where("id = ? AND event_id = ?", id, eventID).
				Update("display_order", position)
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}
