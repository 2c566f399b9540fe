package coupon

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Coupon) error {
	return r.DB.Create(c).Error
}

func (r *Repository) GetByID(id uint) (*Coupon, error) {
	var c Coupon
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) GetByCode(eventID uint, code string) (*Coupon, error) {
	var c Coupon
	if err := r.DB.Where("event_id = ? AND code = ?", eventID, code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) CodeExists(eventID uint, code string, excludeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&Coupon{}).
		Where("event_id = ? AND code = ? AND id != ?", eventID, code, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) ListByEvent(eventID uint) ([]Coupon, error) {
	var coupons []Coupon
	err := r.DB.Where("event_id = ?", eventID).Order("id ASC").Find(&coupons).Error
	return coupons, err
}

func (r *Repository) Update(c *Coupon) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Coupon{}, id).Error
}

// IncrementUsage bumps usage inside a transaction and fails when the
// cap would be exceeded, so a racing pair of redemptions cannot both win.
func (r *Repository) IncrementUsage(tx *gorm.DB, id uint) error {
	result := tx.Model(&Coupon{}).
		Where("id = ? AND is_active = ? AND usage_count < max_usage", id, true).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
