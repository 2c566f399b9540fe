package referral

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(rc *ReferralCode) error {
	return r.DB.Create(rc).Error
}

func (r *Repository) GetByID(id uint) (*ReferralCode, error) {
	var rc ReferralCode
	if err := r.DB.First(&rc, id).Error; err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *Repository) GetByCode(eventID uint, code string) (*ReferralCode, error) {
	var rc ReferralCode
	if err := r.DB.Where("event_id = ? AND code = ?", eventID, code).First(&rc).Error; err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *Repository) CodeExists(eventID uint, code string, excludeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&ReferralCode{}).
		Where("event_id = ? AND code = ? AND id != ?", eventID, code, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ListByEvent joins the owner so the console can show who each code
// belongs to without a second round trip
func (r *Repository) ListByEvent(eventID uint) ([]ReferralCode, error) {
	var codes []ReferralCode
	err := r.DB.Table("referral_codes rc").
		Select("rc.*, u.full_name AS owner_name, u.email AS owner_email").
		Joins("LEFT JOIN users u ON u.id = rc.owner_id").
		Where("rc.event_id = ?", eventID).
		Order("rc.id ASC").
		Scan(&codes).Error
	return codes, err
}

func (r *Repository) Update(rc *ReferralCode) error {
	return r.DB.Save(rc).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&ReferralCode{}, id).Error
}

func (r *Repository) UsageStats(eventID uint) ([]UsageStats, error) {
	var stats []UsageStats
	err := r.DB.Table("referral_codes rc").
		Select("rc.id AS code_id, rc.code, rc.owner_id, u.full_name AS owner_name, rc.usage_count, rc.max_usage").
		Joins("LEFT JOIN users u ON u.id = rc.owner_id").
		Where("rc.event_id = ?", eventID).
		Order("rc.usage_count DESC").
		Scan(&stats).Error
	return stats, err
}

// IncrementUsage bumps usage inside a transaction, failing past the cap
func (r *Repository) IncrementUsage(tx *gorm.DB, id uint) error {
	result := tx.Model(&ReferralCode{}).
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
