package database

import (
	"launchpad-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoadSettings returns the single EngineSettings row.
func LoadSettings(db *gorm.DB) (*domain.EngineSettings, error) {
	var s domain.EngineSettings
	if err := db.First(&s, "id = ?", 1).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// EnsureSettings creates the settings row with defaults if it does not exist
// yet (first boot). Existing values are left untouched.
func EnsureSettings(db *gorm.DB, owner uuid.UUID) error {
	var s domain.EngineSettings
	err := db.First(&s, "id = ?", 1).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(&domain.EngineSettings{
		ID:               1,
		OwnerID:          owner,
		MinStakingAmount: domain.DefaultMinStaking,
		RefundPercent:    0,
	}).Error
}
