package repository

import (
	"errors"
	"time"

	"github.com/daylog/daylog/internal/db"
	"github.com/daylog/daylog/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct{}

func NewSettingRepository() *SettingRepository {
	return &SettingRepository{}
}

// Load returns the stored value, or found=false when the key was never
// written.
func (r *SettingRepository) Load(key string) (string, bool, error) {
	var setting model.Setting
	err := db.DB.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

func (r *SettingRepository) Save(key, value string) error {
	setting := model.Setting{
		Key:        key,
		Value:      value,
		UpdateTime: time.Now().Unix(),
	}
	return db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "update_time"}),
	}).Create(&setting).Error
}
