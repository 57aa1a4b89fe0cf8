package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/daylog/daylog/internal/db"
	"github.com/daylog/daylog/internal/model"
	"gorm.io/gorm"
)

var ErrDateTaken = errors.New("date already exists, one day only one journal")

type JournalRepository struct{}

func NewJournalRepository() *JournalRepository {
	return &JournalRepository{}
}

func (r *JournalRepository) GetByID(id int64) (model.Journal, error) {
	var journal model.Journal
	return journal, db.DB.First(&journal, id).Error
}

func (r *JournalRepository) FindIDByDate(date string) (int64, bool, error) {
	var journal model.Journal
	err := db.DB.Select("id").Where("date = ?", date).First(&journal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return journal.ID, true, nil
}

// UpsertByDate overwrites the entry for a date, inserting when the date
// is new. Create time is preserved on update.
func (r *JournalRepository) UpsertByDate(date, content string, now int64) (model.Journal, error) {
	id, found, err := r.FindIDByDate(date)
	if err != nil {
		return model.Journal{}, err
	}

	if found {
		err := db.DB.Model(&model.Journal{}).
			Where("id = ?", id).
			Updates(map[string]any{"content": content, "update_time": now}).Error
		if err != nil {
			return model.Journal{}, err
		}
		return r.GetByID(id)
	}

	journal := model.Journal{
		Content:    content,
		Date:       date,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := db.DB.Create(&journal).Error; err != nil {
		return model.Journal{}, err
	}
	return journal, nil
}

// List pages journals. A 7-char date (yyyy-MM) filters the whole month.
func (r *JournalRepository) List(page, size int, date string) ([]model.Journal, error) {
	if page < 1 {
		page = 1
	} else if page > 1000 {
		page = 1000
	}
	if size < 1 {
		size = 1
	} else if size > 100 {
		size = 100
	}

	query := db.DB.Model(&model.Journal{})
	date = strings.TrimSpace(date)
	switch {
	case len(date) == 7:
		query = query.Where("date like ?", date+"-%").Order("date asc, id asc")
	case date != "":
		query = query.Where("date = ?", date).Order("id desc")
	default:
		query = query.Order("id")
	}

	var journals []model.Journal
	err := query.Limit(size).Offset((page - 1) * size).Find(&journals).Error
	return journals, err
}

func (r *JournalRepository) ListAllOrdered() ([]model.Journal, error) {
	var journals []model.Journal
	return journals, db.DB.Order("date asc, id asc").Find(&journals).Error
}

// Update patches content and/or date. A nil field keeps the stored
// value. Moving onto another journal's date is rejected.
func (r *JournalRepository) Update(id int64, content, date *string) (model.Journal, error) {
	if date != nil {
		var other model.Journal
		err := db.DB.Select("id").Where("date = ? and id <> ?", *date, id).First(&other).Error
		if err == nil {
			return model.Journal{}, ErrDateTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Journal{}, err
		}
	}

	updates := map[string]any{"update_time": time.Now().Unix()}
	if content != nil {
		updates["content"] = *content
	}
	if date != nil {
		updates["date"] = *date
	}

	result := db.DB.Model(&model.Journal{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return model.Journal{}, result.Error
	}
	if result.RowsAffected == 0 {
		return model.Journal{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(id)
}

func (r *JournalRepository) Delete(id int64) error {
	result := db.DB.Delete(&model.Journal{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
