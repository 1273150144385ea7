package sessionstore

import (
	dbmodels "mock-interview-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.InterviewSession) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(userID, id string) (*dbmodels.InterviewSession, error)
	List(userID string, offset, limit int) (list []dbmodels.InterviewSession, rowCount int64, err error)
	ListInProgress() ([]dbmodels.InterviewSession, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.InterviewSession) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.InterviewSession{}).
		Where("id = ?", id).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) GetByID(userID, id string) (*dbmodels.InterviewSession, error) {
	rec := dbmodels.InterviewSession{}
	err := i.db.
		Where("id = ?", id).
		Where("user_id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(userID string, offset, limit int) (list []dbmodels.InterviewSession, rowCount int64, err error) {
	err = i.db.
		Model(&dbmodels.InterviewSession{}).
		Where("user_id = ?", userID).
		Count(&rowCount).
		Error
	if err != nil {
		return nil, 0, err
	}
	err = i.db.
		Where("user_id = ?", userID).
		Omit("job_description", "resume", "report").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

// ListInProgress незавершенные сессии для восстановления после перезапуска
func (i impl) ListInProgress() ([]dbmodels.InterviewSession, error) {
	var list []dbmodels.InterviewSession
	err := i.db.
		Where("status = ?", dbmodels.InterviewInProgress).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
