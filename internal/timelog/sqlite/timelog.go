package sqlite

import (
	"context"
	"errors"

	timelogDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/timelog"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"github.com/frahmantamala/workforce-portal/internal/timelog"
	"gorm.io/gorm"
)

type TimeLogRepository struct {
	store *store.Store
}

func NewTimeLogRepository(s *store.Store) timelog.RepositoryAPI {
	return &TimeLogRepository{store: s}
}

func (r *TimeLogRepository) List(ctx context.Context, filter timelog.ListFilter) ([]*timelogDatamodel.TimeLog, error) {
	logs := make([]*timelogDatamodel.TimeLog, 0)
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		q := db.Order("start_time ASC, id ASC")
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
		if from, to, ok := filter.DayBounds(); ok {
			q = q.Where("start_time >= ? AND start_time < ?", from, to)
		}
		return q.Find(&logs).Error
	})
	return logs, err
}

func (r *TimeLogRepository) GetByID(ctx context.Context, id string) (*timelogDatamodel.TimeLog, error) {
	var t timelogDatamodel.TimeLog
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&t).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timelog.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TimeLogRepository) Create(ctx context.Context, t *timelogDatamodel.TimeLog) error {
	err := r.store.Mutate(ctx, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&timelogDatamodel.TimeLog{}).Where("id = ?", t.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return timelog.ErrDuplicateID
		}
		return tx.Create(t).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return timelog.ErrDuplicateID
	}
	return err
}

func (r *TimeLogRepository) Update(ctx context.Context, id string, apply func(t *timelogDatamodel.TimeLog) error) (*timelogDatamodel.TimeLog, error) {
	var t timelogDatamodel.TimeLog
	err := r.store.Mutate(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return timelog.ErrNotFound
			}
			return err
		}
		if err := apply(&t); err != nil {
			return err
		}
		return tx.Save(&t).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TimeLogRepository) Delete(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&timelogDatamodel.TimeLog{}).Error
	})
}
