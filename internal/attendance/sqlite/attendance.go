package sqlite

import (
	"context"
	"errors"

	"github.com/frahmantamala/workforce-portal/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/attendance"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"gorm.io/gorm"
)

type AttendanceRepository struct {
	store *store.Store
}

func NewAttendanceRepository(s *store.Store) attendance.RepositoryAPI {
	return &AttendanceRepository{store: s}
}

func (r *AttendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]*attendanceDatamodel.Attendance, error) {
	records := make([]*attendanceDatamodel.Attendance, 0)
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		q := db.Order("date ASC, user_id ASC")
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
		if filter.Date != "" {
			q = q.Where("date = ?", filter.Date)
		}
		// dates are stored as YYYY-MM-DD so text order is calendar order
		if filter.From != "" {
			q = q.Where("date >= ?", filter.From)
		}
		if filter.To != "" {
			q = q.Where("date <= ?", filter.To)
		}
		return q.Find(&records).Error
	})
	return records, err
}

func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (*attendanceDatamodel.Attendance, error) {
	var a attendanceDatamodel.Attendance
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&a).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendance.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepository) Create(ctx context.Context, a *attendanceDatamodel.Attendance) error {
	err := r.store.Mutate(ctx, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&attendanceDatamodel.Attendance{}).Where("id = ?", a.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return attendance.ErrDuplicateID
		}
		if err := dayTaken(tx, a.UserID, a.Date, ""); err != nil {
			return err
		}
		return tx.Create(a).Error
	})
	return translate(err)
}

func (r *AttendanceRepository) Update(ctx context.Context, id string, apply func(a *attendanceDatamodel.Attendance) error) (*attendanceDatamodel.Attendance, error) {
	var a attendanceDatamodel.Attendance
	err := r.store.Mutate(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendance.ErrNotFound
			}
			return err
		}
		userID, date := a.UserID, a.Date
		if err := apply(&a); err != nil {
			return err
		}
		if a.UserID != userID || a.Date != date {
			if err := dayTaken(tx, a.UserID, a.Date, a.ID); err != nil {
				return err
			}
		}
		return tx.Save(&a).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&attendanceDatamodel.Attendance{}).Error
	})
}

func dayTaken(tx *gorm.DB, userID, date, exceptID string) error {
	var n int64
	q := tx.Model(&attendanceDatamodel.Attendance{}).Where("user_id = ? AND date = ?", userID, date)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return attendance.ErrDuplicateDay
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return attendance.ErrDuplicateDay
	}
	return err
}
