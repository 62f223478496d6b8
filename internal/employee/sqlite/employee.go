package sqlite

import (
	"context"
	"errors"

	employeeDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/employee"
	"github.com/frahmantamala/workforce-portal/internal/employee"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	store *store.Store
}

func NewEmployeeRepository(s *store.Store) employee.RepositoryAPI {
	return &EmployeeRepository{store: s}
}

func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]*employeeDatamodel.Employee, error) {
	employees := make([]*employeeDatamodel.Employee, 0)
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		q := db.Order("id ASC")
		if filter.Department != "" {
			q = q.Where("department = ?", filter.Department)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		return q.Find(&employees).Error
	})
	return employees, err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&e).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	err := r.store.Mutate(ctx, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&employeeDatamodel.Employee{}).Where("id = ?", e.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return employee.ErrDuplicateID
		}
		return tx.Create(e).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return employee.ErrDuplicateID
	}
	return err
}

func (r *EmployeeRepository) Update(ctx context.Context, id string, apply func(e *employeeDatamodel.Employee) error) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.store.Mutate(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&e).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return employee.ErrNotFound
			}
			return err
		}
		if err := apply(&e); err != nil {
			return err
		}
		return tx.Save(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&employeeDatamodel.Employee{}).Error
	})
}
