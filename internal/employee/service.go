package employee

import (
	"context"
	"log/slog"

	employeeDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*employeeDatamodel.Employee, error)
	GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error)
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	Update(ctx context.Context, id string, apply func(e *employeeDatamodel.Employee) error) (*employeeDatamodel.Employee, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Employee, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	employees := make([]*Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, FromDataModel(row))
	}
	return employees, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Employee, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := dto.toDataModel()
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "employee created", "employee_id", row.ID, "department", row.Department)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.Update(ctx, id, func(e *employeeDatamodel.Employee) error {
		dto.apply(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "employee deleted", "employee_id", id)
	return nil
}
