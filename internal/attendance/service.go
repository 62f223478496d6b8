package attendance

import (
	"context"
	"log/slog"

	attendanceDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/attendance"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*attendanceDatamodel.Attendance, error)
	GetByID(ctx context.Context, id string) (*attendanceDatamodel.Attendance, error)
	Create(ctx context.Context, a *attendanceDatamodel.Attendance) error
	Update(ctx context.Context, id string, apply func(a *attendanceDatamodel.Attendance) error) (*attendanceDatamodel.Attendance, error)
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Attendance, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	records := make([]*Attendance, 0, len(rows))
	for _, row := range rows {
		records = append(records, FromDataModel(row))
	}
	return records, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Attendance, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateAttendanceDTO) (*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := dto.toDataModel()
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "attendance recorded", "attendance_id", row.ID, "user_id", row.UserID, "date", row.Date)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateAttendanceDTO) (*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.Update(ctx, id, dto.apply)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "attendance deleted", "attendance_id", id)
	return nil
}
