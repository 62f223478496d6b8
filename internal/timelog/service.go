package timelog

import (
	"context"
	"log/slog"

	timelogDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/timelog"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*timelogDatamodel.TimeLog, error)
	GetByID(ctx context.Context, id string) (*timelogDatamodel.TimeLog, error)
	Create(ctx context.Context, t *timelogDatamodel.TimeLog) error
	Update(ctx context.Context, id string, apply func(t *timelogDatamodel.TimeLog) error) (*timelogDatamodel.TimeLog, error)
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

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*TimeLog, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	logs := make([]*TimeLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, FromDataModel(row))
	}
	return logs, nil
}

func (s *Service) Get(ctx context.Context, id string) (*TimeLog, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateTimeLogDTO) (*TimeLog, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := dto.toDataModel()
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "time log started", "timelog_id", row.ID, "user_id", row.UserID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateTimeLogDTO) (*TimeLog, error) {
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
	s.logger.InfoContext(ctx, "time log deleted", "timelog_id", id)
	return nil
}
