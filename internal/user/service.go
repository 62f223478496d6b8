package user

import (
	"context"
	"log/slog"

	userDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/user"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, id string, apply func(u *userDatamodel.User) error) (*userDatamodel.User, error)
	Delete(ctx context.Context, id string) error
}

// PasswordHasher turns a plaintext password into its stored form.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	if filter.Email != "" {
		filter.Email = NormalizeEmail(filter.Email)
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, err
	}

	id := dto.ID
	if id == "" {
		id = uuid.NewString()
	}

	row := &userDatamodel.User{
		ID:           id,
		Name:         dto.Name,
		Email:        NormalizeEmail(dto.Email),
		PasswordHash: hash,
		Role:         dto.Role,
		EmployeeID:   dto.EmployeeID,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created", "user_id", row.ID, "role", row.Role)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// hash before taking the store lock
	var newHash string
	if dto.Password.HasValue() {
		hash, err := s.hasher.Hash(dto.Password.Value)
		if err != nil {
			return nil, err
		}
		newHash = hash
	}

	row, err := s.repo.Update(ctx, id, func(u *userDatamodel.User) error {
		dto.Name.Apply(&u.Name)
		if dto.Email.HasValue() {
			u.Email = NormalizeEmail(dto.Email.Value)
		}
		dto.Role.Apply(&u.Role)
		dto.EmployeeID.ApplyPtr(&u.EmployeeID)
		if newHash != "" {
			u.PasswordHash = newHash
		}
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
	s.logger.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}
