package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/workforce-portal/internal"
	userDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-portal/internal/user"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*Session, error)
	Me(ctx context.Context, userID string) (*user.User, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type RepositoryAPI interface {
	FindByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	FindByID(ctx context.Context, id string) (*userDatamodel.User, error)
	ListCredentials(ctx context.Context) ([]Credential, error)
	ReplacePasswordHashes(ctx context.Context, updates []PasswordUpdate) (int, error)
}

// ErrUserGone is returned by Me when the token outlived its user.
var ErrUserGone = internal.NewUnauthorizedError("user no longer exists", internal.ErrCodeInvalidToken)

// Service is the main auth service with dependencies
type Service struct {
	repo      RepositoryAPI
	tokens    TokenGeneratorAPI
	hasher    *PasswordHasher
	logger    *slog.Logger
	dummyHash string
}

// NewService creates a new auth service
func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, hasher *PasswordHasher, logger *slog.Logger) *Service {
	s := &Service{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
	// compared against on unknown emails so both failure paths cost one bcrypt check
	s.dummyHash, _ = hasher.Hash("not-a-real-password")
	return s
}

// Login checks credentials and issues a session token. Unknown emails and
// wrong passwords return the same error.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*Session, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.FindByEmail(ctx, user.NormalizeEmail(dto.Email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.hasher.Verify(dto.Password, s.dummyHash)
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(dto.Password, row.PasswordHash) {
		s.logger.WarnContext(ctx, "login rejected", "user_id", row.ID)
		return nil, internal.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(row.ID, row.Role, row.Name)
	if err != nil {
		return nil, internal.NewInternalError("internal server error", err)
	}

	s.logger.InfoContext(ctx, "login succeeded", "user_id", row.ID, "role", row.Role)
	return &Session{
		User:      user.FromDataModel(row),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Me re-reads the user so role and name reflect the current row, not the token.
func (s *Service) Me(ctx context.Context, userID string) (*user.User, error) {
	row, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserGone
		}
		return nil, err
	}
	return user.FromDataModel(row), nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}
