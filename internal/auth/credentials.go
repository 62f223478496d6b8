package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash creates a bcrypt hash of the password
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IsHashed reports whether value carries a bcrypt version marker.
func IsHashed(value string) bool {
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}

// Credential is a stored password hash, or a legacy plaintext value.
type Credential struct {
	UserID       string
	PasswordHash string
}

// PasswordUpdate replaces Old with New for one user.
type PasswordUpdate struct {
	UserID string
	Old    string
	New    string
}

// MigrateLegacyPasswords re-hashes every stored password that is not yet a
// bcrypt hash. Nothing is written when every row is already hashed, so a
// second run is a no-op.
func (s *Service) MigrateLegacyPasswords(ctx context.Context) (int, error) {
	creds, err := s.repo.ListCredentials(ctx)
	if err != nil {
		return 0, err
	}

	var updates []PasswordUpdate
	for _, c := range creds {
		if IsHashed(c.PasswordHash) {
			continue
		}
		hash, err := s.hasher.Hash(c.PasswordHash)
		if err != nil {
			return 0, err
		}
		updates = append(updates, PasswordUpdate{UserID: c.UserID, Old: c.PasswordHash, New: hash})
	}

	if len(updates) == 0 {
		return 0, nil
	}

	n, err := s.repo.ReplacePasswordHashes(ctx, updates)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "migrated legacy passwords", "count", n)
	return n, nil
}
