package sqlite

import (
	"context"
	"errors"

	"github.com/frahmantamala/workforce-portal/internal/auth"
	userDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"github.com/frahmantamala/workforce-portal/internal/user"
	"gorm.io/gorm"
)

type Repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) *Repository {
	return &Repository{
		store: s,
	}
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *Repository) FindByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) first(ctx context.Context, query string, arg string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.Where(query, arg).First(&u).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) ListCredentials(ctx context.Context) ([]auth.Credential, error) {
	var rows []struct {
		ID           string
		PasswordHash string
	}
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.Model(&userDatamodel.User{}).Select("id", "password_hash").Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	creds := make([]auth.Credential, 0, len(rows))
	for _, row := range rows {
		creds = append(creds, auth.Credential{UserID: row.ID, PasswordHash: row.PasswordHash})
	}
	return creds, nil
}

// ReplacePasswordHashes applies every update in one transaction. A row whose
// hash changed since it was read is left alone.
func (r *Repository) ReplacePasswordHashes(ctx context.Context, updates []auth.PasswordUpdate) (int, error) {
	var changed int64
	err := r.store.Mutate(ctx, func(tx *gorm.DB) error {
		for _, u := range updates {
			res := tx.Model(&userDatamodel.User{}).
				Where("id = ? AND password_hash = ?", u.UserID, u.Old).
				Update("password_hash", u.New)
			if res.Error != nil {
				return res.Error
			}
			changed += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(changed), nil
}
