package sqlite

import (
	"context"
	"errors"

	userDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"github.com/frahmantamala/workforce-portal/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) user.RepositoryAPI {
	return &UserRepository{store: s}
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*userDatamodel.User, error) {
	users := make([]*userDatamodel.User, 0)
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		q := db.Order("created_at ASC, id ASC")
		if filter.Role != "" {
			q = q.Where("role = ?", filter.Role)
		}
		if filter.Email != "" {
			q = q.Where("email = ?", filter.Email)
		}
		return q.Find(&users).Error
	})
	return users, err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.store.Read(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&u).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	err := r.store.Mutate(ctx, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&userDatamodel.User{}).Where("id = ?", u.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return user.ErrDuplicateID
		}
		if err := emailTaken(tx, u.Email, ""); err != nil {
			return err
		}
		return tx.Create(u).Error
	})
	return translate(err)
}

func (r *UserRepository) Update(ctx context.Context, id string, apply func(u *userDatamodel.User) error) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.store.Mutate(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return user.ErrNotFound
			}
			return err
		}
		before := u.Email
		if err := apply(&u); err != nil {
			return err
		}
		if u.Email != before {
			if err := emailTaken(tx, u.Email, u.ID); err != nil {
				return err
			}
		}
		return tx.Save(&u).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
	})
}

func emailTaken(tx *gorm.DB, email, exceptID string) error {
	var n int64
	q := tx.Model(&userDatamodel.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return user.ErrEmailTaken
	}
	return nil
}

// translate maps a unique-constraint failure that slipped past the pre-checks.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return user.ErrEmailTaken
	}
	return err
}
