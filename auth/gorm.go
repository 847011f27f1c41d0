package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brainworksstudio2-dev/brain-works/errs"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

// GormProfileStore persists profiles in the users table. CreateIfAbsent maps
// to INSERT .. ON CONFLICT DO NOTHING so two concurrent first sign-ins for
// the same principal leave exactly one profile.
type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) FindByID(ctx context.Context, principalID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", principalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", errs.ErrStoreUnavailable)
	}
	return &user, nil
}

func (s *GormProfileStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("find profile by email: %w", errs.ErrStoreUnavailable)
	}
	return &user, nil
}

func (s *GormProfileStore) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(user)
	if res.Error != nil {
		// Id conflicts are absorbed by ON CONFLICT DO NOTHING, so a
		// duplicate-key error here means the unique email index fired:
		// another account holds this address.
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, errs.Validation("email already exists")
		}
		return false, fmt.Errorf("create profile: %w", errs.ErrStoreUnavailable)
	}
	return res.RowsAffected > 0, nil
}
