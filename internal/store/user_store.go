package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/domain"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	return u.db.WithContext(ctx).Create(usr).Error
}

func (u *UserStore) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) SetActivated(ctx context.Context, userID uint) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("activated", true).Error
}

// Delete removes the user and every confirmation issued to it. Used both for
// explicit deletes and as the compensating rollback when the confirmation
// email cannot be sent.
func (u *UserStore) Delete(ctx context.Context, userID uint) error {
	if err := u.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Confirmation{}).Error; err != nil {
		return err
	}
	return u.db.WithContext(ctx).Where("id = ?", userID).Delete(&domain.User{}).Error
}
