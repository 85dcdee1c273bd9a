package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"storefront/internal/domain"
)

type ConfirmationStore struct{ db *gorm.DB }

func (s *Store) Confirmations() *ConfirmationStore { return &ConfirmationStore{db: s.DB} }

func (c *ConfirmationStore) Create(ctx context.Context, rec *domain.Confirmation) error {
	return c.db.WithContext(ctx).Create(rec).Error
}

func (c *ConfirmationStore) GetByID(ctx context.Context, id string) (*domain.Confirmation, error) {
	var rec domain.Confirmation
	if err := c.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// LatestForUser returns the confirmation with the latest expiry for a user.
func (c *ConfirmationStore) LatestForUser(ctx context.Context, userID uint) (*domain.Confirmation, error) {
	var rec domain.Confirmation
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expire_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (c *ConfirmationStore) SetConfirmed(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Model(&domain.Confirmation{}).
		Where("id = ?", id).
		Update("confirmed", true).Error
}

// ForceExpire moves a record's expiry into the past so a replacement can be
// issued without the superseded link remaining usable.
func (c *ConfirmationStore) ForceExpire(ctx context.Context, id string, at time.Time) error {
	return c.db.WithContext(ctx).Model(&domain.Confirmation{}).
		Where("id = ?", id).
		Update("expire_at", at).Error
}
