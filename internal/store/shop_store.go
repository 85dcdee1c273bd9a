package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/domain"
)

// StoreStore persists the merchant-store entity.
type StoreStore struct{ db *gorm.DB }

func (s *Store) Stores() *StoreStore { return &StoreStore{db: s.DB} }

func (ss *StoreStore) GetByName(ctx context.Context, name string) (*domain.Store, error) {
	var st domain.Store
	err := ss.db.WithContext(ctx).Preload("Items").First(&st, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (ss *StoreStore) All(ctx context.Context) ([]domain.Store, error) {
	var stores []domain.Store
	if err := ss.db.WithContext(ctx).Preload("Items").Order("name").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (ss *StoreStore) Create(ctx context.Context, st *domain.Store) error {
	return ss.db.WithContext(ctx).Create(st).Error
}

func (ss *StoreStore) Delete(ctx context.Context, name string) error {
	res := ss.db.WithContext(ctx).Where("name = ?", name).Delete(&domain.Store{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
