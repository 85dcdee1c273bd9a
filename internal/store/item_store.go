package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/domain"
)

type ItemStore struct{ db *gorm.DB }

func (s *Store) Items() *ItemStore { return &ItemStore{db: s.DB} }

func (i *ItemStore) GetByName(ctx context.Context, name string) (*domain.Item, error) {
	var item domain.Item
	if err := i.db.WithContext(ctx).First(&item, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (i *ItemStore) All(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	if err := i.db.WithContext(ctx).Order("name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (i *ItemStore) Create(ctx context.Context, item *domain.Item) error {
	return i.db.WithContext(ctx).Create(item).Error
}

func (i *ItemStore) Save(ctx context.Context, item *domain.Item) error {
	return i.db.WithContext(ctx).Save(item).Error
}

func (i *ItemStore) Delete(ctx context.Context, name string) error {
	res := i.db.WithContext(ctx).Where("name = ?", name).Delete(&domain.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
