package impl

import (
	"context"
	"time"

	"storefront/internal/domain"
	"storefront/internal/store"
)

// Consumer-side views of the persistence layer, so services can be exercised
// against in-memory fakes. Stores signal a miss with store.ErrRecordNotFound.

type dataStore interface {
	storeTx
	WithTx(ctx context.Context, fn func(tx storeTx) error) error
}

type storeTx interface {
	Users() userStore
	Confirmations() confirmationStore
}

type userStore interface {
	Create(ctx context.Context, usr *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetActivated(ctx context.Context, userID uint) error
	Delete(ctx context.Context, userID uint) error
}

type confirmationStore interface {
	Create(ctx context.Context, rec *domain.Confirmation) error
	GetByID(ctx context.Context, id string) (*domain.Confirmation, error)
	LatestForUser(ctx context.Context, userID uint) (*domain.Confirmation, error)
	SetConfirmed(ctx context.Context, id string) error
	ForceExpire(ctx context.Context, id string, at time.Time) error
}

type gormStoreAdapter struct {
	store *store.Store
}

func (g gormStoreAdapter) Users() userStore { return g.store.Users() }

func (g gormStoreAdapter) Confirmations() confirmationStore { return g.store.Confirmations() }

func (g gormStoreAdapter) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormStoreAdapter{store: tx})
	})
}
