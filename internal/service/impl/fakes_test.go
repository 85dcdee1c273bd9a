package impl

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/service"
	"storefront/internal/store"
)

// In-memory fakes for the consumer-side store interfaces. WithTx snapshots
// state up front and restores it when the callback fails.

type memoryStore struct {
	mu            sync.Mutex
	nextUserID    uint
	users         map[uint]*domain.User
	usernameIdx   map[string]uint
	emailIdx      map[string]uint
	confirmations map[string]*domain.Confirmation
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nextUserID:    1,
		users:         make(map[uint]*domain.User),
		usernameIdx:   make(map[string]uint),
		emailIdx:      make(map[string]uint),
		confirmations: make(map[string]*domain.Confirmation),
	}
}

func (m *memoryStore) Users() userStore                 { return &memoryUserStore{store: m} }
func (m *memoryStore) Confirmations() confirmationStore { return &memoryConfirmationStore{store: m} }

func (m *memoryStore) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	snapshot := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

type storeSnapshot struct {
	nextUserID    uint
	users         map[uint]*domain.User
	usernameIdx   map[string]uint
	emailIdx      map[string]uint
	confirmations map[string]*domain.Confirmation
}

func (m *memoryStore) snapshot() storeSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := storeSnapshot{
		nextUserID:    m.nextUserID,
		users:         make(map[uint]*domain.User, len(m.users)),
		usernameIdx:   make(map[string]uint, len(m.usernameIdx)),
		emailIdx:      make(map[string]uint, len(m.emailIdx)),
		confirmations: make(map[string]*domain.Confirmation, len(m.confirmations)),
	}
	for id, u := range m.users {
		cp := *u
		s.users[id] = &cp
	}
	for k, v := range m.usernameIdx {
		s.usernameIdx[k] = v
	}
	for k, v := range m.emailIdx {
		s.emailIdx[k] = v
	}
	for id, c := range m.confirmations {
		cp := *c
		s.confirmations[id] = &cp
	}
	return s
}

func (m *memoryStore) restore(s storeSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextUserID = s.nextUserID
	m.users = s.users
	m.usernameIdx = s.usernameIdx
	m.emailIdx = s.emailIdx
	m.confirmations = s.confirmations
}

func (m *memoryStore) userByID(id uint) (*domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, false
	}
	cp := *u
	return &cp, true
}

func (m *memoryStore) confirmationCount(userID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.confirmations {
		if c.UserID == userID {
			n++
		}
	}
	return n
}

type memoryUserStore struct{ store *memoryStore }

func (u *memoryUserStore) Create(_ context.Context, usr *domain.User) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if usr.ID == 0 {
		usr.ID = u.store.nextUserID
		u.store.nextUserID++
	}
	cp := *usr
	u.store.users[usr.ID] = &cp
	u.store.usernameIdx[usr.Username] = usr.ID
	u.store.emailIdx[usr.Email] = usr.ID
	return nil
}

func (u *memoryUserStore) GetByID(_ context.Context, id uint) (*domain.User, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	usr, ok := u.store.users[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *usr
	return &cp, nil
}

func (u *memoryUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	id, ok := u.store.usernameIdx[username]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *u.store.users[id]
	return &cp, nil
}

func (u *memoryUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	id, ok := u.store.emailIdx[email]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *u.store.users[id]
	return &cp, nil
}

func (u *memoryUserStore) SetActivated(_ context.Context, userID uint) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	usr, ok := u.store.users[userID]
	if !ok {
		return store.ErrRecordNotFound
	}
	usr.Activated = true
	return nil
}

func (u *memoryUserStore) Delete(_ context.Context, userID uint) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	usr, ok := u.store.users[userID]
	if !ok {
		return store.ErrRecordNotFound
	}
	delete(u.store.usernameIdx, usr.Username)
	delete(u.store.emailIdx, usr.Email)
	delete(u.store.users, userID)
	for id, c := range u.store.confirmations {
		if c.UserID == userID {
			delete(u.store.confirmations, id)
		}
	}
	return nil
}

type memoryConfirmationStore struct{ store *memoryStore }

func (c *memoryConfirmationStore) Create(_ context.Context, rec *domain.Confirmation) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	cp := *rec
	c.store.confirmations[rec.ID] = &cp
	return nil
}

func (c *memoryConfirmationStore) GetByID(_ context.Context, id string) (*domain.Confirmation, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	rec, ok := c.store.confirmations[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (c *memoryConfirmationStore) LatestForUser(_ context.Context, userID uint) (*domain.Confirmation, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	var latest *domain.Confirmation
	for _, rec := range c.store.confirmations {
		if rec.UserID != userID {
			continue
		}
		if latest == nil || rec.ExpireAt.After(latest.ExpireAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, store.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (c *memoryConfirmationStore) SetConfirmed(_ context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	rec, ok := c.store.confirmations[id]
	if !ok {
		return store.ErrRecordNotFound
	}
	rec.Confirmed = true
	return nil
}

func (c *memoryConfirmationStore) ForceExpire(_ context.Context, id string, at time.Time) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	rec, ok := c.store.confirmations[id]
	if !ok {
		return store.ErrRecordNotFound
	}
	rec.ExpireAt = at
	return nil
}

// stubMailer records confirmation sends and can be told to fail.

type stubMailer struct {
	err   error
	sends []struct {
		to, username, link string
	}
}

func (s *stubMailer) SendConfirmation(_ context.Context, to, username, link string) error {
	s.sends = append(s.sends, struct{ to, username, link string }{to, username, link})
	return s.err
}

// stubTokenService hands back canned tokens.

type stubTokenService struct {
	accessErr  error
	revoked    []string
	issueCalls []struct {
		userID uint
		fresh  bool
	}
}

func (s *stubTokenService) IssueAccess(_ context.Context, userID uint, fresh bool) (string, error) {
	s.issueCalls = append(s.issueCalls, struct {
		userID uint
		fresh  bool
	}{userID, fresh})
	if s.accessErr != nil {
		return "", s.accessErr
	}
	return "access-token", nil
}

func (s *stubTokenService) IssueRefresh(_ context.Context, userID uint) (string, error) {
	return "refresh-token", nil
}

func (s *stubTokenService) Refresh(_ context.Context, refreshToken string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubTokenService) Verify(_ context.Context, raw string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTokenService) Revoke(_ context.Context, claims *service.Claims) error {
	s.revoked = append(s.revoked, claims.JTI)
	return nil
}
