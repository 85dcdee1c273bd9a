package http

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/revocation"
	"storefront/internal/service"
	"storefront/internal/service/impl"
	"storefront/internal/store"
	"storefront/internal/uploads"
)

// The token service and upload storage are the real implementations; only the
// services with external side effects are stubbed.

type stubAuthService struct {
	tokens service.TokenService

	registerFn func(ctx context.Context, r dto.RegisterRequest) (*domain.User, error)
	loginFn    func(ctx context.Context, r dto.LoginRequest) (*dto.TokenPairResponse, error)
}

func (s *stubAuthService) Register(ctx context.Context, r dto.RegisterRequest) (*domain.User, error) {
	if s.registerFn == nil {
		return &domain.User{ID: 1, Username: r.Username, Email: r.Email}, nil
	}
	return s.registerFn(ctx, r)
}

func (s *stubAuthService) Login(ctx context.Context, r dto.LoginRequest) (*dto.TokenPairResponse, error) {
	if s.loginFn == nil {
		return &dto.TokenPairResponse{AccessToken: "a", RefreshToken: "r"}, nil
	}
	return s.loginFn(ctx, r)
}

func (s *stubAuthService) Logout(ctx context.Context, claims *service.Claims) error {
	return s.tokens.Revoke(ctx, claims)
}

type stubConfirmationService struct {
	confirmFn func(ctx context.Context, id string) (*domain.User, error)
	resendFn  func(ctx context.Context, userID uint) error
	latestFn  func(ctx context.Context, userID uint) (*domain.Confirmation, error)
}

func (s *stubConfirmationService) Confirm(ctx context.Context, id string) (*domain.User, error) {
	return s.confirmFn(ctx, id)
}

func (s *stubConfirmationService) Resend(ctx context.Context, userID uint) error {
	return s.resendFn(ctx, userID)
}

func (s *stubConfirmationService) LatestForUser(ctx context.Context, userID uint) (*domain.Confirmation, error) {
	return s.latestFn(ctx, userID)
}

type mapUserStore struct {
	users map[uint]*domain.User
}

func (m *mapUserStore) GetByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mapUserStore) Delete(_ context.Context, userID uint) error {
	if _, ok := m.users[userID]; !ok {
		return store.ErrRecordNotFound
	}
	delete(m.users, userID)
	return nil
}

type mapItemStore struct {
	nextID uint
	items  map[string]*domain.Item
}

func (m *mapItemStore) GetByName(_ context.Context, name string) (*domain.Item, error) {
	it, ok := m.items[name]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *mapItemStore) All(_ context.Context) ([]domain.Item, error) {
	out := make([]domain.Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mapItemStore) Create(_ context.Context, item *domain.Item) error {
	m.nextID++
	item.ID = m.nextID
	cp := *item
	m.items[item.Name] = &cp
	return nil
}

func (m *mapItemStore) Save(_ context.Context, item *domain.Item) error {
	cp := *item
	m.items[item.Name] = &cp
	return nil
}

func (m *mapItemStore) Delete(_ context.Context, name string) error {
	if _, ok := m.items[name]; !ok {
		return store.ErrRecordNotFound
	}
	delete(m.items, name)
	return nil
}

type mapStoreStore struct {
	nextID uint
	stores map[string]*domain.Store
}

func (m *mapStoreStore) GetByName(_ context.Context, name string) (*domain.Store, error) {
	st, ok := m.stores[name]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (m *mapStoreStore) All(_ context.Context) ([]domain.Store, error) {
	out := make([]domain.Store, 0, len(m.stores))
	for _, st := range m.stores {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mapStoreStore) Create(_ context.Context, st *domain.Store) error {
	m.nextID++
	st.ID = m.nextID
	cp := *st
	m.stores[st.Name] = &cp
	return nil
}

func (m *mapStoreStore) Delete(_ context.Context, name string) error {
	if _, ok := m.stores[name]; !ok {
		return store.ErrRecordNotFound
	}
	delete(m.stores, name)
	return nil
}

type testServer struct {
	handler       http.Handler
	tokens        service.TokenService
	auth          *stubAuthService
	confirmations *stubConfirmationService
	users         *mapUserStore
	items         *mapItemStore
	stores        *mapStoreStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tokens := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     "storefront-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
		SigningKey: []byte("test-signing-key"),
	}, revocation.NewMemory())

	auth := &stubAuthService{tokens: tokens}
	confirmations := &stubConfirmationService{}
	users := &mapUserStore{users: make(map[uint]*domain.User)}
	items := &mapItemStore{items: make(map[string]*domain.Item)}
	stores := &mapStoreStore{stores: make(map[string]*domain.Store)}

	images, err := uploads.NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	handler := NewRouter(Deps{
		Auth:           auth,
		Confirmations:  confirmations,
		Tokens:         tokens,
		Users:          users,
		Items:          items,
		Stores:         stores,
		Images:         images,
		MaxUploadBytes: 1 << 20,
	})

	return &testServer{
		handler:       handler,
		tokens:        tokens,
		auth:          auth,
		confirmations: confirmations,
		users:         users,
		items:         items,
		stores:        stores,
	}
}

func (ts *testServer) accessToken(t *testing.T, userID uint, fresh bool) string {
	t.Helper()
	raw, err := ts.tokens.IssueAccess(context.Background(), userID, fresh)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func (ts *testServer) refreshToken(t *testing.T, userID uint) string {
	t.Helper()
	raw, err := ts.tokens.IssueRefresh(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}
