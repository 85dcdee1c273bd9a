package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/internal/domain"
	obsmw "storefront/internal/observability/middleware"
	"storefront/internal/service"
)

// Narrow views of the persistence and upload layers, so handlers can be
// exercised with fakes.

type UserStore interface {
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	Delete(ctx context.Context, userID uint) error
}

type ItemStore interface {
	GetByName(ctx context.Context, name string) (*domain.Item, error)
	All(ctx context.Context) ([]domain.Item, error)
	Create(ctx context.Context, item *domain.Item) error
	Save(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, name string) error
}

type StoreStore interface {
	GetByName(ctx context.Context, name string) (*domain.Store, error)
	All(ctx context.Context) ([]domain.Store, error)
	Create(ctx context.Context, st *domain.Store) error
	Delete(ctx context.Context, name string) error
}

type ImageStorage interface {
	SaveImage(name string, src io.Reader) (string, error)
	SaveAvatar(userID uint, name string, src io.Reader) (string, error)
	FindAvatar(userID uint) (string, error)
	Path(filename string) (string, error)
	Delete(filename string) error
}

type Deps struct {
	Auth          service.AuthService
	Confirmations service.ConfirmationService
	Tokens        service.TokenService
	Users         UserStore
	Items         ItemStore
	Stores        StoreStore
	Images        ImageStorage

	MaxUploadBytes int64
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(obsmw.WithRequestID)
	r.Use(obsmw.WithMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authRequired := requireToken(d.Tokens, false)
	freshRequired := requireToken(d.Tokens, true)

	uh := &userHandler{auth: d.Auth, tokens: d.Tokens, users: d.Users}
	r.Post("/register", uh.register)
	r.Post("/login", uh.login)
	r.With(authRequired).Post("/logout", uh.logout)
	r.Post("/refresh", uh.refresh)
	r.Get("/user/{id}", uh.getUser)
	r.With(freshRequired).Delete("/user/{id}", uh.deleteUser)

	ch := &confirmationHandler{confirmations: d.Confirmations, now: time.Now}
	r.Get("/user_confirmation/{confirmationID}", ch.confirmPage)
	r.Get("/confirmation/user/{userID}", ch.latest)
	r.Post("/confirmation/user/{userID}", ch.resend)

	cat := &catalogHandler{items: d.Items, stores: d.Stores}
	r.Get("/items", cat.listItems)
	r.Route("/item/{name}", func(r chi.Router) {
		r.Get("/", cat.getItem)
		r.With(freshRequired).Post("/", cat.createItem)
		r.With(authRequired).Put("/", cat.upsertItem)
		r.With(authRequired).Delete("/", cat.deleteItem)
	})
	r.Get("/stores", cat.listStores)
	r.Route("/store/{name}", func(r chi.Router) {
		r.Get("/", cat.getStore)
		r.With(freshRequired).Post("/", cat.createStore)
		r.With(authRequired).Delete("/", cat.deleteStore)
	})

	ih := &imageHandler{images: d.Images, maxBytes: d.MaxUploadBytes}
	r.With(authRequired).Post("/upload/image", ih.uploadImage)
	r.With(authRequired).Get("/image/{filename}", ih.getImage)
	r.With(authRequired).Delete("/image/{filename}", ih.deleteImage)
	r.With(authRequired).Post("/upload/avatar", ih.uploadAvatar)
	r.Get("/avatar/{userID}", ih.getAvatar)

	return r
}
