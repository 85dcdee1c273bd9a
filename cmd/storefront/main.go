package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"storefront/internal/config"
	"storefront/internal/mail"
	"storefront/internal/messages"
	"storefront/internal/observability/logging"
	"storefront/internal/observability/metrics"
	"storefront/internal/revocation"
	"storefront/internal/service/impl"
	"storefront/internal/store"
	httpx "storefront/internal/transport/http"
	"storefront/internal/uploads"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "storefront",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	cfg := config.Load()
	metrics.MustRegister("storefront")

	if cfg.MessagesPath != "" {
		if err := messages.Load(cfg.MessagesPath); err != nil {
			logger.Error("load messages", "path", cfg.MessagesPath, "error", err)
			os.Exit(1)
		}
	}

	st, err := store.Open(store.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	if err := st.Migrate(); err != nil {
		logger.Error("migrate schema", "error", err)
		os.Exit(1)
	}

	var registry revocation.Registry
	if cfg.RedisAddr != "" {
		registry = revocation.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		logger.Info("using redis revocation registry", "addr", cfg.RedisAddr)
	} else {
		registry = revocation.NewMemory()
	}

	mailer, err := mail.NewMailgun(mail.MailgunConfig{
		Domain:  cfg.MailgunDomain,
		APIKey:  cfg.MailgunAPIKey,
		BaseURL: cfg.MailgunBaseURL,
		From:    cfg.MailFrom,
	})
	if err != nil {
		logger.Error("configure mailer", "error", err)
		os.Exit(1)
	}

	images, err := uploads.NewStorage(cfg.UploadDir)
	if err != nil {
		logger.Error("prepare upload dir", "error", err)
		os.Exit(1)
	}

	tokens := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		SigningKey: []byte(cfg.SigningKey),
	}, registry)
	auth := impl.NewAuthServiceImpl(st, tokens, mailer, cfg.ConfirmationTTL, cfg.ConfirmationBaseURL)
	confirmations := impl.NewConfirmationServiceImpl(st, mailer, cfg.ConfirmationTTL, cfg.ConfirmationBaseURL)

	handler := httpx.NewRouter(httpx.Deps{
		Auth:           auth,
		Confirmations:  confirmations,
		Tokens:         tokens,
		Users:          st.Users(),
		Items:          st.Items(),
		Stores:         st.Stores(),
		Images:         images,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("storefront listening", "addr", srv.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
