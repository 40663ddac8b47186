package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sweatshares/internal/api/v1/handler"
	"sweatshares/internal/config"
	"sweatshares/internal/dropboxsign"
	"sweatshares/internal/metrics"
	"sweatshares/internal/middleware"
	"sweatshares/internal/pubsub"
	"sweatshares/internal/repository"
	"sweatshares/internal/service"
	"sweatshares/internal/storage"
	"sweatshares/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// Handlers groups everything mounted by Mount.
type Handlers struct {
	Webhook     *handler.WebhookHandler
	DropboxSign *handler.DropboxSignHandler
	Deadline    *handler.DeadlineHandler
	Listing     *handler.ListingHandler
	Profile     *handler.ProfileHandler
	Message     *handler.MessageHandler
	Dashboard   *handler.DashboardHandler
	ListingPage *web.ListingPage
}

type MountOptions struct {
	AuthMiddleware     func(http.Handler) http.Handler
	WebhookLimit       func(http.Handler) http.Handler
	CORSAllowedOrigins []string
	Registry           *prometheus.Registry
}

// New connects to every backing service, builds the handler tree and
// returns it with a cleanup func that releases the connections. The webhook
// rate limiter sweeps idle clients until ctx is done.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// 1. Database
	pool, err := repository.NewPool(ctx, cfg.DBConnectionString, cfg.IsDevelopment())
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	closers := []func(){pool.Close}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 2. Dropbox Sign API key, optionally from Secret Manager
	apiKey, err := resolveDropboxSignKey(ctx, cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	// 3. Attachment storage
	s3Client, err := storage.NewS3Client(ctx, storage.S3Options{
		Endpoint:  cfg.S3URL,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	attachments := storage.NewS3AttachmentStorage(s3Client, cfg.S3Bucket)

	// 4. Domain event publisher
	var publisher pubsub.Publisher = pubsub.NoopPublisher{}
	if cfg.GCPProjectID != "" {
		var opts []option.ClientOption
		if cfg.GCPCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCPCredentialsFile))
		}
		p, err := pubsub.NewPublisher(ctx, cfg.GCPProjectID, opts...)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = p.Close() })
		publisher = p
	} else {
		logger.Warn().Msg("GCP_PROJECT_ID not set, signature events will not be published")
	}

	// 5. Repositories, services, handlers
	profileRepo := repository.NewProfileRepo(pool)
	listingRepo := repository.NewListingRepo(pool)
	signatureRepo := repository.NewSignatureRequestRepo(pool)
	deadlineRepo := repository.NewDeadlineRepo(pool)
	messageRepo := repository.NewMessageRepo(pool)

	dsClient := dropboxsign.NewClient(cfg.DropboxSignBaseURL, apiKey, time.Duration(cfg.DropboxSignTimeoutSec)*time.Second, logger)

	signatureSvc := service.NewSignatureService(signatureRepo, publisher, cfg.PubSubSignatureTopic, apiKey, logger)
	dropboxSignSvc := service.NewDropboxSignService(dsClient)
	deadlineSvc := service.NewDeadlineService(deadlineRepo, logger)
	listingSvc := service.NewListingService(listingRepo)
	profileSvc := service.NewProfileService(profileRepo)
	messageSvc := service.NewMessageService(messageRepo, attachments, logger)
	dashboardSvc := service.NewDashboardService(messageRepo, signatureRepo)

	renderer, err := web.NewTemplateRenderer()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	h := Handlers{
		Webhook:     handler.NewWebhookHandler(signatureSvc, logger),
		DropboxSign: handler.NewDropboxSignHandler(dropboxSignSvc, logger),
		Deadline:    handler.NewDeadlineHandler(deadlineSvc, logger),
		Listing:     handler.NewListingHandler(listingSvc, logger),
		Profile:     handler.NewProfileHandler(profileSvc, logger),
		Message:     handler.NewMessageHandler(messageSvc, validate, logger),
		Dashboard:   handler.NewDashboardHandler(dashboardSvc, logger),
		ListingPage: web.NewListingPage(listingSvc, renderer, logger),
	}

	// 6. Middleware
	limiter := middleware.NewRateLimiter(cfg.WebhookRateLimitRPS, cfg.WebhookRateLimitBurst, logger).
		TrustProxyHops(cfg.TrustedProxyHops)
	go limiter.Run(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handlerTree := Mount(h, MountOptions{
		AuthMiddleware:     middleware.AuthMiddleware(cfg.JWTSecret, cfg.SessionCookieName(), logger),
		WebhookLimit:       limiter.Limit,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Registry:           reg,
	}, logger)

	logger.Info().Str("session_cookie", cfg.SessionCookieName()).Msg("Router initialized")
	return handlerTree, cleanup, nil
}

// Mount registers every route on a fresh chi router.
func Mount(h Handlers, opts MountOptions, logger zerolog.Logger) http.Handler {
	metrics.Register(opts.Registry)

	r := chi.NewRouter()
	r.Use(middleware.LoggerMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	h.ListingPage.RegisterRoutes(r)

	r.Route("/v1", func(v1 chi.Router) {
		h.Webhook.RegisterRoutes(v1, opts.WebhookLimit)
		h.DropboxSign.RegisterRoutes(v1)
		h.Deadline.RegisterRoutes(v1, opts.AuthMiddleware)
		h.Listing.RegisterRoutes(v1)
		h.Profile.RegisterRoutes(v1, opts.AuthMiddleware)
		h.Message.RegisterRoutes(v1, opts.AuthMiddleware)
		h.Dashboard.RegisterRoutes(v1, opts.AuthMiddleware)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}

func resolveDropboxSignKey(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (string, error) {
	if cfg.DropboxSignAPIKey != "" || cfg.DropboxSignAPIKeySecret == "" {
		if cfg.DropboxSignAPIKey == "" {
			logger.Warn().Msg("DROPBOX_SIGN_API_KEY not set, webhooks will be rejected and provider routes will fail")
		}
		return cfg.DropboxSignAPIKey, nil
	}

	sm, err := service.NewSecretManagerService(ctx, cfg.GCPProjectID, cfg.GCPCredentialsFile)
	if err != nil {
		return "", err
	}
	defer sm.Close()

	key, err := sm.AccessSecret(ctx, cfg.DropboxSignAPIKeySecret)
	if err != nil {
		return "", fmt.Errorf("resolve Dropbox Sign API key: %w", err)
	}
	logger.Info().Msg("Dropbox Sign API key loaded from Secret Manager")
	return key, nil
}
