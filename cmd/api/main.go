package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/cache"
	"github.com/fiveflix/videos-ms-go/internal/config"
	"github.com/fiveflix/videos-ms-go/internal/db"
	"github.com/fiveflix/videos-ms-go/internal/handler/api"
	"github.com/fiveflix/videos-ms-go/internal/logger"
	cMiddleware "github.com/fiveflix/videos-ms-go/internal/middleware"
	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/fiveflix/videos-ms-go/internal/repository/mariadb"
	"github.com/fiveflix/videos-ms-go/internal/storage"
	"github.com/fiveflix/videos-ms-go/internal/token"
	"github.com/fiveflix/videos-ms-go/internal/usecase/auth"
	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/go-sql-driver/mysql"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()
	api.SetDebug(cfg.Debug)

	database := initDb(ctx, cfg)
	strg := initStorage(ctx, cfg)

	var ca port.Cache
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTLItem, cfg.CacheTTLIndex, cfg.CacheTTLFeatured)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured — caching is disabled")
	}

	videoRepo := mariadb.NewVideoRepository(database.DB)
	userRepo := mariadb.NewUserRepository(database.DB)
	refreshRepo := mariadb.NewRefreshTokenRepository(database.DB)
	accessRepo := mariadb.NewAccessTokenRepository(database.DB)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	r := initRouter(ctx)
	registerRoutes(r, cfg, issuer, videoRepo, userRepo, refreshRepo, accessRepo, ca, strg)

	listenRouter(ctx, r, cfg, database)
}

func registerRoutes(
	r *chi.Mux,
	cfg *config.Settings,
	issuer *token.Issuer,
	videoRepo port.VideoRepository,
	userRepo port.UserRepository,
	refreshRepo port.RefreshTokenRepository,
	accessRepo port.AccessTokenRepository,
	ca port.Cache,
	strg port.Storage,
) {
	authLimiter := cMiddleware.NewIPRateLimiter(cfg.RateAuth, time.Minute)
	publicLimiter := cMiddleware.NewIPRateLimiter(cfg.RatePublic, time.Minute)
	adminLimiter := cMiddleware.NewIPRateLimiter(cfg.RateAdmin, time.Minute)
	downloadLimiter := cMiddleware.NewIPRateLimiter(cfg.RateDownload, time.Minute)

	loginSvc := auth.NewAuthenticator(userRepo, refreshRepo, accessRepo, issuer, cfg.RefreshTokenTTL)
	registerSvc := auth.NewRegistrar(userRepo, refreshRepo, accessRepo, issuer, cfg.RefreshTokenTTL)
	refreshSvc := auth.NewRefresher(userRepo, refreshRepo, accessRepo, issuer)
	revokeSvc := auth.NewRevoker(refreshRepo, accessRepo)

	listSvc := catalog.NewVideoLister(videoRepo, ca, strg, cfg.S3Bucket)
	getSvc := catalog.NewVideoGetter(videoRepo, ca, strg, cfg.S3Bucket)
	infoSvc := catalog.NewVideoInfoGetter(videoRepo, ca, strg, cfg.S3Bucket)
	streamSvc := catalog.NewStreamer(videoRepo, ca, strg, cfg.S3Bucket)
	downloadSvc := catalog.NewVideoDownloader(videoRepo, strg, cfg.S3Bucket)
	createSvc := catalog.NewVideoCreator(videoRepo, ca, strg)
	updateSvc := catalog.NewVideoUpdater(videoRepo, ca, strg, cfg.S3Bucket)
	deleteSvc := catalog.NewVideoDeleter(videoRepo, ca, strg, cfg.S3Bucket)
	uploadLinkSvc := catalog.NewUploadLinkGenerator(strg)
	confirmSvc := catalog.NewUploadConfirmer(videoRepo, ca, strg)

	// public auth endpoints, tightly rate limited
	r.Group(func(r chi.Router) {
		r.Use(cMiddleware.WithRateLimit(authLimiter))
		r.Post("/login", api.LoginHandler(loginSvc))
		r.Post("/register", api.RegisterHandler(registerSvc))
		r.Post("/refresh", api.RefreshHandler(refreshSvc))
	})

	// catalog reads are open; anyone can browse and play
	r.Group(func(r chi.Router) {
		r.Use(cMiddleware.WithRateLimit(publicLimiter))

		r.Get("/videos", api.ListVideosHandler(listSvc, false))
		r.With(cMiddleware.WithVideoID()).Get("/videos/{id}", api.GetVideoHandler(getSvc))
		r.With(cMiddleware.WithVideoID()).Get("/videos/{id}/info", api.VideoInfoHandler(infoSvc))
		r.With(cMiddleware.WithVideoID()).Get("/videos/{id}/stream", api.StreamHandler(streamSvc, false))
		r.With(cMiddleware.WithVideoID()).Get("/videos/{id}/thumbnail", api.StreamHandler(streamSvc, true))
	})

	// everything below requires a valid, unrevoked access token
	r.Group(func(r chi.Router) {
		r.Use(cMiddleware.WithAuth(issuer, userRepo, accessRepo))

		r.Group(func(r chi.Router) {
			r.Use(cMiddleware.WithRateLimit(publicLimiter))

			r.Post("/logout", api.LogoutHandler(revokeSvc))
			r.Post("/logout-all", api.LogoutAllHandler(revokeSvc))
			r.Get("/user", api.MeHandler())

			r.Get("/videos-featured", api.ListVideosHandler(listSvc, true))
		})

		r.With(cMiddleware.WithVideoID(), cMiddleware.WithRateLimit(downloadLimiter)).
			Get("/videos/{id}/download", api.DownloadVideoHandler(downloadSvc))

		// catalog writes are admin-only
		r.Group(func(r chi.Router) {
			r.Use(cMiddleware.RequireAdmin())
			r.Use(cMiddleware.WithRateLimit(adminLimiter))

			r.Post("/videos", api.CreateVideoHandler(createSvc))
			r.With(cMiddleware.WithVideoID()).Post("/videos/{id}/update", api.UpdateVideoHandler(updateSvc))
			r.With(cMiddleware.WithVideoID()).Delete("/videos/{id}", api.DeleteVideoHandler(deleteSvc))
			r.Post("/videos/upload-urls", api.UploadLinkHandler(uploadLinkSvc))
			r.Post("/videos/confirm-upload", api.ConfirmUploadHandler(confirmSvc))
		})
	})
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.S3Endpoint,
		cfg.S3AccessKey,
		cfg.S3SecretKey,
		cfg.S3Region,
		cfg.S3Bucket,
		cfg.S3UseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize S3 client: %v", err)
		os.Exit(1)
	}
	if err := strg.InitBucket(); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.S3Bucket, err)
		os.Exit(1)
	}

	return strg
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
