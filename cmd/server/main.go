// @title         places API
// @version       1.0
// @description   Users register, log in and share geotagged places with an image.
// @BasePath      /api
// @schemes       http
// @host          localhost:5000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации в формате "Bearer <JWT>".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/gofiber/swagger"

	// internal imports
	"github.com/artem13815/places/api/http"
	"github.com/artem13815/places/api/http/handlers"
	_ "github.com/artem13815/places/docs"
	"github.com/artem13815/places/pkg/auth"
	"github.com/artem13815/places/pkg/config"
	"github.com/artem13815/places/pkg/geocode"
	"github.com/artem13815/places/pkg/geocode/amap"
	"github.com/artem13815/places/pkg/health"
	"github.com/artem13815/places/pkg/health/checkers"
	"github.com/artem13815/places/pkg/logging"
	"github.com/artem13815/places/pkg/place"
	pgrepo "github.com/artem13815/places/pkg/repository/postgres"
	"github.com/artem13815/places/pkg/security/jwt"
	"github.com/artem13815/places/pkg/storage/postgres"
	"github.com/artem13815/places/pkg/upload"
)

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL and bring the schema up to date
	pool, err := postgres.Connect(ctx, cfg.DSN(), postgres.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("postgres connect")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		logging.Fatal().Err(err).Msg("postgres migrate")
	}

	images, err := upload.NewStore(cfg.UploadDir, cfg.UploadMaxBytes)
	if err != nil {
		logging.Fatal().Err(err).Msg("init upload store")
	}

	// Wire dependencies
	userRepo := pgrepo.NewUserRepository(pool)
	placeRepo := pgrepo.NewPlaceRepository(pool)
	tx := pgrepo.NewTransactor(pool)

	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authUC := auth.NewAuthService(userRepo, auth.NewBcryptHasher(auth.DefaultHashCost), jwtGen)

	geocoder := geocode.NewBreakerResolver("amap", amap.New(cfg.AMapAPIKey, cfg.AMapBaseURL))
	placeUC := place.NewService(placeRepo, userRepo, tx, geocoder, images)

	// Health service: compose checkers
	readiness := health.NewService(
		checkers.NewPostgresChecker(pool),
		checkers.NewUploadDirChecker(images.Dir()),
	)

	app := http.NewApp(cfg.UploadMaxBytes)
	http.Register(app, http.Deps{
		Users:   handlers.NewUsersHandler(authUC),
		Places:  handlers.NewPlacesHandler(placeUC),
		Health:  handlers.NewHealthHandler(readiness),
		AuthMW:  jwt.NewAuthMiddleware(jwt.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)),
		Uploads: images,
	})

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)
	http.RegisterFallback(app)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logging.Error().Err(err).Msg("shutdown")
		}
	}()

	logging.Info().Str("port", cfg.Port).Msg("HTTP server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logging.Error().Err(err).Msg("server stopped")
	}
}
