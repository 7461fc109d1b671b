// Package server wires the configuration, storage, services and transport
// together and runs the gophprofile API until it is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server/auth"
	"github.com/dmitrijs2005/gophprofile/internal/server/config"
	"github.com/dmitrijs2005/gophprofile/internal/server/graphql"
	"github.com/dmitrijs2005/gophprofile/internal/server/httpserver"
	"github.com/dmitrijs2005/gophprofile/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophprofile/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpserver.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)
	warnInsecureDefaults(ctx, logger, c)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	router := newRouter(c, db, rm, logger)

	srv := httpserver.NewHTTPServer(c.EndpointAddrHTTP, logger, router, c.ShutdownTimeout)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func warnInsecureDefaults(ctx context.Context, logger logging.Logger, c *config.Config) {
	if c.SecretKey == config.DefaultSecretKey {
		logger.Warn(ctx, "using the built-in JWT secret; set JWT_SECRET or -s outside local development")
	}
}

// newRouter builds the services and the HTTP routes on top of db and rm.
func newRouter(c *config.Config, db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) http.Handler {
	hasher := auth.NewPasswordHasher(auth.HashParams{
		Memory:      c.HashMemoryKiB,
		Iterations:  c.HashIterations,
		Parallelism: c.HashParallelism,
		SaltLength:  auth.DefaultHashParams().SaltLength,
		KeyLength:   auth.DefaultHashParams().KeyLength,
	}, c.HashWorkers)
	tokens := auth.NewTokenManager([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	as := services.NewAuthService(db, rm, hasher, tokens, logger)
	us := services.NewUserService(db, rm, logger)

	schema := graphql.NewSchema(graphql.NewResolver(as, us, logger))

	deps := httpserver.RouterDeps{
		GraphQL:        graphql.NewHandler(schema, logger),
		Auth:           auth.NewResolver(tokens).Middleware,
		AllowedOrigins: c.AllowedOrigins,
		Logger:         logger,
	}
	if db != nil {
		deps.DB = db
	}
	return httpserver.NewRouter(deps)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until ctx is cancelled or a termination signal arrives, then
// shuts the HTTP server down and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
