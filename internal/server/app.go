// Package server assembles the election backend: PostgreSQL repositories,
// services, the gin REST API, the gRPC health service and the event
// publisher. It runs until the context is cancelled or a signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/ballotkeeper/internal/logging"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/config"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/events"
	gs "github.com/dmitrijs2005/ballotkeeper/internal/server/grpc"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/services"
)

// openDB is replaced in tests.
var openDB = sql.Open

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	events events.Publisher
}

func NewApp(c *config.Config, l logging.Logger) *App {
	var pub events.Publisher = events.NopPublisher{}
	if len(c.KafkaBrokers) > 0 {
		pub = events.NewKafkaPublisher(c.KafkaBrokers, c.KafkaTopic)
	}
	return &App{
		config: c,
		logger: l,
		repos:  repomanager.NewPostgresRepositoryManager(),
		events: pub,
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) openDatabase(ctx context.Context) (*sql.DB, error) {
	db, err := openDB("pgx", app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := app.repos.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return db, nil
}

func (app *App) buildAPI(db *sql.DB) *httpapi.API {
	deps := services.Deps{DB: db, Repos: app.repos, Events: app.events, Log: app.logger}
	return &httpapi.API{
		Auth:       services.NewAuthService(app.config),
		Elections:  services.NewElectionService(deps),
		Candidates: services.NewCandidateService(deps, services.NewS3ImageStore(app.config)),
		Voters:     services.NewVoterService(deps),
		Tokens:     services.NewTokenService(deps),
		Results:    services.NewResultService(deps),
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives, or one
// of the servers fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	db, err := app.openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	defer func() {
		if err := app.events.Close(); err != nil {
			app.logger.Warn(ctx, "event publisher close failed", "error", err)
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(app.buildAPI(db), app.logger, metrics.New("ballotkeeper"))

	httpServer := httpapi.NewServer(app.config.HTTPAddr, router, app.logger)
	healthServer := gs.NewHealthServer(app.config.HealthAddr, app.logger)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				app.logger.Error(ctx, "server stopped with error", "server", name, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				cancelFunc()
			}
		}()
	}

	run("http", httpServer.Run)
	run("grpc_health", healthServer.Run)

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}
