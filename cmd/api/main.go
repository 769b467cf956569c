package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "violations-dashboard/docs"
	"violations-dashboard/internal/config"
	"violations-dashboard/internal/handler"
	"violations-dashboard/internal/logging"
	"violations-dashboard/internal/repository"
	"violations-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title			Building Violations Dashboard API
// @version		1.0
// @description	Exploratory analytics over municipal building violations.
// @BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	logging.Setup(config.LogLevel, config.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Data source
	repo, closeRepo, err := openRepository(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Str("source", config.DataSource).Msg("cannot open data source")
	}
	defer closeRepo()

	// Initialize layers
	dashboardService, err := service.NewDashboardService(ctx, repo, service.Options{
		ColorScheme: config.ColorScheme,
		ColorSeed:   config.ColorSeed,
		TopN:        config.TopN,
		YearMin:     config.YearMin,
		YearMax:     config.YearMax,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load violations")
	}

	years := handler.YearBounds{Min: config.YearMin, Max: config.YearMax}
	dashboardHandler := handler.NewDashboardHandler(dashboardService, years)
	chartHandler := handler.NewChartHandler(dashboardService, years)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger())

	r.GET("/health", handler.Health)

	dashboardHandler.Register(r.Group("/api"))
	chartHandler.Register(r.Group("/charts"))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// openRepository returns the repository for the configured data source and
// a function releasing its resources.
func openRepository(ctx context.Context, cfg config.Config) (service.ViolationRepository, func(), error) {
	switch cfg.DataSource {
	case config.SourcePostgres:
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresRepository(conn), conn.Close, nil
	case config.SourceSQLite:
		repo, err := repository.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Error().Err(err).Msg("cannot close sqlite database")
			}
		}, nil
	default:
		return repository.NewCSVRepository(cfg.CSVPath), func() {}, nil
	}
}
