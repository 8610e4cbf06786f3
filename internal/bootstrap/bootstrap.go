package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/lfarias/academico/internal/app/controllers"
	appMigrations "github.com/lfarias/academico/internal/app/migrations"
	appRepos "github.com/lfarias/academico/internal/app/repositories"
	appRoutes "github.com/lfarias/academico/internal/app/routes"
	appServices "github.com/lfarias/academico/internal/app/services"
	"github.com/lfarias/academico/internal/client/studentclient"
	"github.com/lfarias/academico/internal/config"
	"github.com/lfarias/academico/internal/db"
	appMiddleware "github.com/lfarias/academico/internal/middleware"
	"github.com/lfarias/academico/internal/pkg/helpers"
	"github.com/lfarias/academico/internal/pkg/logger"
	"github.com/lfarias/academico/internal/pkg/validation"
)

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// SetupStudentRouter wires the student service slice and configures its router.
func SetupStudentRouter(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*gin.Engine, error) {
	studentRepo := appRepos.NewStudentRepository(dbPool)
	studentService := appServices.NewStudentService(studentRepo, lgr)
	studentController := appControllers.NewStudentController(studentService)

	router, err := newRouter(cfg, lgr)
	if err != nil {
		return nil, err
	}
	appRoutes.SetupStudentRoutes(router, studentController)

	return router, nil
}

// SetupEnrollmentRouter wires the enrollment service slice, including the
// remote student lookup client, and configures its router.
func SetupEnrollmentRouter(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*gin.Engine, error) {
	timeout := helpers.ParseDuration(cfg.StudentService.Timeout, 5*time.Second)
	studentClient := studentclient.NewHTTPClient(cfg.StudentService.BaseURL, timeout, lgr)

	enrollmentRepo := appRepos.NewEnrollmentRepository(dbPool)
	enrollmentService := appServices.NewEnrollmentService(enrollmentRepo, studentClient, lgr)
	enrollmentController := appControllers.NewEnrollmentController(enrollmentService)

	router, err := newRouter(cfg, lgr)
	if err != nil {
		return nil, err
	}
	appRoutes.SetupEnrollmentRoutes(router, enrollmentController)

	return router, nil
}

// newRouter creates a Gin engine with the shared middleware stack and
// registers the custom validation rules on the binding engine.
func newRouter(cfg *config.Config, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterCustomValidators(v); err != nil {
			return nil, fmt.Errorf("failed to register custom validators: %w", err)
		}
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	return router, nil
}
