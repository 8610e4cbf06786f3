package main

import (
	"os"

	"github.com/lfarias/academico/internal/pkg/logger"
	"github.com/lfarias/academico/internal/server"
)

// @title Enrollment Service API
// @version 1.0
// @description CRUD API for course enrollments, backed by the student service for validation and enrichment

// @host localhost:8081
// @BasePath /
// @schemes http

func main() {
	srv, err := server.NewEnrollmentServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize enrollment service")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
