package main

import (
	"os"

	"github.com/lfarias/academico/internal/pkg/logger"
	"github.com/lfarias/academico/internal/server"
)

// @title Student Service API
// @version 1.0
// @description CRUD API for student records

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	srv, err := server.NewStudentServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize student service")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
