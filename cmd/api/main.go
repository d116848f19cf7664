package main

import (
	"os"

	"github.com/hopebridge/eventhub/internal/pkg/logger"
	"github.com/hopebridge/eventhub/internal/server"
)

// @title HopeBridge EventHub API
// @version 1.0
// @description API for HopeBridge community events, registrations, reminders and certificates

// @contact.name API Support
// @contact.email support@hopebridge.in

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
