package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	v1 "github.com/produce-ledger/backend/internal/controllers/v1"
	"github.com/produce-ledger/backend/internal/mailer"
	"github.com/produce-ledger/backend/internal/models"
	"github.com/produce-ledger/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title			Produce Ledger
// @description	The backend for the produce ledger, a record keeping solution for produce weighing and dealer payments.
//
// @license.name	AGPL-3.0
//
// @securityDefinitions.apikey	BearerToken
// @in							header
// @name						Authorization
func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create data directory
	dataDir := filepath.Join(".", "data")
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database
	err = models.Connect("data/gorm.db")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Configure notifications
	mail, err := mailer.FromEnv()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	if !mail.Enabled() {
		log.Info().Msg("MAIL_SMTP_HOST is not set, mail notifications are disabled")
	}
	v1.SetMailer(mail)

	r, teardown, err := router.Config()
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = router.AttachRoutes(r.Group("/"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
