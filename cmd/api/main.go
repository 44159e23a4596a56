package main

import (
	"context"
	"net/http"
	"os"
	"time"

	_ "address-validator/docs"
	"address-validator/internal/cache"
	"address-validator/internal/config"
	"address-validator/internal/handler"
	"address-validator/internal/provider"
	"address-validator/internal/repository"
	"address-validator/internal/service"
	"address-validator/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Address Validation API
//	@version		1.0
//	@description	Classifies US postal addresses as exact, corrected or unverifiable.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if config.GinMode != gin.ReleaseMode {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	gin.SetMode(config.GinMode)

	// Initialize layers
	geocoder := provider.NewGoogleGeocoder(provider.Options{
		APIKey:    config.GoogleMapsAPIKey,
		Endpoint:  config.ProviderEndpoint,
		Timeout:   config.ProviderTimeout,
		RateLimit: config.ProviderRateLimit,
		Burst:     config.ProviderBurst,
	})
	outcomeCache := cache.NewOutcomeCache(config.CacheTTL, 2*config.CacheTTL)
	classifier := validation.NewClassifier(config.SimilarityThreshold)
	validationService := service.NewAddressValidationService(geocoder, classifier, outcomeCache, config.MaxAddressLength)

	// History is optional; without a database the API still validates.
	var history handler.ValidationHistory
	if config.DBSource != "" {
		conn, err := pgxpool.New(context.Background(), config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		repo := repository.NewRepository(conn)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("cannot prepare db schema")
		}
		history = service.NewHistoryService(repo)
	} else {
		log.Info().Msg("DB_SOURCE not set, validation history disabled")
	}

	validationHandler := handler.NewValidationHandler(validationService, history)

	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestIDMiddleware(), handler.LoggerMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.POST("/validate-address", validationHandler.ValidateAddress)
	r.GET("/validations", validationHandler.RecentValidations)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Info().Str("address", config.ServerAddress).Str("provider", geocoder.Name()).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
