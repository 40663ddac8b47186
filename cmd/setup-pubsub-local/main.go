package main

import (
	"context"
	"flag"
	"time"

	"sweatshares/internal/config"
	"sweatshares/internal/logger"
	"sweatshares/internal/pubsub"

	gpubsub "cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

// setup-pubsub-local creates the signature event topic, its dead-letter
// topic and their subscriptions on the Pub/Sub emulator.
func main() {
	reset := flag.Bool("reset", false, "delete every topic and subscription before creating resources")
	flag.Parse()

	logger := logger.New()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("No .env file found, relying on system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Failed to load config: %v", err)
	}
	if cfg.GCPProjectID == "" {
		logger.Fatal().Msg("GCP_PROJECT_ID is not set")
	}
	if cfg.PubSubEmulatorHost == "" {
		logger.Fatal().Msg("PUBSUB_EMULATOR_HOST must be set; this tool only targets the emulator")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := gpubsub.NewClient(ctx, cfg.GCPProjectID,
		option.WithEndpoint(cfg.PubSubEmulatorHost),
		option.WithoutAuthentication(),
	)
	if err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close Pub/Sub client")
		}
	}()

	if *reset {
		if err := pubsub.ResetTopology(ctx, client, logger); err != nil {
			logger.Fatal().Msgf("Failed to reset emulator: %v", err)
		}
	}
	if err := pubsub.EnsureTopology(ctx, client, cfg.PubSubSignatureTopic, logger); err != nil {
		logger.Fatal().Msgf("Failed to set up Pub/Sub resources: %v", err)
	}
	logger.Info().Str("topic", cfg.PubSubSignatureTopic).Msg("Pub/Sub setup for local environment complete")
}
