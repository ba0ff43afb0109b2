package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"inkframe/internal/adapters/fetcher"
	"inkframe/internal/adapters/renderer"
	"inkframe/internal/core/domain"
	"inkframe/internal/core/service"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting inkframe...")

	viper.AddConfigPath(".")
	viper.SetConfigName("inkframe")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("log.level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	viper.SetDefault("image.orientation", string(domain.Horizontal))
	viper.SetDefault("display.output", "frame.png")

	enhancement := domain.DefaultEnhancement()
	if err := viper.UnmarshalKey("image.enhancement", &enhancement); err != nil {
		log.Fatal().Err(err).Msg("invalid enhancement settings in config")
	}

	opts := domain.RenderOptions{
		Size: domain.Dimensions{
			Width:  viper.GetInt("display.width"),
			Height: viper.GetInt("display.height"),
		},
		Orientation: domain.Orientation(viper.GetString("image.orientation")),
		Inverted:    viper.GetBool("image.inverted"),
		Resize:      viper.GetStringSlice("image.resize_settings"),
		Enhancement: enhancement,
		Letterbox:   viper.GetBool("image.letterbox"),
	}

	if opts.Size.Width <= 0 || opts.Size.Height <= 0 {
		log.Fatal().Msg("display.width and display.height must be positive")
	}

	source := domain.Source{
		ImageURL: viper.GetString("source.image_url"),
		Target:   viper.GetString("source.target"),
		HTML:     viper.GetString("source.html"),
	}

	timeout := time.Duration(viper.GetInt("render.timeout_ms")) * time.Millisecond

	pipeline := service.NewPipeline(fetcher.NewHTTPFetcher(), renderer.NewChromium(), timeout)

	frame, err := pipeline.Process(ctx, source, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to render frame")
	}

	output := viper.GetString("display.output")
	if err := imaging.Save(frame.Image, output); err != nil {
		log.Fatal().Err(err).Msg("failed to save frame")
	}

	log.Info().Str("path", output).Str("hash", frame.Hash).Msg("frame rendered")
}
