// SPDX-License-Identifier: Apache-2.0

// Command bridge runs the conversation webhook bridge with the built-in
// echo consumer. Embedders that want their own dialog logic use the
// router and api packages directly.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DeanCording/node-red-contrib-google-action/internal/api"
	"github.com/DeanCording/node-red-contrib-google-action/internal/config"
	galog "github.com/DeanCording/node-red-contrib-google-action/internal/log"
	"github.com/DeanCording/node-red-contrib-google-action/internal/router"
	"github.com/DeanCording/node-red-contrib-google-action/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		os.Exit(0)
	}

	cfg := config.FromEnv()

	galog.Configure(galog.Config{
		Level:   cfg.LogLevel,
		Service: "google-action",
		Version: version.Version,
	})
	logger := galog.WithComponent("bridge")

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := &EchoConsumer{Welcome: cfg.WelcomePrompt}
	rt := router.New(consumer, router.Options{
		AnswerTimeout:    cfg.AnswerTimeout,
		TimeoutUtterance: cfg.TimeoutUtterance,
		FailureUtterance: cfg.FailureUtterance,
	})
	consumer.Resolver = rt

	srv := api.New(cfg, rt)

	logger.Info().
		Str("listen", cfg.Listen).
		Dur("answer_timeout", cfg.AnswerTimeout).
		Msg("bridge starting")

	err := srv.Run(ctx)
	rt.Shutdown()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("bridge terminated")
	}
	logger.Info().Msg("bridge stopped")
}
