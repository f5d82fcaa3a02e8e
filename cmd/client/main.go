// Package main runs the interactive tenderdesk client: a terminal frontend
// over the tender platform's REST API.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"tenderdesk/internal/api"
	"tenderdesk/internal/config"
	"tenderdesk/internal/logger"
	"tenderdesk/internal/session"
	"tenderdesk/internal/views"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	fmt.Printf("tenderdesk %s (built %s)\n", cmp.Or(version, "dev"), cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}

	client := api.New(options.ServerURL, log.Log)
	store := session.NewStore(options.TokenFile)

	log.Log.Debug("client starting", zap.String("url", options.ServerURL))

	ui := views.New(os.Stdin, os.Stdout, client, store, log.Log)
	ui.Run(context.Background(), views.RouteHome)
}
