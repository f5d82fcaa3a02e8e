// Package main runs the in-memory stub of the tender platform API for local
// development of the client.
package main

import (
	"net/http"

	"go.uber.org/zap"

	"tenderdesk/internal/config"
	"tenderdesk/internal/logger"
	"tenderdesk/internal/stubapi"
)

func main() {
	options := config.Parse()

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		panic(err)
	}

	store := stubapi.NewStore()
	server := stubapi.NewServer(store, []byte(options.Secret), log.Log)

	log.Log.Info("stub server listening", zap.String("address", options.Address))
	if err := http.ListenAndServe(options.Address, server.NewRouter()); err != nil {
		log.Log.Fatal("server stopped", zap.Error(err))
	}
}
