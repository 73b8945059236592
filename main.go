package main

import (
	"embed"
	"log"
	"net"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"heartrisk/adapters/forest"
	"heartrisk/internal/config"
	"heartrisk/internal/ops"
	"heartrisk/ui"
)

//go:embed ui/templates/* ui/static/css/*
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The model artifact must load before any form is served; a missing
	// or corrupt artifact halts the process here.
	model, err := forest.Load(appConfig.Model.Path)
	if err != nil {
		log.Fatalf("Error loading the model. Please make sure %q is present and valid: %v", appConfig.Model.Path, err)
	}

	server, err := ui.NewServer(appConfig, model, embeddedFiles)
	if err != nil {
		log.Fatalf("Failed to initialize UI server: %v", err)
	}

	var group errgroup.Group
	group.Go(func() error {
		return server.Start(net.JoinHostPort("", appConfig.Server.Port))
	})
	if appConfig.Ops.Enabled {
		opsServer := ops.NewServer(model)
		group.Go(func() error {
			return opsServer.Start(net.JoinHostPort("", appConfig.Ops.Port))
		})
	}

	if err := group.Wait(); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
