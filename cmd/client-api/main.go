package main

import (
	"context"
	"os/signal"
	"syscall"

	"weather-relay/configs"
	"weather-relay/internal/application/server"
	"weather-relay/pkg/log"
	"weather-relay/pkg/msg"
	"weather-relay/pkg/resource"
)

func main() {
	defer log.Sync()

	// Init config
	path := resource.PathFromEnv(configs.DefaultClientPropertiesPath)
	config, err := configs.LoadClient(path)
	if err != nil {
		log.Fatal(msg.GetMessage("app.config-fail", path, err))
	}

	// Init infra
	clientServer, err := server.NewClientServer(config)
	if err != nil {
		log.Fatal(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start Routes
	if err = clientServer.Run(ctx); err != nil {
		log.Error(err.Error())
	}
}
