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
	path := resource.PathFromEnv(configs.DefaultTargetPropertiesPath)
	config, err := configs.LoadTarget(path)
	if err != nil {
		log.Fatal(msg.GetMessage("app.config-fail", path, err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start Routes
	if err = server.NewTargetServer(config).Run(ctx); err != nil {
		log.Error(err.Error())
	}
}
