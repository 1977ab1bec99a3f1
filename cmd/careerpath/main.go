package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"career-path/internal/app"
	"career-path/internal/config"
	"career-path/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// stdout queda reservado para el JSON de respuesta.
	zl, err := logger.New(cfg.LogJSON, cfg.LogDebug, "stderr")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	var svcs *app.Services
	build := func(ctx context.Context) *app.Services {
		if svcs == nil {
			svcs = app.Build(ctx, cfg, zl)
		}
		return svcs
	}

	err = newRootCmd(build, zl).Execute()
	if svcs != nil {
		svcs.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
