package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"career-path/internal/app"
	"career-path/internal/config"
	apihttp "career-path/internal/http"
	"career-path/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	zl, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		panic(err)
	}
	defer zl.Sync()

	svcs := app.Build(ctx, cfg, zl)
	defer svcs.Close()
	go svcs.RefreshLoop(ctx, cfg.CorpusRefreshInterval, zl)

	if !svcs.JWT.Enabled() {
		zl.Warn("jwt secret not configured, api is open")
	}

	router := apihttp.NewRouter(zl, svcs.JWT,
		apihttp.NewAssessmentHandler(zl, svcs.Scoring, svcs.Pathway, svcs.Limiter),
		apihttp.NewCareerHandler(zl, svcs.Clusters, svcs.Recommendations),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zl.Warn("server shutdown", zap.Error(err))
		}
	}()

	zl.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("server error", zap.Error(err))
	}
}
