// Package app arma el grafo de servicios compartido por la API y la CLI.
package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"career-path/internal/classifier"
	"career-path/internal/config"
	"career-path/internal/db"
	"career-path/internal/repository"
	"career-path/internal/service"
)

// Services agrupa las dependencias ya construidas.
type Services struct {
	Scoring         *service.ScoringService
	Clusters        *service.ClusterService
	Recommendations *service.RecommendationService
	Pathway         *service.PathwayService
	JWT             *service.JWTService
	Limiter         service.RateLimiter

	pool  *pgxpool.Pool
	redis *redis.Client
}

// Close libera conexiones externas.
func (s *Services) Close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

// Build conecta Postgres y Redis si estan configurados y carga el indice de
// roles. Sin Postgres el corpus sale del CSV (o del corpus semilla).
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Services {
	s := &Services{}

	fileSource := service.FileCorpusSource{Path: cfg.RoleCorpusPath, Logger: logger}
	var source service.CorpusSource = fileSource
	if pool := connectDB(ctx, cfg, logger); pool != nil {
		s.pool = pool
		source = service.FallbackCorpusSource{
			Primary:  service.RepositoryCorpusSource{Repo: repository.NewPgRoleRepository(pool)},
			Fallback: fileSource,
			Logger:   logger,
		}
	}

	cache := service.NewMemoryRecommendationCache(cfg.RecommendationCacheTTL)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := client.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
			_ = client.Close()
		} else {
			s.redis = client
			cache = service.NewRedisRecommendationCache(client, cfg.RecommendationCacheTTL)
			s.Limiter = service.NewRedisRateLimiter(client, cfg.RateLimitWindow, cfg.RateLimitMax)
		}
		cancel()
	}

	s.Scoring = service.NewScoringService(logger)
	s.Clusters = service.NewClusterService(
		classifier.Load(cfg.ClassifierModelPath, cfg.ClassifierURL, cfg.ClassifierTimeout, logger),
		logger,
	)
	s.Recommendations = service.NewRecommendationService(source, cache, logger)
	if _, err := s.Recommendations.Reload(ctx); err != nil {
		// Sin indice el servicio responde "model not loaded" hasta el proximo refresh.
		logger.Error("role index build failed", zap.Error(err))
	}
	s.Pathway = service.NewPathwayService(s.Scoring, s.Clusters, s.Recommendations, logger)
	s.JWT = service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	return s
}

// connectDB devuelve nil si no hay DATABASE_URL o la base no responde;
// el pool de pgx es perezoso, por eso el Ping.
func connectDB(ctx context.Context, cfg *config.Config, logger *zap.Logger) *pgxpool.Pool {
	if cfg.DatabaseURL == "" {
		return nil
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Warn("db config invalid, using corpus file", zap.Error(err))
		return nil
	}
	ctxPing, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.Ping(ctxPing, pool); err != nil {
		logger.Warn("db ping failed, using corpus file", zap.Error(err))
		pool.Close()
		return nil
	}
	return pool
}

// RefreshLoop recarga el corpus cada interval hasta que ctx termine.
func (s *Services) RefreshLoop(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := s.Recommendations.Reload(ctx)
			if err != nil {
				logger.Warn("role corpus refresh failed", zap.Error(err))
				continue
			}
			if changed {
				logger.Info("role index rebuilt", zap.String("version", s.Recommendations.Index().Version()))
			}
		}
	}
}
