package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"career-path/internal/recommend"
)

// RecommendationCache guarda resultados de ranking por clave.
type RecommendationCache interface {
	Get(ctx context.Context, key string) (recommend.Result, bool)
	Set(ctx context.Context, key string, res recommend.Result)
}

// RecommendationCacheKey incluye la version del corpus: un corpus nuevo nunca
// reutiliza resultados viejos.
func RecommendationCacheKey(version, cluster, education string, topN int) string {
	joined := strings.Join([]string{version, cluster, education, fmt.Sprint(topN)}, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("careerpath:rec:%x", hash[:12])
}

type cacheEntry struct {
	res       recommend.Result
	expiresAt time.Time
}

// defaultMemoryCacheEntries acota el mapa: user_education es texto libre y
// un proceso largo acumularia claves sin fin.
const defaultMemoryCacheEntries = 1024

type memoryRecommendationCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	items      map[string]cacheEntry
}

func NewMemoryRecommendationCache(ttl time.Duration) RecommendationCache {
	return newMemoryRecommendationCache(ttl, defaultMemoryCacheEntries)
}

func newMemoryRecommendationCache(ttl time.Duration, maxEntries int) *memoryRecommendationCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = defaultMemoryCacheEntries
	}
	return &memoryRecommendationCache{ttl: ttl, maxEntries: maxEntries, items: make(map[string]cacheEntry)}
}

func (c *memoryRecommendationCache) Get(_ context.Context, key string) (recommend.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		return recommend.Result{}, false
	}
	if time.Now().UTC().After(e.expiresAt) {
		delete(c.items, key)
		return recommend.Result{}, false
	}
	return e.res, true
}

// Set barre las entradas vencidas cuando el mapa esta lleno y, si sigue
// lleno, descarta la que vence primero.
func (c *memoryRecommendationCache) Set(_ context.Context, key string, res recommend.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now().UTC()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxEntries {
		c.sweepLocked(now)
	}
	c.items[key] = cacheEntry{res: res, expiresAt: now.Add(c.ttl)}
}

func (c *memoryRecommendationCache) sweepLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey, oldest = k, e.expiresAt
		}
	}
	if len(c.items) >= c.maxEntries && oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// Len devuelve la cantidad de entradas guardadas, vencidas incluidas.
func (c *memoryRecommendationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisRecommendationCache struct {
	client redisKV
	ttl    time.Duration
}

func NewRedisRecommendationCache(client *redis.Client, ttl time.Duration) RecommendationCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &redisRecommendationCache{client: client, ttl: ttl}
}

// Get trata cualquier error de Redis como miss.
func (c *redisRecommendationCache) Get(ctx context.Context, key string) (recommend.Result, bool) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return recommend.Result{}, false
	}
	var res recommend.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return recommend.Result{}, false
	}
	return res, true
}

func (c *redisRecommendationCache) Set(ctx context.Context, key string, res recommend.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_ = c.client.Set(ctx, key, data, c.ttl).Err()
}
