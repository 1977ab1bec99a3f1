package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"career-path/internal/domain"
	"career-path/internal/recommend"
)

type stubCorpusSource struct {
	mu    sync.Mutex
	roles []domain.CareerRole
	err   error
	loads int
}

func (s *stubCorpusSource) Load(context.Context) (*recommend.Corpus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return recommend.NewCorpus(s.roles), nil
}

type countingCache struct {
	inner RecommendationCache
	hits  int
	sets  int
}

func (c *countingCache) Get(ctx context.Context, key string) (recommend.Result, bool) {
	res, ok := c.inner.Get(ctx, key)
	if ok {
		c.hits++
	}
	return res, ok
}

func (c *countingCache) Set(ctx context.Context, key string, res recommend.Result) {
	c.sets++
	c.inner.Set(ctx, key, res)
}

func itRoles() []domain.CareerRole {
	return []domain.CareerRole{
		{Cluster: "IT", Role: "Software Developer", RequiredSkills: "Programming; Problem Solving; Debugging", EducationRequired: "Graduation", SalaryRange: "7-25 LPA", Outlook: "High"},
		{Cluster: "IT", Role: "Data Scientist", RequiredSkills: "Python; Statistics; Machine Learning", EducationRequired: "Post Graduation", SalaryRange: "10-30 LPA", Outlook: "Very High"},
		{Cluster: "IT", Role: "Network Engineer", RequiredSkills: "Networking; Troubleshooting; Security", EducationRequired: "Graduation", SalaryRange: "5-15 LPA", Outlook: "Medium"},
		{Cluster: "IT", Role: "Web Developer", RequiredSkills: "HTML; CSS; JavaScript; Programming", EducationRequired: "Diploma", SalaryRange: "4-12 LPA", Outlook: "High"},
		{Cluster: "STEM", Role: "Civil Engineer", RequiredSkills: "AutoCAD; Structural Analysis", EducationRequired: "Graduation", SalaryRange: "4-10 LPA", Outlook: "Medium"},
	}
}

func intPtr(v int) *int { return &v }

func TestRecommendationServiceTopN(t *testing.T) {
	svc := NewRecommendationService(&stubCorpusSource{roles: itRoles()}, nil, zap.NewNop())
	resp := svc.Recommend(context.Background(), RecommendationRequest{CareerCluster: "IT", TopN: intPtr(2)})
	if !resp.Success || resp.Result == nil {
		t.Fatalf("expected success, got %+v", resp)
	}
	if resp.Total != 2 || len(resp.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(resp.Recommendations))
	}
	if resp.Recommendations[0].Rank != 1 || resp.Recommendations[1].Rank != 2 {
		t.Fatalf("unexpected ranks: %+v", resp.Recommendations)
	}
	if resp.Recommendations[0].ConfidenceScore < resp.Recommendations[1].ConfidenceScore {
		t.Fatalf("scores must not increase with rank")
	}
}

func TestRecommendationServiceClusterAliasAndDefaults(t *testing.T) {
	svc := NewRecommendationService(&stubCorpusSource{roles: itRoles()}, nil, zap.NewNop())

	resp := svc.Recommend(context.Background(), RecommendationRequest{CareerClusterSnake: "Engineering"})
	if !resp.Success || resp.Cluster != "STEM" || resp.Total != 1 {
		t.Fatalf("expected Engineering to resolve to STEM, got %+v", resp)
	}

	resp = svc.Recommend(context.Background(), RecommendationRequest{})
	if !resp.Success || resp.Cluster != "IT" || resp.Total != recommend.DefaultTopN {
		t.Fatalf("expected default IT cluster with 4 roles, got %+v", resp)
	}
}

func TestRecommendationServiceUnknownCluster(t *testing.T) {
	svc := NewRecommendationService(&stubCorpusSource{roles: itRoles()}, nil, zap.NewNop())
	resp := svc.Recommend(context.Background(), RecommendationRequest{CareerCluster: "Aviation"})
	if resp.Success || resp.Error != "No roles found for cluster: Aviation" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRecommendationServiceWithoutCorpus(t *testing.T) {
	svc := NewRecommendationService(&stubCorpusSource{err: errors.New("db down")}, nil, zap.NewNop())
	resp := svc.Recommend(context.Background(), RecommendationRequest{CareerCluster: "IT"})
	if resp.Success || resp.Error != "model not loaded" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRecommendationServiceReloadOnlyOnVersionChange(t *testing.T) {
	src := &stubCorpusSource{roles: itRoles()}
	svc := NewRecommendationService(src, nil, zap.NewNop())

	rebuilt, err := svc.Reload(context.Background())
	if err != nil || !rebuilt {
		t.Fatalf("expected first reload to build, got %v %v", rebuilt, err)
	}
	first := svc.Index()

	rebuilt, err = svc.Reload(context.Background())
	if err != nil || rebuilt || svc.Index() != first {
		t.Fatalf("unchanged corpus must keep the index")
	}

	src.mu.Lock()
	src.roles = append(itRoles(), domain.CareerRole{Cluster: "IT", Role: "QA Engineer", RequiredSkills: "Testing"})
	src.mu.Unlock()
	rebuilt, err = svc.Reload(context.Background())
	if err != nil || !rebuilt || svc.Index() == first {
		t.Fatalf("changed corpus must rebuild the index")
	}
	if svc.Index().Corpus().Len() != 6 {
		t.Fatalf("expected 6 roles, got %d", svc.Index().Corpus().Len())
	}
}

func TestRecommendationServiceUsesCache(t *testing.T) {
	cache := &countingCache{inner: NewMemoryRecommendationCache(time.Minute)}
	svc := NewRecommendationService(&stubCorpusSource{roles: itRoles()}, cache, zap.NewNop())

	req := RecommendationRequest{CareerCluster: "IT", UserEducation: "Graduation"}
	first := svc.Recommend(context.Background(), req)
	second := svc.Recommend(context.Background(), req)
	if cache.sets != 1 || cache.hits != 1 {
		t.Fatalf("expected one set and one hit, got sets=%d hits=%d", cache.sets, cache.hits)
	}
	if len(first.Recommendations) != len(second.Recommendations) || first.Recommendations[0].Role != second.Recommendations[0].Role {
		t.Fatalf("cached response differs")
	}
	if second.UserEducation == nil || *second.UserEducation != "Graduation" {
		t.Fatalf("expected user_education echoed")
	}
}

func TestMemoryRecommendationCacheExpires(t *testing.T) {
	c := NewMemoryRecommendationCache(time.Minute).(*memoryRecommendationCache)
	c.Set(context.Background(), "k", recommend.Result{Cluster: "IT"})
	if res, ok := c.Get(context.Background(), "k"); !ok || res.Cluster != "IT" {
		t.Fatalf("expected hit")
	}
	c.items["k"] = cacheEntry{res: recommend.Result{Cluster: "IT"}, expiresAt: time.Now().UTC().Add(-time.Second)}
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestMemoryRecommendationCacheSweepsExpiredOnSet(t *testing.T) {
	c := newMemoryRecommendationCache(time.Minute, 3)
	past := time.Now().UTC().Add(-time.Second)
	c.items["old-1"] = cacheEntry{expiresAt: past}
	c.items["old-2"] = cacheEntry{expiresAt: past}
	c.items["live"] = cacheEntry{res: recommend.Result{Cluster: "IT"}, expiresAt: time.Now().UTC().Add(time.Minute)}

	c.Set(context.Background(), "new", recommend.Result{Cluster: "STEM"})
	if c.Len() != 2 {
		t.Fatalf("expected expired entries swept, got %d entries", c.Len())
	}
	if _, ok := c.Get(context.Background(), "live"); !ok {
		t.Fatalf("live entry must survive the sweep")
	}
}

func TestMemoryRecommendationCacheIsBounded(t *testing.T) {
	c := newMemoryRecommendationCache(time.Minute, 4)
	for i := 0; i < 50; i++ {
		edu := fmt.Sprintf("education-%d", i)
		c.Set(context.Background(), RecommendationCacheKey("v1", "IT", edu, 4), recommend.Result{Cluster: "IT"})
		if c.Len() > 4 {
			t.Fatalf("cache grew past its cap: %d entries after %d sets", c.Len(), i+1)
		}
	}
	if _, ok := c.Get(context.Background(), RecommendationCacheKey("v1", "IT", "education-49", 4)); !ok {
		t.Fatalf("latest entry must be kept")
	}
}

func TestRecommendationCacheKey(t *testing.T) {
	a := RecommendationCacheKey("v1", "IT", "", 4)
	if a != RecommendationCacheKey("v1", "IT", "", 4) {
		t.Fatalf("key must be deterministic")
	}
	if a == RecommendationCacheKey("v2", "IT", "", 4) || a == RecommendationCacheKey("v1", "IT", "", 3) {
		t.Fatalf("key must change with version and top_n")
	}
}

type mockRedisKV struct {
	data map[string]string
	err  error
}

func (m *mockRedisKV) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	v, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (m *mockRedisKV) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	m.data[key] = string(value.([]byte))
	cmd.SetVal("OK")
	return cmd
}

func TestRedisRecommendationCache(t *testing.T) {
	kv := &mockRedisKV{data: map[string]string{}}
	c := &redisRecommendationCache{client: kv, ttl: time.Minute}

	if _, ok := c.Get(context.Background(), "missing"); ok {
		t.Fatalf("expected miss")
	}
	c.Set(context.Background(), "k", recommend.Result{Cluster: "IT", Total: 1, Recommendations: []domain.Recommendation{{Rank: 1}}})
	res, ok := c.Get(context.Background(), "k")
	if !ok || res.Cluster != "IT" || len(res.Recommendations) != 1 {
		t.Fatalf("unexpected cached value: %+v %v", res, ok)
	}

	kv.err = errors.New("redis down")
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatalf("redis errors must read as a miss")
	}
}

func TestFallbackCorpusSourceOnPrimaryError(t *testing.T) {
	primary := &stubCorpusSource{err: errors.New("connection refused")}
	fallback := &stubCorpusSource{roles: itRoles()}
	svc := NewRecommendationService(FallbackCorpusSource{Primary: primary, Fallback: fallback, Logger: zap.NewNop()}, nil, zap.NewNop())

	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload must use fallback, got %v", err)
	}
	resp := svc.Recommend(context.Background(), RecommendationRequest{CareerCluster: "IT"})
	if !resp.Success || resp.Total != 4 {
		t.Fatalf("expected fallback recommendations, got %+v", resp)
	}
	if primary.loads != 1 || fallback.loads != 1 {
		t.Fatalf("unexpected loads primary=%d fallback=%d", primary.loads, fallback.loads)
	}
}

func TestFallbackCorpusSourceOnEmptyPrimary(t *testing.T) {
	primary := &stubCorpusSource{}
	fallback := &stubCorpusSource{roles: itRoles()}
	corpus, err := FallbackCorpusSource{Primary: primary, Fallback: fallback}.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if corpus.Len() != len(itRoles()) || fallback.loads != 1 {
		t.Fatalf("empty primary must fall back, got %d roles", corpus.Len())
	}
}

func TestFallbackCorpusSourcePrefersPrimary(t *testing.T) {
	primary := &stubCorpusSource{roles: itRoles()[:2]}
	fallback := &stubCorpusSource{roles: itRoles()}
	corpus, err := FallbackCorpusSource{Primary: primary, Fallback: fallback}.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if corpus.Len() != 2 || fallback.loads != 0 {
		t.Fatalf("primary must win when it has roles")
	}
}
