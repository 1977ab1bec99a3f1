package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"career-path/internal/recommend"
	"career-path/internal/repository"
)

var ErrIndexNotLoaded = errors.New("model not loaded")

// CorpusSource entrega el corpus de roles vigente.
type CorpusSource interface {
	Load(ctx context.Context) (*recommend.Corpus, error)
}

// FileCorpusSource lee el CSV y cae al corpus semilla si falta.
type FileCorpusSource struct {
	Path   string
	Logger *zap.Logger
}

func (s FileCorpusSource) Load(context.Context) (*recommend.Corpus, error) {
	return recommend.LoadOrSeed(s.Path, s.Logger), nil
}

// RepositoryCorpusSource lee el corpus desde Postgres.
type RepositoryCorpusSource struct {
	Repo repository.RoleRepository
}

func (s RepositoryCorpusSource) Load(ctx context.Context) (*recommend.Corpus, error) {
	roles, err := s.Repo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	if len(roles) == 0 {
		return nil, recommend.ErrEmptyCorpus
	}
	return recommend.NewCorpus(roles), nil
}

// FallbackCorpusSource usa Primary y, si falla o viene vacio, Fallback.
// Asi una base caida o sin filas nunca deja al servicio sin indice.
type FallbackCorpusSource struct {
	Primary  CorpusSource
	Fallback CorpusSource
	Logger   *zap.Logger
}

func (s FallbackCorpusSource) Load(ctx context.Context) (*recommend.Corpus, error) {
	corpus, err := s.Primary.Load(ctx)
	if err == nil && corpus != nil && corpus.Len() > 0 {
		return corpus, nil
	}
	if err == nil {
		err = recommend.ErrEmptyCorpus
	}
	if s.Logger != nil {
		s.Logger.Warn("primary role corpus unavailable, using fallback", zap.Error(err))
	}
	return s.Fallback.Load(ctx)
}

// RecommendationRequest acepta careerCluster o career_cluster.
type RecommendationRequest struct {
	CareerCluster      string `json:"careerCluster"`
	CareerClusterSnake string `json:"career_cluster"`
	UserEducation      string `json:"user_education"`
	TopN               *int   `json:"top_n"`
}

// Cluster resuelve el nombre pedido aplicando alias.
func (r RecommendationRequest) Cluster() string {
	name := r.CareerCluster
	if strings.TrimSpace(name) == "" {
		name = r.CareerClusterSnake
	}
	return recommend.ResolveCluster(name)
}

func (r RecommendationRequest) topN() int {
	if r.TopN == nil || *r.TopN <= 0 {
		return recommend.DefaultTopN
	}
	return *r.TopN
}

// RecommendationResponse es {success, ...resultado} o {success:false, error}.
type RecommendationResponse struct {
	Success bool `json:"success"`
	*recommend.Result
	Error string `json:"error,omitempty"`
}

// RecommendationService mantiene un indice inmutable compartido entre requests
// y lo reconstruye solo cuando cambia la version del corpus.
type RecommendationService struct {
	source CorpusSource
	cache  RecommendationCache
	logger *zap.Logger

	index    atomic.Pointer[recommend.Index]
	reloadMu sync.Mutex
}

func NewRecommendationService(source CorpusSource, cache RecommendationCache, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{source: source, cache: cache, logger: logger}
}

// Index devuelve el indice vigente o nil.
func (s *RecommendationService) Index() *recommend.Index {
	return s.index.Load()
}

// Reload carga el corpus y reconstruye el indice si su version cambio.
func (s *RecommendationService) Reload(ctx context.Context) (bool, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	corpus, err := s.source.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load corpus: %w", err)
	}
	if cur := s.index.Load(); cur != nil && cur.Version() == corpus.Version() {
		return false, nil
	}
	ix, err := recommend.BuildIndex(corpus)
	if err != nil {
		return false, fmt.Errorf("build index: %w", err)
	}
	s.index.Store(ix)
	if s.logger != nil {
		s.logger.Info("recommendation index built",
			zap.Int("roles", corpus.Len()),
			zap.Strings("clusters", corpus.Clusters()),
			zap.String("version", corpus.Version()[:12]),
		)
	}
	return true, nil
}

// Recommend rankea los roles del cluster pedido. Nunca devuelve error: las
// fallas viajan en la respuesta.
func (s *RecommendationService) Recommend(ctx context.Context, req RecommendationRequest) RecommendationResponse {
	ix := s.index.Load()
	if ix == nil {
		if _, err := s.Reload(ctx); err != nil && s.logger != nil {
			s.logger.Error("index reload failed", zap.Error(err))
		}
		ix = s.index.Load()
	}
	if ix == nil {
		return RecommendationResponse{Error: ErrIndexNotLoaded.Error()}
	}

	q := recommend.Query{
		Cluster:       req.Cluster(),
		UserEducation: strings.TrimSpace(req.UserEducation),
		TopN:          req.topN(),
	}
	key := RecommendationCacheKey(ix.Version(), q.Cluster, q.UserEducation, q.TopN)
	if s.cache != nil {
		if res, ok := s.cache.Get(ctx, key); ok {
			return RecommendationResponse{Success: true, Result: &res}
		}
	}

	res, err := ix.Recommend(q)
	if err != nil {
		if errors.Is(err, recommend.ErrClusterNotFound) {
			return RecommendationResponse{Error: "No roles found for cluster: " + q.Cluster}
		}
		if s.logger != nil {
			s.logger.Error("recommend failed", zap.String("cluster", q.Cluster), zap.Error(err))
		}
		return RecommendationResponse{Error: err.Error()}
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, res)
	}
	return RecommendationResponse{Success: true, Result: &res}
}
