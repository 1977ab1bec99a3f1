package recommend

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"career-path/internal/domain"
)

const (
	Algorithm    = "Hybrid KNN + Cosine Similarity"
	ModelVersion = "3.0"

	DefaultCluster = "IT"
)

var ErrClusterNotFound = errors.New("no roles found for cluster")

var clusterAliases = map[string]string{
	"Engineering": "STEM",
	"Legal":       "Law",
	"Law":         "Legal",
}

// ResolveCluster aplica los alias de cluster; vacio resuelve a DefaultCluster.
func ResolveCluster(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCluster
	}
	if alias, ok := clusterAliases[name]; ok {
		return alias
	}
	return name
}

// Index es el resultado inmutable de la fase de construccion. Puede compartirse
// entre requests concurrentes.
type Index struct {
	corpus  *Corpus
	content *ContentSimilarityIndex
	collab  *CollaborativeSimilarityIndex
	weights HybridWeights
	builtAt time.Time
}

// BuildIndex construye las dos matrices sobre todo el corpus.
func BuildIndex(corpus *Corpus) (*Index, error) {
	if corpus == nil || corpus.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	roles := corpus.Roles()
	texts := make([]string, len(roles))
	for i, r := range roles {
		texts[i] = r.RequiredSkills
	}
	return &Index{
		corpus:  corpus,
		content: NewContentSimilarityIndex(texts),
		collab:  NewCollaborativeSimilarityIndex(roles),
		weights: DefaultWeights(),
		builtAt: time.Now().UTC(),
	}, nil
}

func (ix *Index) Corpus() *Corpus { return ix.corpus }

func (ix *Index) Version() string { return ix.corpus.Version() }

func (ix *Index) BuiltAt() time.Time { return ix.builtAt }

func (ix *Index) Content() *ContentSimilarityIndex { return ix.content }

func (ix *Index) Collaborative() *CollaborativeSimilarityIndex { return ix.collab }

// Query es un pedido de ranking sobre un cluster ya resuelto.
type Query struct {
	Cluster       string
	UserEducation string
	TopN          int
}

// Result es la respuesta de ranking de un cluster.
type Result struct {
	Cluster         string                  `json:"career_cluster"`
	Total           int                     `json:"total_recommendations"`
	UserEducation   *string                 `json:"user_education"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Algorithm       string                  `json:"algorithm"`
	ModelVersion    string                  `json:"model_version"`
}

// Recommend rankea los roles del cluster de q.
func (ix *Index) Recommend(q Query) (Result, error) {
	indices := ix.corpus.ClusterIndices(q.Cluster)
	if len(indices) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrClusterNotFound, q.Cluster)
	}

	roles := make([]domain.CareerRole, len(indices))
	match := make([]bool, len(indices))
	for a, i := range indices {
		roles[a] = ix.corpus.Role(i)
		match[a] = q.UserEducation != "" && roles[a].EducationRequired == q.UserEducation
	}

	candidates := Fuse(indices,
		ix.content.Scores(indices),
		ix.collab.Scores(indices),
		PopularityScores(roles),
		match,
		ix.weights,
	)
	ranked := Rank(candidates, q.TopN)

	res := Result{
		Cluster:         q.Cluster,
		Total:           len(ranked),
		Recommendations: make([]domain.Recommendation, len(ranked)),
		Algorithm:       Algorithm,
		ModelVersion:    ModelVersion,
	}
	if q.UserEducation != "" {
		edu := q.UserEducation
		res.UserEducation = &edu
	}
	for r, c := range ranked {
		res.Recommendations[r] = domain.Recommendation{
			Rank:               r + 1,
			CareerRole:         ix.corpus.Role(c.Index),
			ConfidenceScore:    round3(c.Fused),
			ContentScore:       round3(c.Content),
			CollaborativeScore: round3(c.Collaborative),
			PopularityScore:    round3(c.Popularity),
		}
	}
	return res, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
