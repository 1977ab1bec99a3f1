package service

import (
	"context"

	"go.uber.org/zap"
)

// PathwayRequest junta el cuestionario con los datos de perfil que necesita el clasificador.
type PathwayRequest struct {
	ScoringRequest
	Age              *float64 `json:"age"`
	Gender           string   `json:"gender"`
	ProfileEducation string   `json:"profile_education"`
	Interests        string   `json:"interests"`
	UserEducation    string   `json:"user_education"`
	TopN             *int     `json:"top_n"`
}

// PathwayResponse trae siempre los puntajes; el cluster y las
// recomendaciones dependen de que haya clasificador.
type PathwayResponse struct {
	Scores          ScoringResult           `json:"scores"`
	Cluster         ClusterResponse         `json:"cluster"`
	Recommendations *RecommendationResponse `json:"recommendations,omitempty"`
}

// PathwayService encadena puntuacion, clasificacion y ranking.
type PathwayService struct {
	scoring         *ScoringService
	clusters        *ClusterService
	recommendations *RecommendationService
	logger          *zap.Logger
}

func NewPathwayService(scoring *ScoringService, clusters *ClusterService, recommendations *RecommendationService, logger *zap.Logger) *PathwayService {
	return &PathwayService{
		scoring:         scoring,
		clusters:        clusters,
		recommendations: recommendations,
		logger:          logger,
	}
}

// Evaluate solo falla si la puntuacion falla.
func (s *PathwayService) Evaluate(ctx context.Context, req PathwayRequest) (PathwayResponse, error) {
	scores, err := s.scoring.Score(req.ScoringRequest)
	if err != nil {
		return PathwayResponse{Scores: scores}, err
	}

	resp := PathwayResponse{Scores: scores}
	resp.Cluster = s.clusters.Predict(ctx, clusterRequestFromScores(req, scores))
	if !resp.Cluster.Success {
		if s.logger != nil {
			s.logger.Info("pathway without cluster", zap.String("username", scores.Username), zap.String("reason", resp.Cluster.Error))
		}
		return resp, nil
	}

	recs := s.recommendations.Recommend(ctx, RecommendationRequest{
		CareerCluster: resp.Cluster.Cluster,
		UserEducation: req.UserEducation,
		TopN:          req.TopN,
	})
	resp.Recommendations = &recs
	return resp, nil
}

// clusterRequestFromScores usa porcentajes 0-100, la misma escala que los
// valores por defecto del clasificador.
func clusterRequestFromScores(req PathwayRequest, scores ScoringResult) ClusterRequest {
	personality := scores.PersonalityScore
	cr := ClusterRequest{
		Age:              req.Age,
		Gender:           req.Gender,
		EducationLevel:   req.ProfileEducation,
		Interests:        req.Interests,
		PersonalityType:  scores.PersonalityType,
		PersonalityScore: &personality,
	}
	if d := scores.DetailedScores; d != nil {
		cr.CognitiveScore = percentage(d.Cognitive.Total, d.Cognitive.Percentage)
		cr.SkillsScore = percentage(d.Skills.Total, d.Skills.Percentage)
		cr.SituationalScore = percentage(d.Situational.Total, d.Situational.Percentage)
		cr.ValuesScore = percentage(d.Values.Total, d.Values.Percentage)
	}
	return cr
}

// percentage deja nil las categorias sin intentos para que apliquen los defaults.
func percentage(total int, pct float64) *float64 {
	if total == 0 {
		return nil
	}
	return &pct
}
