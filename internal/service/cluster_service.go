package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"career-path/internal/classifier"
)

// Valores usados cuando el pedido no trae el campo.
const (
	defaultAge              = 25
	defaultGender           = "Male"
	defaultProfileEducation = "bachelors"
	defaultInterests        = "Programming"
	defaultPersonalityType  = "Ambivert"
	defaultPersonalityScore = 75
	defaultAbilityScore     = 80
	defaultJudgementScore   = 75
)

// ClusterRequest describe al usuario para el clasificador. Los campos
// ausentes toman los valores por defecto.
type ClusterRequest struct {
	Age              *float64 `json:"age"`
	Gender           string   `json:"gender"`
	EducationLevel   string   `json:"educationLevel"`
	Interests        string   `json:"interests"`
	PersonalityType  string   `json:"personalityType"`
	PersonalityScore *float64 `json:"personalityScore"`
	CognitiveScore   *float64 `json:"cognitiveScore"`
	SkillsScore      *float64 `json:"skillsScore"`
	SituationalScore *float64 `json:"situationalScore"`
	ValuesScore      *float64 `json:"valuesScore"`
}

func orString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func orNumber(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// FeatureVector completa los faltantes con los valores por defecto.
func (r ClusterRequest) FeatureVector() classifier.FeatureVector {
	return classifier.FeatureVector{
		Age:              orNumber(r.Age, defaultAge),
		Gender:           orString(r.Gender, defaultGender),
		EducationLevel:   orString(r.EducationLevel, defaultProfileEducation),
		Interests:        orString(r.Interests, defaultInterests),
		PersonalityType:  orString(r.PersonalityType, defaultPersonalityType),
		PersonalityScore: orNumber(r.PersonalityScore, defaultPersonalityScore),
		CognitiveScore:   orNumber(r.CognitiveScore, defaultAbilityScore),
		SkillsScore:      orNumber(r.SkillsScore, defaultAbilityScore),
		SituationalScore: orNumber(r.SituationalScore, defaultJudgementScore),
		ValuesScore:      orNumber(r.ValuesScore, defaultJudgementScore),
	}
}

// ClusterResponse es la respuesta del clasificador o su error.
type ClusterResponse struct {
	Success bool `json:"success"`
	*classifier.Prediction
	Error string `json:"error,omitempty"`
}

// ClusterService envuelve al clasificador externo.
type ClusterService struct {
	classifier classifier.Classifier
	logger     *zap.Logger
}

func NewClusterService(c classifier.Classifier, logger *zap.Logger) *ClusterService {
	if c == nil {
		c = classifier.Unavailable{Reason: errors.New("no classifier")}
	}
	return &ClusterService{classifier: c, logger: logger}
}

// Available indica si hay un modelo cargado.
func (s *ClusterService) Available() bool {
	return classifier.Available(s.classifier)
}

// Predict nunca falla: los errores se devuelven dentro de ClusterResponse.
func (s *ClusterService) Predict(ctx context.Context, req ClusterRequest) ClusterResponse {
	p, err := s.classifier.Predict(ctx, req.FeatureVector())
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("cluster prediction failed", zap.Error(err))
		}
		return ClusterResponse{Success: false, Error: err.Error()}
	}
	if s.logger != nil {
		s.logger.Info("cluster predicted", zap.String("cluster", p.Cluster), zap.Float64("confidence", p.Confidence))
	}
	return ClusterResponse{Success: true, Prediction: &p}
}
