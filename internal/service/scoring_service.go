package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"career-path/internal/assessment"
	"career-path/internal/domain"
)

const (
	defaultUsername       = "Unknown User"
	errorPersonalityType  = "Assessment Error"
	unknownResultField    = "Unknown"
	defaultEducationLabel = string(assessment.DefaultLevel)
)

// ScoringRequest es el cuerpo de un pedido de puntuacion.
type ScoringRequest struct {
	Responses      []domain.ResponseRecord `json:"responses"`
	EducationLevel string                  `json:"education_level"`
	Username       string                  `json:"username"`
}

// DetailedScores desglosa los conteos por categoria.
type DetailedScores struct {
	Cognitive   domain.CategoryTally     `json:"cognitive"`
	Skills      domain.CategoryTally     `json:"skills"`
	Situational domain.CategoryTally     `json:"situational"`
	Values      domain.CategoryTally     `json:"values"`
	Personality domain.PersonalityDetail `json:"personality"`
}

// ScoringResult es la respuesta de puntuacion. Ante un error solo Error y los
// valores seguros en cero tienen contenido.
type ScoringResult struct {
	Error                    string          `json:"error,omitempty"`
	Username                 string          `json:"username"`
	EducationLevel           string          `json:"education_level"`
	PersonalityType          string          `json:"personality_type"`
	PersonalityScore         float64         `json:"personality_score"`
	PersonalityDominantTrait string          `json:"personality_dominant_trait,omitempty"`
	PersonalityDescription   string          `json:"personality_description,omitempty"`
	CognitiveScore           float64         `json:"cognitive_score"`
	SkillsScore              float64         `json:"skills_score"`
	SituationalScore         float64         `json:"situational_score"`
	ValuesScore              float64         `json:"values_score"`
	DetailedScores           *DetailedScores `json:"detailed_scores,omitempty"`
	ProcessedResponses       int             `json:"processed_responses"`
}

// ErrorResult arma el objeto de error con valores seguros.
func ErrorResult(err error) ScoringResult {
	return ScoringResult{
		Error:           err.Error(),
		Username:        unknownResultField,
		EducationLevel:  unknownResultField,
		PersonalityType: errorPersonalityType,
	}
}

// ScoringService puntua cuestionarios completos.
type ScoringService struct {
	scorer *assessment.Scorer
	logger *zap.Logger
}

func NewScoringService(logger *zap.Logger) *ScoringService {
	return &ScoringService{scorer: assessment.NewScorer(logger), logger: logger}
}

// Score puntua req. Solo una lista de respuestas vacia es fatal; en ese caso
// devuelve ErrorResult junto con el error.
func (s *ScoringService) Score(req ScoringRequest) (ScoringResult, error) {
	levelLabel := strings.TrimSpace(req.EducationLevel)
	if levelLabel == "" {
		levelLabel = defaultEducationLabel
	}
	level, known := assessment.ParseEducationLevel(levelLabel)
	if !known && s.logger != nil {
		s.logger.Warn("unknown education level, using default bank",
			zap.String("education_level", levelLabel),
			zap.String("bank", string(level)),
		)
	}

	sheet, err := s.scorer.Score(level, req.Responses)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("scoring failed", zap.Error(err))
		}
		return ErrorResult(err), err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = defaultUsername
	}
	profile := assessment.BuildProfile(sheet.Personality)
	detailed := &DetailedScores{
		Cognitive:   sheet.Tally(domain.CategoryCognitive),
		Skills:      sheet.Tally(domain.CategorySkills),
		Situational: sheet.Tally(domain.CategorySituational),
		Values:      sheet.Tally(domain.CategoryValues),
		Personality: domain.PersonalityDetail{
			Responses:     sheet.Personality.Responses,
			TotalPossible: sheet.Personality.TotalPossible,
		},
	}

	if s.logger != nil {
		s.logger.Info("assessment scored",
			zap.String("username", username),
			zap.String("bank", string(sheet.Level)),
			zap.Int("processed", sheet.Processed),
			zap.Int("skipped", sheet.Skipped),
			zap.String("dominant_trait", string(profile.DominantTrait)),
		)
	}

	return ScoringResult{
		Username:                 username,
		EducationLevel:           levelLabel,
		PersonalityType:          profile.Type,
		PersonalityScore:         profile.Confidence,
		PersonalityDominantTrait: string(profile.DominantTrait),
		PersonalityDescription:   profile.Description,
		CognitiveScore:           detailed.Cognitive.Ratio(),
		SkillsScore:              detailed.Skills.Ratio(),
		SituationalScore:         detailed.Situational.Ratio(),
		ValuesScore:              detailed.Values.Ratio(),
		DetailedScores:           detailed,
		ProcessedResponses:       sheet.Processed,
	}, nil
}

// IsEmptyInput indica si err corresponde a un pedido sin respuestas.
func IsEmptyInput(err error) bool {
	return errors.Is(err, assessment.ErrNoResponses)
}
