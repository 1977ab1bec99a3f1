package classifier

import (
	"context"
	"errors"
)

var (
	ErrModelNotLoaded = errors.New("model not loaded")
	ErrInvalidModel   = errors.New("invalid classifier model")
)

// Campos categoricos codificados con los vocabularios del modelo.
const (
	FieldGender          = "gender"
	FieldEducationLevel  = "educationLevel"
	FieldInterests       = "interests"
	FieldPersonalityType = "personalityType"
)

// FeatureVector describe al usuario para el modelo de clusters.
type FeatureVector struct {
	Age              float64 `json:"age"`
	Gender           string  `json:"gender"`
	EducationLevel   string  `json:"educationLevel"`
	Interests        string  `json:"interests"`
	PersonalityType  string  `json:"personalityType"`
	PersonalityScore float64 `json:"personalityScore"`
	CognitiveScore   float64 `json:"cognitiveScore"`
	SkillsScore      float64 `json:"skillsScore"`
	SituationalScore float64 `json:"situationalScore"`
	ValuesScore      float64 `json:"valuesScore"`
}

// Prediction es el cluster predicho mas la distribucion completa.
type Prediction struct {
	Cluster       string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Method        string             `json:"method,omitempty"`
	Probabilities map[string]float64 `json:"all_probabilities"`
}

// Classifier mapea un feature vector a un cluster. Las implementaciones no
// deben tener efectos laterales.
type Classifier interface {
	Predict(ctx context.Context, fv FeatureVector) (Prediction, error)
}

// Unavailable reemplaza a un modelo que no se pudo cargar.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Predict(context.Context, FeatureVector) (Prediction, error) {
	return Prediction{}, ErrModelNotLoaded
}

// Available indica si c puede predecir.
func Available(c Classifier) bool {
	if c == nil {
		return false
	}
	switch c.(type) {
	case Unavailable, *Unavailable:
		return false
	}
	return true
}
