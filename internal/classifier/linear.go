package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
)

const defaultMethod = "linear-softmax"

// ModelSpec es el export JSON de un modelo softmax-lineal ya entrenado.
type ModelSpec struct {
	Version      string              `json:"version"`
	Method       string              `json:"method"`
	Classes      []string            `json:"classes"`
	FeatureNames []string            `json:"feature_names"`
	Vocabularies map[string][]string `json:"vocabularies"`
	Weights      [][]float64         `json:"weights"`
	Bias         []float64           `json:"bias"`
}

type featureFn func(fv FeatureVector, vocab map[string]Vocabulary) float64

func categorical(field string, get func(FeatureVector) string) featureFn {
	return func(fv FeatureVector, vocab map[string]Vocabulary) float64 {
		code, _ := vocab[field].Encode(get(fv))
		return float64(code)
	}
}

var featureExtractors = map[string]featureFn{
	"age":                func(fv FeatureVector, _ map[string]Vocabulary) float64 { return fv.Age },
	FieldGender:          categorical(FieldGender, func(fv FeatureVector) string { return fv.Gender }),
	FieldEducationLevel:  categorical(FieldEducationLevel, func(fv FeatureVector) string { return fv.EducationLevel }),
	FieldInterests:       categorical(FieldInterests, func(fv FeatureVector) string { return fv.Interests }),
	FieldPersonalityType: categorical(FieldPersonalityType, func(fv FeatureVector) string { return fv.PersonalityType }),
	"personalityScore":   func(fv FeatureVector, _ map[string]Vocabulary) float64 { return fv.PersonalityScore },
	"cognitiveScore":     func(fv FeatureVector, _ map[string]Vocabulary) float64 { return fv.CognitiveScore },
	"skillsScore":        func(fv FeatureVector, _ map[string]Vocabulary) float64 { return fv.SkillsScore },
	"situationalScore":   func(fv FeatureVector, _ map[string]Vocabulary) float64 { return fv.SituationalScore },
	"valuesScore":        func(fv FeatureVector, _ map[string]Vocabulary) float64 { return fv.ValuesScore },
}

// LinearModel puntua cada clase como w·x+b y aplica softmax.
type LinearModel struct {
	method   string
	classes  []string
	features []featureFn
	vocab    map[string]Vocabulary
	weights  [][]float64
	bias     []float64
}

// LoadLinearModel lee y valida un export del modelo desde disco.
func LoadLinearModel(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	var spec ModelSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	return NewLinearModel(spec)
}

// NewLinearModel valida dimensiones y nombres de features.
func NewLinearModel(spec ModelSpec) (*LinearModel, error) {
	if len(spec.Classes) == 0 {
		return nil, fmt.Errorf("%w: no classes", ErrInvalidModel)
	}
	if len(spec.FeatureNames) == 0 {
		return nil, fmt.Errorf("%w: no features", ErrInvalidModel)
	}
	if len(spec.Weights) != len(spec.Classes) || len(spec.Bias) != len(spec.Classes) {
		return nil, fmt.Errorf("%w: expected %d weight rows and biases", ErrInvalidModel, len(spec.Classes))
	}

	m := &LinearModel{
		method:  spec.Method,
		classes: append([]string(nil), spec.Classes...),
		vocab:   make(map[string]Vocabulary, len(spec.Vocabularies)),
		weights: make([][]float64, len(spec.Weights)),
		bias:    append([]float64(nil), spec.Bias...),
	}
	if m.method == "" {
		m.method = defaultMethod
	}
	for field, classes := range spec.Vocabularies {
		m.vocab[field] = NewVocabulary(classes)
	}
	for _, name := range spec.FeatureNames {
		fn, ok := featureExtractors[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown feature %q", ErrInvalidModel, name)
		}
		m.features = append(m.features, fn)
	}
	for i, row := range spec.Weights {
		if len(row) != len(spec.FeatureNames) {
			return nil, fmt.Errorf("%w: weight row %d has %d values, want %d", ErrInvalidModel, i, len(row), len(spec.FeatureNames))
		}
		m.weights[i] = append([]float64(nil), row...)
	}
	return m, nil
}

// Encode arma la fila numerica en el orden de features.
func (m *LinearModel) Encode(fv FeatureVector) []float64 {
	x := make([]float64, len(m.features))
	for i, fn := range m.features {
		x[i] = fn(fv, m.vocab)
	}
	return x
}

func (m *LinearModel) Predict(_ context.Context, fv FeatureVector) (Prediction, error) {
	x := m.Encode(fv)
	logits := make([]float64, len(m.classes))
	for i, row := range m.weights {
		logits[i] = floats.Dot(row, x) + m.bias[i]
	}
	probs := softmax(logits)

	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	dist := make(map[string]float64, len(m.classes))
	for i, c := range m.classes {
		dist[c] = probs[i]
	}
	return Prediction{
		Cluster:       m.classes[best],
		Confidence:    probs[best],
		Method:        m.method,
		Probabilities: dist,
	}, nil
}

func softmax(logits []float64) []float64 {
	out := make([]float64, len(logits))
	if len(logits) == 0 {
		return out
	}
	maxLogit := floats.Max(logits)
	sum := 0.0
	for i, z := range logits {
		out[i] = math.Exp(z - maxLogit)
		sum += out[i]
	}
	floats.Scale(1/sum, out)
	return out
}
