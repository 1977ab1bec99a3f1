package classifier

import "context"

// MockClassifier permite tests sin un modelo real.
type MockClassifier struct {
	Result Prediction
	Err    error
	Calls  []FeatureVector
}

func (m *MockClassifier) Predict(_ context.Context, fv FeatureVector) (Prediction, error) {
	m.Calls = append(m.Calls, fv)
	return m.Result, m.Err
}
