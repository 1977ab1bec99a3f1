package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RemoteClassifier llama a un servicio de inferencia externo por HTTP.
type RemoteClassifier struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewRemoteClassifier arma un cliente para POST {baseURL}/predict.
func NewRemoteClassifier(baseURL string, timeout time.Duration, logger *zap.Logger) *RemoteClassifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteClassifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type remoteResponse struct {
	Success       bool               `json:"success"`
	Prediction    string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Method        string             `json:"method"`
	Probabilities map[string]float64 `json:"all_probabilities"`
	Error         string             `json:"error"`
}

func (c *RemoteClassifier) Predict(ctx context.Context, fv FeatureVector) (Prediction, error) {
	body, err := json.Marshal(fv)
	if err != nil {
		return Prediction{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Prediction{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Warn("classifier error status", zap.Int("status", resp.StatusCode), zap.ByteString("body", respBody))
		}
		return Prediction{}, fmt.Errorf("classifier http error: status=%d", resp.StatusCode)
	}

	var rr remoteResponse
	if err := json.Unmarshal(respBody, &rr); err != nil {
		return Prediction{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if !rr.Success || rr.Prediction == "" {
		if strings.EqualFold(rr.Error, ErrModelNotLoaded.Error()) {
			return Prediction{}, ErrModelNotLoaded
		}
		return Prediction{}, fmt.Errorf("classifier api error: %s", rr.Error)
	}

	return Prediction{
		Cluster:       rr.Prediction,
		Confidence:    rr.Confidence,
		Method:        rr.Method,
		Probabilities: rr.Probabilities,
	}, nil
}
