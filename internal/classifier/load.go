package classifier

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// Load usa el servicio remoto si hay url, si no el archivo del modelo. Cualquier
// falla devuelve Unavailable y el resto sigue funcionando sin cluster.
func Load(modelPath, url string, timeout time.Duration, logger *zap.Logger) Classifier {
	if url != "" {
		logger.Info("using remote classifier", zap.String("url", url))
		return NewRemoteClassifier(url, timeout, logger)
	}
	if modelPath == "" {
		logger.Warn("classifier disabled: no model configured")
		return Unavailable{Reason: errors.New("no model configured")}
	}
	m, err := LoadLinearModel(modelPath)
	if err != nil {
		logger.Error("classifier load failed", zap.String("path", modelPath), zap.Error(err))
		return Unavailable{Reason: err}
	}
	logger.Info("classifier loaded", zap.String("path", modelPath), zap.Int("classes", len(m.classes)))
	return m
}
