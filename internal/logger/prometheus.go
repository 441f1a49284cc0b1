package logger

import (
	"github.com/maxaizer/hh-harvester/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// prometheusHook counts error entries by type. It runs before the loki hook
// and fills in a missing type, so both see the same label.
type prometheusHook struct{}

func (h *prometheusHook) Fire(entry *log.Entry) error {
	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok || errorType == "" {
		errorType = ErrorTypeUnknown
		entry.Data[ErrorTypeField] = errorType
	}

	metrics.ErrorsCounter.WithLabelValues(errorType).Inc()
	return nil
}

func (h *prometheusHook) Levels() []log.Level {
	return []log.Level{
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

func addPrometheusHook() {
	log.AddHook(&prometheusHook{})
	log.Debug("Prometheus logging enabled")
}
