package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prediction outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeModelNotLoaded = "model_not_loaded"
	OutcomeFailure        = "failure"
)

// Collector records prediction metrics with Prometheus
type Collector struct {
	predictions       *prometheus.CounterVec
	predictedClasses  *prometheus.CounterVec
	preprocessLatency prometheus.Histogram
	inferenceLatency  prometheus.Histogram
	uploadBytes       prometheus.Histogram
	modelLoaded       prometheus.Gauge
}

// NewCollector registers the prediction metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doodle_predictions_total",
				Help: "Total number of prediction requests by outcome",
			},
			[]string{"outcome"},
		),
		predictedClasses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doodle_predicted_class_total",
				Help: "Total number of times each class was the top prediction",
			},
			[]string{"class"},
		),
		preprocessLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "doodle_preprocess_duration_seconds",
				Help:    "Image decode and preprocessing duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		inferenceLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "doodle_inference_duration_seconds",
				Help:    "Model forward pass duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		uploadBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "doodle_upload_bytes",
				Help:    "Size of uploaded images in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
		modelLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "doodle_model_loaded",
				Help: "1 when the model is loaded, 0 when the service is degraded",
			},
		),
	}
}

// RecordPrediction counts one prediction request
func (c *Collector) RecordPrediction(outcome string) {
	c.predictions.WithLabelValues(outcome).Inc()
}

// RecordTopClass counts the winning class of a successful prediction
func (c *Collector) RecordTopClass(class string) {
	c.predictedClasses.WithLabelValues(class).Inc()
}

// ObserveUpload records the size of an uploaded image
func (c *Collector) ObserveUpload(size int) {
	c.uploadBytes.Observe(float64(size))
}

// ObservePreprocess records preprocessing latency
func (c *Collector) ObservePreprocess(d time.Duration) {
	c.preprocessLatency.Observe(d.Seconds())
}

// ObserveInference records inference latency
func (c *Collector) ObserveInference(d time.Duration) {
	c.inferenceLatency.Observe(d.Seconds())
}

// SetModelLoaded records the model state
func (c *Collector) SetModelLoaded(loaded bool) {
	if loaded {
		c.modelLoaded.Set(1)
		return
	}
	c.modelLoaded.Set(0)
}
