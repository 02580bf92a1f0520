package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordPrediction(OutcomeSuccess)
	c.RecordPrediction(OutcomeSuccess)
	c.RecordPrediction(OutcomeInvalidInput)
	c.RecordTopClass("apple")
	c.ObserveUpload(2048)
	c.ObservePreprocess(3 * time.Millisecond)
	c.ObserveInference(7 * time.Millisecond)
	c.SetModelLoaded(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.predictions.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.predictions.WithLabelValues(OutcomeInvalidInput)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.predictedClasses.WithLabelValues("apple")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.modelLoaded))

	c.SetModelLoaded(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.modelLoaded))

	count, err := testutil.GatherAndCount(reg, "doodle_inference_duration_seconds", "doodle_preprocess_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewCollector_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector(prometheus.NewRegistry())
		NewCollector(prometheus.NewRegistry())
	})
}
