package metrics

import (
	"errors"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "ok", Status(nil))
	assert.Equal(t, "error", Status(errors.New("boom")))
}

func TestCountersRegistered(t *testing.T) {
	c := LoadsTotal.WithLabelValues("records", "metrics_test", Status(nil))
	c.Inc()
	c.Inc()

	var m dto.Metric
	require.NoError(t, c.Write(&m))
	assert.InDelta(t, 2.0, m.GetCounter().GetValue(), 0.0001)
}
