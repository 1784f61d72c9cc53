package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.ObserveResample("SMOTE", 5000, 120*time.Millisecond)
	m.ObserveResample("ADASYN", 4800, 90*time.Millisecond)
	m.ObserveScore("SMOTE", "target", 2*time.Second)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "resample_operations_total 2")
	assert.Contains(t, text, "score_operations_total 1")
	assert.Contains(t, text, "resample_duration_seconds")
}

func TestMetrics_WithoutRegistry(t *testing.T) {
	m := NewWithRegistry(nil)
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "metrics.prom"))
	assert.Error(t, err)
}

func TestMetrics_ErrorsCounter(t *testing.T) {
	m := New()
	m.ErrorsTotal.Inc()
	m.ErrorsTotal.Inc()

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "errors_total 2")
}
