package telemetry

import (
	"testing"
	"time"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordCopy("sqlite", 3, 100, time.Second)
	m.RecordReachability("postgres", false)
	if m.Registry() != nil {
		t.Error("nil metrics returned a registry")
	}
}

func TestRecordCopy(t *testing.T) {
	m := NewMetrics()
	m.RecordCopy("sqlite", 9, 57, 250*time.Millisecond)
	m.RecordReachability("sqlite", true)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gathering metrics: %v", err)
	}

	found := make(map[string]bool, len(families))
	for _, f := range families {
		found[f.GetName()] = true
	}
	for _, want := range []string{
		"lahman_tables_copied_total",
		"lahman_rows_copied_total",
		"lahman_copy_duration_seconds",
		"lahman_reachability_checks_total",
	} {
		if !found[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}
