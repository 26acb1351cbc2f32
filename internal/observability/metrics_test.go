package observability

import (
	"testing"
	"time"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/experiences", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/experiences", "GET", 200, 30*time.Millisecond)
	m.RecordError("/api/experiences/:id", "DELETE", "FORBIDDEN")

	snap := m.Snapshot()
	key := "/api/experiences|GET|200"
	if snap.Requests[key] != 2 {
		t.Fatalf("requests[%s] = %d, want 2", key, snap.Requests[key])
	}
	if snap.AvgLatencyMSec[key] != 20 {
		t.Fatalf("avg latency = %d, want 20", snap.AvgLatencyMSec[key])
	}
	if snap.Errors["/api/experiences/:id|DELETE|FORBIDDEN"] != 1 {
		t.Fatalf("errors = %v", snap.Errors)
	}

	m.RecordRequest("/api/experiences", "GET", 200, time.Millisecond)
	if snap.Requests[key] != 2 {
		t.Fatal("snapshot must not alias live counters")
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	if len(m.Snapshot().Requests) != 0 {
		t.Fatal("expected empty snapshot")
	}
}
