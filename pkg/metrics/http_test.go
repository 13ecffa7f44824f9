package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)

	metrics.Observe("GET", "/api/v1/products", "200", 120*time.Millisecond)
	metrics.Observe("GET", "/api/v1/products", "200", 80*time.Millisecond)
	metrics.Observe("POST", "/api/v1/cart/items", "404", 10*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	counter, ok := byName["http_requests_total"]
	if !ok {
		t.Fatal("expected http_requests_total family")
	}
	var total float64
	for _, m := range counter.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	if total != 3 {
		t.Fatalf("expected 3 observed requests, got %v", total)
	}

	hist, ok := byName["http_request_duration_seconds"]
	if !ok {
		t.Fatal("expected duration histogram family")
	}
	var samples uint64
	for _, m := range hist.GetMetric() {
		samples += m.GetHistogram().GetSampleCount()
	}
	if samples != 3 {
		t.Fatalf("expected 3 histogram samples, got %d", samples)
	}
}

func TestHTTPMetricsNilReceiverAndRegistry(t *testing.T) {
	var nilMetrics *HTTPMetrics
	nilMetrics.Observe("GET", "/x", "200", time.Millisecond) // must not panic

	unregistered := NewHTTPMetrics(nil)
	unregistered.Observe("GET", "", "500", time.Millisecond)
}
