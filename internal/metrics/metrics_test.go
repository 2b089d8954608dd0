package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ariefcatur/go-storefront-api.git/internal/metrics"
)

func TestSubmissionsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewSubmissionsWith(reg)

	m.ObserveAccepted(10 * time.Millisecond)
	m.ObserveAccepted(20 * time.Millisecond)
	m.ObserveRejected("validation")
	m.ObserveRejected("conflict")
	m.ObserveRejected("conflict")
	m.ObserveFailed()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	byName := map[string]float64{}
	for _, f := range families {
		for _, mf := range f.GetMetric() {
			if c := mf.GetCounter(); c != nil {
				byName[f.GetName()] += c.GetValue()
			}
		}
	}
	if byName["storefront_orders_accepted_total"] != 2 {
		t.Fatalf("accepted: %v", byName["storefront_orders_accepted_total"])
	}
	if byName["storefront_orders_rejected_total"] != 3 {
		t.Fatalf("rejected: %v", byName["storefront_orders_rejected_total"])
	}
	if byName["storefront_orders_failed_total"] != 1 {
		t.Fatalf("failed: %v", byName["storefront_orders_failed_total"])
	}
}

func TestSubmissionsHistogramObserved(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewSubmissionsWith(reg)
	m.ObserveAccepted(50 * time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != "storefront_order_submit_duration_seconds" {
			continue
		}
		if f.GetMetric()[0].GetHistogram().GetSampleCount() != 1 {
			t.Fatalf("histogram sample count: %v", f.GetMetric()[0].GetHistogram().GetSampleCount())
		}
		return
	}
	t.Fatal("duration histogram not registered")
}
