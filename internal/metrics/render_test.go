package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRender(t *testing.T) {
	before := testutil.ToFloat64(renderTotal.WithLabelValues("t42"))
	ObserveRender("t42", 3, time.Millisecond)

	if got := testutil.ToFloat64(renderTotal.WithLabelValues("t42")); got != before+1 {
		t.Fatalf("expected render counter %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(renderPages.WithLabelValues("t42")); got < 3 {
		t.Fatalf("expected at least 3 pages, got %v", got)
	}
}

func TestObserveExportOutcome(t *testing.T) {
	ObserveExport("rod", nil, time.Second)
	ObserveExport("rod", errors.New("boom"), time.Second)

	if n := testutil.CollectAndCount(exportDuration); n < 2 {
		t.Fatalf("expected ok and error series, got %d", n)
	}
}
