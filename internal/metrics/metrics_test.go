package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAnalysis(t *testing.T) {
	before := testutil.ToFloat64(AnalysesTotal.WithLabelValues(OutcomeRanked))
	ObserveAnalysis(OutcomeRanked, 3*time.Millisecond)
	after := testutil.ToFloat64(AnalysesTotal.WithLabelValues(OutcomeRanked))
	if after-before != 1 {
		t.Errorf("expected ranked counter to grow by 1, got %f", after-before)
	}
	if n := testutil.CollectAndCount(AnalysisDuration); n != 1 {
		t.Errorf("expected 1 histogram series, got %d", n)
	}
}
