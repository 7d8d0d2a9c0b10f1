package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_ObserveGeneration(t *testing.T) {
	r := NewRecorder()

	before := testutil.ToFloat64(GenerationsTotal.WithLabelValues("success"))
	scoredBefore := testutil.ToFloat64(CandidatesScored)
	persistedBefore := testutil.ToFloat64(MatchesPersisted)

	r.ObserveGeneration("success", 20*time.Millisecond, 12, 5)

	assert.Equal(t, before+1, testutil.ToFloat64(GenerationsTotal.WithLabelValues("success")))
	assert.Equal(t, scoredBefore+12, testutil.ToFloat64(CandidatesScored))
	assert.Equal(t, persistedBefore+5, testutil.ToFloat64(MatchesPersisted))
}

func TestRecorder_ObserveResponse(t *testing.T) {
	r := NewRecorder()

	before := testutil.ToFloat64(MatchResponsesTotal.WithLabelValues("like"))
	r.ObserveResponse("like")
	assert.Equal(t, before+1, testutil.ToFloat64(MatchResponsesTotal.WithLabelValues("like")))
}
