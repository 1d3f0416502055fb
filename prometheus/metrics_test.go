package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHelpersIncrementLabelledCounters(t *testing.T) {
	before := testutil.ToFloat64(CardResolutionCounter.WithLabelValues("portable"))
	RecordResolution("portable")
	assert.Equal(t, before+1, testutil.ToFloat64(CardResolutionCounter.WithLabelValues("portable")))

	before = testutil.ToFloat64(AuthErrorCounter.WithLabelValues("role_mismatch"))
	RecordAuthError("role_mismatch")
	assert.Equal(t, before+1, testutil.ToFloat64(AuthErrorCounter.WithLabelValues("role_mismatch")))

	before = testutil.ToFloat64(CardStatusCounter.WithLabelValues("REVOKED"))
	RecordCardStatus("REVOKED")
	assert.Equal(t, before+1, testutil.ToFloat64(CardStatusCounter.WithLabelValues("REVOKED")))
}

func TestTrackStoreOperationObserves(t *testing.T) {
	TrackStoreOperation("test_op")(time.Now().Add(-10 * time.Millisecond))
	assert.Equal(t, 1, testutil.CollectAndCount(StoreOperationDuration, "hawkcards_store_operation_duration_seconds"))
}
