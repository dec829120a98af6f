package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCapabilityDecision(t *testing.T) {
	before := testutil.ToFloat64(capabilityDecisions.WithLabelValues("vendor", "admin_push", "denied"))

	RecordCapabilityDecision("vendor", "admin_push", false)

	after := testutil.ToFloat64(capabilityDecisions.WithLabelValues("vendor", "admin_push", "denied"))
	assert.InDelta(t, before+1, after, 0)
}

func TestRecordOperation(t *testing.T) {
	before := testutil.ToFloat64(operations.WithLabelValues("admin_decide", "conflict"))

	RecordOperation("admin_decide", "conflict", 3*time.Millisecond)

	assert.InDelta(t, before+1, testutil.ToFloat64(operations.WithLabelValues("admin_decide", "conflict")), 0)
}

func TestSetBacklog(t *testing.T) {
	SetBacklog("requested", 7, 2)

	assert.InDelta(t, 7, testutil.ToFloat64(backlog.WithLabelValues("requested", "any")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(backlog.WithLabelValues("requested", "stale")), 0)

	SetBacklog("requested", 0, 0)

	assert.InDelta(t, 0, testutil.ToFloat64(backlog.WithLabelValues("requested", "any")), 0)
}
