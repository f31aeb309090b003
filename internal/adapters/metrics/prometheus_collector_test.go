package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobFinishedUpdatesCounters(t *testing.T) {
	c := NewCollector()
	c.JobReceived()
	c.JobFinished(true, 0.25, "ok", "optimal")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	c.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "mission_optimizer_worker_jobs_received_total 1")
	assert.Contains(t, body, "mission_optimizer_worker_jobs_succeeded_total 1")
}

func TestJobFinishedFailureIncrementsFailedCounter(t *testing.T) {
	c := NewCollector()
	c.JobReceived()
	c.JobFinished(false, 0.1, "error", "infeasible")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	c.Handler().ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "mission_optimizer_worker_jobs_failed_total 1")
}
