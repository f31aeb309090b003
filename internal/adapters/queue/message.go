// Package queue implements the AMQP worker: pull one optimization request
// at a time, run it through the application service, publish exactly one
// response, acknowledge.
package queue

import (
	"github.com/andrescamacho/mission-optimizer-core/internal/domain/optimization"
)

// Request is the decoded input message. JobID and RequestID are read
// independently since producers echo either name; EffectiveJobID resolves
// the one to use.
type Request struct {
	JobID     string                 `json:"job_id"`
	RequestID string                 `json:"request_id"`
	Data      map[string]interface{} `json:"data"`
}

// EffectiveJobID prefers JobID, falling back to RequestID, then "unknown".
func (r Request) EffectiveJobID() string {
	if r.JobID != "" {
		return r.JobID
	}
	if r.RequestID != "" {
		return r.RequestID
	}
	return "unknown"
}

// Response is the published output message: exactly one of Results or
// Error is set, selected by Status.
type Response struct {
	JobID   string               `json:"job_id"`
	Status  string                `json:"status"`
	Results *optimization.Result `json:"results,omitempty"`
	Error   string                `json:"error,omitempty"`
}

func successResponse(jobID string, result *optimization.Result) Response {
	return Response{JobID: jobID, Status: "success", Results: result}
}

func errorResponse(jobID string, err error) Response {
	return Response{JobID: jobID, Status: "error", Error: err.Error()}
}
