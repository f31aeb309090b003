package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mission-optimizer-core/internal/application/optimization"
	missiondata "github.com/andrescamacho/mission-optimizer-core/internal/domain/missiondata"
	domainoptimization "github.com/andrescamacho/mission-optimizer-core/internal/domain/optimization"
)

func TestConfigWithDefaultsFillsZeroValues(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, 1, cfg.PrefetchCount)
	assert.Equal(t, 2*time.Second, cfg.ReconnectInterval)
}

func TestConfigWithDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := Config{PrefetchCount: 5, ReconnectInterval: 10 * time.Second}.withDefaults()
	assert.Equal(t, 5, cfg.PrefetchCount)
	assert.Equal(t, 10*time.Second, cfg.ReconnectInterval)
}

func TestNewWorkerSubstitutesNoopMetricsWhenNil(t *testing.T) {
	w := NewWorker(Config{}, nil, zerolog.Nop(), nil)
	assert.NotNil(t, w.metrics)
	// Exercising the no-op must not panic even with zero values.
	w.metrics.JobReceived()
	w.metrics.JobFinished(true, 0, "ok", "optimal")
}

// fakeEngine stands in for the milp adapter so handleDelivery can be driven
// end to end against a fake broker channel, without a solver backend.
type fakeEngine struct {
	result *domainoptimization.Result
	err    error
}

func (f *fakeEngine) Build(data *missiondata.Data) (domainoptimization.Model, error) {
	return struct{}{}, nil
}

func (f *fakeEngine) Solve(ctx context.Context, model domainoptimization.Model) (domainoptimization.Solution, error) {
	if f.err != nil {
		return nil, f.err
	}
	return struct{}{}, nil
}

func (f *fakeEngine) Extract(data *missiondata.Data, model domainoptimization.Model, solution domainoptimization.Solution) (*domainoptimization.Result, error) {
	return f.result, nil
}

// fakeChannel records every Publish call instead of talking to a broker.
type fakeChannel struct {
	published []amqp.Publishing
}

func (f *fakeChannel) QueueDeclare(string, bool, bool, bool, bool, amqp.Table) (amqp.Queue, error) {
	return amqp.Queue{}, nil
}
func (f *fakeChannel) Qos(int, int, bool) error { return nil }
func (f *fakeChannel) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return nil, nil
}
func (f *fakeChannel) NotifyClose(c chan *amqp.Error) chan *amqp.Error { return c }
func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.published = append(f.published, msg)
	return nil
}
func (f *fakeChannel) Close() error { return nil }

// fakeAcknowledger records whether a delivery was acked, nacked, or rejected.
type fakeAcknowledger struct {
	acked, nacked, rejected bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error    { f.acked = true; return nil }
func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error { f.nacked = true; return nil }
func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error  { f.rejected = true; return nil }

func newTestWorker(t *testing.T, engine domainoptimization.Engine) (*Worker, *fakeChannel) {
	t.Helper()
	svc := optimization.NewService(engine, zerolog.Nop())
	w := NewWorker(Config{OutputQueue: "optimization_responses"}, svc, zerolog.Nop(), nil)
	ch := &fakeChannel{}
	w.channel = ch
	return w, ch
}

func TestHandleDeliveryAlwaysAcksOnMalformedBody(t *testing.T) {
	w, ch := newTestWorker(t, &fakeEngine{})
	ack := &fakeAcknowledger{}
	delivery := amqp.Delivery{Acknowledger: ack, Body: []byte("not json")}

	w.handleDelivery(context.Background(), delivery)

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	require.Len(t, ch.published, 1)
	var resp Response
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &resp))
	assert.Equal(t, "error", resp.Status)
}

func TestHandleDeliveryAlwaysAcksOnSolveFailure(t *testing.T) {
	w, ch := newTestWorker(t, &fakeEngine{result: &domainoptimization.Result{
		SolverStatus: domainoptimization.SolverStatus{Status: "error", TerminationCondition: "infeasible"},
	}})
	ack := &fakeAcknowledger{}
	body, err := json.Marshal(Request{JobID: "job-1", Data: map[string]interface{}{
		"materials": []interface{}{"plastic"}, "methods": []interface{}{"extrude"},
		"outputs": []interface{}{"filament"}, "items": []interface{}{"spare_part"},
		"substitutes": []interface{}{"printed_part"}, "weeks": []interface{}{1.0},
	}})
	require.NoError(t, err)
	delivery := amqp.Delivery{Acknowledger: ack, Body: body}

	w.handleDelivery(context.Background(), delivery)

	assert.True(t, ack.acked)
	require.Len(t, ch.published, 1)
	var resp Response
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "job-1", resp.JobID)
}

func TestHandleDeliveryPublishesSuccessAndAcks(t *testing.T) {
	w, ch := newTestWorker(t, &fakeEngine{result: &domainoptimization.Result{
		SolverStatus: domainoptimization.SolverStatus{Status: "ok", TerminationCondition: "optimal"},
	}})
	ack := &fakeAcknowledger{}
	body, err := json.Marshal(Request{JobID: "job-2", Data: map[string]interface{}{
		"materials": []interface{}{"plastic"}, "methods": []interface{}{"extrude"},
		"outputs": []interface{}{"filament"}, "items": []interface{}{"spare_part"},
		"substitutes": []interface{}{"printed_part"}, "weeks": []interface{}{1.0},
	}})
	require.NoError(t, err)
	delivery := amqp.Delivery{Acknowledger: ack, Body: body}

	w.handleDelivery(context.Background(), delivery)

	assert.True(t, ack.acked)
	require.Len(t, ch.published, 1)
	var resp Response
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "job-2", resp.JobID)
}
