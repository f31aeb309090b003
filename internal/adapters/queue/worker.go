package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/mission-optimizer-core/internal/application/optimization"
)

// Metrics is the subset of internal/adapters/metrics.Collector the worker
// needs; declared here so the worker depends on behavior, not on that
// package's concrete type.
type Metrics interface {
	JobReceived()
	JobFinished(succeeded bool, durationSeconds float64, status, terminationCondition string)
}

type noopMetrics struct{}

func (noopMetrics) JobReceived()                              {}
func (noopMetrics) JobFinished(bool, float64, string, string) {}

// Config controls broker connection, queue topology, and dispatch fairness.
type Config struct {
	URL           string
	InputQueue    string
	OutputQueue   string
	PrefetchCount int
	// ReconnectInterval bounds how often a flapping broker is retried; it
	// feeds a token-bucket limiter rather than a fixed sleep so a quick
	// transient blip doesn't wait the full interval.
	ReconnectInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.PrefetchCount <= 0 {
		c.PrefetchCount = 1
	}
	if c.ReconnectInterval <= 0 {
		c.ReconnectInterval = 2 * time.Second
	}
	return c
}

// brokerChannel is the subset of *amqp.Channel the worker depends on,
// declared here so handleDelivery's publish-then-ack behavior and the
// connect/declare sequence can be exercised against a fake in tests
// without a live broker connection.
type brokerChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	NotifyClose(c chan *amqp.Error) chan *amqp.Error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Worker pulls one optimization request at a time off InputQueue, runs it
// through svc, publishes exactly one response to OutputQueue, and
// acknowledges. It holds no state across messages beyond the broker
// connection itself.
type Worker struct {
	cfg     Config
	svc     *optimization.Service
	log     zerolog.Logger
	metrics Metrics
	limiter *rate.Limiter

	conn    *amqp.Connection
	channel brokerChannel
}

// NewWorker builds a Worker bound to one service instance and logger; both
// are explicit constructor arguments, never package globals, so a host
// process can run several workers against independent services safely. A
// nil metrics collector is replaced with a no-op so callers that don't care
// about metrics (such as tests) don't need a stub.
func NewWorker(cfg Config, svc *optimization.Service, log zerolog.Logger, metrics Metrics) *Worker {
	cfg = cfg.withDefaults()
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Worker{
		cfg:     cfg,
		svc:     svc,
		log:     log,
		metrics: metrics,
		limiter: rate.NewLimiter(rate.Every(cfg.ReconnectInterval), 1),
	}
}

// Run connects, declares queues, and consumes until ctx is canceled or an
// unrecoverable error occurs. Transport failures are logged and retried
// with backoff; the loop only returns once ctx is done or reconnect itself
// fails after exhausting retry attempts.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if err := w.connectWithRetry(ctx); err != nil {
			return fmt.Errorf("connect to broker: %w", err)
		}

		err := w.consume(ctx)
		w.closeConnection()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			continue
		}

		w.log.Error().Err(err).Msg("consumer loop ended, reconnecting")
		if werr := w.limiter.Wait(ctx); werr != nil {
			return ctx.Err()
		}
	}
}

// Stop closes the channel and connection; used for a clean shutdown
// distinct from the reconnect path in Run.
func (w *Worker) Stop() {
	w.closeConnection()
}

func (w *Worker) closeConnection() {
	if w.channel != nil {
		_ = w.channel.Close()
		w.channel = nil
	}
	if w.conn != nil {
		_ = w.conn.Close()
		w.conn = nil
	}
}

func (w *Worker) connectWithRetry(ctx context.Context) error {
	return retry.Do(
		func() error { return w.connect() },
		retry.Context(ctx),
		retry.Attempts(0),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(30*time.Second),
		retry.OnRetry(func(n uint, err error) {
			w.log.Warn().Err(err).Uint("attempt", n).Msg("broker connect failed, retrying")
		}),
	)
}

func (w *Worker) connect() error {
	conn, err := amqp.Dial(w.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if _, err := channel.QueueDeclare(w.cfg.InputQueue, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return fmt.Errorf("declare input queue: %w", err)
	}
	if _, err := channel.QueueDeclare(w.cfg.OutputQueue, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return fmt.Errorf("declare output queue: %w", err)
	}
	if err := channel.Qos(w.cfg.PrefetchCount, 0, false); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return fmt.Errorf("set qos: %w", err)
	}

	w.conn = conn
	w.channel = channel
	w.log.Info().Str("input_queue", w.cfg.InputQueue).Msg("connected to broker")
	return nil
}

func (w *Worker) consume(ctx context.Context) error {
	deliveries, err := w.channel.Consume(w.cfg.InputQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}
	closed := w.channel.NotifyClose(make(chan *amqp.Error, 1))

	for {
		select {
		case <-ctx.Done():
			return nil
		case amqpErr, ok := <-closed:
			if !ok || amqpErr == nil {
				return fmt.Errorf("channel closed")
			}
			return fmt.Errorf("channel closed: %w", amqpErr)
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.handleDelivery(ctx, delivery)
		}
	}
}

// handleDelivery always acks: per the protocol, a malformed or
// unsolvable request is deterministic in its inputs, so retrying it on
// redelivery would just loop forever.
func (w *Worker) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	correlationID := uuid.NewString()
	log := w.log.With().Str("correlation_id", correlationID).Logger()
	w.metrics.JobReceived()

	var req Request
	if err := json.Unmarshal(delivery.Body, &req); err != nil {
		log.Error().Err(err).Msg("malformed request body")
		w.publish(errorResponse("unknown", err), log)
		w.metrics.JobFinished(false, 0, "error", "malformed_request")
		_ = delivery.Ack(false)
		return
	}

	jobID := req.EffectiveJobID()
	log = log.With().Str("job_id", jobID).Logger()
	log.Info().Msg("received request")

	started := time.Now()
	result, err := w.svc.Solve(ctx, req.Data)
	elapsed := time.Since(started).Seconds()

	var resp Response
	if err != nil {
		log.Warn().Err(err).Msg("job failed")
		resp = errorResponse(jobID, err)
		w.metrics.JobFinished(false, elapsed, "error", "error")
	} else {
		log.Info().Msg("job solved")
		resp = successResponse(jobID, result)
		w.metrics.JobFinished(true, elapsed, result.SolverStatus.Status, result.SolverStatus.TerminationCondition)
	}

	w.publish(resp, log)
	_ = delivery.Ack(false)
}

func (w *Worker) publish(resp Response, log zerolog.Logger) {
	body, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		return
	}
	err = w.channel.Publish("", w.cfg.OutputQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to publish response")
	}
}
