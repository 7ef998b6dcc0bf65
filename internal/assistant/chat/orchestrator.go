// Package chat is the single entry point that turns an operator message into
// an answer: classify, extract parameters, query, format, then record the turn.
package chat

import (
	"context"
	"strings"
	"time"

	"payroll-assistant/internal/assistant/intent"
	"payroll-assistant/internal/assistant/period"
	"payroll-assistant/internal/assistant/query"
	"payroll-assistant/internal/assistant/response"
	apperrors "payroll-assistant/internal/common/errors"
	"payroll-assistant/internal/common/logger"
	"payroll-assistant/internal/common/metrics"
	"payroll-assistant/internal/models"
)

// State is a step of message processing. Every message ends in Formatted.
type State string

const (
	Received   State = "received"
	Classified State = "classified"
	Resolved   State = "resolved"
	Queried    State = "queried"
	Formatted  State = "formatted"
)

// Outcome labels the path a message took, for metrics and logs.
const (
	OutcomeAnswered      = "answered"
	OutcomeNoResults     = "no_results"
	OutcomeNeedsPeriod   = "needs_period"
	OutcomeNeedsCustomer = "needs_customer"
	OutcomeStoreError    = "store_error"
	OutcomeUnrecognized  = "unrecognized"
)

// Recorder receives one event per handled message.
type Recorder interface {
	RecordMessage(ctx context.Context, intent, outcome string, duration time.Duration)
}

type Config struct {
	QueryTimeout   time.Duration
	HistoryTimeout time.Duration
	OrderLimit     int
}

// Reply is the result of one message.
type Reply struct {
	Text    string
	Intent  intent.Intent
	Outcome string
	// Reason is the recovered error behind a guidance or apology reply.
	Reason error
}

type Orchestrator struct {
	executor *query.Executor
	turns    query.ChatTurnWriter
	config   Config
	logger   logger.Logger
	now      func() time.Time
	recorder Recorder
}

type Option func(*Orchestrator)

// WithClock replaces time.Now as the source of "now" for period resolution
// and chat turn timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

func New(payroll query.PayrollReader, orders query.OrderReader, turns query.ChatTurnWriter, config Config, log logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		executor: query.NewExecutor(payroll, orders, query.Config{
			QueryTimeout: config.QueryTimeout,
			OrderLimit:   config.OrderLimit,
		}),
		turns:  turns,
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "chat"}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// HandleMessage answers text for agentID. It always returns a reply; store
// failures become apology text and chat turn persistence is best-effort.
func (o *Orchestrator) HandleMessage(ctx context.Context, agentID int64, text string) string {
	return o.Handle(ctx, agentID, text).Text
}

// Handle is HandleMessage with the classified intent and outcome exposed.
func (o *Orchestrator) Handle(ctx context.Context, agentID int64, text string) Reply {
	started := time.Now()

	t := &turn{agentID: agentID, message: strings.ToLower(text), now: o.now()}
	for state := Received; state != Formatted; {
		state = o.step(ctx, state, t)
	}

	o.appendTurn(ctx, models.ChatTurn{
		AgentID:   agentID,
		Message:   text,
		Response:  t.reply.Text,
		Timestamp: o.now(),
	})

	elapsed := time.Since(started)
	metrics.ChatMessages.WithLabelValues(t.reply.Intent.String(), t.reply.Outcome).Inc()
	metrics.ChatMessageDuration.WithLabelValues(t.reply.Intent.String()).Observe(elapsed.Seconds())
	if o.recorder != nil {
		o.recorder.RecordMessage(ctx, t.reply.Intent.String(), t.reply.Outcome, elapsed)
	}

	o.logger.Debug("message handled", map[string]interface{}{
		"agentId":    agentID,
		"intent":     t.reply.Intent.String(),
		"outcome":    t.reply.Outcome,
		"reason":     string(apperrors.CodeOf(t.reply.Reason)),
		"durationMs": elapsed.Milliseconds(),
	})
	return t.reply
}

// turn carries one message through the states.
type turn struct {
	agentID  int64
	message  string
	now      time.Time
	dates    models.DateRange
	customer string
	total    float64
	orders   []models.OrderRecord
	reply    Reply
}

func (t *turn) finish(text, outcome string) State {
	t.reply.Text = text
	t.reply.Outcome = outcome
	return Formatted
}

func (t *turn) finishWith(text, outcome string, reason error) State {
	t.reply.Reason = reason
	return t.finish(text, outcome)
}

func (o *Orchestrator) step(ctx context.Context, state State, t *turn) State {
	switch state {
	case Received:
		t.reply.Intent = intent.Classify(t.message)
		return Classified

	case Classified:
		switch t.reply.Intent {
		case intent.Payroll:
			r, ok := period.Resolve(t.message, t.now)
			if !ok {
				return t.finishWith(response.UnrecognizedPeriod, OutcomeNeedsPeriod, apperrors.NewUnrecognizedPeriodError(t.message))
			}
			t.dates = r
		case intent.CustomerOrders:
			t.customer = intent.ExtractCustomerName(t.message)
			if t.customer == "" {
				return t.finishWith(response.MissingCustomerName, OutcomeNeedsCustomer, apperrors.NewMissingCustomerNameError(t.message))
			}
		default:
			return t.finish(response.UnknownIntent, OutcomeUnrecognized)
		}
		return Resolved

	case Resolved:
		var err error
		if t.reply.Intent == intent.Payroll {
			t.total, err = o.executor.SumPayroll(ctx, t.agentID, t.dates)
			if err != nil {
				o.logger.Error("payroll query failed", map[string]interface{}{"agentId": t.agentID, "error": err})
				return t.finishWith(response.PayrollFailure, OutcomeStoreError, err)
			}
			return Queried
		}
		t.orders, err = o.executor.FindOrders(ctx, t.customer)
		if err != nil {
			o.logger.Error("order query failed", map[string]interface{}{"agentId": t.agentID, "error": err})
			return t.finishWith(response.CustomerFailure, OutcomeStoreError, err)
		}
		return Queried

	case Queried:
		if t.reply.Intent == intent.Payroll {
			return t.finish(response.PayrollSummary(t.dates, t.total), OutcomeAnswered)
		}
		if len(t.orders) == 0 {
			return t.finish(response.NoOrders(t.customer), OutcomeNoResults)
		}
		return t.finish(response.Orders(t.customer, t.orders), OutcomeAnswered)
	}
	return Formatted
}

// appendTurn outlives request cancellation but not its own timeout. Errors are
// logged and counted only.
func (o *Orchestrator) appendTurn(ctx context.Context, ct models.ChatTurn) {
	if o.turns == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if o.config.HistoryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.HistoryTimeout)
		defer cancel()
	}

	if err := o.turns.AppendChatTurn(ctx, ct); err != nil {
		metrics.ChatTurnWriteFailures.Inc()
		o.logger.Warn("failed to save chat turn", map[string]interface{}{
			"agentId": ct.AgentID,
			"error":   err,
		})
	}
}
