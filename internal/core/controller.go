package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Rorical/WolofBridge/internal/models"
)

// Processor performs the single network call of a query cycle. It returns the
// raw success body; non-2xx responses come back as SERVER_ERROR.
type Processor interface {
	Process(ctx context.Context, req models.QueryRequest) (json.RawMessage, error)
}

// RequestPolicy decides what happens to an outstanding call when a new
// submission starts.
type RequestPolicy string

const (
	// PolicyDisableTrigger only disables the submit trigger while loading.
	// Overlapping calls run to completion and the last one to finish wins.
	PolicyDisableTrigger RequestPolicy = "disable-trigger"
	// PolicyCancelInFlight cancels the previous call when a new one starts.
	PolicyCancelInFlight RequestPolicy = "cancel-in-flight"
)

// ParseRequestPolicy accepts the policy names used in profiles. Empty means the default.
func ParseRequestPolicy(s string) (RequestPolicy, error) {
	switch RequestPolicy(s) {
	case "", PolicyDisableTrigger:
		return PolicyDisableTrigger, nil
	case PolicyCancelInFlight:
		return PolicyCancelInFlight, nil
	}
	return "", fmt.Errorf("unknown request policy %q", s)
}

// ErrSuperseded is returned by a run that was cancelled by a newer submission.
var ErrSuperseded = errors.New("query superseded by a newer submission")

const emptyQueryMessage = "Please enter a question"

// Controller sequences one query cycle: reset, validate, load, call, check,
// render or report.
type Controller struct {
	processor Processor
	logger    *zap.Logger
	policy    RequestPolicy
	timeout   time.Duration

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

type Option func(*Controller)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func WithPolicy(policy RequestPolicy) Option {
	return func(c *Controller) { c.policy = policy }
}

// WithTimeout bounds each call. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Controller) { c.timeout = timeout }
}

func NewController(processor Processor, opts ...Option) *Controller {
	c := &Controller{
		processor: processor,
		logger:    zap.NewNop(),
		policy:    PolicyDisableTrigger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Policy() RequestPolicy {
	return c.policy
}

// Trigger reads the input handle and submits it. Both the submit action and
// the Enter key call this once per gesture.
func (c *Controller) Trigger(ctx context.Context, b *Bindings) error {
	if err := b.Validate(); err != nil {
		return c.reportInitialization(b, err)
	}
	return c.Submit(ctx, b.Input.Value(), b)
}

// Submit runs a full query cycle for raw. Every failure is displayed through
// b before it is returned, so callers only need the error for exit codes.
func (c *Controller) Submit(ctx context.Context, raw string, b *Bindings) (err error) {
	if verr := b.Validate(); verr != nil {
		return c.reportInitialization(b, verr)
	}

	var (
		id      uint64
		runCtx  = ctx
		release = func() {}
		started bool
	)
	// A rejected submission replaces the outstanding run too, so an older
	// result never lands next to the new validation error.
	if c.policy == PolicyCancelInFlight {
		id, runCtx, release = c.begin(ctx)
		started = true
	}
	defer func() { release() }()
	defer func() {
		r := recover()
		if r != nil {
			c.logger.Error("Query panicked", zap.Any("panic", r))
		}
		if !started {
			if r != nil {
				err = c.fail(b, fmt.Errorf("panic during query: %v", r))
			}
			return
		}
		settled := c.apply(id, func() error {
			b.setLoading(false)
			if r != nil {
				return c.fail(b, fmt.Errorf("panic during query: %v", r))
			}
			return nil
		})
		if r != nil || errors.Is(settled, ErrSuperseded) {
			err = settled
		}
	}()

	if serr := c.apply(id, func() error {
		b.clearError()
		b.Results.SetVisible(false)
		return nil
	}); serr != nil {
		return serr
	}

	query := strings.TrimSpace(raw)
	if query == "" {
		return c.apply(id, func() error {
			return c.fail(b, NewValidationError(emptyQueryMessage))
		})
	}

	if !started {
		id, runCtx, release = c.begin(ctx)
		started = true
	}
	if serr := c.apply(id, func() error {
		b.setLoading(true)
		return nil
	}); serr != nil {
		return serr
	}

	start := time.Now()
	body, perr := c.processor.Process(runCtx, models.QueryRequest{Query: query})

	err = c.apply(id, func() error {
		if perr != nil {
			return c.fail(b, perr)
		}
		resp, derr := decodeResponse(body)
		if derr != nil {
			return c.fail(b, derr)
		}
		b.render(resp)
		return nil
	})
	switch {
	case errors.Is(err, ErrSuperseded):
		c.logger.Debug("Discarding superseded query", zap.Uint64("run", id), zap.NamedError("cause", perr))
	case err == nil:
		c.logger.Info("Query answered",
			zap.Uint64("run", id),
			zap.Int("query_length", len(query)),
			zap.Duration("duration", time.Since(start)),
		)
	}
	return err
}

// begin registers a new run and derives its context.
func (c *Controller) begin(ctx context.Context) (uint64, context.Context, func()) {
	runCtx, cancel := context.WithCancel(ctx)
	release := cancel
	if c.timeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, c.timeout)
		release = func() {
			cancelTimeout()
			cancel()
		}
	}
	return c.register(cancel), runCtx, release
}

func (c *Controller) register(cancel context.CancelFunc) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	if c.policy == PolicyCancelInFlight && c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	return c.seq
}

// apply runs a display step for run id. Under cancel-in-flight the check and
// the step share the lock, so a superseded run never touches the view.
func (c *Controller) apply(id uint64, step func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.policy == PolicyCancelInFlight && c.seq != id {
		return ErrSuperseded
	}
	return step()
}

func (c *Controller) fail(b *Bindings, err error) error {
	qe := Normalize(err)
	fields := []zap.Field{zap.String("kind", string(qe.Kind)), zap.String("message", qe.Message)}
	if qe.Status != 0 {
		fields = append(fields, zap.Int("status", qe.Status))
	}
	if qe.Err != nil {
		fields = append(fields, zap.Error(qe.Err))
	}
	if qe.Kind == KindValidation {
		c.logger.Warn("Query rejected", fields...)
	} else {
		c.logger.Error("Query failed", fields...)
	}
	b.showError(qe.Message)
	return qe
}

// reportInitialization writes to the error region when it exists, and logs otherwise.
func (c *Controller) reportInitialization(b *Bindings, err error) error {
	qe := Normalize(err)
	c.logger.Error("UI bindings incomplete", zap.Strings("missing", qe.Missing))
	if b != nil && b.Error != nil {
		b.Error.SetText(qe.Message)
		b.Error.SetVisible(true)
	}
	return qe
}

func decodeResponse(body json.RawMessage) (models.QueryResponse, error) {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return models.QueryResponse{}, NewUnexpectedError(fmt.Errorf("invalid JSON response: %w", err))
	}
	payload, ok := decoded.(map[string]interface{})
	if !ok {
		return models.QueryResponse{}, NewMalformedBodyError()
	}
	resp, missing := models.ParseQueryResponse(payload)
	if len(missing) > 0 {
		return models.QueryResponse{}, NewMalformedResponseError(missing)
	}
	return resp, nil
}
