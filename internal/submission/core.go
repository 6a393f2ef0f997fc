package submission

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/yildizm/smishguard/internal/api"
	"github.com/yildizm/smishguard/internal/logger"
	"github.com/yildizm/smishguard/internal/nav"
)

const (
	// DefaultChannel is sent when no channel is configured
	DefaultChannel = "sms"

	// fallbackErrorMessage replaces failures that carry no text
	fallbackErrorMessage = "analysis request failed"
)

// Analyzer sends one analysis request. *api.Client implements it.
type Analyzer interface {
	Analyze(ctx context.Context, req *api.AnalysisRequest) (*api.AnalysisResponse, error)
}

// Phase is where a submission run ended up
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRequesting
	PhaseSettled
	PhaseAbandoned
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRequesting:
		return "requesting"
	case PhaseSettled:
		return "settled"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Outcome reports what one Run did
type Outcome struct {
	Phase      Phase
	Generation nav.Generation
	RequestID  string

	// Next is the screen the controller moved to. Only set when settled.
	Next nav.Screen

	// Response is set when the call succeeded, even if abandoned
	Response *api.AnalysisResponse

	// Err is set when the call failed, even if abandoned
	Err error
}

// Settled reports whether the run changed controller state
func (o Outcome) Settled() bool {
	return o.Phase == PhaseSettled
}

// Core turns an activation of the analyzing screen into exactly one
// analysis call and settles its result into the controller.
type Core struct {
	controller *nav.Controller
	client     Analyzer
	channel    string
	newID      IDGenerator
	log        *logger.Logger
	inflight   atomic.Int32
}

// Option customizes a Core
type Option func(*Core)

// WithChannel sets the channel sent with each request
func WithChannel(channel string) Option {
	return func(c *Core) {
		if channel = strings.TrimSpace(channel); channel != "" {
			c.channel = channel
		}
	}
}

// WithIDGenerator replaces the request id generator
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Core) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Core) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCore creates a submission core bound to one controller
func NewCore(controller *nav.Controller, client Analyzer, opts ...Option) *Core {
	c := &Core{
		controller: controller,
		client:     client,
		channel:    DefaultChannel,
		newID:      DefaultIDGenerator,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("submission")
	return c
}

// Requesting reports whether any call is currently outstanding,
// including calls whose generation has already been superseded.
func (c *Core) Requesting() bool {
	return c.inflight.Load() > 0
}

// Run performs the analysis for t. It blocks until the call returns.
// Results of a generation that is no longer live are dropped.
func (c *Core) Run(ctx context.Context, t nav.Transition) Outcome {
	out := Outcome{Phase: PhaseIdle, Generation: t.Generation}
	if !t.Activates() {
		return out
	}

	text, ok := c.controller.Activation(t.Generation)
	if !ok {
		out.Phase = PhaseAbandoned
		c.log.Debug("activation already superseded", logger.F("generation", uint64(t.Generation)))
		return out
	}

	if strings.TrimSpace(text) == "" {
		// analyzing was entered without a submission
		out.Err = nav.ErrEmptyText
		return c.settleError(out, nav.ErrEmptyText.Error())
	}

	req := &api.AnalysisRequest{
		Text:      text,
		RequestID: c.newID(),
		Channel:   c.channel,
	}
	out.RequestID = req.RequestID

	c.inflight.Add(1)
	start := time.Now()
	resp, err := c.client.Analyze(ctx, req)
	c.inflight.Add(-1)

	if err != nil {
		out.Err = err
		if ctx.Err() != nil {
			out.Phase = PhaseAbandoned
			c.log.Debug("analysis cancelled", logger.F("request_id", req.RequestID))
			return out
		}
		c.log.Info("analysis failed",
			logger.F("request_id", req.RequestID),
			logger.F("kind", string(api.KindOf(err))),
			logger.Duration(time.Since(start)))
		return c.settleError(out, err.Error())
	}

	out.Response = resp
	next := nav.ScreenResultSafe
	if resp.Result.Label.IsFraudulent() {
		next = nav.ScreenResultRisk
	}

	if !c.controller.SettleResult(t.Generation, resp, next) {
		out.Phase = PhaseAbandoned
		c.log.Debug("dropping stale result", logger.F("request_id", req.RequestID))
		return out
	}

	out.Phase = PhaseSettled
	out.Next = next
	c.log.Info("analysis settled",
		logger.F("request_id", req.RequestID),
		logger.F("label", resp.Result.Label.English()),
		logger.Duration(time.Since(start)))
	return out
}

func (c *Core) settleError(out Outcome, msg string) Outcome {
	if strings.TrimSpace(msg) == "" {
		msg = fallbackErrorMessage
	}
	if !c.controller.SettleError(out.Generation, msg) {
		out.Phase = PhaseAbandoned
		c.log.Debug("dropping stale failure", logger.F("request_id", out.RequestID))
		return out
	}
	out.Phase = PhaseSettled
	out.Next = nav.ScreenHome
	return out
}
