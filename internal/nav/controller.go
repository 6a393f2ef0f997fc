package nav

import (
	"errors"
	"strings"
	"sync"

	"github.com/yildizm/smishguard/internal/api"
	"github.com/yildizm/smishguard/internal/logger"
)

// ErrEmptyText is returned when a submission has no visible characters
var ErrEmptyText = errors.New("message text is empty")

// Generation identifies one entry into the analyzing screen.
// Zero means no analysis has started yet.
type Generation uint64

// Transition describes one screen change
type Transition struct {
	From       Screen
	To         Screen
	Generation Generation
}

// Activates reports whether the transition entered the analyzing screen
// and therefore needs a submission run for its generation.
func (t Transition) Activates() bool {
	return t.To == ScreenAnalyzing && t.Generation != 0
}

// State is a read-only snapshot of the controller
type State struct {
	Screen     Screen
	Text       string
	Response   *api.AnalysisResponse
	Err        string
	Generation Generation
}

// HasError reports whether the last submission failed
func (s State) HasError() bool {
	return s.Err != ""
}

// Controller owns which screen is visible and the data of the current
// analysis generation. It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	screen   Screen
	text     string
	response *api.AnalysisResponse
	err      string
	gen      Generation
	log      *logger.Logger
}

// NewController starts on the home screen
func NewController(log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{screen: ScreenHome, log: log.WithComponent("nav")}
}

// Goto switches the active screen. Entering analyzing starts a new generation,
// which supersedes any request still in flight.
func (c *Controller) Goto(screen Screen) Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gotoLocked(screen)
}

func (c *Controller) gotoLocked(screen Screen) Transition {
	from := c.screen
	if !screen.Valid() {
		c.log.Warn("ignoring unknown screen", logger.F("screen", screen.String()))
		return Transition{From: from, To: from}
	}

	t := Transition{From: from, To: screen}
	if screen == ScreenAnalyzing {
		c.gen++
		t.Generation = c.gen
	}
	c.screen = screen

	c.log.Debug("screen changed",
		logger.F("from", from.String()),
		logger.F("to", screen.String()),
		logger.F("generation", uint64(t.Generation)))
	return t
}

// BeginAnalysis stores text as the new submission, clears the previous
// response and error, and enters the analyzing screen. Text is stored as given.
func (c *Controller) BeginAnalysis(text string) (Transition, error) {
	if strings.TrimSpace(text) == "" {
		return Transition{}, ErrEmptyText
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = text
	c.response = nil
	c.err = ""
	return c.gotoLocked(ScreenAnalyzing), nil
}

// RecordResult stores a response and clears the error. It never navigates.
func (c *Controller) RecordResult(resp *api.AnalysisResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.response = resp
	c.err = ""
}

// RecordError stores an error message and clears the response. It never navigates.
func (c *Controller) RecordError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = msg
	c.response = nil
}

// SettleResult records resp and moves to next, but only while gen is still
// the live analyzing generation. It reports whether anything changed.
func (c *Controller) SettleResult(gen Generation, resp *api.AnalysisResponse, next Screen) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.liveLocked(gen) {
		return false
	}
	c.response = resp
	c.err = ""
	c.gotoLocked(next)
	return true
}

// SettleError records msg and returns home, but only while gen is still
// the live analyzing generation. It reports whether anything changed.
func (c *Controller) SettleError(gen Generation, msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.liveLocked(gen) {
		return false
	}
	c.err = msg
	c.response = nil
	c.gotoLocked(ScreenHome)
	return true
}

// Activation returns the submitted text for gen if it is still live
func (c *Controller) Activation(gen Generation) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.liveLocked(gen) {
		return "", false
	}
	return c.text, true
}

func (c *Controller) liveLocked(gen Generation) bool {
	return gen != 0 && gen == c.gen && c.screen == ScreenAnalyzing
}

// State returns a snapshot of the controller
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Screen:     c.screen,
		Text:       c.text,
		Response:   c.response,
		Err:        c.err,
		Generation: c.gen,
	}
}

// Screen returns the active screen
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}
