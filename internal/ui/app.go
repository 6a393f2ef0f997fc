package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/smishguard/internal/formatter"
	"github.com/yildizm/smishguard/internal/logger"
	"github.com/yildizm/smishguard/internal/nav"
	"github.com/yildizm/smishguard/internal/submission"
)

const (
	// initialUnread is the badge count shown before the notifications screen is opened
	initialUnread = 3

	inputCharLimit = 5000
	inputHeight    = 8
)

var clipboardWrite = clipboard.WriteAll

// Options configure the interactive app
type Options struct {
	Theme string
	Color bool

	// Unread is the starting badge count. Zero means the default, negative hides it.
	Unread int

	// Context bounds every submission run; cancel it on exit
	Context context.Context
	Logger  *logger.Logger
}

// App is the interactive terminal application. It renders whatever screen
// the navigation controller holds and forwards user intent to it.
type App struct {
	ctrl   *nav.Controller
	core   *submission.Core
	ctx    context.Context
	log    *logger.Logger
	styles *Styles

	input   textarea.Model
	spinner spinner.Model

	width  int
	height int
	unread int

	// notice is a transient status line, cleared on the next screen change
	notice      string
	noticeIsErr bool
	quitting    bool
}

// NewApp creates the app around an existing controller and submission core
func NewApp(ctrl *nav.Controller, core *submission.Core, opts Options) *App {
	theme, _ := ThemeByName(opts.Theme)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	unread := opts.Unread
	switch {
	case unread == 0:
		unread = initialUnread
	case unread < 0:
		unread = 0
	}

	input := textarea.New()
	input.Placeholder = "Paste the suspicious SMS or DM here..."
	input.CharLimit = inputCharLimit
	input.ShowLineNumbers = false
	input.SetWidth(72)
	input.SetHeight(inputHeight)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &App{
		ctrl:    ctrl,
		core:    core,
		ctx:     ctx,
		log:     log.WithComponent("ui"),
		styles:  NewStyles(theme, opts.Color && !IsColorDisabled()),
		input:   input,
		spinner: spin,
		width:   80,
		height:  24,
		unread:  unread,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleWindowResize(msg)
	case tea.KeyMsg:
		return a.handleKeyPress(msg)
	case spinner.TickMsg:
		if a.ctrl.Screen() != nav.ScreenAnalyzing {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case analysisSettledMsg:
		return a.handleAnalysisSettled(msg)
	}

	if a.ctrl.Screen() == nav.ScreenHome {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height
	a.input.SetWidth(max(20, min(msg.Width-6, 100)))
	a.input.SetHeight(max(3, min(inputHeight, msg.Height-16)))
	return a, nil
}

func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		a.quitting = true
		return a, tea.Quit
	case tea.KeyF1:
		return a.navigate(nav.ScreenHome)
	case tea.KeyF2:
		return a.navigate(nav.ScreenSearch)
	case tea.KeyF3:
		return a.navigate(nav.ScreenNotifications)
	case tea.KeyF4:
		return a.navigate(nav.ScreenProfile)
	}

	switch a.ctrl.Screen() {
	case nav.ScreenHome:
		return a.handleHomeKey(msg)
	case nav.ScreenAnalyzing:
		if msg.Type == tea.KeyEsc {
			return a.navigate(nav.ScreenHome)
		}
		return a, nil
	case nav.ScreenResultRisk, nav.ScreenResultSafe:
		return a.handleResultKey(msg)
	default:
		switch msg.String() {
		case "esc", "h":
			return a.navigate(nav.ScreenHome)
		case "q":
			a.quitting = true
			return a, tea.Quit
		}
		return a, nil
	}
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlS {
		return a.submit()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		a.copyResult()
		return a, nil
	case "h", "esc":
		return a.navigate(nav.ScreenHome)
	case "q":
		a.quitting = true
		return a, tea.Quit
	}
	return a, nil
}

// submit hands the input to the controller. Blank input is ignored.
func (a *App) submit() (tea.Model, tea.Cmd) {
	t, err := a.ctrl.BeginAnalysis(a.input.Value())
	if errors.Is(err, nav.ErrEmptyText) {
		a.setNotice("Paste a message first.", true)
		return a, nil
	}
	if err != nil {
		a.setNotice(err.Error(), true)
		return a, nil
	}

	a.input.Reset()
	a.clearNotice()
	return a, a.activate(t)
}

// navigate moves to screen and starts a submission when the move activates one
func (a *App) navigate(screen nav.Screen) (tea.Model, tea.Cmd) {
	t := a.ctrl.Goto(screen)
	a.clearNotice()

	switch t.To {
	case nav.ScreenNotifications:
		a.unread = 0
	case nav.ScreenHome:
		return a, a.input.Focus()
	}
	return a, a.activate(t)
}

func (a *App) activate(t nav.Transition) tea.Cmd {
	if !t.Activates() {
		return nil
	}
	a.input.Blur()
	return tea.Batch(a.spinner.Tick, CreateAnalysisCommand(a.ctx, a.core, t))
}

func (a *App) handleAnalysisSettled(msg analysisSettledMsg) (tea.Model, tea.Cmd) {
	out := msg.outcome
	a.log.Debug("submission returned",
		logger.F("phase", out.Phase.String()),
		logger.F("generation", uint64(out.Generation)),
		logger.F("request_id", out.RequestID))

	if out.Settled() && out.Next == nav.ScreenHome {
		return a, a.input.Focus()
	}
	return a, nil
}

func (a *App) copyResult() {
	report := formatter.NewReport(a.ctrl.State())
	if err := clipboardWrite(report.ClipboardSummary()); err != nil {
		a.setNotice(fmt.Sprintf("Clipboard copy failed: %v", err), true)
		return
	}
	a.setNotice("Result copied to clipboard.", false)
}

func (a *App) setNotice(text string, isErr bool) {
	a.notice = text
	a.noticeIsErr = isErr
}

func (a *App) clearNotice() {
	a.notice = ""
	a.noticeIsErr = false
}

// Unread returns the notification badge count
func (a *App) Unread() int {
	return a.unread
}

// Controller exposes the navigation controller the app renders
func (a *App) Controller() *nav.Controller {
	return a.ctrl
}
