package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yildizm/smishguard/internal/logger"
	"github.com/yildizm/smishguard/internal/ui"
)

var (
	tuiTheme  string
	tuiNoAlt  bool
	tuiUnread int
)

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal app",
		Long: `Open the interactive terminal app. Paste a message on the home screen and
press ctrl+s to analyze it.

Keys:
  ctrl+s  analyze the message        F1  home
  esc     cancel / back              F2  search
  c       copy the result            F3  notifications
  ctrl+c  quit                       F4  my page`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().StringVar(&tuiTheme, "theme", "", "color theme ("+fmt.Sprint(ui.GetAvailableThemes())+")")
	cmd.Flags().BoolVar(&tuiNoAlt, "no-alt-screen", false, "render inline instead of using the alternate screen")
	cmd.Flags().IntVar(&tuiUnread, "unread", 0, "initial notification badge count (negative hides it)")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	// log lines on stderr would tear the screen, so only a log file is honoured here
	log := logger.Nop()
	if cfg.Log.File != "" {
		log = getLogger()
	}

	sess, err := newSession(cfg, sessionOptions{log: log})
	if err != nil {
		return err
	}

	theme := cfg.UI.Theme
	if tuiTheme != "" {
		theme = tuiTheme
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app := ui.NewApp(sess.ctrl, sess.core, ui.Options{
		Theme:   theme,
		Color:   useColor(),
		Unread:  tuiUnread,
		Context: ctx,
		Logger:  log,
	})

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen && !tuiNoAlt {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, tea.WithContext(ctx))

	if _, err := tea.NewProgram(app, opts...).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal app failed: %w", err)
	}
	return nil
}
