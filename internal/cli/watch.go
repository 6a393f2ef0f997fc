package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yildizm/smishguard/internal/formatter"
	"github.com/yildizm/smishguard/internal/logger"
	"github.com/yildizm/smishguard/internal/submission"
)

var watchChannel string

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-analyze a message file every time it changes",
		Long: `Watch a file holding one message and analyze it again every time it is
written. A new write supersedes an analysis that is still running, so only the
verdict for the latest content is printed. Press Ctrl+C to stop watching.

Examples:
  smishguard watch message.txt
  smishguard watch --output json message.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&watchChannel, "channel", "", "channel sent with the request (default from config)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	f, err := formatter.New(getOutputFormat(), formatter.Options{
		Color: useColor(),
		Emoji: !isEmojiDisabled(),
	})
	if err != nil {
		return err
	}

	sess, err := newSession(GetGlobalConfig(), sessionOptions{channel: watchChannel, log: getLogger()})
	if err != nil {
		return err
	}

	watcher, cleanup, err := setupFileWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := &fileWatch{
		filename:  filepath.Clean(filename),
		session:   sess,
		formatter: f,
		out:       cmd.OutOrStdout(),
		log:       getLogger().WithComponent("watch"),
	}
	return w.run(ctx, watcher)
}

// fileWatch resubmits a file on every write
type fileWatch struct {
	filename  string
	session   *session
	formatter formatter.Formatter
	log       *logger.Logger

	mu  sync.Mutex
	out io.Writer
}

// run drives the event loop until ctx is cancelled or the watcher fails.
// Submissions run in the same group so they are waited for on exit.
func (w *fileWatch) run(ctx context.Context, watcher *fsnotify.Watcher) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Watching file: %s\n", w.filename)
			fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
		}

		// analyze what is already there
		w.submit(ctx, g)

		for {
			select {
			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return fmt.Errorf("watcher events channel closed")
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					w.submit(ctx, g)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return fmt.Errorf("watcher errors channel closed")
				}
				w.log.Warn("watcher error", logger.Error(err))
			}
		}
	})

	return g.Wait()
}

// submit starts a new generation for the current file content
func (w *fileWatch) submit(ctx context.Context, g *errgroup.Group) {
	text, err := readWatchFile(w.filename)
	if err != nil {
		w.log.Warn("failed to read watched file", logger.Error(err))
		return
	}

	t, err := w.session.ctrl.BeginAnalysis(text)
	if err != nil {
		// blank content is skipped until something is written
		return
	}

	g.Go(func() error {
		out := w.session.core.Run(ctx, t)
		if !out.Settled() {
			return nil
		}
		return w.print(text, out)
	})
}

func (w *fileWatch) print(text string, out submission.Outcome) error {
	output, err := w.formatter.Format(formatter.NewReport(outcomeState(text, out)))
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	_, err = w.out.Write(output)
	return err
}

func readWatchFile(filename string) (string, error) {
	// #nosec G304 - path is validated by setupFileWatcher
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return readLimited(file)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// setupFileWatcher validates filename and starts watching it
func setupFileWatcher(filename string) (*fsnotify.Watcher, func(), error) {
	if err := validateWatchFilePath(filename); err != nil {
		return nil, nil, fmt.Errorf("invalid file path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Clean(filename)); err != nil {
		cleanupWatcher(watcher)
		return nil, nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, func() { cleanupWatcher(watcher) }, nil
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
