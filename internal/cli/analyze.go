package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/smishguard/internal/formatter"
	"github.com/yildizm/smishguard/internal/nav"
)

const (
	// maxInputBytes caps a message read from stdin or a file
	maxInputBytes = 64 << 10

	exitRisk = 2
)

var (
	analyzeFile       string
	analyzeChannel    string
	analyzeTimeout    time.Duration
	analyzeOutputFile string
)

// stdin is swapped in tests
var stdin io.Reader = os.Stdin

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text|-]",
		Short: "Analyze one message and print the verdict",
		Long: `Send one message to the analysis service and print the verdict.

The message is taken from the arguments, from --file, or from stdin when no
argument is given or the argument is "-".

Exit codes: 0 looks safe, 2 likely smishing, 1 the analysis failed.

Examples:
  smishguard analyze "[Web발신] 택배 주소 불일치 bit.ly/xyz"
  pbpaste | smishguard analyze -
  smishguard analyze --file message.txt --output json`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the message from a file")
	cmd.Flags().StringVar(&analyzeChannel, "channel", "", "channel sent with the request (default from config)")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout (default from config, 0 waits indefinitely)")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	text, err := readMessage(args)
	if err != nil {
		return err
	}

	f, err := formatter.New(getOutputFormat(), formatter.Options{
		Color: useColor() && analyzeOutputFile == "",
		Emoji: !isEmojiDisabled(),
	})
	if err != nil {
		return err
	}

	sess, err := newSession(cfg, sessionOptions{
		timeout: analyzeTimeout,
		channel: analyzeChannel,
		log:     getLogger(),
	})
	if err != nil {
		return err
	}

	t, err := sess.ctrl.BeginAnalysis(text)
	if err != nil {
		return err
	}

	if isVerbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Sending message to %s...\n", sess.client.Endpoint())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := sess.core.Run(ctx, t)
	if !out.Settled() {
		if out.Err != nil {
			return fmt.Errorf("analysis interrupted: %w", out.Err)
		}
		return errors.New("analysis interrupted")
	}

	st := sess.ctrl.State()
	output, err := f.Format(formatter.NewReport(st))
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	if err := writeOutput(cmd.OutOrStdout(), output); err != nil {
		return err
	}

	return verdictExit(st)
}

// verdictExit maps a settled state to the command result
func verdictExit(st nav.State) error {
	switch {
	case st.HasError():
		return &ExitError{Code: 1, Err: fmt.Errorf("analysis failed: %s", st.Err)}
	case st.Screen == nav.ScreenResultRisk:
		return &ExitError{Code: exitRisk}
	default:
		return nil
	}
}

// readMessage resolves the message from --file, the arguments or stdin
func readMessage(args []string) (string, error) {
	if analyzeFile != "" {
		if len(args) > 0 {
			return "", errors.New("pass the message either as arguments or with --file, not both")
		}
		if err := validateFilePath(analyzeFile); err != nil {
			return "", fmt.Errorf("invalid file path: %w", err)
		}
		// #nosec G304 - path is validated above
		file, err := os.Open(filepath.Clean(analyzeFile))
		if err != nil {
			return "", fmt.Errorf("failed to open file %s: %w", analyzeFile, err)
		}
		defer file.Close()
		return readLimited(file)
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Reading message from stdin...\n")
		}
		return readLimited(stdin)
	}

	return strings.Join(args, " "), nil
}

func readLimited(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}
	if len(data) > maxInputBytes {
		return "", fmt.Errorf("message is longer than %d bytes", maxInputBytes)
	}
	return string(data), nil
}

// writeOutput writes to --output-file when set, otherwise to w
func writeOutput(w io.Writer, output []byte) error {
	if analyzeOutputFile == "" {
		_, err := w.Write(output)
		return err
	}

	if err := validateOutputFilePath(analyzeOutputFile); err != nil {
		return fmt.Errorf("invalid output file path: %w", err)
	}
	if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", analyzeOutputFile)
	}
	return nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

func validateOutputFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}
	if info, err := os.Stat(filepath.Clean(path)); err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory: %s", path)
	}
	return nil
}

func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return file.Sync()
}
