package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/smishguard/internal/devserver"
	"github.com/yildizm/smishguard/internal/emoji"
)

var (
	devServerAddr  string
	devServerDelay time.Duration
)

func newDevServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local stand-in for the analysis service",
		Long: `Run a local HTTP service that answers analysis requests with a simple
keyword heuristic. It speaks the same wire format as the real service, so the
terminal app and the analyze command can be tried without network access.

Examples:
  smishguard devserver
  smishguard devserver --addr :9000 --delay 2s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := devserver.New(devserver.Options{
				Delay:  devServerDelay,
				Logger: getLogger(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(os.Stderr, "%s Stand-in analysis service on http://%s (Ctrl+C to stop)\n",
				emoji.GetEmoji("server"), devServerAddr)
			return srv.ListenAndServe(ctx, devServerAddr)
		},
	}

	cmd.Flags().StringVar(&devServerAddr, "addr", devserver.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&devServerDelay, "delay", 0, "artificial delay before every answer")

	return cmd
}
