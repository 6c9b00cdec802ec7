package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sjalq/bitly-maker/internal/app"
	"github.com/sjalq/bitly-maker/internal/config"
	"github.com/sjalq/bitly-maker/internal/logger"
	"github.com/sjalq/bitly-maker/pkg/httpclient"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const usage = `Usage: bitly-probe <API_KEY> [LONG_URL]

Example:
  bitly-probe "your-bitly-api-key" "https://example.com/page?param=value"
`

// clientFactory builds the transport once the logger is ready.
type clientFactory func(log logger.Logger) httpclient.Client

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr, newRestyClient))
}

func newRestyClient(log logger.Logger) httpclient.Client {
	return httpclient.NewRestyClient(0, log)
}

func execute(args []string, stdout, stderr io.Writer, newClient clientFactory) int {
	if args == nil {
		args = []string{}
	}

	cmd := newRootCommand(stdout, stderr, newClient)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprint(stderr, usage)
			return 1
		}
		fmt.Fprintf(stderr, "bitly-probe failed: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand(stdout, stderr io.Writer, newClient clientFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bitly-probe <API_KEY> [LONG_URL]",
		Short:         "Send one shorten request to the Bitly API and print what comes back",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags(), args, stdout, stderr, newClient)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, fs *pflag.FlagSet, args []string, stdout, stderr io.Writer, newClient clientFactory) error {
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg, stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	probe, err := app.NewProbe(cfg, newClient(log), stdout, stderr, log)
	if err != nil {
		logger.ErrorObj("failed to initialize probe", "error", err)
		return err
	}

	return probe.Run(ctx)
}
