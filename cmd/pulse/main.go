package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"basegraph.app/pulse/common/id"
	"basegraph.app/pulse/common/logger"
	"basegraph.app/pulse/common/otel"
	"basegraph.app/pulse/core/config"
	"basegraph.app/pulse/internal/output"
	"basegraph.app/pulse/internal/report"
	"basegraph.app/pulse/internal/transport"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code. Exactly one
// envelope is written to stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		_ = output.Failure(stdout, err)
		return 1
	}

	logger.Setup(cfg)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		slog.WarnContext(ctx, "telemetry disabled", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(ctx, "telemetry shutdown failed", "error", err)
		}
	}()

	if err := id.Init(cfg.NodeID); err != nil {
		_ = output.Failure(stdout, fmt.Errorf("initializing id generator: %w", err))
		return 1
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RunID:     logger.Ptr(id.New()),
		Component: "pulse.cli",
	})

	a := &app{cfg: cfg, stdout: stdout, engine: report.NewEngine()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stderr)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		slog.DebugContext(ctx, "command failed", "error", err)
		_ = output.Failure(stdout, boundaryError(err))
		return 1
	}
	return 0
}

// boundaryError reports transport and configuration failures with their own
// message, without the wrapping added on the way up.
func boundaryError(err error) error {
	var te *transport.Error
	if errors.As(err, &te) {
		return te
	}
	var ce *config.ConfigurationError
	if errors.As(err, &ce) {
		return ce
	}
	return err
}

type app struct {
	cfg    config.Config
	stdout io.Writer
	engine *report.Engine
}

func (a *app) print(data any) error {
	return output.Success(a.stdout, data)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "pulse",
		Short:         "Query Jira, Slack and GitLab and print normalized JSON",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          groupRunE(rootUsage),
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{
		Use:                "help",
		Hidden:             true,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(*cobra.Command, []string) error {
			return fmt.Errorf("usage: %s", rootUsage)
		},
	})

	root.AddCommand(
		newJiraCmd(a),
		newSlackCmd(a),
		newGitLabCmd(a),
		newSchemaCmd(a),
	)
	disableFlagParsing(root)
	return root
}

const rootUsage = "pulse <jira|slack|gitlab|schema> <command> [args...]"

// disableFlagParsing hands every argument to RunE untouched, so values such
// as "- fixed the bug", "-in:#general" or "-h" stay positional.
func disableFlagParsing(cmd *cobra.Command) {
	cmd.DisableFlagParsing = true
	for _, child := range cmd.Commands() {
		disableFlagParsing(child)
	}
}

// groupRunE rejects invocations of a command group without a known
// subcommand.
func groupRunE(usage string) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		return fmt.Errorf("usage: %s", usage)
	}
}

// withService tags the command context with the service and command name.
func withService(service string) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, _ []string) {
		cmd.SetContext(logger.WithLogFields(cmd.Context(), logger.LogFields{
			Service: logger.Ptr(service),
			Command: logger.Ptr(cmd.Name()),
		}))
	}
}

// usageArgs accepts between lo and hi positional arguments and otherwise
// fails with the command's usage line.
func usageArgs(lo, hi int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			return fmt.Errorf("usage: pulse %s", usage)
		}
		return nil
	}
}

// optionalLimit parses args[idx] as a positive count, or returns def when the
// argument is absent.
func optionalLimit(args []string, idx, def int) (int, error) {
	if len(args) <= idx {
		return def, nil
	}
	n, err := strconv.Atoi(args[idx])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid limit %q: must be a positive integer", args[idx])
	}
	return n, nil
}
