package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/noah-isme/university-registry/internal/console"
	"github.com/noah-isme/university-registry/internal/service"
	"github.com/noah-isme/university-registry/pkg/config"
	"github.com/noah-isme/university-registry/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	logr = logr.With(zap.String("session_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, newRootCmd(cfg, logr), logr)
	stop()
	os.Exit(code)
}

// run executes the root command, flushes the logger and returns the process exit code.
func run(ctx context.Context, root *cobra.Command, logr *zap.Logger) int {
	defer logr.Sync() //nolint:errcheck

	if err := root.ExecuteContext(ctx); err != nil {
		logr.Sugar().Errorw("command failed", "error", err)
		fmt.Fprintln(root.ErrOrStderr(), "Fatal error:", err)
		return 1
	}
	return 0
}

func newRootCmd(cfg *config.Config, logr *zap.Logger) *cobra.Command {
	var (
		seedPath    string
		noSeed      bool
		dumpMetrics bool
	)

	build := func() (*app, error) {
		path := cfg.Seed.File
		if seedPath != "" {
			path = seedPath
		}
		return newApp(cfg, logr, seedOptions{enabled: cfg.Seed.Enabled && !noSeed, path: path})
	}

	finish := func(cmd *cobra.Command, a *app) error {
		if dumpMetrics || cfg.Metrics.Dump {
			return a.dumpMetrics(cmd.ErrOrStderr())
		}
		return nil
	}

	root := &cobra.Command{
		Use:           "registry",
		Short:         "In-memory university records system",
		Long:          "Manage students, professors, courses, grades and enrollments from an interactive menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build()
			if err != nil {
				return err
			}
			pretty := cfg.Output.Color && term.IsTerminal(int(os.Stdout.Fd()))
			menu := console.New(a.registry, console.Options{Pretty: pretty, Logger: logr, Metrics: a.metrics})
			if err := menu.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil && cmd.Context().Err() == nil {
				return err
			}
			return finish(cmd, a)
		},
	}

	root.PersistentFlags().StringVar(&seedPath, "seed", "", "YAML roster to load instead of the built-in demo data")
	root.PersistentFlags().BoolVar(&noSeed, "no-seed", false, "start with an empty registry")
	root.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "print collected metrics to stderr on exit")

	report := &cobra.Command{
		Use:       "report <kind>",
		Short:     "Print a registry report",
		Long:      "Print a registry report. Kinds: " + strings.Join(reportKinds(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: reportKinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build()
			if err != nil {
				return err
			}
			if err := a.report(cmd.OutOrStdout(), args[0]); err != nil {
				return err
			}
			return finish(cmd, a)
		},
	}

	var format string
	export := &cobra.Command{
		Use:       "export <kind>",
		Short:     "Write a registry dataset to the export directory",
		Long:      "Write a registry dataset to the export directory. Kinds: " + strings.Join(service.ExportKinds, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: service.ExportKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build()
			if err != nil {
				return err
			}
			result, err := a.export(args[0], format)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s rows to %s\n", result.Rows, result.Kind, result.Path)
			return finish(cmd, a)
		},
	}
	export.Flags().StringVar(&format, "format", "csv", "output format: csv or pdf")

	root.AddCommand(report, export)
	return root
}
