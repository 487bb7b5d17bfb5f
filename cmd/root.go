package cmd

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ThomasCrouzet/compose-ports/internal/collector"
	"github.com/ThomasCrouzet/compose-ports/internal/config"
	"github.com/ThomasCrouzet/compose-ports/internal/model"
	"github.com/ThomasCrouzet/compose-ports/internal/render"
	"github.com/ThomasCrouzet/compose-ports/internal/ui"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compose-ports [dir]",
		Short: "Report the ports exposed by Docker Compose services",
		Long: `compose-ports walks a directory tree (the working directory by default),
reads every docker-compose*.yml file and prints the services that publish
ports as CSV on standard output.

Settings come from the environment:
  COMPOSE_PORTS_FORMAT         sparse (default) or flat
  COMPOSE_PORTS_PATTERN        file name regexp (default ^docker-compose.*\.yml$)
  COMPOSE_PORTS_SKIP_DIRS      directory names to skip, comma separated
  COMPOSE_PORTS_HALT_ON_ERROR  stop at the first unreadable file
  COMPOSE_PORTS_LOG_LEVEL      debug, info, warn (default) or error`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runScan,
	}
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func runScan(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	v := viper.New()
	config.Init(v)
	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprint(stderr, ui.FormatError("Failed to load config", err.Error(), ""))
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Fprint(stderr, ui.FormatError("Invalid configuration", "", ""))
		for _, e := range errs {
			ui.ValidationErr(stderr, e.Field, e.Message, e.Suggestion)
		}
		return errs[0]
	}

	root, err := scanRoot(args)
	if err != nil {
		fmt.Fprint(stderr, ui.FormatError("Cannot scan directory", err.Error(), "pass an existing directory"))
		return err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	renderer, err := render.New(cfg.Format)
	if err != nil {
		return err
	}

	p := &collector.Pipeline{
		FS:          osfs.Default,
		Root:        root,
		Pattern:     cfg.PatternRegexp(),
		SkipDirs:    cfg.SkipDirs,
		HaltOnError: cfg.HaltOnError,
		Logger:      logger,
	}

	var stats collector.Stats
	if err := writeReport(cmd.OutOrStdout(), renderer, collector.Count(p.Run(cmd.Context()), &stats)); err != nil {
		fmt.Fprint(stderr, ui.FormatError("Failed to write output", err.Error(), ""))
		return err
	}

	if logger.Enabled(cmd.Context(), slog.LevelInfo) {
		ui.Summary(stderr, stats.Files, stats.Failed, stats.Services)
	}
	return nil
}

// scanRoot resolves the directory to walk: the argument if given, the
// working directory otherwise.
func scanRoot(args []string) (string, error) {
	if len(args) == 0 {
		return os.Getwd()
	}
	info, err := os.Stat(args[0])
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", args[0])
	}
	return args[0], nil
}

func writeReport(w io.Writer, r render.Renderer, files iter.Seq[model.ExposedFile]) error {
	for chunk := range r.Render(files) {
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
	}
	return nil
}
