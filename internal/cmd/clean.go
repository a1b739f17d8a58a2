package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/gdkit/internal/cleaner"
	"github.com/atikulmunna/gdkit/internal/filter"
	"github.com/atikulmunna/gdkit/internal/hub"
	"github.com/atikulmunna/gdkit/internal/logger"
	"github.com/atikulmunna/gdkit/internal/model"
	"github.com/atikulmunna/gdkit/internal/output"
	"github.com/atikulmunna/gdkit/internal/report"
	"github.com/atikulmunna/gdkit/internal/server"
	"github.com/atikulmunna/gdkit/internal/watcher"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Strip debug print() lines from gameplay scripts",
	Long: `Remove debug print() calls from the configured GDScript files while
keeping errors, warnings, death and game-over logs, and push_error /
push_warning calls. Files with nothing to remove are not rewritten.

Examples:
  gdkit clean
  gdkit clean --base examples/space_shooter/scripts -f player_controller.gd
  gdkit clean -f "**/*.gd" --dry-run
  gdkit clean --watch --port 8080`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	flags := cleanCmd.Flags()
	flags.StringP("base", "b", cleaner.DefaultBaseDir, "directory the target files are relative to")
	flags.StringSliceP("file", "f", cleaner.DefaultFiles, "target files or doublestar globs (repeatable)")
	flags.Bool("dry-run", false, "report what would be removed without writing")
	flags.Bool("watch", false, "keep watching the targets and re-clean on change")
	flags.String("port", "", "with --watch, serve the live dashboard on this port")

	_ = viper.BindPFlag("clean.base_dir", flags.Lookup("base"))
	_ = viper.BindPFlag("clean.files", flags.Lookup("file"))

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	log := logger.L()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	watch, _ := cmd.Flags().GetBool("watch")
	port, _ := cmd.Flags().GetString("port")

	cfg := cleaner.Config{
		BaseDir: resolvePath(cmd, "base", "clean.base_dir"),
		Files:   viper.GetStringSlice("clean.files"),
		DryRun:  dryRun,
	}
	renderer := output.New(viper.GetString("output"), cmd.OutOrStdout())

	if !watch {
		_, err := cleaner.New(cfg, filter.Default(), renderer, log).Run(ctx)
		return err
	}

	// --- Watch mode: events flow cleaner -> hub -> report / websocket ---
	events := make(chan model.CleanEvent, 64)
	h := hub.New(events, log)
	rep := report.New()
	go rep.Start(ctx, h.Subscribe())
	go h.Start(ctx)

	if port != "" {
		srv := server.New(server.Options{Hub: h, Report: rep, Log: log}, port)
		go func() {
			if err := srv.Start(); err != nil {
				log.Error("serve.failed", "port", port, "err", err)
			}
		}()
		fmt.Fprintf(cmd.ErrOrStderr(), "dashboard on http://localhost:%s\n", port)
	}

	cl := cleaner.New(cfg, filter.Default(), output.Multi{renderer, output.NewPublisher(events)}, log)
	if _, err := cl.Run(ctx); err != nil {
		return err
	}

	return watchTargets(ctx, cmd, cl, log)
}

// watchTargets re-cleans the cleaner's targets whenever one changes, until
// ctx is cancelled.
func watchTargets(ctx context.Context, cmd *cobra.Command, cl *cleaner.Cleaner, log *slog.Logger) error {
	targets, err := cl.Targets()
	if err != nil {
		return err
	}
	w, err := watcher.New(targets, log)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	go w.Start(ctx)

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %d file(s), Ctrl+C to stop\n", w.Len())
	for ev := range w.Events {
		if _, err := cl.CleanFile(ev.Path); err != nil {
			log.Error("clean.watch", "path", ev.Path, "err", err)
		}
	}
	return nil
}
