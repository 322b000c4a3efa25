package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"wordbrowse/internal/app"
	"wordbrowse/internal/config"
	"wordbrowse/internal/domain"
	"wordbrowse/internal/ports"
)

var (
	configPath string
	services   *app.Services
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wordbrowse-cli",
	Short: "Command-line access to the Chinese word dictionary",
	Long: `wordbrowse-cli prints random words from the chinese-xinhua word list
and manages the local copy of it.

The list is downloaded on first use and cached, so later runs work offline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger = app.NewLogger(cfg.Log, cmd.ErrOrStderr())
		services = app.NewServices(cfg, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeServices()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	// PostRun is skipped when a command fails
	_ = closeServices()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
}

func closeServices() error {
	if services == nil {
		return nil
	}
	err := services.Close()
	services = nil
	return err
}

// progressPrinter renders download progress on a single terminal line
func progressPrinter(w io.Writer) ports.ProgressFunc {
	started := false
	return func(p domain.LoadProgress) {
		if p.Loading {
			started = true
			fmt.Fprintf(w, "\rDownloading words... %3d%%", p.Percent)
			return
		}
		if started {
			fmt.Fprintln(w)
		}
	}
}

// awaitCacheWrite blocks until the background cache write has finished
func awaitCacheWrite(w io.Writer, ch <-chan error) {
	if err := <-ch; err != nil {
		logger.Warn("cache write failed", "error", err)
		fmt.Fprintln(w, "warning: words could not be saved for offline use")
	}
}
