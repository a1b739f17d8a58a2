package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/gdkit/internal/cleaner"
	"github.com/atikulmunna/gdkit/internal/logger"
	"github.com/atikulmunna/gdkit/internal/model"
	"github.com/atikulmunna/gdkit/internal/placeholder"
)

var (
	cfgFile       string
	loggerCleanup func() error
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "gdkit",
	Short: "gdkit: asset and script chores for the space shooter",
	Long: `gdkit bundles small batch jobs for the Godot space shooter project:
stripping debug print() calls from gameplay scripts and generating
solid-colour placeholder portraits for the pilot roster.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cleanup, err := logger.Setup(logger.Config{
			Path:  viper.GetString("log_file"),
			Debug: viper.GetBool("debug"),
		})
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		loggerCleanup = cleanup
		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if loggerCleanup != nil {
			return loggerCleanup()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./.gdkit.yaml or $HOME/.gdkit.yaml)")
	flags.StringP("output", "o", "text", "output format: text, json")
	flags.Bool("debug", false, "enable debug diagnostics")
	flags.String("log-file", "", "write diagnostics to this file instead of stderr")

	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("log_file", flags.Lookup("log-file"))

	viper.SetDefault("clean.base_dir", cleaner.DefaultBaseDir)
	viper.SetDefault("clean.files", cleaner.DefaultFiles)
	viper.SetDefault("placeholders.out_dir", ".")
	viper.SetDefault("placeholders.size", placeholder.DefaultSize)
	viper.SetDefault("serve.port", "8080")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".gdkit")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("gdkit")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			cobra.CheckErr(fmt.Errorf("failed to read config: %w", err))
		}
	}
}

// resolvePath reads a path setting. Paths given on the command line are
// relative to the working directory; paths from the config file or from
// defaults are relative to the directory holding the config file, when one
// was loaded.
func resolvePath(cmd *cobra.Command, flag, key string) string {
	p := viper.GetString(key)
	if p == "" || filepath.IsAbs(p) || cmd.Flags().Changed(flag) {
		return p
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return filepath.Join(filepath.Dir(used), p)
	}
	return p
}

// loadPilots returns the configured palette, or nil for the defaults.
func loadPilots(cmd *cobra.Command) ([]model.ColorSpec, error) {
	path := resolvePath(cmd, "palette", "placeholders.palette")
	if f := cmd.Flags().Lookup("palette"); f != nil && f.Changed {
		path = f.Value.String()
	}
	if path == "" {
		return nil, nil
	}
	return placeholder.LoadPalette(path)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\ngdkit shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
