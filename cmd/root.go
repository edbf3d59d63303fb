package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/config"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Dataset flags (override config if set)
	flagDataPath string
	flagEncoding string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "infectdash",
	Short: "Infectious disease claims dashboard",
	Long: `infectdash loads the HIRA infectious disease health insurance claims statistics
and explores them by year, disease and metric, either in the browser (serve) or
straight from the terminal.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.infectdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDataPath, "data", "", "dataset CSV path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagEncoding, "encoding", "", "dataset encoding: cp949 or utf-8 (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("data") && flagDataPath != "" {
		cfg.DataPath = flagDataPath
	}
	if f.Changed("encoding") && flagEncoding != "" {
		cfg.Encoding = flagEncoding
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// loadDataset reads the configured dataset file.
func loadDataset() (*dataset.Dataset, error) {
	enc, err := dataset.ParseEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(cfg.DataPath, enc)
	if err != nil {
		var le *dataset.LoadError
		if errors.As(err, &le) && errors.Is(le.Err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w (set --data or `infectdash config set data_path <file>`)", err)
		}
		return nil, err
	}
	slog.Debug("dataset loaded", "path", ds.Path, "encoding", ds.Encoding, "records", ds.Len(), "years", ds.Years())
	return ds, nil
}
