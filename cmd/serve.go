package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/server"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/utils"
)

var (
	serveAddr string
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		enc, _ := dataset.ParseEncoding(cfg.Encoding)
		addr := cfg.Addr
		if cmd.Flags().Changed("addr") && serveAddr != "" {
			addr = serveAddr
		}

		srv := server.New(ds, server.Options{
			Selection: cfg.SelectionOptions(),
			Encoding:  enc,
			DevMode:   cfg.DevMode,
			Logger:    slog.Default(),
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		url := "http://" + browsable(addr) + "/"
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Dashboard at %s (%d records, years %v)\n", url, ds.Len(), ds.Years())
		if serveOpen {
			if err := utils.OpenBrowser(url); err != nil {
				slog.Warn("open browser", "err", err)
			}
		}
		return srv.Run(ctx, addr)
	},
}

// browsable turns a listen address into one a browser can reach.
func browsable(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	if strings.HasPrefix(addr, "0.0.0.0:") {
		return "localhost" + strings.TrimPrefix(addr, "0.0.0.0")
	}
	return addr
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the dashboard in the default browser")
}
