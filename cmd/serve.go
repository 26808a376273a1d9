package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/KaramelBytes/districtlens-cli/internal/pipeline"
	"github.com/KaramelBytes/districtlens-cli/internal/server"
	"github.com/KaramelBytes/districtlens-cli/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the views as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline.New(cfg, logger)
		if err != nil {
			return err
		}
		// failed sources answer 503 until a reload fixes them
		if _, err := p.Load(); err != nil {
			logger.Warn("initial load incomplete", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if serveWatch {
			w, err := watch.New(p, time.Duration(cfg.WatchDebounceMs)*time.Millisecond, logger)
			if err != nil {
				return err
			}
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.Error("watcher stopped", zap.Error(err))
				}
			}()
		}

		addr := cfg.ListenAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		return server.New(p, logger, debug).Run(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config listen_addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload when a source file changes")
}
