package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	applog "github.com/nao1215/webaudit/internal/log"
	"github.com/nao1215/webaudit/internal/web"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the browser front end",
		Long: `Serve starts a web server with a form for auditing one URL at a time.
The page shows four score gauges and an expandable list of issues.

Examples:
  # Listen on the default address (127.0.0.1:8080)
  webaudit serve

  # Listen on all interfaces
  webaudit serve -l :8080`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addServiceFlags(cmd)
	cmd.Flags().StringP("listen", "l", "",
		"Listen address (default: 127.0.0.1:8080)")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		if cfg.ListenAddress, err = cmd.Flags().GetString("listen"); err != nil {
			return err
		}
	}
	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := applog.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := web.New(c, web.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving webaudit on http://%s\n", cfg.ListenAddress)
	return srv.ListenAndServe(ctx, cfg.ListenAddress)
}
