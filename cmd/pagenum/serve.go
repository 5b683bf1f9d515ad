package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pagenum server",
	Long: `Start the pagenum HTTP server.

The server keeps uploaded documents in memory and serves a browser page
at / that previews the labels as the options change. Documents idle for
longer than server.session_ttl_minutes are dropped.

Changes to config.yaml are picked up while running, except for the
listen address and the pdftoppm binary.

Examples:
  pagenum serve                    # Start on the configured port (8080)
  pagenum serve --port 3000        # Start on custom port
  pagenum serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := slog.Default()

		h, err := getHome()
		if err != nil {
			return err
		}
		cfgMgr, err := loadConfig(h)
		if err != nil {
			return err
		}
		if path := cfgMgr.ConfigFile(); path != "" {
			logger.Info("using config file", "path", path)
			cfgMgr.WatchConfig()
		}

		cfg := cfgMgr.Get()
		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Home:          h,
			ConfigManager: cfgMgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (overrides server.port)")

	rootCmd.AddCommand(serveCmd)
}
