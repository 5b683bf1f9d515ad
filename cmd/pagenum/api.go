package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/internal/server/endpoints"
)

var serverURL string

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	registry := api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{}) {
		registry.Register(ep)
	}

	apiCmd := registry.BuildCommands(getServerURL)
	// --server is persistent so all subcommands inherit it
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)
	apiCmd.AddCommand(waitCmd())
	rootCmd.AddCommand(apiCmd)
}

func waitCmd() *cobra.Command {
	var (
		attempts uint
		delay    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait until the server answers health checks",
		Long: `Wait until the server answers health checks.

Useful in scripts that start "pagenum serve" in the background.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			if err := client.WaitReady(cmd.Context(), attempts, delay); err != nil {
				return fmt.Errorf("server at %s not ready: %w", client.BaseURL(), err)
			}
			fmt.Println("Server is ready")
			return nil
		},
	}
	cmd.Flags().UintVar(&attempts, "attempts", 30, "number of health checks before giving up")
	cmd.Flags().DurationVar(&delay, "delay", 500*time.Millisecond, "delay between health checks")
	return cmd
}
