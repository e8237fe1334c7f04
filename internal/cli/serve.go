package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/essayflow/essayflow/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the essayflow analysis engine.

Endpoints:
  GET  /health         Health check
  POST /api/analyze    Analyze an essay draft
  POST /api/highlight  Anchor feedback quotes in a draft
  POST /api/report     Render a report from an analysis
  GET  /api/ws         WebSocket for interactive review sessions

Requests may carry their own API key; otherwise the server's configured
key is used.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 6142, "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flagKey, _ := cmd.Flags().GetString("api-key")

	listen := fmt.Sprintf("%s:%d", addr, port)
	srv := api.New(listen, api.Config{
		DefaultCredential: cfg.Credential(flagKey),
		Analyze:           clientOptions(cmd, cfg),
	})
	return srv.ListenAndServe()
}
