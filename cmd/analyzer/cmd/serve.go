package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang-statement-analyzer/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the serve command
var (
	serveAddr      string
	serveUploadDir string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the statement analysis HTTP server",
	Long: `Serve starts an HTTP server exposing statement upload and the analysis
queries.

Endpoints:
  POST /finance/upload
  GET  /finance/calculate/execution-types-sums/{fileName}
  GET  /finance/calculate/top-spending-categories/{fileName}
  GET  /finance/calculate/most-amount-per-weekday/{fileName}
  GET  /finance/calculate/highest-spending-day/{fileName}

Configuration comes from the environment (optionally via a .env file):
ANALYZER_HTTP_ADDR, ANALYZER_UPLOAD_DIR, ANALYZER_MAX_UPLOAD_BYTES,
ANALYZER_READ_TIMEOUT, ANALYZER_WRITE_TIMEOUT. Flags override the
environment.

Examples:
  analyzer serve
  analyzer serve --addr :9090 --upload-dir /var/lib/analyzer/uploads`,

	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides ANALYZER_HTTP_ADDR)")
	serveCmd.Flags().StringVar(&serveUploadDir, "upload-dir", "", "upload directory (overrides ANALYZER_UPLOAD_DIR)")

	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("upload-dir", serveCmd.Flags().Lookup("upload-dir"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}

	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveUploadDir != "" {
		cfg.UploadDir = serveUploadDir
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		return err
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Listening on %s, uploads in %s\n", cfg.Addr, cfg.UploadDir)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
