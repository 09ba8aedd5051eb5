package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/expirywatch/labelscan/internal/handlers"
	"github.com/expirywatch/labelscan/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for label scanning interface",
		Long: `Starts the Labelscan web interface on the specified port.

The web interface accepts product label photos by drag-and-drop or relayed
from a paired phone, extracts product names and expiry dates using a
vision-capable LLM, and shows the results in a searchable table.`,
		Example: `  # Start server on default port 8888
  labelscan serve

  # Start server on custom port
  labelscan serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, err := sessionTTLFromEnv()
			if err != nil {
				return err
			}

			store := storage.New(ttl)
			if ttl > 0 {
				store.StartSweeper(cmd.Context())
			}

			handler := handlers.New(store)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/session/", handler.HandleSession)
			mux.HandleFunc("/analyze", handler.HandleAnalyze)
			mux.HandleFunc("/export", handler.HandleExport)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Labelscan interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}

// sessionTTLFromEnv reads LABELSCAN_SESSION_TTL. Zero means sessions live for
// the process lifetime.
func sessionTTLFromEnv() (time.Duration, error) {
	raw := os.Getenv("LABELSCAN_SESSION_TTL")
	if raw == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.New("LABELSCAN_SESSION_TTL: invalid duration: " + raw)
	}
	return ttl, nil
}
