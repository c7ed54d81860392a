package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/indiekitai/budget-cli/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a budget session over HTTP",
	Long: `Start a web server holding one budget session in memory.

Routes:
  GET    /                              Dashboard
  GET    /healthz                       Health check
  GET    /api/summary                   Budget, totals and spending percentage
  GET    /api/entries                   All entries with the summary
  POST   /api/entries                   Add {"type","description","value"}
  DELETE /api/entries/{type}/{id}       Delete an entry
  GET    /badge.svg                     Budget badge

The session is lost when the server stops.

Examples:
  budget serve                   # Serve on the configured port (8080)
  budget serve --port 3000       # Custom port`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", port),
		Handler:        server.New(newLedger(), logger),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", cyan("Budget server"))
	fmt.Fprintln(out, "  "+strings.Repeat("─", 35))
	fmt.Fprintf(out, "  %s http://localhost:%d\n", green("→"), port)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Press Ctrl+C to stop")
	fmt.Fprintln(out)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}
