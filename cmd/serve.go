package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmans/crudql/internal/ui"
	"github.com/hmans/crudql/internal/web"
)

var (
	servePort         int
	serveHost         string
	serveNoPlayground bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST, or GET with a query parameter)
  - GraphQL Playground at /graphql (GET) for interactive queries

Examples:
  # Start server on default port 4000
  crudql serve

  # Serve only the hello query on a custom port
  crudql serve --variant hello --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if serveNoPlayground {
			cfg.Server.Playground = false
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runServer()
	},
}

func runServer() error {
	schema, err := newSchema()
	if err != nil {
		return err
	}

	router := web.NewRouter(schema, web.Options{
		Path:       web.DefaultPath,
		Playground: cfg.Server.Playground,
	}, logger)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Set up signal handling with context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)

	go func() {
		printBanner()
		logger.Info().
			Str("addr", server.Addr).
			Str("variant", cfg.Schema.Variant).
			Strs("operations", schema.Declaration().Operations()).
			Int("users", core.Users.Len()).
			Int("tables", core.Tables.Len()).
			Msg("server starting")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info().Msg("server stopped")
	}

	return nil
}

func printBanner() {
	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}
	endpoint := fmt.Sprintf("http://%s:%d%s", host, cfg.Server.Port, web.DefaultPath)

	fmt.Println(ui.Header.Render("crudql") + " " + ui.Muted.Render("("+cfg.Schema.Variant+" schema)"))
	fmt.Println(ui.RenderLabeled("Server running on", ui.URL.Render(endpoint)))
	if cfg.Server.Playground {
		fmt.Println(ui.RenderLabeled("Playground:       ", ui.URL.Render(endpoint)))
	}
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 4000, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoPlayground, "no-playground", false, "Disable the GraphQL Playground")
	rootCmd.AddCommand(serveCmd)
}
