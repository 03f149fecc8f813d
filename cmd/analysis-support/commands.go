package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/HendryAvila/analysis-support/internal/config"
	"github.com/HendryAvila/analysis-support/internal/locale"
	"github.com/HendryAvila/analysis-support/internal/mece"
	"github.com/HendryAvila/analysis-support/internal/scamper"
	appserver "github.com/HendryAvila/analysis-support/internal/server"
)

const shutdownTimeout = 5 * time.Second

var rootCmd = &cobra.Command{
	Use:           "analysis-support",
	Short:         "MCP server for Why-Analysis, MECE and SCAMPER sessions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server.

Settings come from ANALYSIS_* environment variables (optionally read from
an env file); flags given on the command line take precedence.

Examples:
  analysis-support serve
  analysis-support serve --transport http --addr 127.0.0.1:8765
  analysis-support serve --store sqlite --dsn file:analysis.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", appserver.Name, appserver.Version)
	},
}

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List the MECE framework templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printFrameworks(cmd.OutOrStdout())
	},
}

var techniquesCmd = &cobra.Command{
	Use:   "techniques",
	Short: "List the SCAMPER techniques and their guiding questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		raw, _ := cmd.Flags().GetString("locale")
		l, err := locale.Parse(raw)
		if err != nil {
			return err
		}
		return printTechniques(cmd.OutOrStdout(), l)
	},
}

func init() {
	addServeFlags(serveCmd)
	techniquesCmd.Flags().String("locale", "", "language: ja or en")

	rootCmd.AddCommand(serveCmd, versionCmd, frameworksCmd, techniquesCmd)
}

func addServeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("env-file", "", "env file to read before applying ANALYSIS_* variables (default .env)")
	f.String("transport", "", "transport: stdio or http")
	f.String("addr", "", "listen address for the http transport")
	f.String("store", "", "session store: memory or sqlite")
	f.String("dsn", "", "SQLite data source name")
	f.String("locale", "", "response language: ja or en")
	f.String("log-level", "", "log level: debug, info, warn or error")
	f.String("mece-policy", "", "YAML file overriding the MECE overlap/gap policy")
}

// loadConfig resolves the environment configuration and overlays the flags
// the user actually set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()
	envFile, _ := f.GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	overrides := []struct {
		flag  string
		apply func(string) error
	}{
		{"transport", func(v string) error { cfg.Transport = strings.ToLower(v); return nil }},
		{"addr", func(v string) error { cfg.HTTPAddr = v; return nil }},
		{"store", func(v string) error { cfg.Store = strings.ToLower(v); return nil }},
		{"dsn", func(v string) error { cfg.SQLiteDSN = v; return nil }},
		{"locale", func(v string) error {
			l, err := locale.Parse(v)
			if err != nil {
				return err
			}
			cfg.Locale = l
			return nil
		}},
		{"log-level", func(v string) error { cfg.LogLevel = strings.ToLower(v); return nil }},
		{"mece-policy", func(v string) error { cfg.MECEPolicy = v; return nil }},
	}
	for _, o := range overrides {
		if !f.Changed(o.flag) {
			continue
		}
		v, _ := f.GetString(o.flag)
		if err := o.apply(strings.TrimSpace(v)); err != nil {
			return config.Config{}, fmt.Errorf("--%s: %w", o.flag, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	// Logs go to stderr so they never interleave with stdio MCP traffic.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	s, cleanup, err := appserver.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Transport == config.TransportHTTP {
		return serveHTTP(ctx, s, cfg.HTTPAddr, logger)
	}
	return serveStdio(ctx, s, logger)
}

func serveStdio(ctx context.Context, s *server.MCPServer, logger *slog.Logger) error {
	logger.Info("serving MCP over stdio")
	err := server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("stdio server stopped")
	return nil
}

func serveHTTP(ctx context.Context, s *server.MCPServer, addr string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           appserver.Handler(s),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving MCP over http", "addr", addr, "endpoint", "/mcp")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func printFrameworks(w io.Writer) error {
	for _, fw := range mece.Priority {
		tpl, ok := mece.TemplateFor(fw)
		if !ok {
			return fmt.Errorf("no template for framework %s", fw)
		}
		fmt.Fprintf(w, "%s\n", fw)
		fmt.Fprintf(w, "  keywords: %s\n", strings.Join(tpl.Keywords, ", "))
		for _, c := range tpl.Categories {
			fmt.Fprintf(w, "  - %s\n", c.Label)
		}
	}
	return nil
}

func printTechniques(w io.Writer, l locale.Locale) error {
	for _, t := range scamper.Techniques {
		g := scamper.GuideFor(t, l)
		fmt.Fprintf(w, "%s (%s)\n", t, g.Name)
		fmt.Fprintf(w, "  %s\n", g.Description)
		for _, q := range g.Questions {
			fmt.Fprintf(w, "  ? %s\n", q)
		}
	}
	fmt.Fprintf(w, "\naccepted labels: %s\n", strings.Join(scamper.Labels(), ", "))
	return nil
}
