package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/azdevops-mcp/internal/config"
	"github.com/dshills/azdevops-mcp/internal/credentials"
	"github.com/dshills/azdevops-mcp/internal/logging"
	"github.com/dshills/azdevops-mcp/internal/mcp"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	flagTransport string
	flagHost      string
	flagPort      int
)

func main() {
	root := &cobra.Command{
		Use:   "azdevops-mcp",
		Short: "MCP server exposing Azure DevOps tools",
		Long: `azdevops-mcp is a Model Context Protocol server that exposes Azure DevOps
projects, work items, repositories, pipelines, wikis, and code search as
tools for AI coding assistants.

Credentials are read from AZURE_DEVOPS_ORG and AZURE_DEVOPS_PAT, falling
back to the secrets service at SECRETS_SERVICE_URL when set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	root.Flags().StringVar(&flagTransport, "transport", "", "transport to serve on: stdio or http (default stdio)")
	root.Flags().StringVar(&flagHost, "host", "", "host to bind for the http transport")
	root.Flags().IntVar(&flagPort, "port", 0, "port to bind for the http transport")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("azdevops-mcp %s (built %s)\n", version, buildTime)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Flags override environment and .env values.
	if flagTransport != "" {
		cfg.Transport = flagTransport
	}
	if flagHost != "" {
		cfg.Host = flagHost
	}
	if flagPort != 0 {
		cfg.Port = flagPort
	}

	logging.SetLevel(cfg.LogLevel)

	server := mcp.NewServer(credentials.NewFromEnv())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Transport {
	case config.TransportStdio:
		return server.ServeStdio(ctx)
	case config.TransportHTTP:
		return server.ServeHTTP(ctx, cfg.Host, cfg.Port)
	default:
		return fmt.Errorf("invalid transport %q (expected stdio or http)", cfg.Transport)
	}
}
