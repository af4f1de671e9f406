package cli

import (
	mcpadapter "github.com/pageforge/pageforge/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the pageforge MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var sitePath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start pageforge MCP server (stdio)",
		Long:  "Start the pageforge MCP server using stdio transport. This lets AI coding assistants sanitize, audit and repair generated sites over MCP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sitePath == "" {
				sitePath = "."
			}
			s := mcpadapter.NewPageforgeMCPServer(sitePath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&sitePath, "path", "", "Site path (defaults to current working directory)")

	return cmd
}
