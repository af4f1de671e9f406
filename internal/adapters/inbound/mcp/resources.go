package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pageforge/pageforge/internal/adapters/outbound/config"
	"github.com/pageforge/pageforge/internal/domain/completeness"
	"github.com/pageforge/pageforge/internal/domain/csp"
)

// registerResources registers all pageforge MCP resources on the given server.
func registerResources(s *server.MCPServer, sitePath string) {
	// 1. pageforge://policy - the effective site policy
	s.AddResource(
		mcplib.NewResource(
			"pageforge://policy",
			"Site Policy",
			mcplib.WithResourceDescription("Effective policy for the site: script allowlist, thresholds and page expectations"),
			mcplib.WithMIMEType("application/json"),
		),
		handlePolicyResource(sitePath),
	)

	// 2. pageforge://csp - derived Content-Security-Policy headers
	s.AddResource(
		mcplib.NewResource(
			"pageforge://csp",
			"CSP Headers",
			mcplib.WithResourceDescription("Security headers derived from the resources the site references"),
			mcplib.WithMIMEType("application/json"),
		),
		handleCSPResource(sitePath),
	)

	// 3. pageforge://pages/{name} - per-page completeness check (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"pageforge://pages/{name}",
			"Page Check",
			mcplib.WithTemplateDescription("Completeness report for a specific page"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handlePageResource(sitePath),
	)
}

func handlePolicyResource(sitePath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		policy, err := config.New().Load(sitePath)
		if err != nil {
			return nil, fmt.Errorf("loading policy failed: %w", err)
		}

		data, err := json.MarshalIndent(policy, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling policy: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "pageforge://policy",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleCSPResource(sitePath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		policy, files, err := loadSite(sitePath)
		if err != nil {
			return nil, fmt.Errorf("loading site failed: %w", err)
		}

		set := csp.NewExtractor(policy).ExtractFromFiles(files)
		data, err := json.MarshalIndent(csp.Headers(set), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling headers: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "pageforge://csp",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handlePageResource(sitePath string) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		// Page name is populated by template matching.
		name, ok := request.Params.Arguments["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("page name is required")
		}

		policy, files, err := loadSite(sitePath)
		if err != nil {
			return nil, fmt.Errorf("loading site failed: %w", err)
		}
		content, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("no page %q in %s", name, sitePath)
		}

		report := completeness.New(policy).CheckPage(name, content)
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
