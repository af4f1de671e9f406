package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pageforge/pageforge/internal/adapters/outbound/config"
	"github.com/pageforge/pageforge/internal/adapters/outbound/loader"
	"github.com/pageforge/pageforge/internal/application"
	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/autofix"
	"github.com/pageforge/pageforge/internal/domain/completeness"
	"github.com/pageforge/pageforge/internal/domain/csp"
	"github.com/pageforge/pageforge/internal/domain/sanitize"
	"github.com/pageforge/pageforge/internal/domain/validate"
)

// registerTools registers all pageforge MCP tools on the given server.
func registerTools(s *server.MCPServer, sitePath string) {
	// 1. pageforge_audit
	s.AddTool(
		mcplib.NewTool("pageforge_audit",
			mcplib.WithDescription("Validate every HTML page of the site and return per-page quality scores and issues as JSON"),
		),
		handleAudit(sitePath),
	)

	// 2. pageforge_sanitize
	s.AddTool(
		mcplib.NewTool("pageforge_sanitize",
			mcplib.WithDescription("Strip unsafe constructs (non-allowlisted scripts, iframes, event handlers, javascript: URLs) from an HTML fragment"),
			mcplib.WithString("code",
				mcplib.Required(),
				mcplib.Description("HTML source to sanitize"),
			),
			mcplib.WithBoolean("check", mcplib.Description("Only report whether the code is safe, without rewriting it")),
		),
		handleSanitize(sitePath),
	)

	// 3. pageforge_fix
	s.AddTool(
		mcplib.NewTool("pageforge_fix",
			mcplib.WithDescription("Apply deterministic auto-fixes (doctype, charset, viewport, lang, lazy loading, rel=noopener) to a page of the site and return the result"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Filename of the page to fix, relative to the site root"),
			),
		),
		handleFix(sitePath),
	)

	// 4. pageforge_check_pages
	s.AddTool(
		mcplib.NewTool("pageforge_check_pages",
			mcplib.WithDescription("Check the site for broken or incomplete pages: foreign framework tags, blank pages, generation artifacts, missing expected pages"),
			mcplib.WithString("expect", mcplib.Description("Comma-separated list of expected page filenames")),
		),
		handleCheckPages(sitePath),
	)

	// 5. pageforge_csp
	s.AddTool(
		mcplib.NewTool("pageforge_csp",
			mcplib.WithDescription("Derive a Content-Security-Policy from the external resources the site actually references"),
			mcplib.WithString("format", mcplib.Description("Output format: policy, meta, or headers (default: policy)")),
		),
		handleCSP(sitePath),
	)

	// 6. pageforge_regen_prompt
	s.AddTool(
		mcplib.NewTool("pageforge_regen_prompt",
			mcplib.WithDescription("Build regeneration prompts for pages that are broken beyond local repair, preserving the site's navigation, footer and stylesheet"),
			mcplib.WithString("page", mcplib.Description("Only build the prompt for this page")),
			mcplib.WithString("spec", mcplib.Description("Original site specification to embed in the prompts")),
			mcplib.WithString("expect", mcplib.Description("Comma-separated list of expected page filenames")),
		),
		handleRegenPrompt(sitePath),
	)

	// 7. pageforge_process
	s.AddTool(
		mcplib.NewTool("pageforge_process",
			mcplib.WithDescription("Run the full safety pipeline (sanitize, validate, fix, wrap, completeness, CSP) over the site and return the result as JSON"),
			mcplib.WithString("expect", mcplib.Description("Comma-separated list of expected page filenames")),
		),
		handleProcess(sitePath),
	)
}

// loadSite reads the effective policy and the site files for a tool call.
func loadSite(sitePath string) (domain.Policy, domain.FileSet, error) {
	policy, err := config.New().Load(sitePath)
	if err != nil {
		return domain.Policy{}, nil, err
	}
	files, err := loader.New().Load(sitePath)
	if err != nil {
		return domain.Policy{}, nil, err
	}
	return policy, files, nil
}

func handleAudit(sitePath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		policy, files, err := loadSite(sitePath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading site failed: %v", err)), nil
		}

		validator := validate.New(policy)

		type pageAudit struct {
			Filename string                  `json:"filename"`
			Result   domain.ValidationResult `json:"result"`
		}

		var audits []pageAudit
		for _, name := range htmlFilenames(files) {
			audits = append(audits, pageAudit{
				Filename: name,
				Result:   validator.Validate(files[name]),
			})
		}
		if len(audits) == 0 {
			return errorResult(fmt.Sprintf("no HTML files found in %s", sitePath)), nil
		}
		return jsonResult(audits)
	}
}

func handleSanitize(sitePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		code, err := request.RequireString("code")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		policy, loadErr := config.New().Load(sitePath)
		if loadErr != nil {
			return errorResult(fmt.Sprintf("loading policy failed: %v", loadErr)), nil
		}

		san := sanitize.New(policy)
		check, _ := request.GetArguments()["check"].(bool)
		if check {
			return jsonResult(map[string]bool{"safe": san.IsCodeSafe(code)})
		}
		return textResult(san.Sanitize(code)), nil
	}
}

func handleFix(sitePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		policy, files, loadErr := loadSite(sitePath)
		if loadErr != nil {
			return errorResult(fmt.Sprintf("loading site failed: %v", loadErr)), nil
		}
		content, ok := files[file]
		if !ok {
			return errorResult(fmt.Sprintf("no file %q in %s", file, sitePath)), nil
		}

		validator := validate.New(policy)
		fixer := autofix.New(policy)

		before := validator.Validate(content)
		fixed := fixer.Fix(content, before)
		after := validator.Validate(fixed.Fixed)

		type fixReport struct {
			Filename     string   `json:"filename"`
			ScoreBefore  int      `json:"score_before"`
			ScoreAfter   int      `json:"score_after"`
			AppliedFixes []string `json:"applied_fixes,omitempty"`
			Remaining    int      `json:"remaining_issues"`
			Content      string   `json:"content"`
		}
		return jsonResult(fixReport{
			Filename:     file,
			ScoreBefore:  before.Score,
			ScoreAfter:   after.Score,
			AppliedFixes: fixed.AppliedFixes,
			Remaining:    len(after.Issues),
			Content:      fixed.Fixed,
		})
	}
}

func handleCheckPages(sitePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		policy, files, err := loadSite(sitePath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading site failed: %v", err)), nil
		}

		expected := splitAndTrim(argString(request, "expect"))
		result := completeness.New(policy).Check(files, expected)
		return jsonResult(result)
	}
}

func handleCSP(sitePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		policy, files, err := loadSite(sitePath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading site failed: %v", err)), nil
		}

		set := csp.NewExtractor(policy).ExtractFromFiles(files)
		switch argString(request, "format") {
		case "meta":
			return textResult(csp.MetaTag(set)), nil
		case "headers":
			return jsonResult(csp.Headers(set))
		default:
			return textResult(csp.BuildPolicy(set)), nil
		}
	}
}

func handleRegenPrompt(sitePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		policy, files, err := loadSite(sitePath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading site failed: %v", err)), nil
		}

		expected := splitAndTrim(argString(request, "expect"))
		spec := argString(request, "spec")

		requests := application.NewRegenService(policy).BuildRequests(files, expected, spec)

		if page := argString(request, "page"); page != "" {
			for _, r := range requests {
				if r.Filename == page {
					return jsonResult(r)
				}
			}
			return errorResult(fmt.Sprintf("page %q does not need regeneration", page)), nil
		}
		return jsonResult(requests)
	}
}

func handleProcess(sitePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		policy, files, err := loadSite(sitePath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading site failed: %v", err)), nil
		}
		if len(files) == 0 {
			return errorResult(fmt.Sprintf("no site files found in %s", sitePath)), nil
		}

		expected := splitAndTrim(argString(request, "expect"))
		site := application.NewPipelineService(policy).ProcessSite(files, expected)
		return jsonResult(site)
	}
}

// argString reads an optional string argument from a tool request.
func argString(request mcplib.CallToolRequest, name string) string {
	v, _ := request.GetArguments()[name].(string)
	return v
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// htmlFilenames returns the HTML filenames of a file set in sorted order.
func htmlFilenames(files domain.FileSet) []string {
	var names []string
	for name := range files {
		lower := strings.ToLower(name)
		if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
