package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageforge/pageforge/internal/adapters/outbound/config"
	"github.com/pageforge/pageforge/internal/adapters/outbound/gitinfo"
	"github.com/pageforge/pageforge/internal/adapters/outbound/history"
	"github.com/pageforge/pageforge/internal/adapters/outbound/loader"
	"github.com/pageforge/pageforge/internal/adapters/outbound/tui"
	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/validate"
)

func newAuditCmd() *cobra.Command {
	var (
		jsonOutput  bool
		ciMode      bool
		minScore    int
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "audit [path]",
		Short: "Score the quality of generated pages",
		Long:  "Validate every HTML page in a site directory and produce a Lighthouse-style quality score.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			policy, err := config.New().Load(absPath)
			if err != nil {
				return err
			}

			files, err := loader.New().Load(absPath)
			if err != nil {
				return err
			}

			hist := history.New()
			if showHistory {
				entries, err := hist.Load(absPath)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			commitHash := ""
			gi := gitinfo.New()
			if hash, err := gi.CommitHash(absPath); err == nil {
				commitHash = hash
			}

			validator := validate.New(policy)
			results := map[string]domain.ValidationResult{}

			var names []string
			for name := range files {
				if filepath.Ext(name) == ".html" || filepath.Ext(name) == ".htm" {
					names = append(names, name)
				}
			}
			sort.Strings(names)
			if len(names) == 0 {
				return fmt.Errorf("no HTML files found in %s", absPath)
			}

			lowest := 100
			for _, name := range names {
				result := validator.Validate(files[name])
				results[name] = result
				if result.Score < lowest {
					lowest = result.Score
				}

				entry := domain.AuditEntry{
					Timestamp:  time.Now().Format(time.RFC3339),
					CommitHash: commitHash,
					Filename:   name,
					Score:      result.Score,
					Grade:      domain.GradeFor(result.Score),
				}
				_ = hist.Save(absPath, entry) // best-effort
			}

			if jsonOutput {
				return renderJSON(cmd, results)
			}
			for _, name := range names {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderAudit(name, results[name]))
			}

			if ciMode && lowest < minScore {
				return fmt.Errorf("lowest page score %d is below minimum %d", lowest, minScore)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if any page is below --min")
	cmd.Flags().IntVar(&minScore, "min", 0, "Minimum score for CI mode")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show audit history")

	return cmd
}

func renderJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
