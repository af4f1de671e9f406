package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageforge/pageforge/internal/adapters/outbound/config"
	"github.com/pageforge/pageforge/internal/adapters/outbound/loader"
	"github.com/pageforge/pageforge/internal/adapters/outbound/tui"
	"github.com/pageforge/pageforge/internal/domain/completeness"
)

func newPagesCmd() *cobra.Command {
	var (
		jsonOutput bool
		ciMode     bool
		expect     string
		patch      bool
	)

	cmd := &cobra.Command{
		Use:   "pages [path]",
		Short: "Check a multi-page site for generation defects",
		Long:  "Detect blank pages, leaked component tags, template artifacts, broken navigation and missing pages across a generated site.",
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

			ld := loader.New()
			files, err := ld.Load(absPath)
			if err != nil {
				return err
			}

			var expected []string
			if expect != "" {
				for _, name := range strings.Split(expect, ",") {
					expected = append(expected, strings.TrimSpace(name))
				}
			}

			checker := completeness.New(policy)
			result := checker.Check(files, expected)

			if patch {
				patched := files
				changed := false
				for _, page := range result.Pages {
					if page.NeedsRegeneration {
						patched[page.Filename] = completeness.PatchPage(files[page.Filename])
						changed = true
					}
				}
				if changed {
					if err := ld.Write(absPath, patched); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "patched broken pages in place; they still need regeneration")
				}
			}

			if jsonOutput {
				return renderJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCompleteness(result))

			if ciMode && !result.Passed {
				return fmt.Errorf("completeness check failed: %d critical errors", len(result.CriticalErrors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 when the check fails")
	cmd.Flags().StringVar(&expect, "expect", "", "Comma-separated list of expected page filenames")
	cmd.Flags().BoolVar(&patch, "patch", false, "Apply best-effort local patches to broken pages")

	return cmd
}
