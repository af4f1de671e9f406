package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pageforge/pageforge/internal/adapters/outbound/config"
	"github.com/pageforge/pageforge/internal/domain/autofix"
	"github.com/pageforge/pageforge/internal/domain/validate"
)

func newFixCmd() *cobra.Command {
	var (
		dryRun bool
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "fix <file>",
		Short: "Apply automatic repairs to a generated page",
		Long:  "Validate a page and apply every auto-fixable repair: doctype, charset, viewport, lang, lazy loading, link hardening.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}

			policy, err := config.New().Load(filepath.Dir(file))
			if err != nil {
				return err
			}

			validator := validate.New(policy)
			before := validator.Validate(string(data))
			result := autofix.New(policy).Fix(string(data), before)

			if dryRun || len(result.AppliedFixes) == 0 {
				if len(result.AppliedFixes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "nothing to fix")
					return nil
				}
				for _, fix := range result.AppliedFixes {
					fmt.Fprintf(cmd.OutOrStdout(), "would apply: %s\n", fix)
				}
				return nil
			}

			after := validator.Validate(result.Fixed)
			for _, fix := range result.AppliedFixes {
				fmt.Fprintf(cmd.OutOrStdout(), "applied: %s\n", fix)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "score: %d -> %d (%d issues remain)\n",
				before.Score, after.Score, result.RemainingCount)

			if write {
				return os.WriteFile(file, []byte(result.Fixed), 0644)
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Fixed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show fixes without applying them")
	cmd.Flags().BoolVar(&write, "write", false, "Rewrite the file in place")

	return cmd
}
