package cli

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pageforge/pageforge/internal/adapters/outbound/config"
	"github.com/pageforge/pageforge/internal/adapters/outbound/loader"
	"github.com/pageforge/pageforge/internal/domain/csp"
)

func newCSPCmd() *cobra.Command {
	var (
		jsonOutput  bool
		metaTag     bool
		showHeaders bool
		validateIt  bool
	)

	cmd := &cobra.Command{
		Use:   "csp [path]",
		Short: "Derive a Content-Security-Policy from a generated site",
		Long:  "Scan a site's code for third-party origins and emit a CSP policy string, meta tag or hardening header block.",
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

			set := csp.NewExtractor(policy).ExtractFromFiles(files)

			switch {
			case jsonOutput:
				return renderJSON(cmd, set)
			case metaTag:
				fmt.Fprintln(cmd.OutOrStdout(), csp.MetaTag(set))
			case showHeaders:
				headers := csp.Headers(set)
				var keys []string
				for k := range headers {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, headers[k])
				}
			case validateIt:
				v := csp.ValidatePolicy(csp.BuildPolicy(set))
				if !v.Valid {
					return fmt.Errorf("policy is missing directives: %v", v.MissingDirectives)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "policy valid")
				for _, w := range v.Warnings {
					fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
				}
			default:
				fmt.Fprintln(cmd.OutOrStdout(), csp.BuildPolicy(set))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the extracted origin sets as JSON")
	cmd.Flags().BoolVar(&metaTag, "meta", false, "Emit the policy as an HTML meta tag")
	cmd.Flags().BoolVar(&showHeaders, "headers", false, "Emit the full hardening header block")
	cmd.Flags().BoolVar(&validateIt, "validate", false, "Validate the generated policy")

	return cmd
}
