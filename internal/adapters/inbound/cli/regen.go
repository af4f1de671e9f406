package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageforge/pageforge/internal/adapters/outbound/config"
	"github.com/pageforge/pageforge/internal/adapters/outbound/loader"
	"github.com/pageforge/pageforge/internal/application"
)

func newRegenCmd() *cobra.Command {
	var (
		jsonOutput bool
		expect     string
		specFile   string
		page       string
	)

	cmd := &cobra.Command{
		Use:   "regen [path]",
		Short: "Build regeneration prompts for unrecoverable pages",
		Long:  "Compose targeted re-generation requests for pages that fail completeness checking. The prompts are printed; the LLM round trip belongs to the caller.",
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

			spec := ""
			if specFile != "" {
				data, err := os.ReadFile(specFile)
				if err != nil {
					return fmt.Errorf("reading spec file: %w", err)
				}
				spec = string(data)
			}

			var expected []string
			if expect != "" {
				for _, name := range strings.Split(expect, ",") {
					expected = append(expected, strings.TrimSpace(name))
				}
			}

			svc := application.NewRegenService(policy)
			requests := svc.BuildRequests(files, expected, spec)

			if page != "" {
				filtered := requests[:0]
				for _, req := range requests {
					if req.Filename == page {
						filtered = append(filtered, req)
					}
				}
				requests = filtered
			}

			if len(requests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no pages need regeneration")
				return nil
			}

			if jsonOutput {
				return renderJSON(cmd, requests)
			}
			for _, req := range requests {
				fmt.Fprintf(cmd.OutOrStdout(), "==== %s ====\n%s\n", req.Filename, req.Prompt)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output requests as JSON")
	cmd.Flags().StringVar(&expect, "expect", "", "Comma-separated list of expected page filenames")
	cmd.Flags().StringVar(&specFile, "spec", "", "Path to the original site specification text")
	cmd.Flags().StringVar(&page, "page", "", "Only build the prompt for one page")

	return cmd
}
