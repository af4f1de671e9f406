package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageforge/pageforge/internal/adapters/outbound/config"
	"github.com/pageforge/pageforge/internal/adapters/outbound/gitinfo"
	"github.com/pageforge/pageforge/internal/adapters/outbound/loader"
	"github.com/pageforge/pageforge/internal/adapters/outbound/tui"
	"github.com/pageforge/pageforge/internal/application"
)

func newProcessCmd() *cobra.Command {
	var (
		jsonOutput bool
		expect     string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "process [path]",
		Short: "Run the full safety pipeline over a generated site",
		Long:  "Sanitize, validate, auto-fix, wrap, completeness-check and CSP-harden every file of a generated site in one pass.",
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
			if len(files) == 0 {
				return fmt.Errorf("no site files found in %s", absPath)
			}

			var expected []string
			if expect != "" {
				for _, name := range strings.Split(expect, ",") {
					expected = append(expected, strings.TrimSpace(name))
				}
			}

			svc := application.NewPipelineService(policy)
			site := svc.ProcessSite(files, expected)

			if hash, err := gitinfo.New().CommitHash(absPath); err == nil {
				site.CommitHash = hash
			}

			if outDir != "" {
				repaired := application.Repaired(files, site)
				if err := ld.Write(outDir, repaired); err != nil {
					return err
				}
			}

			if jsonOutput {
				return renderJSON(cmd, site)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSite(site))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the full pipeline result as JSON")
	cmd.Flags().StringVar(&expect, "expect", "", "Comma-separated list of expected page filenames")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory to write repaired files to")

	return cmd
}
