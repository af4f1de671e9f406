package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pageforge/pageforge/internal/adapters/outbound/config"
	"github.com/pageforge/pageforge/internal/domain/sanitize"
)

func newSanitizeCmd() *cobra.Command {
	var (
		check bool
		write bool
	)

	cmd := &cobra.Command{
		Use:   "sanitize <file>",
		Short: "Strip dangerous constructs from a generated file",
		Long:  "Remove iframes, inline event handlers, javascript: URLs and non-allow-listed scripts from generated markup.",
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
			s := sanitize.New(policy)

			if check {
				if s.IsCodeSafe(string(data)) {
					fmt.Fprintln(cmd.OutOrStdout(), "safe")
					return nil
				}
				return fmt.Errorf("%s contains unsafe constructs", file)
			}

			cleaned := s.Sanitize(string(data))
			if write {
				return os.WriteFile(file, []byte(cleaned), 0644)
			}
			fmt.Fprint(cmd.OutOrStdout(), cleaned)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Only report whether the file is safe")
	cmd.Flags().BoolVar(&write, "write", false, "Rewrite the file in place")

	return cmd
}
