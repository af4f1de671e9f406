package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pageforge",
		Short:         "Make generated sites safe to ship",
		Long:          "Pageforge sanitizes, scores, repairs and hardens LLM-generated HTML/CSS/JS so it can be previewed and deployed safely.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAuditCmd())
	cmd.AddCommand(newSanitizeCmd())
	cmd.AddCommand(newFixCmd())
	cmd.AddCommand(newPagesCmd())
	cmd.AddCommand(newCSPCmd())
	cmd.AddCommand(newRegenCmd())
	cmd.AddCommand(newProcessCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
