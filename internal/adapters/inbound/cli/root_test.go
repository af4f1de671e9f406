package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge/pageforge/internal/adapters/inbound/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "pageforge dev")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	cmd := cli.NewRootCmdForTest()

	expected := []string{"version", "audit", "sanitize", "fix", "pages", "csp", "regen", "process", "mcp"}
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "command %q should be registered", name)
	}
}
