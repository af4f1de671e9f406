package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge/pageforge/internal/adapters/inbound/cli"
)

func TestProcessCommand_DefaultTUI(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"process", brokenSite(t)})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "pageforge")
	assert.Contains(t, buf.String(), "index.html")
	assert.Contains(t, buf.String(), "services.html")
	assert.Contains(t, buf.String(), "default-src 'self'")
}

func TestProcessCommand_JSON(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"process", goodSite(t), "--json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `"csp_policy"`)
	assert.Contains(t, buf.String(), `"completeness"`)
	assert.Contains(t, buf.String(), `"stage": "sanitized"`)
}

func TestProcessCommand_WritesRepairedSite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dist")

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"process", brokenSite(t), "--out", out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(out, "services.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")

	// Non-HTML assets are carried over unchanged.
	css, err := os.ReadFile(filepath.Join(out, "styles.css"))
	require.NoError(t, err)
	assert.Equal(t, ":root { --accent: #2563eb; }", string(css))
}

func TestProcessCommand_EmptyDirectory(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"process", t.TempDir()})
	assert.Error(t, cmd.Execute())
}
