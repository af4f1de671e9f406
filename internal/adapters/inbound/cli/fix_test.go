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

func TestFixCommand_DryRun(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"about.html": "<html><body><h1>About</h1></body></html>",
	})

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fix", filepath.Join(dir, "about.html"), "--dry-run"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "would apply: insert_doctype")
	assert.Contains(t, buf.String(), "would apply: insert_charset_meta")
	assert.NotContains(t, buf.String(), "applied:")
}

func TestFixCommand_Write(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"about.html": "<html><body><h1>About</h1></body></html>",
	})
	file := filepath.Join(dir, "about.html")

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fix", file, "--write"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "applied: insert_doctype")
	assert.Contains(t, buf.String(), "score:")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
	assert.Contains(t, string(data), `<html lang="en">`)
}

func TestFixCommand_NothingToFix(t *testing.T) {
	dir := goodSite(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fix", filepath.Join(dir, "index.html")})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "nothing to fix")
}
