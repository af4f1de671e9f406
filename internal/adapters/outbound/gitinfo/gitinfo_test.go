package gitinfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageforge/pageforge/internal/adapters/outbound/gitinfo"
)

func TestNonRepoDirectory(t *testing.T) {
	dir := t.TempDir()
	g := gitinfo.New()

	assert.False(t, g.IsGitRepo(dir))

	_, err := g.CommitHash(dir)
	assert.Error(t, err)
}
