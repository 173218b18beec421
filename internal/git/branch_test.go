package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBranches(t *testing.T) {
	output := []byte(`* main       1a2b3c4 [origin/main: ahead 2, behind 1] Add merge preview
  feature    5d6e7f8 Implement dialog
  remotes/origin/main 1a2b3c4 Add merge preview
`)

	branches := parseBranches(output)
	require.Len(t, branches, 3)

	main := branches[0]
	assert.Equal(t, "main", main.Name)
	assert.Equal(t, "1a2b3c4", main.Hash)
	assert.True(t, main.IsCurrent)
	assert.False(t, main.IsRemote)
	assert.Equal(t, "origin/main: ahead 2, behind 1", main.Upstream)
	assert.Equal(t, "Add merge preview", main.LastCommit)

	feature := branches[1]
	assert.Equal(t, "feature", feature.Name)
	assert.False(t, feature.IsCurrent)
	assert.Empty(t, feature.Upstream)
	assert.Equal(t, "Implement dialog", feature.LastCommit)

	remote := branches[2]
	assert.Equal(t, "origin/main", remote.Name)
	assert.True(t, remote.IsRemote)
}

func TestParseBranchesSkipsBlankAndShortLines(t *testing.T) {
	branches := parseBranches([]byte("\n  lonely\n\n"))
	assert.Empty(t, branches)
}

func TestParseBranchLine(t *testing.T) {
	t.Run("hash text inside the branch name", func(t *testing.T) {
		branch, ok := parseBranchLine("  fix/1a2b3c4 1a2b3c4 Revert the regression")
		require.True(t, ok)
		assert.Equal(t, "fix/1a2b3c4", branch.Name)
		assert.Equal(t, "1a2b3c4", branch.Hash)
		assert.Equal(t, "Revert the regression", branch.LastCommit)
	})

	t.Run("upstream without commit message", func(t *testing.T) {
		branch, ok := parseBranchLine("  dev 9f8e7d6 [origin/dev]")
		require.True(t, ok)
		assert.Equal(t, "origin/dev", branch.Upstream)
		assert.Empty(t, branch.LastCommit)
	})

	t.Run("current marker", func(t *testing.T) {
		branch, ok := parseBranchLine("* main 1a2b3c4 Initial commit")
		require.True(t, ok)
		assert.True(t, branch.IsCurrent)
		assert.Equal(t, "Initial commit", branch.LastCommit)
	})
}
