package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergedeck/internal/models"
)

func testBranches(names ...string) []models.Branch {
	branches := make([]models.Branch, len(names))
	for i, name := range names {
		branches[i] = models.Branch{Name: name, Hash: "0123456789abcdef"}
	}
	return branches
}

func newTestDialog(current string, candidates ...string) *MergeDialog {
	return NewMergeDialog(current, testBranches(candidates...), false)
}

// drive a selection through a full clean preview: mergeability resolves
// clean, then ahead/behind resolves with the given behind count.
func resolveClean(t *testing.T, d *MergeDialog, branch string, behind int) {
	t.Helper()

	_, cmd := d.Update(mergeabilityMsg{
		token:  d.token,
		branch: branch,
		status: models.MergeStatus{Kind: models.MergeStatusClean},
	})
	require.NotNil(t, cmd, "clean result should trigger the count lookup")

	_, _ = d.Update(aheadBehindMsg{
		token:  d.token,
		counts: &models.AheadBehind{Behind: behind},
	})
}

func TestSelectBranchStartsLoading(t *testing.T) {
	d := newTestDialog("main", "main", "feature")

	cmd := d.selectBranch(&d.candidates[1])

	require.NotNil(t, cmd)
	require.NotNil(t, d.status)
	assert.Equal(t, models.MergeStatusLoading, d.status.Kind)
	assert.Equal(t, "feature", d.selected.Name)
	assert.Zero(t, d.behind)
}

func TestSelectNilClearsStatus(t *testing.T) {
	d := newTestDialog("main", "feature")
	d.selectBranch(&d.candidates[0])
	resolveClean(t, d, "feature", 3)

	cmd := d.selectBranch(nil)

	assert.Nil(t, cmd, "clearing the selection must not start async work")
	assert.Nil(t, d.selected)
	assert.Nil(t, d.status)
	assert.Zero(t, d.behind)
	assert.Empty(t, d.commits)
}

func TestStaleMergeabilityResultDiscarded(t *testing.T) {
	d := newTestDialog("main", "feature", "other")

	d.selectBranch(&d.candidates[0])
	staleToken := d.token
	d.selectBranch(&d.candidates[1])

	_, cmd := d.Update(mergeabilityMsg{
		token:  staleToken,
		branch: "feature",
		status: models.MergeStatus{Kind: models.MergeStatusConflicted, ConflictedFiles: 4},
	})

	assert.Nil(t, cmd, "stale result must not trigger followup work")
	require.NotNil(t, d.status)
	assert.Equal(t, models.MergeStatusLoading, d.status.Kind, "stale result must not overwrite the newer selection's state")
	assert.Equal(t, "other", d.selected.Name)
}

func TestOnlyLatestSelectionResultIsReflected(t *testing.T) {
	d := newTestDialog("main", "feature", "other")

	d.selectBranch(&d.candidates[0])
	staleToken := d.token
	d.selectBranch(&d.candidates[1])

	// The superseded check resolves first and is dropped
	_, _ = d.Update(mergeabilityMsg{
		token:  staleToken,
		branch: "feature",
		status: models.MergeStatus{Kind: models.MergeStatusInvalid},
	})
	assert.Equal(t, models.MergeStatusLoading, d.status.Kind)

	// The current check lands
	resolveClean(t, d, "other", 2)

	assert.Equal(t, models.MergeStatusClean, d.status.Kind)
	assert.Equal(t, 2, d.behind)
}

func TestStaleAheadBehindResetsCount(t *testing.T) {
	d := newTestDialog("main", "feature", "other")

	d.selectBranch(&d.candidates[0])
	_, _ = d.Update(mergeabilityMsg{
		token:  d.token,
		branch: "feature",
		status: models.MergeStatus{Kind: models.MergeStatusClean},
	})
	staleToken := d.token

	d.selectBranch(&d.candidates[1])

	_, cmd := d.Update(aheadBehindMsg{
		token:  staleToken,
		counts: &models.AheadBehind{Behind: 7},
	})

	assert.Nil(t, cmd)
	assert.Zero(t, d.behind, "stale count lookup must not leak into the new selection")
}

func TestConflictedResultStopsWithoutCountLookup(t *testing.T) {
	d := newTestDialog("main", "feature")
	d.selectBranch(&d.candidates[0])

	_, cmd := d.Update(mergeabilityMsg{
		token:  d.token,
		branch: "feature",
		status: models.MergeStatus{Kind: models.MergeStatusConflicted, ConflictedFiles: 2},
	})

	assert.Nil(t, cmd, "conflicted result needs no count lookup")
	assert.Equal(t, models.MergeStatusConflicted, d.status.Kind)
	assert.Equal(t, 2, d.status.ConflictedFiles)
}

func TestInvalidResultStopsWithoutCountLookup(t *testing.T) {
	d := newTestDialog("main", "feature")
	d.selectBranch(&d.candidates[0])

	_, cmd := d.Update(mergeabilityMsg{
		token:  d.token,
		branch: "feature",
		status: models.MergeStatus{Kind: models.MergeStatusInvalid},
	})

	assert.Nil(t, cmd)
	assert.Equal(t, models.MergeStatusInvalid, d.status.Kind)
}

func TestNilCountsDegradeToZero(t *testing.T) {
	d := newTestDialog("main", "feature")
	d.selectBranch(&d.candidates[0])
	_, _ = d.Update(mergeabilityMsg{
		token:  d.token,
		branch: "feature",
		status: models.MergeStatus{Kind: models.MergeStatusClean},
	})

	_, _ = d.Update(aheadBehindMsg{token: d.token, counts: nil})

	assert.Zero(t, d.behind)
	assert.False(t, d.canStart())
}

func TestCanStart(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(d *MergeDialog)
		expect bool
	}{
		{
			name:   "no selection",
			setup:  func(d *MergeDialog) {},
			expect: false,
		},
		{
			name: "selected equals current branch",
			setup: func(d *MergeDialog) {
				d.selectBranch(&d.candidates[0]) // "main"
				resolveClean(t, d, "main", 3)
			},
			expect: false,
		},
		{
			name: "clean with zero commits",
			setup: func(d *MergeDialog) {
				d.selectBranch(&d.candidates[1])
				resolveClean(t, d, "feature", 0)
			},
			expect: false,
		},
		{
			name: "invalid status",
			setup: func(d *MergeDialog) {
				d.selectBranch(&d.candidates[1])
				d.Update(mergeabilityMsg{
					token:  d.token,
					branch: "feature",
					status: models.MergeStatus{Kind: models.MergeStatusInvalid},
				})
				d.behind = 3
			},
			expect: false,
		},
		{
			name: "clean with commits to merge",
			setup: func(d *MergeDialog) {
				d.selectBranch(&d.candidates[1])
				resolveClean(t, d, "feature", 3)
			},
			expect: true,
		},
		{
			name: "conflicted with commits to merge",
			setup: func(d *MergeDialog) {
				d.selectBranch(&d.candidates[1])
				d.Update(mergeabilityMsg{
					token:  d.token,
					branch: "feature",
					status: models.MergeStatus{Kind: models.MergeStatusConflicted, ConflictedFiles: 1},
				})
				d.behind = 3
			},
			expect: true,
		},
		{
			name: "still loading with commits from nowhere",
			setup: func(d *MergeDialog) {
				d.selectBranch(&d.candidates[1])
				d.behind = 3
			},
			expect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDialog("main", "main", "feature")
			tt.setup(d)
			assert.Equal(t, tt.expect, d.canStart())
		})
	}
}

func TestFailedMergeabilityCheckFallsBackToClean(t *testing.T) {
	origCheck := determineMergeability
	origFloor := minPreviewDelay
	determineMergeability = func(ours, theirs string) (models.MergeStatus, error) {
		return models.MergeStatus{}, errors.New("merge-tree exploded")
	}
	minPreviewDelay = 0
	t.Cleanup(func() {
		determineMergeability = origCheck
		minPreviewDelay = origFloor
	})

	d := newTestDialog("main", "feature")
	d.selectBranch(&d.candidates[0])

	msg := d.checkMergeability(d.token, "feature")()
	result, ok := msg.(mergeabilityMsg)
	require.True(t, ok)
	assert.Equal(t, models.MergeStatusClean, result.status.Kind, "a failed check degrades to clean instead of wedging the dialog")

	_, followup := d.Update(result)
	require.NotNil(t, d.status)
	assert.Equal(t, models.MergeStatusClean, d.status.Kind)
	assert.NotNil(t, followup, "the fallback still looks up the commit count")
}

func TestScenarioCleanMergePreview(t *testing.T) {
	d := newTestDialog("main", "feature")

	d.selectBranch(&d.candidates[0])
	resolveClean(t, d, "feature", 3)

	message := statusMessage(d.status, d.behind, d.selected.Name, d.current)
	assert.Equal(t, "This will merge 3 commits from feature into main", message)
	assert.True(t, d.canStart())
}

func TestStartMergeRequiresCanStart(t *testing.T) {
	d := newTestDialog("main", "main", "feature")

	assert.Nil(t, d.startMerge(), "no selection")

	d.selectBranch(&d.candidates[0])
	resolveClean(t, d, "main", 3)
	assert.Nil(t, d.startMerge(), "selected equals current")

	d.selectBranch(&d.candidates[1])
	resolveClean(t, d, "feature", 3)
	assert.NotNil(t, d.startMerge())
}

func TestStatusMessage(t *testing.T) {
	clean := &models.MergeStatus{Kind: models.MergeStatusClean}
	loading := &models.MergeStatus{Kind: models.MergeStatusLoading}
	invalid := &models.MergeStatus{Kind: models.MergeStatusInvalid}

	tests := []struct {
		name   string
		status *models.MergeStatus
		behind int
		expect string
	}{
		{"none set", nil, 0, ""},
		{"loading", loading, 0, "Checking for ability to merge automatically..."},
		{"clean up to date", clean, 0, "This branch is up to date with feature"},
		{"clean one commit", clean, 1, "This will merge 1 commit from feature into main"},
		{"clean many commits", clean, 3, "This will merge 3 commits from feature into main"},
		{"invalid", invalid, 0, "Unable to merge unrelated histories in this repository"},
		{
			"conflicted one file",
			&models.MergeStatus{Kind: models.MergeStatusConflicted, ConflictedFiles: 1},
			5,
			"There will be 1 conflicted file when merging feature into main",
		},
		{
			"conflicted many files",
			&models.MergeStatus{Kind: models.MergeStatusConflicted, ConflictedFiles: 2},
			5,
			"There will be 2 conflicted files when merging feature into main",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusMessage(tt.status, tt.behind, "feature", "main")
			assert.Equal(t, tt.expect, got)

			// derivation is pure: same inputs, same output
			assert.Equal(t, got, statusMessage(tt.status, tt.behind, "feature", "main"))
		})
	}
}

func TestStatusIcon(t *testing.T) {
	assert.Equal(t, "…", statusIcon(models.MergeStatusLoading))
	assert.Equal(t, "✓", statusIcon(models.MergeStatusClean))
	assert.Equal(t, "!", statusIcon(models.MergeStatusConflicted))
	assert.Equal(t, "✕", statusIcon(models.MergeStatusInvalid))
}

func TestTitle(t *testing.T) {
	d := NewMergeDialog("main", nil, false)
	assert.Equal(t, "Merge into main", d.title())

	squash := NewMergeDialog("main", nil, true)
	assert.Equal(t, "Squash and Merge into main", squash.title())
}

func TestRunWithFloor(t *testing.T) {
	t.Run("fast op is delayed to the floor", func(t *testing.T) {
		start := time.Now()
		got, err := runWithFloor(20*time.Millisecond, func() (int, error) {
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("errors pass through", func(t *testing.T) {
		opErr := errors.New("boom")
		_, err := runWithFloor(time.Millisecond, func() (int, error) {
			return 0, opErr
		})
		assert.ErrorIs(t, err, opErr)
	})
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "commit", pluralize(1, "commit"))
	assert.Equal(t, "commits", pluralize(0, "commit"))
	assert.Equal(t, "files", pluralize(2, "file"))
}
