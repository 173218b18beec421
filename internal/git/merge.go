package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"mergedeck/internal/models"
)

// RevSymmetricDifference returns the range spec for commits reachable
// from either revision but not both.
func RevSymmetricDifference(base, other string) string {
	return base + "..." + other
}

// AheadBehind counts the commits on either side of a symmetric
// difference range using rev-list --left-right --count.
func AheadBehind(rangeSpec string) (*models.AheadBehind, error) {
	cmd := exec.Command("git", "rev-list", "--left-right", "--count", rangeSpec)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to count commits for %s: %w", rangeSpec, err)
	}

	return parseAheadBehind(output)
}

// parseAheadBehind parses rev-list --left-right --count output, e.g.
// "2\t5": 2 commits only on the left side, 5 only on the right.
func parseAheadBehind(output []byte) (*models.AheadBehind, error) {
	parts := strings.Fields(strings.TrimSpace(string(output)))
	if len(parts) != 2 {
		return nil, fmt.Errorf("unexpected rev-list output: %q", strings.TrimSpace(string(output)))
	}

	ahead, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("failed to parse ahead count: %w", err)
	}
	behind, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse behind count: %w", err)
	}

	return &models.AheadBehind{Ahead: ahead, Behind: behind}, nil
}

// DetermineMergeability previews merging theirs into ours without
// touching the working tree. It classifies the outcome as clean,
// conflicted (with a conflicted file count), or invalid when the
// branches share no history.
func DetermineMergeability(ours, theirs string) (models.MergeStatus, error) {
	// No merge base means unrelated histories
	if err := exec.Command("git", "merge-base", ours, theirs).Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return models.MergeStatus{Kind: models.MergeStatusInvalid}, nil
		}
		return models.MergeStatus{}, fmt.Errorf("failed to find merge base: %w", err)
	}

	// merge-tree --write-tree exits 0 on a clean merge and 1 on
	// conflicts. --name-only makes the conflicted file section a plain
	// deduplicated path list, which covers every conflict type, not
	// just content conflicts.
	cmd := exec.Command("git", "merge-tree", "--write-tree", "--name-only", ours, theirs)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return models.MergeStatus{
				Kind:            models.MergeStatusConflicted,
				ConflictedFiles: countConflictedFiles(output),
			}, nil
		}
		return models.MergeStatus{}, fmt.Errorf("failed to run merge-tree: %w", err)
	}

	return models.MergeStatus{Kind: models.MergeStatusClean}, nil
}

// countConflictedFiles reads the conflicted file section that
// merge-tree --write-tree --name-only prints after the tree OID: one
// path per line, terminated by a blank line before the informational
// messages.
func countConflictedFiles(output []byte) int {
	lines := strings.Split(string(output), "\n")
	count := 0
	for i, line := range lines {
		if i == 0 {
			// tree OID
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		count++
	}
	if count == 0 {
		// merge-tree reported a conflict but listed no files
		return 1
	}
	return count
}

// Merge merges the given branch into the current branch.
func Merge(branch string) error {
	output, err := exec.Command("git", "merge", branch).CombinedOutput()
	if err != nil {
		return fmt.Errorf("merge failed: %s", string(output))
	}
	return nil
}

// SquashMerge squashes the given branch onto the current branch and
// commits the result.
func SquashMerge(branch string) error {
	output, err := exec.Command("git", "merge", "--squash", branch).CombinedOutput()
	if err != nil {
		return fmt.Errorf("squash merge failed: %s", string(output))
	}

	message := fmt.Sprintf("Squash merge branch '%s'", branch)
	output, err = exec.Command("git", "commit", "-m", message).CombinedOutput()
	if err != nil {
		return fmt.Errorf("squash commit failed: %s", string(output))
	}
	return nil
}
