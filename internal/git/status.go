package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"mergedeck/internal/models"
)

// WorkingTreeStatus returns all file changes in the working tree.
func WorkingTreeStatus() ([]models.FileChange, error) {
	cmd := exec.Command("git", "status", "--porcelain=v1")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	return parseStatus(output)
}

// statusCodes maps a porcelain XY column code to a file status.
var statusCodes = map[byte]models.FileStatus{
	'M': models.StatusModified,
	'A': models.StatusAdded,
	'D': models.StatusDeleted,
	'R': models.StatusRenamed,
	'C': models.StatusCopied,
	'U': models.StatusUnmerged,
}

// parseStatus parses git status --porcelain output.
// Format: XY PATH where X is the staged status and Y the working tree
// status.
func parseStatus(output []byte) ([]models.FileChange, error) {
	var files []models.FileChange
	scanner := bufio.NewScanner(bytes.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 4 {
			continue
		}

		staged, working := line[0], line[1]
		file := models.FileChange{Path: strings.TrimSpace(line[3:])}

		// Renames come through as "R  old -> new"
		if staged == 'R' {
			if _, newPath, ok := strings.Cut(file.Path, " -> "); ok {
				file.Path = newPath
			}
		}

		if status, ok := statusCodes[staged]; ok {
			file.StagedStatus = status
			// an unmerged index entry is a conflict, not staged work
			file.IsStaged = staged != 'U'
		}
		if status, ok := statusCodes[working]; ok {
			file.Status = status
		}
		if working == '?' {
			file.Status = models.StatusUntracked
			file.IsUntracked = true
		}

		files = append(files, file)
	}

	return files, nil
}

// HasUncommittedChanges checks if there are any uncommitted changes.
func HasUncommittedChanges() (bool, error) {
	files, err := WorkingTreeStatus()
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

// StatusSummary returns a short human-readable repo status.
func StatusSummary() (string, error) {
	files, err := WorkingTreeStatus()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "clean", nil
	}
	return fmt.Sprintf("%d changes", len(files)), nil
}
