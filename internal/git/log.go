package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"mergedeck/internal/models"
)

// CommitsInRange returns the commits reachable through the given range
// spec (e.g. "main..feature"), newest first.
func CommitsInRange(rangeSpec string, limit int) ([]models.Commit, error) {
	// Format: hash|short|author|email|date|refs|parents|message
	format := "%H|%h|%an|%ae|%at|%D|%P|%s"

	args := []string{
		"log",
		fmt.Sprintf("--pretty=format:%s", format),
		rangeSpec,
	}
	if limit > 0 {
		args = append(args, fmt.Sprintf("-%d", limit))
	}

	cmd := exec.Command("git", args...)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run git log: %w", err)
	}

	return parseCommits(output), nil
}

func parseCommits(output []byte) []models.Commit {
	var commits []models.Commit
	scanner := bufio.NewScanner(bytes.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Split(line, "|")
		if len(parts) < 8 {
			continue
		}

		unixTime, _ := strconv.ParseInt(parts[4], 10, 64)

		refs := []string{}
		if parts[5] != "" {
			for _, ref := range strings.Split(parts[5], ", ") {
				ref = strings.TrimSpace(ref)
				if ref != "" {
					refs = append(refs, ref)
				}
			}
		}

		parents := []string{}
		if parts[6] != "" {
			parents = strings.Fields(parts[6])
		}

		commits = append(commits, models.Commit{
			Hash:      parts[0],
			ShortHash: parts[1],
			Author:    parts[2],
			Email:     parts[3],
			Date:      time.Unix(unixTime, 0),
			Refs:      refs,
			Parents:   parents,
			Message:   parts[7],
		})
	}

	return commits
}
