package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"mergedeck/internal/models"
)

// IsRepository reports whether the working directory is inside a git
// work tree.
func IsRepository() bool {
	return exec.Command("git", "rev-parse", "--is-inside-work-tree").Run() == nil
}

// Branches returns all branches with their info.
func Branches() ([]models.Branch, error) {
	cmd := exec.Command("git", "branch", "-vv", "--all")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	return parseBranches(output), nil
}

func parseBranches(output []byte) []models.Branch {
	var branches []models.Branch
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		if branch, ok := parseBranchLine(scanner.Text()); ok {
			branches = append(branches, branch)
		}
	}
	return branches
}

// parseBranchLine parses one line of branch -vv output:
//
//	* name hash [upstream: ahead 2, behind 1] last commit message
//
// The fields are consumed positionally so a branch name that happens to
// contain the hash text cannot confuse the message boundary.
func parseBranchLine(line string) (models.Branch, bool) {
	var branch models.Branch

	if strings.HasPrefix(line, "*") {
		branch.IsCurrent = true
		line = line[1:]
	}

	name, rest := nextField(line)
	hash, rest := nextField(rest)
	if name == "" || hash == "" {
		return models.Branch{}, false
	}

	branch.IsRemote = strings.HasPrefix(name, "remotes/")
	branch.Name = strings.TrimPrefix(name, "remotes/")
	branch.Hash = hash

	if strings.HasPrefix(rest, "[") {
		if end := strings.Index(rest, "]"); end > 0 {
			branch.Upstream = rest[1:end]
			rest = rest[end+1:]
		}
	}
	branch.LastCommit = strings.TrimSpace(rest)

	return branch, true
}

// nextField splits off the first whitespace-delimited field.
func nextField(s string) (field, rest string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// CurrentBranch returns the name of the checked-out branch.
func CurrentBranch() (string, error) {
	cmd := exec.Command("git", "branch", "--show-current")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// SwitchBranch checks out a different branch.
func SwitchBranch(name string) error {
	cmd := exec.Command("git", "checkout", name)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to switch branch: %s", string(output))
	}
	return nil
}

// CreateBranch creates a new branch.
func CreateBranch(name string) error {
	cmd := exec.Command("git", "branch", name)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to create branch: %s", string(output))
	}
	return nil
}

// DeleteBranch deletes a branch.
func DeleteBranch(name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	cmd := exec.Command("git", "branch", flag, name)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to delete branch: %s", string(output))
	}
	return nil
}

// DefaultBranch detects the repository's default branch.
func DefaultBranch() (string, error) {
	// symbolic-ref is fastest and most reliable when origin/HEAD is set
	cmd := exec.Command("git", "symbolic-ref", "refs/remotes/origin/HEAD", "--short")
	output, err := cmd.Output()
	if err == nil {
		branchName := strings.TrimSpace(string(output))
		return strings.TrimPrefix(branchName, "origin/"), nil
	}

	cmd = exec.Command("git", "remote", "show", "origin")
	output, err = cmd.Output()
	if err == nil {
		scanner := bufio.NewScanner(bytes.NewReader(output))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.Contains(line, "HEAD branch:") {
				parts := strings.Split(line, ":")
				if len(parts) == 2 {
					return strings.TrimSpace(parts[1]), nil
				}
			}
		}
	}

	for _, branchName := range []string{"main", "master", "develop"} {
		cmd = exec.Command("git", "rev-parse", "--verify", branchName)
		if err := cmd.Run(); err == nil {
			return branchName, nil
		}
	}

	return "", fmt.Errorf("could not detect default branch")
}
