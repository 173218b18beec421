package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mergedeck/internal/git"
	"mergedeck/internal/models"
)

// SummaryView shows a merge-oriented overview of the repository:
// working tree state and how the current branch relates to its
// upstream and to the default branch.
type SummaryView struct {
	branch          string
	files           []models.FileChange
	aheadUpstream   int
	behindUpstream  int
	defaultBranch   string
	aheadOfDefault  int
	behindOfDefault int
	isDefaultBranch bool
	width           int
	height          int
}

func NewSummaryView() *SummaryView {
	return &SummaryView{}
}

type summaryDataMsg struct {
	branch          string
	files           []models.FileChange
	aheadUpstream   int
	behindUpstream  int
	defaultBranch   string
	aheadOfDefault  int
	behindOfDefault int
	isDefaultBranch bool
}

func (s *SummaryView) Init() tea.Cmd {
	return s.loadData()
}

func (s *SummaryView) loadData() tea.Cmd {
	return func() tea.Msg {
		data := summaryDataMsg{}

		branch, err := git.CurrentBranch()
		if err != nil {
			branch = "unknown"
		}
		data.branch = branch

		if files, err := git.WorkingTreeStatus(); err == nil {
			data.files = files
		}

		if branches, err := git.Branches(); err == nil {
			for _, b := range branches {
				if b.IsCurrent && b.Upstream != "" {
					data.aheadUpstream, data.behindUpstream = parseUpstream(b.Upstream)
					break
				}
			}
		}

		if defaultBranch, err := git.DefaultBranch(); err == nil {
			data.defaultBranch = defaultBranch
			data.isDefaultBranch = branch == defaultBranch
			if !data.isDefaultBranch {
				rangeSpec := git.RevSymmetricDifference(defaultBranch, branch)
				if counts, err := git.AheadBehind(rangeSpec); err == nil {
					// left side is the default branch, right side ours
					data.aheadOfDefault = counts.Behind
					data.behindOfDefault = counts.Ahead
				}
			}
		}

		return data
	}
}

// parseUpstream extracts ahead/behind counts from branch -vv upstream
// info like "origin/main: ahead 2, behind 1".
func parseUpstream(upstream string) (ahead, behind int) {
	for _, part := range strings.Split(upstream, ",") {
		part = strings.TrimSpace(part)
		if idx := strings.Index(part, "ahead "); idx >= 0 {
			fmt.Sscanf(part[idx:], "ahead %d", &ahead)
		}
		if idx := strings.Index(part, "behind "); idx >= 0 {
			fmt.Sscanf(part[idx:], "behind %d", &behind)
		}
	}
	return ahead, behind
}

func (s *SummaryView) Update(msg tea.Msg) (*SummaryView, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryDataMsg:
		s.branch = msg.branch
		s.files = msg.files
		s.aheadUpstream = msg.aheadUpstream
		s.behindUpstream = msg.behindUpstream
		s.defaultBranch = msg.defaultBranch
		s.aheadOfDefault = msg.aheadOfDefault
		s.behindOfDefault = msg.behindOfDefault
		s.isDefaultBranch = msg.isDefaultBranch

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	return s, nil
}

func (s *SummaryView) View() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("cyan")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("white"))

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	lines := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("Branch:"), valueStyle.Render(s.branch)),
		fmt.Sprintf("%s %s", labelStyle.Render("Files changed:"), valueStyle.Render(fmt.Sprintf("%d", len(s.files)))),
		fmt.Sprintf("%s %s", labelStyle.Render("Upstream:"), valueStyle.Render(fmt.Sprintf("%d ahead, %d behind", s.aheadUpstream, s.behindUpstream))),
	}

	if s.defaultBranch != "" {
		if s.isDefaultBranch {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("On default branch (%s)", s.defaultBranch)))
		} else {
			lines = append(lines, fmt.Sprintf("%s %s",
				labelStyle.Render(fmt.Sprintf("vs %s:", s.defaultBranch)),
				valueStyle.Render(fmt.Sprintf("%d ahead, %d behind", s.aheadOfDefault, s.behindOfDefault))))
		}
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 2)

	return boxStyle.Render(strings.Join(lines, "\n"))
}
