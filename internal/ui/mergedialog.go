package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mergedeck/internal/git"
	"mergedeck/internal/logging"
	"mergedeck/internal/models"
)

// minPreviewDelay keeps fast mergeability checks from flashing the
// loading state for a single frame. Tests shorten it.
var minPreviewDelay = 500 * time.Millisecond

// determineMergeability is swappable so dialog tests can stub out the
// git call.
var determineMergeability = git.DetermineMergeability

// maxPreviewCommits caps the commit list shown under the status line.
const maxPreviewCommits = 5

type mergeabilityMsg struct {
	token  int
	branch string
	status models.MergeStatus
}

type aheadBehindMsg struct {
	token   int
	counts  *models.AheadBehind
	commits []models.Commit
}

type mergeDoneMsg struct {
	branch string
	err    error
}

type closeMergeDialogMsg struct{}

type dialogDirtyMsg struct {
	dirty bool
}

// MergeDialog lets the user pick a branch to merge into the current one
// and previews the outcome before confirming.
type MergeDialog struct {
	current    string
	candidates []models.Branch
	cursor     int
	selected   *models.Branch
	squash     bool

	// token invalidates in-flight preview work whenever the selection
	// changes. Every async command captures the token it was issued
	// under and its result is discarded if the token has moved on.
	token   int
	status  *models.MergeStatus
	behind  int
	commits []models.Commit
	dirty   bool

	spinner spinner.Model
	width   int
	height  int
}

// NewMergeDialog creates a dialog for merging one of candidates into
// the current branch.
func NewMergeDialog(current string, candidates []models.Branch, squash bool) *MergeDialog {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &MergeDialog{
		current:    current,
		candidates: candidates,
		squash:     squash,
		spinner:    sp,
	}
}

func (d *MergeDialog) Init() tea.Cmd {
	cmds := []tea.Cmd{d.checkWorkingTree()}
	if len(d.candidates) > 0 {
		cmds = append(cmds, d.selectBranch(&d.candidates[d.cursor]))
	}
	return tea.Batch(cmds...)
}

// selectBranch records the new selection and starts a preview for it.
// A nil branch clears the selection without starting async work; the
// token bump makes any in-flight result land stale either way.
func (d *MergeDialog) selectBranch(b *models.Branch) tea.Cmd {
	d.token++
	d.behind = 0
	d.commits = nil

	if b == nil {
		d.selected = nil
		d.status = nil
		return nil
	}

	d.selected = b
	d.status = &models.MergeStatus{Kind: models.MergeStatusLoading}
	return tea.Batch(d.spinner.Tick, d.checkMergeability(d.token, b.Name))
}

func (d *MergeDialog) checkMergeability(token int, branch string) tea.Cmd {
	current := d.current
	return func() tea.Msg {
		status, err := runWithFloor(minPreviewDelay, func() (models.MergeStatus, error) {
			return determineMergeability(current, branch)
		})
		if err != nil {
			// An undecidable preview should not wedge the dialog; fall
			// back to a clean classification and let the merge itself
			// report any trouble.
			logging.Logger.Error("mergeability check failed", "branch", branch, "error", err)
			status = models.MergeStatus{Kind: models.MergeStatusClean}
		}
		return mergeabilityMsg{token: token, branch: branch, status: status}
	}
}

func (d *MergeDialog) loadAheadBehind(token int, branch string) tea.Cmd {
	rangeSpec := git.RevSymmetricDifference(d.current, branch)
	logRange := d.current + ".." + branch
	return func() tea.Msg {
		counts, err := git.AheadBehind(rangeSpec)
		if err != nil {
			logging.Logger.Warn("ahead/behind lookup failed", "range", rangeSpec, "error", err)
			counts = nil
		}

		commits, err := git.CommitsInRange(logRange, maxPreviewCommits)
		if err != nil {
			logging.Logger.Warn("commit preview failed", "range", logRange, "error", err)
			commits = nil
		}

		return aheadBehindMsg{token: token, counts: counts, commits: commits}
	}
}

func (d *MergeDialog) checkWorkingTree() tea.Cmd {
	return func() tea.Msg {
		dirty, err := git.HasUncommittedChanges()
		if err != nil {
			dirty = false
		}
		return dialogDirtyMsg{dirty: dirty}
	}
}

func (d *MergeDialog) Update(msg tea.Msg) (*MergeDialog, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return d, func() tea.Msg { return closeMergeDialogMsg{} }

		case "j", "down":
			if d.cursor < len(d.candidates)-1 {
				d.cursor++
				return d, d.selectBranch(&d.candidates[d.cursor])
			}

		case "k", "up":
			if d.cursor > 0 {
				d.cursor--
				return d, d.selectBranch(&d.candidates[d.cursor])
			}

		case "enter":
			return d, d.startMerge()
		}

	case mergeabilityMsg:
		if msg.token != d.token {
			// A newer selection superseded this check
			return d, nil
		}
		status := msg.status
		d.status = &status
		if status.Kind == models.MergeStatusConflicted || status.Kind == models.MergeStatusInvalid {
			return d, nil
		}
		return d, d.loadAheadBehind(msg.token, msg.branch)

	case aheadBehindMsg:
		if msg.token != d.token {
			d.behind = 0
			return d, nil
		}
		if msg.counts != nil {
			d.behind = msg.counts.Behind
		} else {
			d.behind = 0
		}
		d.commits = msg.commits
		return d, nil

	case dialogDirtyMsg:
		d.dirty = msg.dirty

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height

	case spinner.TickMsg:
		if d.status != nil && d.status.Kind == models.MergeStatusLoading {
			var cmd tea.Cmd
			d.spinner, cmd = d.spinner.Update(msg)
			return d, cmd
		}
	}

	return d, nil
}

// canStart reports whether the merge can be confirmed: a branch other
// than the current one is selected, it has commits to merge, and the
// preview did not classify the merge as invalid.
func (d *MergeDialog) canStart() bool {
	if d.selected == nil || d.selected.Name == d.current {
		return false
	}
	if d.behind == 0 {
		return false
	}
	if d.status != nil && d.status.Kind == models.MergeStatusInvalid {
		return false
	}
	return true
}

func (d *MergeDialog) startMerge() tea.Cmd {
	if !d.canStart() {
		return nil
	}

	branch := d.selected.Name
	squash := d.squash
	return func() tea.Msg {
		var err error
		if squash {
			err = git.SquashMerge(branch)
		} else {
			err = git.Merge(branch)
		}
		return mergeDoneMsg{branch: branch, err: err}
	}
}

func (d *MergeDialog) title() string {
	title := "Merge into " + d.current
	if d.squash {
		title = "Squash and " + title
	}
	return title
}

// statusMessage derives the preview text from the committed status.
// It is a pure function of its inputs.
func statusMessage(status *models.MergeStatus, behind int, target, current string) string {
	if status == nil {
		return ""
	}

	switch status.Kind {
	case models.MergeStatusLoading:
		return "Checking for ability to merge automatically..."

	case models.MergeStatusClean:
		if behind == 0 {
			return fmt.Sprintf("This branch is up to date with %s", target)
		}
		return fmt.Sprintf("This will merge %d %s from %s into %s",
			behind, pluralize(behind, "commit"), target, current)

	case models.MergeStatusInvalid:
		return "Unable to merge unrelated histories in this repository"

	case models.MergeStatusConflicted:
		n := status.ConflictedFiles
		return fmt.Sprintf("There will be %d conflicted %s when merging %s into %s",
			n, pluralize(n, "file"), target, current)
	}

	return ""
}

func statusIcon(kind models.MergeStatusKind) string {
	switch kind {
	case models.MergeStatusLoading:
		return "…"
	case models.MergeStatusClean:
		return "✓"
	case models.MergeStatusConflicted:
		return "!"
	case models.MergeStatusInvalid:
		return "✕"
	default:
		return "?"
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// runWithFloor runs op and delays its result until at least floor has
// elapsed since the call.
func runWithFloor[T any](floor time.Duration, op func() (T, error)) (T, error) {
	start := time.Now()
	result, err := op()
	if remaining := floor - time.Since(start); remaining > 0 {
		time.Sleep(remaining)
	}
	return result, err
}

func (d *MergeDialog) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("170"))

	branchStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("white"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("green")).
		Bold(true)

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	warnStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	var out strings.Builder

	out.WriteString(titleStyle.Render(d.title()) + "\n\n")

	if len(d.candidates) == 0 {
		out.WriteString(mutedStyle.Render("No branches to merge") + "\n")
	}

	for i, branch := range d.candidates {
		var line string
		if i == d.cursor {
			line = selectedStyle.Render("▸ " + branch.Name)
		} else {
			line = "  " + branchStyle.Render(branch.Name)
		}
		if branch.Name == d.current {
			line += mutedStyle.Render(" (current)")
		}
		out.WriteString(line + "\n")
	}

	out.WriteString("\n" + d.renderStatus() + "\n")

	if len(d.commits) > 0 {
		out.WriteString("\n")
		for _, c := range d.commits {
			out.WriteString(mutedStyle.Render(fmt.Sprintf("  %s %s", c.ShortHash, c.Message)) + "\n")
		}
		if d.behind > len(d.commits) {
			out.WriteString(mutedStyle.Render(fmt.Sprintf("  … and %d more", d.behind-len(d.commits))) + "\n")
		}
	}

	if d.dirty {
		out.WriteString("\n" + warnStyle.Render("Working tree has uncommitted changes") + "\n")
	}

	help := "j/k: select • esc: cancel"
	if d.canStart() {
		help = "j/k: select • enter: merge • esc: cancel"
	}
	out.WriteString("\n" + mutedStyle.Render(help))

	return out.String()
}

func (d *MergeDialog) renderStatus() string {
	if d.status == nil || d.selected == nil {
		return ""
	}

	message := statusMessage(d.status, d.behind, d.selected.Name, d.current)

	icon := statusIcon(d.status.Kind)
	if d.status.Kind == models.MergeStatusLoading {
		icon = d.spinner.View()
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	switch d.status.Kind {
	case models.MergeStatusClean:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	case models.MergeStatusConflicted:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case models.MergeStatusInvalid:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	}

	return icon + " " + style.Render(message)
}
