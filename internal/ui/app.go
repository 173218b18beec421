package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mergedeck/internal/git"
	"mergedeck/internal/logging"
	"mergedeck/internal/models"
)

type errMsg struct {
	err error
}

type statusMsg struct {
	branch string
	status string
}

type branchCreatedMsg struct {
	name string
}

type branchDeletedMsg struct {
	name string
}

type activeView int

const (
	viewBranches activeView = iota
	viewSummary
)

// Model is the root bubbletea model. It owns the branch list and
// summary views and hosts the merge dialog, the branch-name input and
// the delete confirmation as modal overlays.
type Model struct {
	width  int
	height int

	active   activeView
	branches *BranchView
	summary  *SummaryView

	dialog  *MergeDialog
	input   *BranchInputView
	confirm *ConfirmDeleteView

	branch     string
	statusText string
	err        error
}

func NewModel() Model {
	return Model{
		branches: NewBranchView(),
		summary:  NewSummaryView(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.branches.Init(),
		m.summary.Init(),
		m.loadStatus(),
	)
}

func (m Model) loadStatus() tea.Cmd {
	return func() tea.Msg {
		branch, err := git.CurrentBranch()
		if err != nil {
			branch = "unknown"
		}
		status, err := git.StatusSummary()
		if err != nil {
			status = "unknown"
		}
		return statusMsg{branch, status}
	}
}

func (m Model) refresh() tea.Cmd {
	return tea.Batch(
		m.branches.loadBranches(),
		m.summary.loadData(),
		m.loadStatus(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// fall through to the overlays and views below

	case statusMsg:
		m.branch = msg.branch
		m.statusText = msg.status
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	// Merge dialog lifecycle
	case mergeRequestedMsg:
		if m.branch == "" {
			return m, nil
		}
		m.err = nil
		// the dialog owns its candidate list so a later branch reload
		// cannot mutate it underneath an open dialog
		candidates := append([]models.Branch(nil), m.branches.Local()...)
		m.dialog = NewMergeDialog(m.branch, candidates, msg.squash)
		return m, m.dialog.Init()

	case closeMergeDialogMsg:
		m.dialog = nil
		return m, nil

	case mergeDoneMsg:
		m.dialog = nil
		if msg.err != nil {
			logging.Logger.Error("merge failed", "branch", msg.branch, "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		return m, m.refresh()

	// Branch creation lifecycle
	case newBranchRequestedMsg:
		m.err = nil
		m.input = NewBranchInputView()
		return m, m.input.Init()

	case branchInputCancelMsg:
		m.input = nil
		return m, nil

	case branchInputDoneMsg:
		m.input = nil
		name := msg.name
		checkout := msg.checkout
		return m, func() tea.Msg {
			if err := git.CreateBranch(name); err != nil {
				return errMsg{err}
			}
			if checkout {
				if err := git.SwitchBranch(name); err != nil {
					return errMsg{err}
				}
			}
			return branchCreatedMsg{name: name}
		}

	case branchCreatedMsg:
		return m, m.refresh()

	// Branch deletion lifecycle
	case deleteRequestedMsg:
		m.err = nil
		m.confirm = NewConfirmDeleteView(msg.branch)
		return m, m.confirm.Init()

	case deleteCancelledMsg:
		m.confirm = nil
		return m, nil

	case deleteConfirmedMsg:
		m.confirm = nil
		branch := msg.branch
		force := msg.force
		return m, func() tea.Msg {
			if err := git.DeleteBranch(branch, force); err != nil {
				return errMsg{err}
			}
			return branchDeletedMsg{name: branch}
		}

	case branchDeletedMsg:
		return m, m.refresh()

	case branchSwitchedMsg:
		return m, m.refresh()
	}

	// Modal overlays swallow all remaining messages
	if m.dialog != nil {
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd
	}
	if m.confirm != nil {
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	if m.input != nil {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.active == viewBranches {
				m.active = viewSummary
			} else {
				m.active = viewBranches
			}
			return m, nil
		case "r":
			return m, m.refresh()
		}
	}

	switch m.active {
	case viewBranches:
		m.branches, cmd = m.branches.Update(msg)
	case viewSummary:
		m.summary, cmd = m.summary.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	switch {
	case m.dialog != nil:
		content = m.dialog.View()
	case m.confirm != nil:
		content = m.confirm.View()
	case m.input != nil:
		content = m.input.View()
	case m.active == viewSummary:
		content = m.summary.View()
	default:
		content = m.branches.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		footer,
	)
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("170")).
		MarginRight(2)

	branchStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("green")).
		Bold(true)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238"))

	title := titleStyle.Render("mergedeck")
	branchInfo := branchStyle.Render(m.branch) + " " + statusStyle.Render(fmt.Sprintf("(%s)", m.statusText))

	headerLine := lipgloss.JoinHorizontal(lipgloss.Top, title, branchInfo)
	divider := dividerStyle.Render(strings.Repeat("─", max(m.width, 1)))

	return lipgloss.JoinVertical(lipgloss.Left, headerLine, divider)
}

func (m Model) renderFooter() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238"))

	keys := []string{
		"j/k: navigate",
		"enter: checkout",
		"m: merge",
		"s: squash merge",
		"n: new",
		"d: delete",
		"tab: summary",
		"r: refresh",
		"q: quit",
	}

	divider := dividerStyle.Render(strings.Repeat("─", max(m.width, 1)))
	helpText := helpStyle.Render(strings.Join(keys, " • "))

	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, divider, errStyle.Render("Error: "+m.err.Error()), helpText)
	}
	return lipgloss.JoinVertical(lipgloss.Left, divider, helpText)
}
