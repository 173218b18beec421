package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type branchInputDoneMsg struct {
	name     string
	checkout bool
}

type branchInputCancelMsg struct{}

// BranchInputView prompts for a new branch name and refuses names git
// would reject, so the user sees the problem before a failed
// git branch invocation does.
type BranchInputView struct {
	input  textinput.Model
	errMsg string
	width  int
	height int
}

func NewBranchInputView() *BranchInputView {
	ti := textinput.New()
	ti.Placeholder = "feature/my-branch"
	ti.Prompt = "▸ "
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	return &BranchInputView{input: ti}
}

func (b *BranchInputView) Init() tea.Cmd {
	return textinput.Blink
}

func (b *BranchInputView) Update(msg tea.Msg) (*BranchInputView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "ctrl+o":
			name := strings.TrimSpace(b.input.Value())
			if err := validateBranchName(name); err != nil {
				b.errMsg = err.Error()
				return b, nil
			}
			checkout := msg.String() == "ctrl+o"
			return b, func() tea.Msg { return branchInputDoneMsg{name: name, checkout: checkout} }

		case "esc":
			return b, func() tea.Msg { return branchInputCancelMsg{} }
		}

		// any other keystroke is an edit, so drop the stale complaint
		b.errMsg = ""

	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

// validateBranchName applies the git check-ref-format rules that a
// plain branch name can trip over.
func validateBranchName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("branch name cannot be empty")
	case name == "@":
		return fmt.Errorf("branch name cannot be \"@\"")
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("branch name cannot start with \"-\"")
	case strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/"):
		return fmt.Errorf("branch name cannot start or end with \"/\"")
	case strings.HasPrefix(name, ".") || strings.HasSuffix(name, "."):
		return fmt.Errorf("branch name cannot start or end with \".\"")
	case strings.HasSuffix(name, ".lock"):
		return fmt.Errorf("branch name cannot end with \".lock\"")
	case strings.Contains(name, ".."):
		return fmt.Errorf("branch name cannot contain \"..\"")
	case strings.Contains(name, "//"):
		return fmt.Errorf("branch name cannot contain \"//\"")
	case strings.Contains(name, "@{"):
		return fmt.Errorf("branch name cannot contain \"@{\"")
	case strings.ContainsAny(name, " \t~^:?*[\\"):
		return fmt.Errorf("branch name cannot contain spaces or ~^:?*[\\")
	}
	return nil
}

func (b *BranchInputView) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("170"))

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var out strings.Builder

	out.WriteString(titleStyle.Render("New branch") + "\n\n")
	out.WriteString(b.input.View() + "\n")

	if b.errMsg != "" {
		out.WriteString("\n" + errStyle.Render(b.errMsg) + "\n")
	}

	out.WriteString("\n" + helpStyle.Render("enter: create • ctrl+o: create and switch • esc: cancel"))

	return out.String()
}
