package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type deleteConfirmedMsg struct {
	branch string
	force  bool
}

type deleteCancelledMsg struct{}

// ConfirmDeleteView asks for confirmation before deleting a branch.
type ConfirmDeleteView struct {
	branch string
	form   *huh.Form
	choice string
}

func NewConfirmDeleteView(branch string) *ConfirmDeleteView {
	v := &ConfirmDeleteView{
		branch: branch,
		choice: "cancel",
	}

	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Delete branch?").
				Description(branch).
				Options(
					huh.NewOption("Cancel", "cancel"),
					huh.NewOption("Delete", "delete"),
					huh.NewOption("Force delete (even if unmerged)", "force"),
				).
				Value(&v.choice),
		),
	)

	return v
}

func (v *ConfirmDeleteView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *ConfirmDeleteView) Update(msg tea.Msg) (*ConfirmDeleteView, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" {
			return v, func() tea.Msg { return deleteCancelledMsg{} }
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		branch := v.branch
		choice := v.choice
		return v, func() tea.Msg {
			if choice == "cancel" {
				return deleteCancelledMsg{}
			}
			return deleteConfirmedMsg{branch: branch, force: choice == "force"}
		}
	}

	return v, cmd
}

func (v *ConfirmDeleteView) View() string {
	return v.form.View()
}
