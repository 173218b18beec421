package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBranchName(t *testing.T) {
	valid := []string{
		"feature/login",
		"fix-123",
		"release/v1.2.0",
		"wip",
	}
	for _, name := range valid {
		assert.NoError(t, validateBranchName(name), name)
	}

	invalid := []string{
		"",
		"@",
		"-flag",
		"/leading",
		"trailing/",
		".hidden",
		"trailing.",
		"refs.lock",
		"a..b",
		"a//b",
		"a@{b}",
		"has space",
		"has~tilde",
		"has:colon",
		"has?mark",
		"has*glob",
		"has[bracket",
		"has\\slash",
	}
	for _, name := range invalid {
		assert.Error(t, validateBranchName(name), "%q should be rejected", name)
	}
}

func TestBranchInputRejectsInvalidName(t *testing.T) {
	b := NewBranchInputView()
	b.input.SetValue("bad..name")

	b, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd, "an invalid name must not be handed off")
	assert.NotEmpty(t, b.errMsg)

	// the next edit clears the complaint
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Empty(t, b.errMsg)
}

func TestBranchInputAcceptsValidName(t *testing.T) {
	b := NewBranchInputView()
	b.input.SetValue("  feature/login  ")

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(branchInputDoneMsg)
	require.True(t, ok)
	assert.Equal(t, "feature/login", msg.name, "surrounding whitespace is trimmed")
	assert.False(t, msg.checkout)
}

func TestBranchInputCreateAndSwitch(t *testing.T) {
	b := NewBranchInputView()
	b.input.SetValue("feature/login")

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	require.NotNil(t, cmd)

	msg, ok := cmd().(branchInputDoneMsg)
	require.True(t, ok)
	assert.Equal(t, "feature/login", msg.name)
	assert.True(t, msg.checkout)
}

func TestBranchInputCancel(t *testing.T) {
	b := NewBranchInputView()

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	_, ok := cmd().(branchInputCancelMsg)
	assert.True(t, ok)
}
