package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lumina/internal/ui/theme"
)

// PromptSubmitMsg is emitted when the user confirms the input.
type PromptSubmitMsg struct{ Value string }

// PromptCancelMsg is emitted when the user presses esc.
type PromptCancelMsg struct{}

var promptStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Peach).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(0, 1)

// Prompt is a one-line input overlay backed by bubbles/textinput, used for
// the import-path dialog.
type Prompt struct {
	input   textinput.Model
	title   string
	visible bool
	width   int
}

func NewPrompt(title, placeholder string) Prompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	return Prompt{input: ti, title: title}
}

// Visible reports whether the prompt is currently shown.
func (p Prompt) Visible() bool { return p.visible }

// Open shows the prompt, clears the input, and returns the focus command.
func (p *Prompt) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Prompt) SetWidth(w int) { p.width = w }

func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PromptCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PromptSubmitMsg{Value: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Prompt) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.title) + "\n")
	sb.WriteString("> " + p.input.View())

	w := p.width
	if w < 20 {
		w = 64
	}
	return promptStyle.Width(w - 2).Render(sb.String())
}
