package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lumina/internal/ui/theme"
	libraryview "lumina/internal/ui/views/library"
	readerview "lumina/internal/ui/views/reader"
)

// ─── screens ─────────────────────────────────────────────────────────────────

type screenID int

const (
	screenLibrary screenID = iota
	screenReader
)

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Open    key.Binding
	Import  key.Binding
	Delete  key.Binding
	Play    key.Binding
	Speed   key.Binding
	Summary key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Import:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Play:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Speed:   key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "speed")),
		Summary: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "summary")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Import, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Import, k.Delete},
		{k.Play, k.Speed, k.Summary},
		{k.Back, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns screen routing and the help
// overlay; everything else is delegated to the two screen views, which talk
// to the business layer through their own port interfaces.
type Model struct {
	libView  libraryview.Model
	readView readerview.Model

	screen   screenID
	keys     keyMap
	help     help.Model
	showHelp bool
	status   string
	width    int
	height   int
}

func NewModel(library libraryview.Port, sessions readerview.SessionPort, summary readerview.SummaryPort) Model {
	return Model{
		libView:  libraryview.New(library),
		readView: readerview.New(sessions, summary),
		screen:   screenLibrary,
		keys:     defaultKeys(),
		help:     help.New(),
		status:   "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.libView.Init()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()

	// OpenDocumentMsg is produced by the library view but bubbles up through
	// the top level so we can switch to the reader screen.
	case libraryview.OpenDocumentMsg:
		if msg.Err != nil {
			m.status = "open: " + msg.Err.Error()
			break
		}
		m.screen = screenReader
		m.status = "reading " + msg.Source.Name
		return m, m.readView.Open(msg.Source)

	case readerview.ClosedMsg:
		m.screen = screenLibrary
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.screen == screenLibrary && (m.libView.Filtering() || m.libView.Prompting()) {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			// Quit from anywhere still releases the open session.
			if m.screen == screenReader {
				_ = m.readView.Close()
			}
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "esc":
			if m.screen == screenReader {
				return m, m.readView.Close()
			}
		}
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenLibrary:
		m.libView, cmd = m.libView.Update(msg)
	case screenReader:
		m.readView, cmd = m.readView.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.screen == screenReader:
		content = m.readView.View()
	default:
		content = m.libView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m Model) renderStatusBar() string {
	left := "lumina  " + m.status
	right := theme.Muted.Render("?:help  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 2}
	m.libView, _ = m.libView.Update(sz)
	m.readView, _ = m.readView.Update(sz)
}
