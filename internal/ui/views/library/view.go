package library

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	libdto "lumina/internal/modules/library/dto"
	sessiondomain "lumina/internal/modules/session/domain"
	"lumina/internal/ui/components"
	"lumina/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the library use-case.
type Port interface {
	Refresh(ctx context.Context) ([]libdto.DocumentOutput, error)
	OpenExisting(ctx context.Context, id string) (libdto.OpenOutput, error)
	DeleteExisting(ctx context.Context, id string) error
	ImportFile(ctx context.Context, path string) (libdto.ImportOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type DocumentsLoadedMsg struct {
	Documents []libdto.DocumentOutput
	Err       error
}

type DeletedMsg struct {
	ID  string
	Err error
}

type ImportedMsg struct {
	Out libdto.ImportOutput
	Err error
}

// OpenDocumentMsg bubbles up to the app model, which switches to the reader
// screen and opens a session over the carried byte source.
type OpenDocumentMsg struct {
	Source sessiondomain.Source
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type documentItem struct {
	doc libdto.DocumentOutput
}

func (i documentItem) Title() string { return i.doc.Name }
func (i documentItem) Description() string {
	return fmt.Sprintf("%s · %s", i.doc.SizeLabel, humanize.Time(i.doc.CreatedAt))
}
func (i documentItem) FilterValue() string { return i.doc.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	spinner spinner.Model
	prompt  components.Prompt
	loading bool
	status  string
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Library"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		spinner: sp,
		prompt:  components.NewPrompt("Import document", "path to a PDF…"),
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The import prompt intercepts all input while open.
	if m.prompt.Visible() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-1)
		m.prompt.SetWidth(min(m.width-4, 80))

	case components.PromptSubmitMsg:
		if msg.Value == "" {
			return m, nil
		}
		m.status = "importing " + msg.Value
		return m, m.importCmd(msg.Value)

	case components.PromptCancelMsg:
		m.status = ""

	case DocumentsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = "library load failed: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Documents))
		for i, d := range msg.Documents {
			items[i] = documentItem{doc: d}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case DeletedMsg:
		if msg.Err != nil {
			// The entry stays in the list; the delete is retryable.
			m.status = "delete failed: " + msg.Err.Error()
			return m, nil
		}
		m.removeItem(msg.ID)
		m.status = "deleted"

	case ImportedMsg:
		if msg.Err != nil {
			m.status = "import failed: " + msg.Err.Error()
			return m, nil
		}
		source := sessiondomain.Source{Name: msg.Out.Name, Data: msg.Out.Data}
		if msg.Out.Stored {
			source.StoredID = msg.Out.Document.ID
			cmds = append(cmds, m.list.InsertItem(0, documentItem{doc: msg.Out.Document}))
			m.status = "imported " + msg.Out.Document.Name
		} else {
			m.status = "not saved: opening a read-only copy for this run"
		}
		cmds = append(cmds, func() tea.Msg { return OpenDocumentMsg{Source: source} })
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(documentItem); ok {
				m.status = "opening " + item.doc.Name
				return m, m.openCmd(item.doc.ID)
			}
		case "d":
			if item, ok := m.list.SelectedItem().(documentItem); ok {
				return m, m.deleteCmd(item.doc.ID)
			}
		case "i":
			return m, m.prompt.Open()
		case "r":
			m.loading = true
			return m, tea.Batch(m.refreshCmd(), m.spinner.Tick)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading library…")
	}
	if m.prompt.Visible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.prompt.View())
	}
	status := ""
	if m.status != "" {
		status = theme.Muted.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), status)
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Prompting reports whether the import overlay is open.
func (m Model) Prompting() bool {
	return m.prompt.Visible()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) removeItem(id string) {
	for i, item := range m.list.Items() {
		if doc, ok := item.(documentItem); ok && doc.doc.ID == id {
			m.list.RemoveItem(i)
			return
		}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.port.Refresh(context.Background())
		return DocumentsLoadedMsg{Documents: docs, Err: err}
	}
}

func (m Model) openCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.OpenExisting(context.Background(), id)
		if err != nil {
			return OpenDocumentMsg{Err: err}
		}
		return OpenDocumentMsg{Source: sessiondomain.Source{
			Name:     out.Name,
			StoredID: out.ID,
			Data:     out.Data,
		}}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.port.DeleteExisting(context.Background(), id)
		return DeletedMsg{ID: id, Err: err}
	}
}

func (m Model) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ImportFile(context.Background(), path)
		return ImportedMsg{Out: out, Err: err}
	}
}
