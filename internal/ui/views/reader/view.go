package reader

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"

	playback "lumina/internal/modules/playback/domain"
	sessiondomain "lumina/internal/modules/session/domain"
	"lumina/internal/ui/theme"
)

// Ticks follow the display refresh cadence; each one advances the playback
// accumulator by exactly one speed step.
const tickInterval = time.Second / 60

// ─── ports ───────────────────────────────────────────────────────────────────

type SessionPort interface {
	Open(ctx context.Context, source sessiondomain.Source) (*sessiondomain.Session, error)
}

type SummaryPort interface {
	Summarize(ctx context.Context, spoolPath string) string
}

// ─── messages ────────────────────────────────────────────────────────────────

// OpenedMsg is sent when a session has been created (or failed to open).
type OpenedMsg struct {
	Session *sessiondomain.Session
	Err     error
}

// ClosedMsg bubbles up to the app model after the reader has released its
// session, so it can return to the library screen.
type ClosedMsg struct{}

type sessionEventMsg struct {
	ev sessiondomain.Event
	ok bool
}

type tickMsg struct{ epoch uint64 }

type summaryMsg struct{ text string }

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the reading screen: an incrementally filling page viewport plus
// the auto-scroll playback controller. It owns the open session and must
// release it on every exit path.
type Model struct {
	sessions SessionPort
	summary  SummaryPort

	viewport viewport.Model
	spinner  spinner.Model
	progress progress.Model
	renderer *glamour.TermRenderer

	playback *playback.Controller
	session  *sessiondomain.Session
	blocks   []string
	loading  bool
	loadErr  error

	summaryText string
	showSummary bool
	summarizing bool

	width  int
	height int
}

func New(sessions SessionPort, summary SummaryPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		sessions: sessions,
		summary:  summary,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		renderer: r,
		playback: playback.NewController(),
	}
}

// Init is a no-op: the reader is idle until Open is called.
func (m Model) Init() tea.Cmd { return nil }

// Open starts a session over the given byte source and enters Viewing.
func (m *Model) Open(source sessiondomain.Source) tea.Cmd {
	m.reset()
	m.loading = true
	m.playback.Open()
	return tea.Batch(m.openCmd(source), m.spinner.Tick)
}

// Close releases the session and playback state on any exit path, including
// abandonment while pages are still loading.
func (m *Model) Close() tea.Cmd {
	m.playback.Close()
	if m.session != nil {
		m.session.Close()
	}
	m.reset()
	return func() tea.Msg { return ClosedMsg{} }
}

// Active reports whether a document is open (or opening).
func (m Model) Active() bool {
	return m.session != nil || m.loading
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case OpenedMsg:
		if msg.Err != nil {
			m.loading = false
			m.loadErr = msg.Err
			return m, nil
		}
		m.session = msg.Session
		return m, m.waitEventCmd()

	case sessionEventMsg:
		if !msg.ok {
			return m, nil
		}
		if msg.ev.Done {
			m.loading = false
			m.loadErr = msg.ev.Err
			return m, nil
		}
		if msg.ev.Page != nil {
			m.blocks = append(m.blocks, m.renderPageBlock(*msg.ev.Page))
			m.viewport.SetContent(strings.Join(m.blocks, "\n"))
		}
		return m, m.waitEventCmd()

	case tickMsg:
		// A tick scheduled before a pause or close carries a stale epoch and
		// is dropped here without rescheduling.
		if !m.playback.Tick(msg.epoch) {
			return m, nil
		}
		m.viewport.SetYOffset(int(m.playback.Position()))
		return m, m.tickCmd(msg.epoch)

	case summaryMsg:
		m.summarizing = false
		m.summaryText = msg.text
		m.showSummary = true

	case spinner.TickMsg:
		if m.loading || m.summarizing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && m.playback.State() == playback.StateScrolling {
			m.playback.Pause()
			return m, nil
		}

	case tea.KeyMsg:
		if m.showSummary {
			if msg.String() == "s" || msg.String() == "esc" {
				m.showSummary = false
			}
			return m, nil
		}
		switch msg.String() {
		case " ":
			return m, m.togglePlayback()
		case "+", "=":
			m.playback.AdjustSpeed(playback.SpeedStep)
		case "-", "_":
			m.playback.AdjustSpeed(-playback.SpeedStep)
		case "s":
			if m.session != nil && !m.summarizing {
				m.summarizing = true
				return m, tea.Batch(m.summarizeCmd(), m.spinner.Tick)
			}
		default:
			// Any other key while scrolling acts as a tap: pause.
			if m.playback.State() == playback.StateScrolling {
				m.playback.Pause()
				return m, nil
			}
		}
	}

	if m.playback.State() != playback.StateScrolling {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.loadErr != nil:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			theme.Bad.Render("Could not read this document: "+m.loadErr.Error()))
	case m.loading && len(m.blocks) == 0:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading document…")
	case m.showSummary:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			theme.Pane.Width(min(m.width-4, 100)).Render(m.renderSummary()))
	case m.summarizing:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Summarizing…")
	default:
		content = m.viewportAt(contentH)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) reset() {
	m.session = nil
	m.blocks = nil
	m.loading = false
	m.loadErr = nil
	m.summaryText = ""
	m.showSummary = false
	m.summarizing = false
	m.viewport.SetContent("")
	m.viewport.GotoTop()
}

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = m.height - 3
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.progress.Width = m.width - 2
	if m.session != nil {
		// Re-render published pages at the new width.
		m.blocks = m.blocks[:0]
		for _, page := range m.session.Pages() {
			m.blocks = append(m.blocks, m.renderPageBlock(page))
		}
		m.viewport.SetContent(strings.Join(m.blocks, "\n"))
	}
}

func (m *Model) togglePlayback() tea.Cmd {
	switch m.playback.State() {
	case playback.StateScrolling:
		m.playback.Pause()
		return nil
	case playback.StateViewing:
		if m.playback.Play(float64(m.viewport.YOffset)) {
			return m.tickCmd(m.playback.Epoch())
		}
	}
	return nil
}

// viewportAt renders the viewport content at a temporary height without
// mutating the persisted viewport.Height set by resize().
func (m Model) viewportAt(h int) string {
	vp := m.viewport
	vp.Height = h
	return vp.View()
}

func (m Model) renderHeader() string {
	if m.session == nil {
		return theme.Title.Render("Reader") + "\n"
	}
	parts := []string{
		theme.Title.Render(m.session.SourceName),
	}
	if m.loading {
		parts = append(parts, theme.Muted.Render(fmt.Sprintf("loading %d/%d", len(m.blocks), m.session.TotalPages())))
	} else {
		parts = append(parts, theme.Muted.Render(fmt.Sprintf("%d pages", m.session.TotalPages())))
	}
	if m.session.StoredID == "" {
		parts = append(parts, theme.Hot.Render("not saved"))
	}
	parts = append(parts, theme.Muted.Render(fmt.Sprintf("speed %.1f", m.playback.Speed())))
	if m.playback.State() == playback.StateScrolling {
		parts = append(parts, theme.Hot.Render("▶ auto"))
	}
	nav := theme.Muted.Render("  space: play/pause  +/-: speed  s: summary  esc: back")
	return strings.Join(parts, "  ") + nav + "\n"
}

func (m Model) renderFooter() string {
	return m.progress.ViewAs(m.viewport.ScrollPercent())
}

func (m Model) renderSummary() string {
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(m.summaryText); err == nil {
			return rendered
		}
	}
	return m.summaryText
}

// renderPageBlock projects a page bitmap into half-block cells, two pixels
// per terminal row.
func (m Model) renderPageBlock(page sessiondomain.Page) string {
	cols := m.width - 4
	if cols > 120 {
		cols = 120
	}
	if cols < 8 {
		cols = 8
	}
	return renderBitmap(page.Image, cols)
}

func renderBitmap(img image.Image, cols int) string {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return ""
	}
	rows := cols * bounds.Dy() / bounds.Dx()
	if rows < 2 {
		rows = 2
	}
	if rows%2 == 1 {
		rows++
	}
	scaled := image.NewRGBA(image.Rect(0, 0, cols, rows))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Src, nil)

	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(scaled.RGBAAt(x, y)))).
				Background(lipgloss.Color(hexColor(scaled.RGBAAt(x, y+1))))
			sb.WriteString(style.Render("▀"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) openCmd(source sessiondomain.Source) tea.Cmd {
	return func() tea.Msg {
		sess, err := m.sessions.Open(context.Background(), source)
		return OpenedMsg{Session: sess, Err: err}
	}
}

func (m Model) waitEventCmd() tea.Cmd {
	events := m.session.Events()
	return func() tea.Msg {
		ev, ok := <-events
		return sessionEventMsg{ev: ev, ok: ok}
	}
}

func (m Model) tickCmd(epoch uint64) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{epoch: epoch}
	})
}

func (m Model) summarizeCmd() tea.Cmd {
	spool := m.session.SpoolPath()
	return func() tea.Msg {
		return summaryMsg{text: m.summary.Summarize(context.Background(), spool)}
	}
}
