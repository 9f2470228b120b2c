package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ingestiondto "neuradocs/internal/modules/ingestion/dto"
	querydto "neuradocs/internal/modules/query/dto"
	sessiondto "neuradocs/internal/modules/session/dto"
	apperrors "neuradocs/internal/platform/errors"
	"neuradocs/internal/ui/components"
	"neuradocs/internal/ui/theme"
	ingestionview "neuradocs/internal/ui/views/ingestion"
	queryview "neuradocs/internal/ui/views/query"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type ingestionPort interface {
	SelectFile(ctx context.Context, path string) (ingestiondto.FileOutput, error)
	Submit(ctx context.Context) (ingestiondto.SubmitOutput, error)
	ClearFile(ctx context.Context) error
}

type queryPort interface {
	AskQuestion(ctx context.Context, text string) (querydto.AskOutput, error)
}

type sessionPort interface {
	Snapshot(ctx context.Context) (sessiondto.SnapshotOutput, error)
}

// ─── focus ───────────────────────────────────────────────────────────────────

type focusID int

const (
	focusUpload focusID = iota
	focusQuestion
)

// ─── async messages ──────────────────────────────────────────────────────────

type snapshotMsg struct {
	snapshot sessiondto.SnapshotOutput
	err      error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Focus   key.Binding
	Extract key.Binding
	Ask     key.Binding
	Clear   key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Extract: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "extract pdf")),
		Ask:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "ask")),
		Clear:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear file")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Extract, k.Ask, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Extract, k.Ask, k.Clear},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Extraction and asking run as separate
// commands so either can be in flight while the other is used; the document
// snapshot is reread after every settled command.
type Model struct {
	backendURL string

	session sessionPort

	uploadView ingestionview.Model
	queryView  queryview.Model

	focus    focusID
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

func NewModel(startDir, backendURL string, ingestion ingestionPort, query queryPort, session sessionPort) Model {
	return Model{
		backendURL: backendURL,
		session:    session,
		uploadView: ingestionview.New(ingestion, startDir),
		queryView:  queryview.New(query),
		focus:      focusUpload,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.uploadView.Init(), m.queryView.Init(), m.snapshotCmd())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.status = "snapshot: " + msg.err.Error()
			return m, nil
		}
		m.uploadView.SetSnapshot(msg.snapshot)
		m.queryView.SetSnapshot(msg.snapshot)
		return m, nil

	case ingestionview.SelectedMsg:
		if msg.Err != nil {
			m.status = "select: " + msg.Err.Error()
		} else {
			m.status = "selected " + msg.File.Name
		}
		return m, m.snapshotCmd()

	case ingestionview.ExtractedMsg:
		m.status = extractStatus(msg)
		var cmd tea.Cmd
		m.uploadView, cmd = m.uploadView.Update(msg)
		return m, tea.Batch(cmd, m.snapshotCmd())

	case ingestionview.ClearedMsg:
		if msg.Err != nil {
			m.status = "clear: " + msg.Err.Error()
		} else {
			m.status = "selection cleared"
		}
		return m, m.snapshotCmd()

	case queryview.AnsweredMsg:
		m.status = askStatus(msg)
		var cmd tea.Cmd
		m.queryView, cmd = m.queryView.Update(msg)
		return m, tea.Batch(cmd, m.snapshotCmd())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Ticks, blinks and directory reads go to both panes; each ignores what
	// it does not own.
	var upCmd, qCmd tea.Cmd
	m.uploadView, upCmd = m.uploadView.Update(msg)
	m.queryView, qCmd = m.queryView.Update(msg)
	return m, tea.Batch(upCmd, qCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		return m, m.toggleFocus()
	case key.Matches(msg, m.keys.Extract):
		return m, m.uploadView.Extract()
	case key.Matches(msg, m.keys.Ask):
		return m, m.queryView.Ask()
	case key.Matches(msg, m.keys.Clear):
		return m, m.uploadView.Clear()
	}

	// Plain keys are text while the question editor has focus.
	if m.focus == focusUpload {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	var cmd tea.Cmd
	if m.focus == focusUpload {
		m.uploadView, cmd = m.uploadView.Update(msg)
	} else {
		m.queryView, cmd = m.queryView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(titleBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		left, right := theme.Pane, theme.Pane
		if m.focus == focusUpload {
			left = theme.PaneActive
		} else {
			right = theme.PaneActive
		}
		leftW, rightW := m.paneWidths()
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			left.Width(leftW).Height(contentH-2).Render(m.uploadView.View()),
			right.Width(rightW).Height(contentH-2).Render(m.queryView.View()),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleBar, content, statusBar)
}

func (m Model) renderTitleBar() string {
	bar := theme.Hot.Render("neuradocs") + theme.Muted.Render("  "+m.backendURL)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("tab:pane  ctrl+e:extract  ctrl+s:ask  ?:help  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	name, arg := components.ParseCommand(input)
	switch name {
	case "":
		return m, nil
	case "select":
		if arg == "" {
			m.status = "usage: select <path>"
			return m, nil
		}
		return m, m.uploadView.SelectPath(arg)
	case "extract":
		if arg == "" {
			return m, m.uploadView.Extract()
		}
		return m, tea.Sequence(m.uploadView.SelectPath(arg), m.uploadView.Extract())
	case "ask":
		if m.focus != focusQuestion {
			m.focus = focusQuestion
			m.uploadView.Blur()
			m.queryView.Focus()
		}
		return m, m.queryView.AskText(arg)
	case "clear":
		return m, m.uploadView.Clear()
	case "cd":
		if arg == "" {
			m.status = "usage: cd <dir>"
			return m, nil
		}
		m.status = "browsing " + arg
		return m, m.uploadView.ChangeDir(arg)
	case "status":
		return m, m.snapshotCmd()
	default:
		m.status = "unknown command: " + name
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusUpload {
		m.focus = focusQuestion
		m.uploadView.Blur()
		return m.queryView.Focus()
	}
	m.focus = focusUpload
	m.queryView.Blur()
	m.uploadView.Focus()
	return nil
}

func (m Model) paneWidths() (int, int) {
	// borders and padding take four columns per pane
	usable := m.width - 8
	if usable < 20 {
		usable = 20
	}
	left := usable / 2
	return left, usable - left
}

func (m *Model) propagateSize() {
	leftW, rightW := m.paneWidths()
	h := m.height - 4
	m.uploadView, _ = m.uploadView.Update(tea.WindowSizeMsg{Width: leftW, Height: h})
	m.queryView, _ = m.queryView.Update(tea.WindowSizeMsg{Width: rightW, Height: h})
}

func extractStatus(msg ingestionview.ExtractedMsg) string {
	switch {
	case msg.Err == nil:
		s := fmt.Sprintf("extracted %s: %d chunks in %s", msg.Out.FileName, len(msg.Out.Chunks), msg.Out.Elapsed.Round(time.Millisecond))
		if msg.Out.Degraded {
			s += " (unreadable reply)"
		}
		return s
	case errors.Is(msg.Err, apperrors.ErrSuperseded):
		return "earlier extraction discarded"
	case errors.Is(msg.Err, apperrors.ErrNoFileSelected):
		return "select a PDF first"
	default:
		return msg.Err.Error()
	}
}

func askStatus(msg queryview.AnsweredMsg) string {
	switch {
	case msg.Err == nil:
		return fmt.Sprintf("answered in %s", msg.Out.Elapsed.Round(time.Millisecond))
	case errors.Is(msg.Err, apperrors.ErrSuperseded):
		return "earlier question discarded"
	case errors.Is(msg.Err, apperrors.ErrEmptyQuestion):
		return "type a question first"
	default:
		return msg.Err.Error()
	}
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) snapshotCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := m.session.Snapshot(context.Background())
		return snapshotMsg{snapshot: s, err: err}
	}
}
