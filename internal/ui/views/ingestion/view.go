package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ingestiondto "neuradocs/internal/modules/ingestion/dto"
	sessiondto "neuradocs/internal/modules/session/dto"
	"neuradocs/internal/ui/theme"
)

const (
	chunksPlaceholder = "No chunks yet."
	busyLabel         = "Extracting..."
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	SelectFile(ctx context.Context, path string) (ingestiondto.FileOutput, error)
	Submit(ctx context.Context) (ingestiondto.SubmitOutput, error)
	ClearFile(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type SelectedMsg struct {
	File ingestiondto.FileOutput
	Err  error
}

// ExtractedMsg settles one extract command.
type ExtractedMsg struct {
	Out ingestiondto.SubmitOutput
	Err error
}

type ClearedMsg struct{ Err error }

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the upload pane (file picker) plus the chunk list. The picker only
// offers .pdf files; the filter is a convenience, not validation.
type Model struct {
	port     Port
	picker   filepicker.Model
	chunks   viewport.Model
	spinner  spinner.Model
	snapshot sessiondto.SnapshotOutput
	pending  int
	focused  bool
	width    int
	height   int
}

func New(port Port, startDir string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf"}
	fp.CurrentDirectory = startDir
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = 8

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{
		port:    port,
		picker:  fp,
		chunks:  viewport.New(0, 0),
		spinner: sp,
		focused: true,
	}
	m.chunks.SetContent(m.renderChunks())
	return m
}

func (m Model) Init() tea.Cmd { return m.picker.Init() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.chunks.SetContent(m.renderChunks())
		return m, nil

	case ExtractedMsg:
		if m.pending > 0 {
			m.pending--
		}
		return m, nil

	case spinner.TickMsg:
		if m.Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			var cmd tea.Cmd
			m.chunks, cmd = m.chunks.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		return m, tea.Batch(cmd, m.SelectPath(path))
	}
	return m, cmd
}

func (m Model) View() string {
	upload := []string{theme.Title.Render("Upload PDF"), m.picker.View(), m.renderSelection()}

	chunkHeader := theme.Title.Render(m.chunkHeader())
	body := m.chunks.View()
	if m.Busy() {
		body = lipgloss.Place(m.chunks.Width, m.chunks.Height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+busyLabel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(upload, "\n"), "", chunkHeader, body)
}

func (m Model) SelectPath(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := m.port.SelectFile(context.Background(), path)
		return SelectedMsg{File: file, Err: err}
	}
}

// Extract submits the selected file. Submitting again while busy supersedes
// the earlier attempt.
func (m *Model) Extract() tea.Cmd {
	m.pending++
	return tea.Batch(m.extractCmd(), m.spinner.Tick)
}

func (m Model) Clear() tea.Cmd {
	return func() tea.Msg {
		return ClearedMsg{Err: m.port.ClearFile(context.Background())}
	}
}

// ChangeDir points the picker at dir and rereads it.
func (m *Model) ChangeDir(dir string) tea.Cmd {
	m.picker.CurrentDirectory = dir
	return m.picker.Init()
}

func (m *Model) SetSnapshot(s sessiondto.SnapshotOutput) {
	m.snapshot = s
	m.chunks.SetContent(m.renderChunks())
	m.chunks.GotoTop()
}

func (m *Model) Focus() { m.focused = true }

func (m *Model) Blur() { m.focused = false }

func (m Model) Busy() bool { return m.pending > 0 || m.snapshot.Ingestion.Busy }

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.chunks.Width = m.width
	// picker, title, selection, gap, chunk header
	m.chunks.Height = m.height - m.picker.Height - 5
	if m.chunks.Height < 1 {
		m.chunks.Height = 1
	}
}

// chunkHeader leaves out the count while busy, since the shown chunks belong
// to the attempt being replaced.
func (m Model) chunkHeader() string {
	if m.Busy() {
		return "Extracted Chunks"
	}
	return fmt.Sprintf("Extracted Chunks (%d)", len(m.snapshot.Chunks))
}

func (m Model) renderSelection() string {
	if !m.snapshot.HasFile {
		return theme.Muted.Render("No file selected. enter: choose  ctrl+e: extract")
	}
	f := m.snapshot.File
	line := theme.Hot.Render(f.Name) + theme.Muted.Render(" "+humanSize(f.Size))
	if f.Pages > 0 {
		line += theme.Muted.Render(fmt.Sprintf(" %d pages", f.Pages))
	}
	if msg := m.snapshot.Ingestion.Message; msg != "" && !m.Busy() {
		line += "  " + theme.Status(m.snapshot.Ingestion.Status, msg)
	}
	return line
}

func (m Model) renderChunks() string {
	if len(m.snapshot.Chunks) == 0 {
		return theme.Muted.Render(chunksPlaceholder)
	}
	width := m.width - 2
	if width < 10 {
		width = 10
	}
	parts := make([]string, 0, len(m.snapshot.Chunks))
	for i, c := range m.snapshot.Chunks {
		label := theme.Muted.Render(fmt.Sprintf("#%d", i+1))
		parts = append(parts, label+"\n"+theme.Chunk.Width(width).Render(c))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) extractCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Submit(context.Background())
		return ExtractedMsg{Out: out, Err: err}
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
