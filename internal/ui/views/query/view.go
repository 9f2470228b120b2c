package query

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	querydto "neuradocs/internal/modules/query/dto"
	sessiondto "neuradocs/internal/modules/session/dto"
	"neuradocs/internal/ui/theme"
)

const (
	answerPlaceholder = "Ask a question to get an answer."
	busyLabel         = "Thinking..."
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	AskQuestion(ctx context.Context, text string) (querydto.AskOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// AnsweredMsg settles one ask command.
type AnsweredMsg struct {
	Out querydto.AskOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model holds the question editor and the answer pane. Answer text and flow
// status come from the shared document snapshot.
type Model struct {
	port     Port
	input    textarea.Model
	answer   viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	snapshot sessiondto.SnapshotOutput
	pending  int
	focused  bool
	width    int
	height   int
}

func New(port Port) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask something about the document…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(4)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		input:    ta,
		answer:   viewport.New(0, 0),
		spinner:  sp,
		renderer: r,
	}
}

func (m Model) Init() tea.Cmd { return textarea.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.answer.SetContent(m.renderAnswer())
		return m, nil

	case AnsweredMsg:
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
			m.answer, cmd = m.answer.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := theme.Title.Render("Ask a Question")
	answerHeader := theme.Title.Render("AI Answer")
	if m.snapshot.Query.Message != "" && !m.Busy() {
		answerHeader += "  " + theme.Status(m.snapshot.Query.Status, m.snapshot.Query.Message)
	}
	body := m.answer.View()
	if m.Busy() {
		body = lipgloss.Place(m.answer.Width, m.answer.Height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+busyLabel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.input.View(), "", answerHeader, body)
}

// Ask sends the editor's text. An empty editor is still sent to the use case,
// which rejects it without a request.
func (m *Model) Ask() tea.Cmd {
	return m.AskText(m.input.Value())
}

// AskText sends text as the question and mirrors it in the editor.
func (m *Model) AskText(text string) tea.Cmd {
	if m.input.Value() != text {
		m.input.SetValue(text)
	}
	m.pending++
	return tea.Batch(m.askCmd(text), m.spinner.Tick)
}

// SetSnapshot replaces the rendered document state.
func (m *Model) SetSnapshot(s sessiondto.SnapshotOutput) {
	m.snapshot = s
	m.answer.SetContent(m.renderAnswer())
	m.answer.GotoTop()
}

func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// Busy reports whether an ask started from this view has not settled yet.
func (m Model) Busy() bool { return m.pending > 0 || m.snapshot.Query.Busy }

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.input.SetWidth(m.width)
	m.answer.Width = m.width
	// header, editor, gap, answer header
	m.answer.Height = m.height - m.input.Height() - 3
	if m.answer.Height < 1 {
		m.answer.Height = 1
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) renderAnswer() string {
	answer := m.snapshot.Answer
	if strings.TrimSpace(answer) == "" {
		return theme.Muted.Render(answerPlaceholder)
	}
	if m.snapshot.Query.Status == "failed" {
		return theme.Failure.Render(answer)
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(answer); err == nil {
			return rendered
		}
	}
	return answer
}

func (m Model) askCmd(text string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.AskQuestion(context.Background(), text)
		return AnsweredMsg{Out: out, Err: err}
	}
}
