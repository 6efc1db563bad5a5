// Package tui is an interactive front end for running checks: paste or
// load a document, run it against the corpus and browse the
// per-sentence matches.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"plagcheck/internal/domain"
)

// CheckPort is the TUI-facing subset of the checker.
type CheckPort interface {
	CheckDocument(ctx context.Context, doc domain.Document, semantic bool) (*domain.DocumentReport, error)
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	checker  CheckPort
	semantic bool
	input    textinput.Model
	viewport viewport.Model
	report   *domain.DocumentReport
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance.
func New(checker CheckPort, semantic bool) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Path to a .txt document, then Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	mode := "lexical"
	if semantic {
		mode = "hybrid"
	}
	return Model{
		checker:  checker,
		semantic: semantic,
		input:    ti,
		viewport: vp,
		status:   fmt.Sprintf("Ready (%s mode). Enter a document path to check.", mode),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and input boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+summary, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = maxInt(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentMatch())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path != "" {
				m.runCheck(path)
				m.viewport.SetContent(m.renderCurrentMatch())
				return m, nil
			}
		case "down":
			if m.report != nil && len(m.report.Matches) > 0 {
				m.cursor = (m.cursor + 1) % len(m.report.Matches)
				m.viewport.SetContent(m.renderCurrentMatch())
				return m, nil
			}
		case "up":
			if m.report != nil && len(m.report.Matches) > 0 {
				m.cursor = (m.cursor - 1 + len(m.report.Matches)) % len(m.report.Matches)
				m.viewport.SetContent(m.renderCurrentMatch())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) runCheck(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.report = nil
		return
	}
	doc := domain.Document{Name: filepath.Base(path), Content: string(data)}
	rep, err := m.checker.CheckDocument(context.Background(), doc, m.semantic)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.report = nil
		return
	}
	m.report = rep
	m.cursor = 0
	m.status = fmt.Sprintf("%s: %d/%d sentences matched, ratio %.1f%%",
		rep.Name, len(rep.Matches), rep.SentenceCount, rep.PlagiarismRatio*100)
	if rep.Flagged {
		m.status += "  [FLAGGED]"
	}
}

// View renders the TUI layout and current match.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Plagiarism Check")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.renderSummary())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	matches := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + matches + "\n" + input + "\n" + status
}

func (m Model) renderSummary() string {
	if m.report == nil {
		return "No report yet."
	}
	return fmt.Sprintf("%s — %d words, sources: %s",
		m.report.Name, m.report.WordCount, strings.Join(m.report.Sources, ", "))
}

func (m Model) renderCurrentMatch() string {
	if m.report == nil || len(m.report.Matches) == 0 {
		return "No matches yet."
	}
	match := m.report.Matches[m.cursor]
	title := fmt.Sprintf("Match %d/%d  similarity=%.3f  (%s) %s",
		m.cursor+1, len(m.report.Matches), match.FusedScore, match.SourceType, match.SourceTitle)
	body := highlightStyle.Render(match.SentenceText)
	detail := fmt.Sprintf("lexical=%.3f semantic=%.3f", match.LexicalScore, match.SemanticScore)
	if match.SourceURL != "" {
		detail += "\n" + match.SourceURL
	}
	return title + "\n\n" + body + "\n\n" + detail
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
