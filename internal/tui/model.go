// Package tui provides the Bubble Tea scansion editor.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiscan/internal/model"
	"github.com/verte-zerg/tuiscan/internal/scansion"
	"github.com/verte-zerg/tuiscan/internal/session"
)

var (
	titleStyle          = lipgloss.NewStyle().Bold(true)
	subtleStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	stressStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorSyllableStyle = stressStyle.Reverse(true)
	emptyPatternStyle   = subtleStyle
	wordStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	agreeStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#1F1F1F")).Background(lipgloss.Color("#99ffbb"))
	disagreeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#1F1F1F")).Background(lipgloss.Color("#ffcccc"))
	messageStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Italic(true)
	footerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Options describe the reader shown in the footer.
type Options struct {
	User     string
	Score    int
	HasScore bool
}

type dispatchedMsg struct {
	receipt session.Receipt
	err     error
}

// Model implements the Bubble Tea scansion editor.
type Model struct {
	sess *session.Session
	log  *slog.Logger
	opts Options

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	ready    bool

	width  int
	height int

	cur       cursor
	lineStart []int
	agreement [][]bool

	message string
	status  string
	failed  bool
}

// NewModel constructs the editor over a loaded session.
func NewModel(sess *session.Session, log *slog.Logger, opts Options) *Model {
	m := &Model{
		sess: sess,
		log:  log.With("component", "tui"),
		opts: opts,
		keys: defaultKeyMap(),
		help: help.New(),
	}
	m.cur = m.firstCursor()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case dispatchedMsg:
		m.handleDispatched(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case key.Matches(msg, m.keys.Up):
		m.moveLine(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveLine(1)
	case key.Matches(msg, m.keys.Left):
		m.moveWord(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveWord(1)
	case key.Matches(msg, m.keys.Syllable):
		if n := m.currentPattern().Syllables(); n > 0 {
			m.cur.syllable = (m.cur.syllable + 1) % n
		}
	case key.Matches(msg, m.keys.Toggle):
		m.edit(m.sess.Toggle(m.coord(), m.cur.syllable))
	case key.Matches(msg, m.keys.Add):
		m.edit(m.sess.AddSyllable(m.coord()))
	case key.Matches(msg, m.keys.Remove):
		m.edit(m.sess.RemoveSyllable(m.coord()))
	case key.Matches(msg, m.keys.Start):
		m.cycleStart()
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		content, _ := m.renderBody()
		return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), m.renderFooter())
}

func (m *Model) coord() scansion.Coord {
	return scansion.Coord{Line: m.cur.line, Word: m.cur.word}
}

func (m *Model) currentPattern() scansion.Pattern {
	p, _ := m.sess.Current().Pattern(m.coord())
	return p
}

func (m *Model) edit(err error) {
	if err != nil {
		m.setStatus(err.Error())
		return
	}
	m.setStatus("")
	m.agreement = nil
	m.clampSyllable()
}

// setStatus replaces the status line; only a failed dispatch renders it as an error.
func (m *Model) setStatus(status string) {
	m.status = status
	m.failed = false
}

func (m *Model) cycleStart() {
	labels := m.sess.Poem().Labels()
	if len(labels) == 0 {
		return
	}
	next := labels[0]
	for i, label := range labels {
		if label == m.sess.Start() {
			next = labels[(i+1)%len(labels)]
			break
		}
	}
	if err := m.sess.SelectStart(next); err != nil {
		m.setStatus(err.Error())
		return
	}
	m.setStatus("Starting from " + next)
	m.agreement = nil
	m.clampSyllable()
}

func (m *Model) submit() tea.Cmd {
	outcome, err := m.sess.Submit(context.Background())
	if err != nil {
		m.log.Error("submit failed", "session_id", m.sess.ID(), "error", err)
		m.setStatus(err.Error())
		m.refresh()
		return nil
	}
	m.message = outcome.Message
	m.setStatus("")
	m.agreement = outcome.Diff.Agreement(m.sess.Current())
	m.refresh()
	if outcome.Dispatch == nil {
		return nil
	}
	return dispatchCmd(outcome.Dispatch)
}

func dispatchCmd(d session.Dispatch) tea.Cmd {
	return func() tea.Msg {
		receipt, err := d(context.Background())
		return dispatchedMsg{receipt: receipt, err: err}
	}
}

func (m *Model) handleDispatched(msg dispatchedMsg) {
	if msg.err != nil {
		m.failed = true
		m.status = "Submission could not be recorded."
		return
	}
	switch {
	case msg.receipt.Scored:
		wasPromoted := m.opts.HasScore && m.opts.Score >= model.PromotionThreshold
		m.opts.Score = msg.receipt.Update.Score
		m.opts.HasScore = true
		if msg.receipt.Update.Promoted && !wasPromoted {
			m.setStatus("Promoted: your next submissions will be recorded as corrections.")
		}
	case msg.receipt.Corrected:
		m.setStatus("Correction recorded.")
	}
}

func (m *Model) firstCursor() cursor {
	s := m.sess.Current()
	for i, line := range s {
		if len(line) > 0 {
			return cursor{line: i}
		}
	}
	return cursor{line: -1}
}

func (m *Model) moveLine(delta int) {
	s := m.sess.Current()
	for i := m.cur.line + delta; i >= 0 && i < len(s); i += delta {
		if len(s[i]) == 0 {
			continue
		}
		m.cur.line = i
		m.cur.word = min(m.cur.word, len(s[i])-1)
		m.cur.syllable = 0
		return
	}
}

func (m *Model) moveWord(delta int) {
	s := m.sess.Current()
	if m.cur.line < 0 {
		return
	}
	next := m.cur.word + delta
	if next >= 0 && next < len(s[m.cur.line]) {
		m.cur.word = next
		m.cur.syllable = 0
		return
	}
	prev := m.cur.line
	m.moveLine(delta)
	if m.cur.line == prev {
		return
	}
	if delta < 0 {
		m.cur.word = len(s[m.cur.line]) - 1
	} else {
		m.cur.word = 0
	}
}

func (m *Model) clampSyllable() {
	n := m.currentPattern().Syllables()
	if m.cur.syllable >= n {
		m.cur.syllable = max(n-1, 0)
	}
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(int(float64(m.width)*0.70), 20)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	if !m.ready {
		m.viewport = viewport.New(width, 1)
		m.viewport.MouseWheelEnabled = true
		m.ready = true
	}
	m.viewport.Width = width
	m.layout()
}

func (m *Model) layout() {
	if !m.ready {
		return
	}
	used := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter())
	m.viewport.Height = max(m.height-used, 1)
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	content, starts := m.renderBody()
	m.lineStart = starts
	m.viewport.SetContent(content)
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.cur.line < 0 || m.cur.line >= len(m.lineStart) {
		return
	}
	top := m.lineStart[m.cur.line]
	bottom := m.viewport.TotalLineCount() - 1
	if m.cur.line+1 < len(m.lineStart) {
		bottom = m.lineStart[m.cur.line+1] - 1
	}
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height + 1)
	}
}

func (m *Model) renderBody() (string, []int) {
	poem := m.sess.Poem()
	return renderPoem(poem.Words, m.sess.Current(), m.cur, m.agreement, m.contentWidth())
}

func (m *Model) renderHeader() string {
	poem := m.sess.Poem()
	title := poem.Title
	switch {
	case m.sess.Own():
		title = "Your poem"
	case title == "":
		title = fmt.Sprintf("Poem #%d", poem.ID)
	}
	if poem.Poet != "" {
		title += " by " + poem.Poet
	}
	return titleStyle.Render(title) + "  " + subtleStyle.Render("Starting from: "+m.sess.Start())
}

func (m *Model) renderFooter() string {
	lines := []string{}
	if m.message != "" {
		lines = append(lines, messageStyle.Render(m.message))
	}
	if m.status != "" {
		style := footerStyle
		if m.failed {
			style = errorStyle
		}
		lines = append(lines, style.Render(m.status))
	}

	segments := []string{}
	if m.opts.User != "" {
		segments = append(segments, "Reader "+m.opts.User)
	} else {
		segments = append(segments, "Anonymous")
	}
	if m.opts.HasScore {
		segments = append(segments, fmt.Sprintf("Score %d", m.opts.Score))
	}
	if m.cur.line >= 0 {
		p := m.currentPattern()
		segments = append(segments, fmt.Sprintf("Line %d Word %d Syllable %d/%d",
			m.cur.line+1, m.cur.word+1, min(m.cur.syllable+1, p.Syllables()), p.Syllables()))
	}
	if m.sess.Submitted() {
		segments = append(segments, "Submitted")
	}
	lines = append(lines, footerStyle.Render(strings.Join(segments, "  ")))
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

