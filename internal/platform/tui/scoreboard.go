package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/avocash/internal/registry"
	"github.com/vovakirdan/avocash/internal/storage"
)

const (
	maxScores     = 100 // Rows loaded per board
	remoteTimeout = 3 * time.Second
)

var (
	boardTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardNoteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
	boardHelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Leaderboard is what the scoreboard reads. *storage.Store implements it;
// RemoteBoard adapts the shared PostgreSQL leaderboard.
type Leaderboard interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	TopPuzzleStats(limit int) ([]storage.PuzzleStats, error)
}

// RemoteBoard adapts *storage.RemoteStore to Leaderboard. The remote table
// keeps one best score per player, so TopScores ignores the game id.
type RemoteBoard struct {
	Store *storage.RemoteStore
}

func (r RemoteBoard) TopScores(_ string, limit int) ([]storage.ScoreEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()
	users, err := r.Store.TopHighScores(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]storage.ScoreEntry, 0, len(users))
	for _, u := range users {
		if u.HighScore <= 0 {
			continue
		}
		out = append(out, storage.ScoreEntry{GameID: "catch", Player: u.Nickname, Score: u.HighScore, CreatedAt: u.UpdatedAt})
	}
	return out, nil
}

func (r RemoteBoard) TopPuzzleStats(limit int) ([]storage.PuzzleStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()
	users, err := r.Store.TopPuzzle(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]storage.PuzzleStats, 0, len(users))
	for _, u := range users {
		if u.PuzzleMaxLevel <= 0 {
			continue
		}
		out = append(out, storage.PuzzleStats{Player: u.Nickname, MaxLevel: u.PuzzleMaxLevel, TotalTime: u.PuzzleTotalTime, UpdatedAt: u.UpdatedAt})
	}
	return out, nil
}

// ScoreboardKeyMap defines key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Global key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns the bindings shown in the help bar.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Global, k.Back, k.Quit}
}

// FullHelp returns every binding, grouped.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev},
		{k.Global, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next game")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev game")),
		Global: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "local/global")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the catch high scores and the puzzle level board,
// read from the local database or the global one.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	local      Leaderboard
	remote     Leaderboard // nil without a remote DSN
	global     bool
	rows       []table.Row
	loadErr    error
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a new scoreboard model. Either board may be nil.
func NewScoreboardModel(local, remote Leaderboard, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		local:  local,
		remote: remote,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.loadScores()
	return m
}

func (m *ScoreboardModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// columnsFor returns the headers for a game; the puzzle ranks by level.
func columnsFor(gameID string) []string {
	if gameID == "puzzle" {
		return []string{"Rank", "Player", "Level", "Time", "When"}
	}
	return []string{"Rank", "Player", "Score", "When"}
}

// newTable sizes the current game's columns to the window.
func (m *ScoreboardModel) newTable() table.Model {
	titles := columnsFor(m.currentGame())

	// Rank is narrow; the rest share what is left
	columns := make([]table.Column, len(titles))
	columns[0] = table.Column{Title: titles[0], Width: 6}
	rest := max(10, min(18, (m.width-10)/(len(titles)-1)))
	for i := 1; i < len(titles); i++ {
		columns[i] = table.Column{Title: titles[i], Width: rest}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// board returns the leaderboard currently shown.
func (m *ScoreboardModel) board() Leaderboard {
	if m.global && m.remote != nil {
		return m.remote
	}
	return m.local
}

func (m *ScoreboardModel) loadScores() {
	m.rows, m.loadErr = buildRows(m.board(), m.currentGame(), maxScores)
	m.table = m.newTable()
}

// buildRows formats leaderboard entries as table rows.
func buildRows(b Leaderboard, gameID string, limit int) ([]table.Row, error) {
	if b == nil || gameID == "" {
		return nil, nil
	}

	if gameID == "puzzle" {
		stats, err := b.TopPuzzleStats(limit)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(stats))
		for i, st := range stats {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				st.Player,
				humanize.Comma(int64(st.MaxLevel)),
				time.Duration(st.TotalTime * float64(time.Second)).Round(time.Second).String(),
				whenText(st.UpdatedAt),
			}
		}
		return rows, nil
	}

	scores, err := b.TopScores(gameID, limit)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			humanize.Comma(int64(s.Score)),
			whenText(s.CreatedAt),
		}
	}
	return rows, nil
}

func whenText(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.games)
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Global):
			if m.remote != nil {
				m.global = !m.global
				m.loadScores()
			}
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if n > 0 {
				m.gameCursor = (m.gameCursor + 1) % n
				m.loadScores()
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if n > 0 {
				m.gameCursor = (m.gameCursor + n - 1) % n
				m.loadScores()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		return m, nil
	}

	// Scrolling
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.gameCursor].Title
	}
	if m.global {
		title += " (global)"
	}
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = boardActiveTabStyle.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(boardFrameStyle.Render(m.tableContent()), m.width))
	b.WriteString("\n")

	if m.remote == nil {
		b.WriteString(centerText(boardHelpStyle.Render("local scores only"), m.width))
		b.WriteString("\n")
	}
	b.WriteString(boardHelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tableContent renders the table, or a note when there is nothing to show.
func (m ScoreboardModel) tableContent() string {
	switch {
	case m.loadErr != nil:
		return boardNoteStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.rows) == 0 && m.currentGame() == "puzzle":
		return boardNoteStyle.Render("No puzzles solved yet.")
	case len(m.rows) == 0:
		return boardNoteStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard on its own.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(local, remote Leaderboard, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(local, remote, width, height), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
