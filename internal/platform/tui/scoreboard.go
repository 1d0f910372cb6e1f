package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const (
	maxScores     = 100
	maxRuns       = 50
	tabTitleWidth = 12
	chromeHeight  = 10 // title, tabs, stats, borders and help
	dateLayout    = "Jan 02 15:04"
)

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbStatsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	sbFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	sbHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextLevel  key.Binding
	PrevLevel  key.Binding
	ToggleView key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevLevel, k.NextLevel, k.ToggleView, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.PrevLevel, k.NextLevel, k.ToggleView},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		NextLevel:  key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next level")),
		PrevLevel:  key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev level")),
		ToggleView: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "scores/runs")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the high scores or the recent runs of one level
// at a time, with a strip of level tabs above the table.
type ScoreboardModel struct {
	store  *storage.Store
	games  []registry.GameInfo
	cursor int

	showRuns bool
	scores   []storage.ScoreEntry
	runs     []storage.Run
	stats    *storage.GameStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		games:  scoreboardGames(store),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// scoreboardGames lists registered games plus any game that has scores on
// record but is not registered now (e.g. a level from another directory).
func scoreboardGames(store *storage.Store) []registry.GameInfo {
	games := registry.List()
	if store == nil {
		return games
	}

	ids, err := store.GamesWithScores()
	if err != nil {
		return games
	}

	known := make(map[string]bool, len(games))
	for _, g := range games {
		known[g.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			games = append(games, registry.GameInfo{ID: id, Title: id})
		}
	}
	return games
}

// levelID strips the game family prefix from a registry ID.
func levelID(gameID string) string {
	if _, after, ok := strings.Cut(gameID, ":"); ok {
		return after
	}
	return gameID
}

// formatTicks renders a tick count at the 60Hz reference rate as m:ss.
func formatTicks(ticks uint64) string {
	secs := ticks / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// current returns the selected game, if any.
func (m *ScoreboardModel) current() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.cursor], true
}

// reload queries the store for the selected level and rebuilds the table.
// Query errors leave the view empty.
func (m *ScoreboardModel) reload() {
	m.scores, m.runs, m.stats = nil, nil, nil

	if g, ok := m.current(); ok && m.store != nil {
		if m.showRuns {
			m.runs, _ = m.store.RecentRuns(levelID(g.ID), maxRuns)
		} else {
			m.scores, _ = m.store.TopScores(g.ID, maxScores)
		}
		m.stats, _ = m.store.GetGameStats(g.ID)
	}

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeHeight, 3)),
		table.WithStyles(tableStyles()),
	)
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.showRuns {
		return []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Score", Width: 8},
			{Title: "Lives", Width: 6},
			{Title: "Time", Width: 6},
			{Title: "Result", Width: 7},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 14},
	}
}

func (m *ScoreboardModel) rows() []table.Row {
	if m.showRuns {
		rows := make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			result := "lost"
			if r.Cleared {
				result = "clear"
			}
			rows[i] = table.Row{
				r.CreatedAt.Format(dateLayout),
				strconv.Itoa(r.Score),
				strconv.Itoa(r.LivesLeft),
				formatTicks(r.Ticks),
				result,
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{"#" + strconv.Itoa(i+1), strconv.Itoa(s.Score), s.CreatedAt.Format(dateLayout)}
	}
	return rows
}

func tableStyles() table.Styles {
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
	return s
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, m.keys.ToggleView):
			m.showRuns = !m.showRuns
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-chromeHeight, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// moveCursor selects the level delta tabs away, wrapping around.
func (m *ScoreboardModel) moveCursor(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if m.showRuns {
		title = "RECENT RUNS"
	}
	g, ok := m.current()
	if ok {
		title += " - " + g.Title
	}

	var b strings.Builder
	b.WriteString(sbTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(sbStatsStyle.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")
	b.WriteString(sbFrameStyle.Render(m.renderTable()))
	b.WriteString("\n")
	b.WriteString(sbHelpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs shows every level, or only the selected one between arrows
// when the strip does not fit.
func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		name := levelID(g.ID)
		if len([]rune(name)) > tabTitleWidth {
			name = string([]rune(name)[:tabTitleWidth-1]) + "."
		}
		if i == m.cursor {
			tabs[i] = sbActiveStyle.Render(name)
		} else {
			tabs[i] = sbTabStyle.Render(name)
		}
	}

	strip := strings.Join(tabs, "")
	if lipgloss.Width(strip) > m.width-4 && len(m.games) > 0 {
		return "< " + levelID(m.games[m.cursor].ID) + " >"
	}
	return strip
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no games played"
	}
	return fmt.Sprintf("%d played · best %d · avg %.0f · last %s",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.LastPlayed.Format(dateLayout))
}

func (m ScoreboardModel) renderTable() string {
	switch {
	case m.showRuns && len(m.runs) == 0:
		return sbEmptyStyle.Render("No runs recorded yet.\nFinish a level to log one!")
	case !m.showRuns && len(m.scores) == 0:
		return sbEmptyStyle.Render("No scores recorded yet.\nPlay the level to set a high score!")
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

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
