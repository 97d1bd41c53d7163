package watch

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bluetrax/bluetrax/internal/devclass"
	"github.com/bluetrax/bluetrax/internal/record"
)

// Messages for async feed consumption
type recordMsg struct{ rec record.Record }
type feedClosedMsg struct{}

// watchKeyMap defines key bindings for the watch screen
type watchKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

var watchKeys = watchKeyMap{
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "stop scan and quit")),
}

var titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// deviceEntry aggregates everything seen for one address.
type deviceEntry struct {
	addr     string
	major    string
	minor    string
	rssi     string
	count    int
	lastSeen string
}

// Model is the bubbletea model for the live device table.
type Model struct {
	feed   *Feed
	onQuit func()

	table   table.Model
	help    help.Model
	devices map[string]*deviceEntry
	order   []string
	cycles  int
}

// NewModel builds the watch screen. onQuit is invoked once when the user
// asks to leave, before the program exits; it should request a scan stop.
func NewModel(feed *Feed, onQuit func()) Model {
	columns := []table.Column{
		{Title: "Address", Width: 17},
		{Title: "Major", Width: 13},
		{Title: "Minor", Width: 30},
		{Title: "RSSI", Width: 5},
		{Title: "Seen", Width: 5},
		{Title: "Last", Width: 15},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(16),
	)

	return Model{
		feed:    feed,
		onQuit:  onQuit,
		table:   t,
		help:    help.New(),
		devices: make(map[string]*deviceEntry),
	}
}

func waitForRecord(feed *Feed) tea.Cmd {
	return func() tea.Msg {
		rec, ok := <-feed.Records()
		if !ok {
			return feedClosedMsg{}
		}
		return recordMsg{rec: rec}
	}
}

// Init starts consuming the feed.
func (m Model) Init() tea.Cmd {
	return waitForRecord(m.feed)
}

// Update handles key presses and incoming records.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, watchKeys.Quit) {
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 5)
		m.help.Width = msg.Width

	case recordMsg:
		m.apply(msg.rec)
		m.table.SetRows(m.rows())
		return m, waitForRecord(m.feed)

	case feedClosedMsg:
		// the scan loop is gone; nothing more will arrive
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the title, the device table, and the help line.
func (m Model) View() string {
	title := titleStyle.Render(fmt.Sprintf(
		"bluetrax watch: %d device(s), %d cycle(s)", len(m.devices), m.cycles))
	return title + "\n" + m.table.View() + "\n" + m.help.View(watchKeys)
}

func (m *Model) apply(rec record.Record) {
	switch r := rec.(type) {
	case record.CycleComplete:
		m.cycles++
	case record.Discovery:
		m.observe(r.Addr, r.Class, "", r.Time)
	case record.DiscoveryWithSignal:
		m.observe(r.Addr, r.Class, strconv.Itoa(int(r.RSSI)), r.Time)
	}
}

func (m *Model) observe(addr record.Addr, class [3]byte, rssi string, ts record.Timestamp) {
	keyStr := addr.String()
	entry, ok := m.devices[keyStr]
	if !ok {
		entry = &deviceEntry{addr: keyStr}
		m.devices[keyStr] = entry
		m.order = append(m.order, keyStr)
	}

	entry.major, entry.minor = devclass.Classify(devclass.Major(class), devclass.Minor(class))
	if rssi != "" {
		entry.rssi = rssi
	}
	entry.count++
	entry.lastSeen = ts.Time().Format("15:04:05.000000")
}

func (m *Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.order))
	for _, keyStr := range m.order {
		e := m.devices[keyStr]
		rows = append(rows, table.Row{
			e.addr, e.major, e.minor, e.rssi, strconv.Itoa(e.count), e.lastSeen,
		})
	}
	return rows
}

// Run drives the watch UI until the user quits or the feed closes.
func Run(feed *Feed, onQuit func()) error {
	program := tea.NewProgram(NewModel(feed, onQuit), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
