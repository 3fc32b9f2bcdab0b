package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noamzr/recdeck/internal/candidate"
	"github.com/noamzr/recdeck/internal/prefs"
	"github.com/noamzr/recdeck/internal/state"
)

// PollController is the slice of the background poller the UI drives:
// terminal focus maps to pause/resume so a hidden dashboard stops hitting
// the backend.
type PollController interface {
	Pause()
	Resume()
}

// matchBands are the match-score filter steps, in cycling order. The empty
// band means no filter.
var matchBands = []string{"", "90-100", "80-89", "70-79", "below 70"}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Poller    PollController
	PollTick  time.Duration
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	poller    PollController
	prefs     prefs.Prefs
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Table state
	cursorRow int
	cursorID  string

	// Search input
	searchInput textinput.Model
	searching   bool

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	// GetTheme falls back for unknown names; record what actually won so
	// later saves persist a real theme.
	userPrefs := opts.Prefs
	theme := GetTheme(userPrefs.Theme)
	userPrefs.Theme = theme.Name

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "name, email, phone, campaign..."
	input.CharLimit = 120

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		poller:      opts.Poller,
		prefs:       userPrefs,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		theme:       theme,
		searchInput: input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.FocusMsg:
		// Terminal regained focus: resume the cadence; the poller fires
		// an immediate sync on resume.
		if m.poller != nil {
			m.poller.Resume()
		}
		return m, fetchSnapshotCmd(m.store)

	case tea.BlurMsg:
		if m.poller != nil {
			m.poller.Pause()
		}
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.syncCursor()
		return m, nil

	case refreshDoneMsg, actionDoneMsg:
		// Action errors already live in the store's error field; just
		// pick up the resulting state.
		return m, fetchSnapshotCmd(m.store)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Search input captures everything but commit/cancel
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		// Cycle theme and persist the choice
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		_ = prefs.Save(m.prefsPath, m.prefs)
		return m, nil

	case "/":
		m.searching = true
		m.searchInput.SetValue(m.snapshot.Filters.Search)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "esc":
		if m.snapshot.SelectedID != "" {
			m.store.Select("")
			return m, fetchSnapshotCmd(m.store)
		}
		if m.snapshot.Filters.Active() {
			m.store.ClearFilters()
			return m, m.refreshCmd()
		}
		return m, nil

	case "j", "down":
		m.moveCursor(1)
		return m, nil

	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	case "g", "home":
		m.setCursor(0)
		return m, nil

	case "G", "end":
		m.setCursor(len(m.snapshot.Candidates) - 1)
		return m, nil

	case "enter":
		if c := m.cursorCandidate(); c != nil {
			// Viewing acknowledges the new/changed badges
			m.store.Select(c.ID)
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil

	case "f":
		m.store.SetStatusFilter(nextStatusFilter(m.snapshot.Filters.Status))
		return m, m.refreshCmd()

	case "y":
		m.store.SetJobTypeFilter(nextJobTypeFilter(m.snapshot.Filters.JobType))
		return m, m.refreshCmd()

	case "m":
		m.store.SetMatchFilter(nextMatchBand(m.snapshot.Filters.Match))
		return m, m.refreshCmd()

	case "v":
		next := state.ViewDeleted
		if m.snapshot.View == state.ViewDeleted {
			next = state.ViewHome
		}
		m.store.SetView(next)
		// Remember which population was open for the next run.
		m.prefs.View = string(next)
		_ = prefs.Save(m.prefsPath, m.prefs)
		return m, m.refreshCmd()

	case "r":
		return m, m.refreshCmd()

	case "b":
		return m, m.actionCmd(m.store.TriggerInterview)

	case "B":
		return m, m.actionCmd(m.store.TriggerClassification)

	case "x":
		if c := m.cursorCandidate(); c != nil && m.snapshot.View == state.ViewHome {
			id := c.ID
			return m, m.actionCmd(func(ctx context.Context) error {
				return m.store.DeleteCandidate(ctx, id)
			})
		}
		return m, nil

	case "u":
		if c := m.cursorCandidate(); c != nil && m.snapshot.View == state.ViewDeleted {
			id := c.ID
			return m, m.actionCmd(func(ctx context.Context) error {
				return m.store.RestoreCandidate(ctx, id)
			})
		}
		return m, nil

	case "1", "2", "3", "4":
		if c := m.cursorCandidate(); c != nil {
			statuses := candidate.AllStatuses()
			idx := int(msg.String()[0] - '1')
			if idx < len(statuses) {
				return m, m.updateStatusCmd(c.ID, statuses[idx])
			}
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey processes input while the search bar is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.store.SetSearchQuery(strings.TrimSpace(m.searchInput.Value()))
		return m, m.refreshCmd()

	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleTick pulls the latest snapshot and schedules the next tick. The
// poller syncs with the backend on its own; the UI tick only reads.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// moveCursor moves the table cursor and remembers the candidate under it,
// so refreshes that reorder the list keep the cursor on the same person.
func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursorRow + delta)
}

func (m *Model) setCursor(row int) {
	count := len(m.snapshot.Candidates)
	if count == 0 {
		m.cursorRow = 0
		m.cursorID = ""
		return
	}
	if row < 0 {
		row = 0
	}
	if row > count-1 {
		row = count - 1
	}
	m.cursorRow = row
	m.cursorID = m.snapshot.Candidates[row].ID
}

// syncCursor re-anchors the cursor after a snapshot refresh: follow the
// remembered id when it still exists, clamp otherwise.
func (m *Model) syncCursor() {
	if m.cursorID != "" {
		for i := range m.snapshot.Candidates {
			if m.snapshot.Candidates[i].ID == m.cursorID {
				m.cursorRow = i
				return
			}
		}
	}
	m.setCursor(m.cursorRow)
}

func (m Model) cursorCandidate() *candidate.Candidate {
	if m.cursorRow < 0 || m.cursorRow >= len(m.snapshot.Candidates) {
		return nil
	}
	return &m.snapshot.Candidates[m.cursorRow]
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// Filter cycling

func nextStatusFilter(current candidate.Status) candidate.Status {
	statuses := candidate.AllStatuses()
	if current == "" {
		return statuses[0]
	}
	for i, s := range statuses {
		if s == current {
			if i == len(statuses)-1 {
				return "" // back to all
			}
			return statuses[i+1]
		}
	}
	return ""
}

func nextJobTypeFilter(current candidate.JobType) candidate.JobType {
	jobTypes := candidate.AllJobTypes()
	if current == candidate.JobTypeUnknown {
		return jobTypes[0]
	}
	for i, jt := range jobTypes {
		if jt == current {
			if i == len(jobTypes)-1 {
				return candidate.JobTypeUnknown // back to all
			}
			return jobTypes[i+1]
		}
	}
	return candidate.JobTypeUnknown
}

func nextMatchBand(current string) string {
	for i, band := range matchBands {
		if band == current {
			return matchBands[(i+1)%len(matchBands)]
		}
	}
	return matchBands[0]
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type refreshDoneMsg struct{ err error }

type actionDoneMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// refreshCmd re-queries the backend with the current filters in the
// foreground (loading flag, visible errors).
func (m Model) refreshCmd() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		var err error
		if store.Snapshot().Filters.Active() {
			err = store.Search(ctx)
		} else {
			err = store.FetchAll(ctx)
		}
		return refreshDoneMsg{err}
	}
}

// actionCmd runs a store mutation off the Update loop.
func (m Model) actionCmd(fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{fn(ctx)}
	}
}

// updateStatusCmd requests a transition and, when the backend accepts it,
// stamps the changed-badge annotation.
func (m Model) updateStatusCmd(id string, status candidate.Status) tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		err := store.UpdateStatus(ctx, id, status)
		if err == nil {
			store.MarkStatusChanged(id)
		}
		return actionDoneMsg{err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
