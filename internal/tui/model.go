// Package tui provides the terminal user interface for stagehand: the
// time-by-room schedule grid with mouse-driven drag, resize and placement.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stagehandapp/stagehand/internal/api"
	"github.com/stagehandapp/stagehand/internal/cache"
	"github.com/stagehandapp/stagehand/internal/config"
	"github.com/stagehandapp/stagehand/internal/event"
	"github.com/stagehandapp/stagehand/internal/schedule"
	"github.com/stagehandapp/stagehand/internal/tui/commands"
	"github.com/stagehandapp/stagehand/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalSessionForm    // New session creation
	ModalSessionDetail  // View existing session
	ModalEditContent    // Edit title/description
	ModalConfirmDelete
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	client  *api.Client
	store   *cache.Store
	config  *config.Config
	eventID string

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Schedule state
	metrics    schedule.Metrics
	rng        schedule.TimeRange
	rooms      []*event.Room
	cache      *schedule.SessionCache
	dispatcher *schedule.Dispatcher
	engine     *schedule.Engine
	eventName  string

	// Gesture state: the engine owns the active gesture, the model only
	// keeps the latest preview transform for rendering.
	preview       schedule.Preview
	previewActive bool

	// Hover placement preview for empty grid space.
	hoverRoom   int
	hoverMinute float64
	hoverActive bool

	// Selection (keyboard navigation)
	selectedID string

	// Modal state
	mode        Mode
	modalType   ModalType
	modalTarget *event.Session     // session being viewed/edited/deleted
	draft       event.SessionDraft // pending creation
	formTitle   textinput.Model
	formDesc    textinput.Model
	formFocus   int // 0=title, 1=description

	// Layout
	width  int
	height int
	layout GridLayout

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time
	loading    bool
	offline    bool // rendering from a snapshot
	fetchedAt  time.Time

	now func() time.Time
}

// New creates a new TUI model.
func New(client *api.Client, store *cache.Store, cfg *config.Config, eventID string) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	formTitle := textinput.New()
	formTitle.Placeholder = "Session title"
	formTitle.CharLimit = 256
	formTitle.Width = 40
	formDesc := textinput.New()
	formDesc.Placeholder = "Description"
	formDesc.CharLimit = 1024
	formDesc.Width = 40

	metrics := cfg.Metrics()
	rng := schedule.ComputeTimeRange(nil, time.Now)

	m := &Model{
		client:    client,
		store:     store,
		config:    cfg,
		eventID:   eventID,
		theme:     t,
		styles:    styles,
		metrics:   metrics,
		rng:       rng,
		cache:     schedule.NewSessionCache(nil),
		engine:    schedule.NewEngine(metrics, nil, rng),
		formTitle: formTitle,
		formDesc:  formDesc,
		loading:   true,
		now:       time.Now,
	}
	m.dispatcher = schedule.NewDispatcher(client, m.cache, eventID)
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return commands.LoadSchedule(m.client, m.store, m.eventID)
}

// setSchedule installs a freshly loaded schedule: room column order, visible
// range, session cache, and the interaction engine's view of all three.
func (m *Model) setSchedule(sched *event.Schedule) {
	m.eventName = sched.Event.Name
	m.rooms = schedule.OrderRooms(sched.Rooms)
	m.cache.Replace(sched.Sessions)
	m.engine.SetRooms(m.rooms)
	m.refreshRange()
	if m.selectedID != "" && m.cache.Get(m.selectedID) == nil {
		m.selectedID = ""
	}
}

// refreshRange re-derives the visible time range and grid layout from the
// current session set. Must run after anything that changes the set, or a
// session moved past the old range edge would render nowhere.
func (m *Model) refreshRange() {
	m.rng = schedule.ComputeTimeRange(m.cache.Sessions(), m.now)
	m.engine.SetRange(m.rng)
	scroll := m.layout.Scroll
	m.layout = computeLayout(m.width, m.height, len(m.rooms), m.rng, m.metrics)
	m.layout.Scroll = m.layout.ClampScroll(scroll)
}

// roomAt returns the room at the given column index, or nil.
func (m *Model) roomAt(i int) *event.Room {
	if i < 0 || i >= len(m.rooms) {
		return nil
	}
	return m.rooms[i]
}

// selected returns the currently selected session, or nil.
func (m *Model) selected() *event.Session {
	if m.selectedID == "" {
		return nil
	}
	return m.cache.Get(m.selectedID)
}

// Run starts the TUI.
func Run(client *api.Client, store *cache.Store, cfg *config.Config, eventID string) error {
	return RunWithDebug(client, store, cfg, eventID, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(client *api.Client, store *cache.Store, cfg *config.Config, eventID string, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(client, store, cfg, eventID)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
