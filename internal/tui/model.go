// Package tui is the terminal board: four status columns over the local
// store, driven entirely through the engine's operations.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/akyairhashvil/sprintboard/internal/board"
	"github.com/akyairhashvil/sprintboard/internal/brief"
	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/engine"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/store"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeBoard Mode = iota
	ModeCreate
	ModeSearch
	ModeBrief
	ModeConfirmDelete
	ModeSprints
	ModeTrash
)

// --- Messages ---

type storeChangedMsg struct{}

type opDoneMsg struct {
	op  string
	err error
}

type briefMsg struct {
	brief models.Brief
	err   error
}

// Options configures a board.
type Options struct {
	Extractor brief.Extractor
	ActorID   string
	Now       func() time.Time
}

// --- Model ---
type BoardModel struct {
	ctx       context.Context
	eng       *engine.Engine
	store     *store.Store
	extractor brief.Extractor
	actorID   string
	now       func() time.Time
	keys      *HandlerRegistry

	mode        Mode
	filter      board.TaskFilter
	columns     [][]models.Task
	archived    []models.Task
	sprints     []models.Sprint
	trash       []models.Task
	focusedCol  int
	focusedRow  int
	listIdx     int
	showArchive bool

	input    textinput.Model
	search   textinput.Model
	briefBox textarea.Model
	progress progress.Model

	changes <-chan store.Change
	cancel  func()

	message       string
	width, height int
}

// NewBoardModel builds a board over eng and subscribes to its store.
func NewBoardModel(ctx context.Context, eng *engine.Engine, opts Options) BoardModel {
	ti := textinput.New()
	ti.Placeholder = "New task title..."
	ti.CharLimit = config.MaxTitleLength
	ti.Width = 50
	si := textinput.New()
	si.Placeholder = `designer:Mila sprint:"Sprint 24" logo`
	si.Width = 50
	ta := textarea.New()
	ta.Placeholder = "Paste a brief, ctrl+s to extract"
	ta.CharLimit = config.MaxBriefLength
	ta.SetWidth(60)
	ta.SetHeight(8)

	if opts.Extractor == nil {
		opts.Extractor = brief.Heuristic{}
	}
	if opts.ActorID == "" {
		opts.ActorID = config.DefaultActorID
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	changes, cancel := eng.Store().Subscribe()
	m := BoardModel{
		ctx:       ctx,
		eng:       eng,
		store:     eng.Store(),
		extractor: opts.Extractor,
		actorID:   opts.ActorID,
		now:       opts.Now,
		keys:      defaultKeys(),
		input:     ti,
		search:    si,
		briefBox:  ta,
		progress:  progress.New(progress.WithDefaultGradient()),
		changes:   changes,
		cancel:    cancel,
	}
	m.progress.Width = 30
	m.refresh()
	return m
}

func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}

// Close releases the store subscription.
func (m BoardModel) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// waitForChange blocks for one store change and coalesces any already queued.
func waitForChange(ch <-chan store.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		for {
			select {
			case _, ok := <-ch:
				if !ok {
					return storeChangedMsg{}
				}
			default:
				return storeChangedMsg{}
			}
		}
	}
}

// run executes an engine operation off the update loop.
func (m BoardModel) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m BoardModel) extract(text string) tea.Cmd {
	ctx, ex := m.ctx, m.extractor
	return func() tea.Msg {
		b, err := ex.Extract(ctx, text)
		return briefMsg{brief: b, err: err}
	}
}

// refresh rebuilds every derived view of the store.
func (m *BoardModel) refresh() {
	visible, archived := m.eng.VisibleTasks(m.filter)
	m.columns = make([][]models.Task, len(models.Statuses))
	for i, status := range models.Statuses {
		m.columns[i] = board.Column(visible, status)
	}
	m.archived = archived
	m.sprints = m.store.Sprints()
	m.trash = m.store.DeletedTasks()
	m.clampFocus()
}

func (m *BoardModel) clampFocus() {
	m.focusedCol = util.Clamp(m.focusedCol, 0, len(m.columns)-1)
	n := len(m.columns[m.focusedCol])
	if m.focusedRow >= n {
		m.focusedRow = n - 1
	}
	if m.focusedRow < 0 {
		m.focusedRow = 0
	}
	var listLen int
	switch m.mode {
	case ModeSprints:
		listLen = len(m.sprints)
	case ModeTrash:
		listLen = len(m.trash)
	}
	if m.listIdx >= listLen {
		m.listIdx = listLen - 1
	}
	if m.listIdx < 0 {
		m.listIdx = 0
	}
}

// selected returns the focused task.
func (m BoardModel) selected() (models.Task, bool) {
	col := m.columns[m.focusedCol]
	if m.focusedRow < 0 || m.focusedRow >= len(col) {
		return models.Task{}, false
	}
	return col[m.focusedRow], true
}

// activeSprint is the label shown in the header.
func (m BoardModel) activeSprint() string {
	for _, s := range m.sprints {
		if s.IsActive {
			return s.Name
		}
	}
	return config.BacklogSprintLabel
}
