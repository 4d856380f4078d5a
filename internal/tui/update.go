package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akyairhashvil/sprintboard/internal/board"
	"github.com/akyairhashvil/sprintboard/internal/brief"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case storeChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)
	case opDoneMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
		} else {
			m.message = msg.op + " done"
		}
		m.refresh()
		return m, nil
	case briefMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("brief failed: %v", msg.err)
			return m, nil
		}
		draft := brief.ToDraft(msg.brief)
		m.message = "creating " + draft.Title
		return m, m.run("create", func(ctx context.Context) error {
			_, err := m.eng.CreateTask(ctx, draft)
			return err
		})
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Close()
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if next, cmd, ok := m.keys.Handle(m, key); ok {
		return next, cmd
	}

	// Unhandled keys feed the focused input.
	var cmd tea.Cmd
	switch m.mode {
	case ModeCreate:
		m.input, cmd = m.input.Update(msg)
	case ModeSearch:
		m.search, cmd = m.search.Update(msg)
	case ModeBrief:
		m.briefBox, cmd = m.briefBox.Update(msg)
	}
	return m, cmd
}

func defaultKeys() *HandlerRegistry {
	r := NewHandlerRegistry()
	onBoard := []Mode{ModeBoard}
	lists := []Mode{ModeSprints, ModeTrash}

	r.Register(KeyBinding{Keys: []string{"q"}, Description: "quit", Modes: onBoard, Handler: handleQuit})
	r.Register(KeyBinding{Keys: []string{"left", "h"}, Modes: onBoard, Handler: handleColumn(-1)})
	r.Register(KeyBinding{Keys: []string{"right", "l"}, Modes: onBoard, Handler: handleColumn(1)})
	r.Register(KeyBinding{Keys: []string{"up", "k"}, Modes: append(onBoard, lists...), Handler: handleRow(-1)})
	r.Register(KeyBinding{Keys: []string{"down", "j"}, Modes: append(onBoard, lists...), Handler: handleRow(1)})
	r.Register(KeyBinding{Keys: []string{"shift+right", "L"}, Description: "advance", Modes: onBoard, Handler: handleMove(1)})
	r.Register(KeyBinding{Keys: []string{"shift+left", "H"}, Description: "back", Modes: onBoard, Handler: handleMove(-1)})
	r.Register(KeyBinding{Keys: []string{"n"}, Description: "new", Modes: onBoard, Handler: handleEnter(ModeCreate)})
	r.Register(KeyBinding{Keys: []string{"b"}, Description: "brief", Modes: onBoard, Handler: handleEnter(ModeBrief)})
	r.Register(KeyBinding{Keys: []string{"/"}, Description: "search", Modes: onBoard, Handler: handleEnter(ModeSearch)})
	r.Register(KeyBinding{Keys: []string{"s"}, Description: "sprints", Modes: onBoard, Handler: handleEnter(ModeSprints)})
	r.Register(KeyBinding{Keys: []string{"t"}, Description: "trash", Modes: onBoard, Handler: handleEnter(ModeTrash)})
	r.Register(KeyBinding{Keys: []string{"d"}, Description: "delete", Modes: onBoard, Handler: handleDelete})
	r.Register(KeyBinding{Keys: []string{"a"}, Description: "archive", Modes: onBoard, Handler: handleToggleArchive})
	r.Register(KeyBinding{Keys: []string{"R"}, Description: "retry", Modes: onBoard, Handler: handleRetry})
	r.Register(KeyBinding{Keys: []string{"x"}, Description: "dismiss", Modes: onBoard, Handler: handleDismiss})

	r.Register(KeyBinding{Keys: []string{"esc"}, Description: "back", Priority: 10, Handler: handleEscape})
	r.Register(KeyBinding{Keys: []string{"enter"}, Description: "save", Modes: []Mode{ModeCreate}, Handler: handleCreateSubmit})
	r.Register(KeyBinding{Keys: []string{"enter"}, Description: "apply", Modes: []Mode{ModeSearch}, Handler: handleSearchSubmit})
	r.Register(KeyBinding{Keys: []string{"ctrl+s"}, Description: "extract", Modes: []Mode{ModeBrief}, Handler: handleBriefSubmit})
	r.Register(KeyBinding{Keys: []string{"y"}, Description: "confirm", Modes: []Mode{ModeConfirmDelete}, Handler: handleConfirmDelete})
	r.Register(KeyBinding{Keys: []string{"n"}, Description: "cancel", Modes: []Mode{ModeConfirmDelete}, Handler: handleEscape})
	r.Register(KeyBinding{Keys: []string{"enter"}, Description: "activate", Modes: []Mode{ModeSprints}, Handler: handleActivateSprint})
	r.Register(KeyBinding{Keys: []string{"r"}, Description: "restore", Modes: []Mode{ModeTrash}, Handler: handleRestore})
	return r
}

func handleQuit(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	m.Close()
	return m, tea.Quit, true
}

func handleColumn(delta int) KeyHandler {
	return func(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
		m.focusedCol = (m.focusedCol + delta + len(m.columns)) % len(m.columns)
		m.focusedRow = 0
		return m, nil, true
	}
}

func handleRow(delta int) KeyHandler {
	return func(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
		if m.mode == ModeBoard {
			m.focusedRow += delta
		} else {
			m.listIdx += delta
		}
		m.clampFocus()
		return m, nil, true
	}
}

// handleMove moves the focused task one column left or right. Any status may
// follow any other; the keys only pick a neighbour.
func handleMove(delta int) KeyHandler {
	return func(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
		task, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		target := m.focusedCol + delta
		if target < 0 || target >= len(models.Statuses) {
			return m, nil, true
		}
		status := models.Statuses[target]
		m.focusedCol = target
		m.focusedRow = 0
		return m, m.run("move", func(ctx context.Context) error {
			_, err := m.eng.MoveTask(ctx, task.ID, status)
			return err
		}), true
	}
}

func handleEnter(mode Mode) KeyHandler {
	return func(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
		m.mode = mode
		m.listIdx = 0
		m.message = ""
		switch mode {
		case ModeCreate:
			m.input.SetValue("")
			cmd := m.input.Focus()
			return m, cmd, true
		case ModeSearch:
			cmd := m.search.Focus()
			return m, cmd, true
		case ModeBrief:
			m.briefBox.Reset()
			cmd := m.briefBox.Focus()
			return m, cmd, true
		}
		m.clampFocus()
		return m, nil, true
	}
}

func handleEscape(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	if m.mode == ModeBoard {
		if m.filter != (board.TaskFilter{}) {
			m.filter = board.TaskFilter{}
			m.search.SetValue("")
			m.refresh()
			return m, nil, true
		}
		return m, nil, false
	}
	m.input.Blur()
	m.search.Blur()
	m.briefBox.Blur()
	m.mode = ModeBoard
	return m, nil, true
}

func handleCreateSubmit(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	title := strings.TrimSpace(m.input.Value())
	m.input.Blur()
	m.mode = ModeBoard
	if title == "" {
		return m, nil, true
	}
	draft := models.TaskDraft{Title: title}
	return m, m.run("create", func(ctx context.Context) error {
		_, err := m.eng.CreateTask(ctx, draft)
		return err
	}), true
}

func handleSearchSubmit(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	m.filter = board.ParseFilter(m.search.Value())
	m.search.Blur()
	m.mode = ModeBoard
	m.refresh()
	return m, nil, true
}

func handleBriefSubmit(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	text := m.briefBox.Value()
	m.briefBox.Blur()
	m.mode = ModeBoard
	if strings.TrimSpace(text) == "" {
		return m, nil, true
	}
	m.message = "extracting brief..."
	return m, m.extract(text), true
}

func handleDelete(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	if _, ok := m.selected(); !ok {
		return m, nil, true
	}
	m.mode = ModeConfirmDelete
	return m, nil, true
}

func handleConfirmDelete(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	m.mode = ModeBoard
	task, ok := m.selected()
	if !ok {
		return m, nil, true
	}
	actor := m.actorID
	return m, m.run("delete", func(ctx context.Context) error {
		return m.eng.DeleteTask(ctx, task.ID, actor)
	}), true
}

func handleActivateSprint(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	if m.listIdx >= len(m.sprints) {
		return m, nil, true
	}
	sprint := m.sprints[m.listIdx]
	m.mode = ModeBoard
	return m, m.run("activate "+sprint.Name, func(ctx context.Context) error {
		return m.eng.SetActiveSprint(ctx, sprint.ID)
	}), true
}

func handleRestore(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	if m.listIdx >= len(m.trash) {
		return m, nil, true
	}
	task := m.trash[m.listIdx]
	return m, m.run("restore", func(ctx context.Context) error {
		_, err := m.eng.RestoreTask(ctx, task.ID)
		return err
	}), true
}

func handleToggleArchive(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	m.showArchive = !m.showArchive
	return m, nil, true
}

func handleRetry(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	if m.eng.Err() == nil {
		return m, nil, true
	}
	return m, m.run("retry", m.eng.Retry), true
}

func handleDismiss(m BoardModel, _ string) (BoardModel, tea.Cmd, bool) {
	m.eng.ClearErr()
	m.message = ""
	return m, nil, true
}
