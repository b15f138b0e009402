// Package ui renders the interactive board. Keyboard moves stand in for
// the pointer drag of a graphical client: shifting the selected task to
// another column issues the same (taskID, destination) intent.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kanbandesk/kanbandesk/internal/board"
	"github.com/kanbandesk/kanbandesk/models"
	"github.com/kanbandesk/kanbandesk/store"
)

const columnWidth = 24

// tasksMsg carries a live-query redelivery into the program loop.
type tasksMsg []models.Task

// BoardModel is the bubbletea model for the five-column board.
type BoardModel struct {
	svc *board.Service
	hub *store.Hub
	sub *store.Subscription

	columns map[models.TaskStatus][]models.Task
	col     int // selected column index into models.AllStatuses
	row     int // selected row within the column

	input  textinput.Model
	adding bool

	updates  chan []models.Task
	err      error
	width    int
	quitting bool
}

// NewBoardModel builds the board over the service and its live hub.
func NewBoardModel(svc *board.Service, hub *store.Hub) *BoardModel {
	input := textinput.New()
	input.Placeholder = "Task title"
	input.CharLimit = 120
	input.Width = columnWidth - 4

	return &BoardModel{
		svc:     svc,
		hub:     hub,
		columns: make(map[models.TaskStatus][]models.Task),
		input:   input,
		updates: make(chan []models.Task, 16),
	}
}

// Init subscribes the live query and starts listening for redeliveries.
func (m *BoardModel) Init() tea.Cmd {
	sub, err := store.Subscribe(m.hub, "board-view",
		[]store.Collection{store.CollectionTasks},
		func(ctx context.Context) ([]models.Task, error) { return m.svc.ListTasks(ctx) },
		m.enqueue,
	)
	if err != nil {
		m.err = err
		return tea.Quit
	}
	m.sub = sub
	return m.waitForUpdate()
}

// enqueue hands a delivery to the program loop. Delivery happens on the
// mutating goroutine, which may be the Update handler itself, so the
// send must never block: under pressure the stale snapshot is dropped.
func (m *BoardModel) enqueue(tasks []models.Task) {
	for {
		select {
		case m.updates <- tasks:
			return
		default:
			select {
			case <-m.updates:
			default:
			}
		}
	}
}

func (m *BoardModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return tasksMsg(<-m.updates)
	}
}

// Update handles key input and live-query redeliveries.
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksMsg:
		m.setTasks(msg)
		return m, m.waitForUpdate()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.sub != nil {
				m.sub.Cancel()
			}
			return m, tea.Quit

		case "left", "h":
			if m.col > 0 {
				m.col--
				m.clampRow()
			}
		case "right", "l":
			if m.col < len(models.AllStatuses)-1 {
				m.col++
				m.clampRow()
			}
		case "up", "k":
			if m.row > 0 {
				m.row--
			}
		case "down", "j":
			if m.row < len(m.selectedColumn())-1 {
				m.row++
			}

		case "H", "shift+left":
			if m.col > 0 {
				m.moveSelected(models.AllStatuses[m.col-1])
			}
		case "L", "shift+right":
			if m.col < len(models.AllStatuses)-1 {
				m.moveSelected(models.AllStatuses[m.col+1])
			}
		case "1", "2", "3", "4", "5":
			idx := int(msg.String()[0] - '1')
			m.moveSelected(models.AllStatuses[idx])

		case "x", "delete":
			if task, ok := m.selectedTask(); ok {
				m.err = m.svc.DeleteTask(context.Background(), task.ID)
			}

		case "a":
			m.adding = true
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}
	return m, nil
}

// updateInput drives the quick-add prompt. Enter creates the task in the
// selected column; esc abandons it.
func (m *BoardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		ctx := context.Background()
		task, err := m.svc.CreateTask(ctx, title, "")
		if err == nil {
			dest := models.AllStatuses[m.col]
			if dest != task.Status {
				err = m.svc.MoveTask(ctx, task.ID, dest)
			}
		}
		m.err = err
		return m, nil

	case "esc", "ctrl+c":
		m.adding = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *BoardModel) setTasks(tasks []models.Task) {
	columns := make(map[models.TaskStatus][]models.Task, len(models.AllStatuses))
	for _, t := range tasks {
		columns[t.Status] = append(columns[t.Status], t)
	}
	m.columns = columns
	m.clampRow()
}

func (m *BoardModel) selectedColumn() []models.Task {
	return m.columns[models.AllStatuses[m.col]]
}

func (m *BoardModel) selectedTask() (models.Task, bool) {
	col := m.selectedColumn()
	if m.row >= len(col) {
		return models.Task{}, false
	}
	return col[m.row], true
}

func (m *BoardModel) clampRow() {
	if n := len(m.selectedColumn()); m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// moveSelected issues the drop intent for the task under the cursor.
// The live query redelivers the board; no manual refresh happens here.
func (m *BoardModel) moveSelected(dest models.TaskStatus) {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	m.err = m.svc.MoveTask(context.Background(), task.ID, dest)
}

// View renders the five columns side by side.
func (m *BoardModel) View() string {
	if m.quitting {
		return ""
	}

	rendered := make([]string, 0, len(models.AllStatuses))
	for i, status := range models.AllStatuses {
		rendered = append(rendered, m.renderColumn(i, status))
	}
	boardRow := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	footer := StyleSubtle.Render("h/l columns · j/k tasks · H/L or 1-5 move · a add · x delete · q quit")
	if m.adding {
		footer = "Add to " + models.AllStatuses[m.col].Title() + ": " + m.input.View()
	} else if m.err != nil {
		footer = StyleError.Render(m.err.Error())
	}
	return boardRow + "\n" + footer + "\n"
}

func (m *BoardModel) renderColumn(idx int, status models.TaskStatus) string {
	tasks := m.columns[status]

	var sb strings.Builder
	sb.WriteString(ColumnTitleStyle(status).Render(fmt.Sprintf("%s (%d)", status.Title(), len(tasks))))
	sb.WriteString("\n")

	for row, t := range tasks {
		title := t.Title
		if len(title) > columnWidth-4 {
			title = title[:columnWidth-5] + "…"
		}
		line := "  " + title
		if idx == m.col && row == m.row {
			line = StyleCardSelected.Render("> " + title)
		} else {
			line = StyleCard.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(tasks) == 0 {
		sb.WriteString(StyleSubtle.Render("  —"))
		sb.WriteString("\n")
	}

	frame := StyleColumn
	if idx == m.col {
		frame = StyleColumnActive
	}
	return frame.Width(columnWidth).Render(sb.String())
}
