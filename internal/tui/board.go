// Package tui renders the interactive three-column board.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/app"
	"taskboard/internal/model"
	"taskboard/internal/task"
)

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(30)
	focusedColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("62"))
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("62"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).Bold(true)
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

type keymap struct {
	Left, Right     key.Binding
	Up, Down        key.Binding
	MoveL, MoveR    key.Binding
	Delete, Refresh key.Binding
	Quit            key.Binding
}

var keys = keymap{
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h", "prev column")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l", "next column")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
	MoveL:   key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "move left")),
	MoveR:   key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "move right")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// opDoneMsg reports a store operation finishing (err nil on success).
type opDoneMsg struct{ err error }

type boardModel struct {
	ctx context.Context
	app *app.App

	columns [3][]model.Task
	col     int    // focused column
	idx     [3]int // cursor per column
	errMsg  string
}

func newBoardModel(ctx context.Context, a *app.App) boardModel {
	m := boardModel{ctx: ctx, app: a}
	m.reload()
	return m
}

// reload rebuilds the column slices from the store snapshot.
func (m *boardModel) reload() {
	for i, status := range model.Statuses {
		m.columns[i] = m.app.Tasks.ByStatus(status)
		if m.idx[i] >= len(m.columns[i]) {
			m.idx[i] = len(m.columns[i]) - 1
		}
		if m.idx[i] < 0 {
			m.idx[i] = 0
		}
	}
}

func (m boardModel) selected() (model.Task, bool) {
	col := m.columns[m.col]
	if len(col) == 0 {
		return model.Task{}, false
	}
	return col[m.idx[m.col]], true
}

func (m boardModel) Init() tea.Cmd { return nil }

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case opDoneMsg:
		if msg.err != nil {
			m.errMsg = m.app.Tasks.Err()
		} else {
			m.errMsg = ""
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Left):
			if m.col > 0 {
				m.col--
			}
		case key.Matches(msg, keys.Right):
			if m.col < 2 {
				m.col++
			}
		case key.Matches(msg, keys.Up):
			if m.idx[m.col] > 0 {
				m.idx[m.col]--
			}
		case key.Matches(msg, keys.Down):
			if m.idx[m.col] < len(m.columns[m.col])-1 {
				m.idx[m.col]++
			}
		case key.Matches(msg, keys.MoveR):
			if t, ok := m.selected(); ok && m.col < 2 {
				return m, m.moveCmd(t.ID, model.Statuses[m.col+1])
			}
		case key.Matches(msg, keys.MoveL):
			if t, ok := m.selected(); ok && m.col > 0 {
				return m, m.moveCmd(t.ID, model.Statuses[m.col-1])
			}
		case key.Matches(msg, keys.Delete):
			if t, ok := m.selected(); ok {
				return m, func() tea.Msg {
					return opDoneMsg{err: m.app.Tasks.Delete(m.ctx, t.ID)}
				}
			}
		case key.Matches(msg, keys.Refresh):
			return m, func() tea.Msg {
				return opDoneMsg{err: m.app.Tasks.Fetch(m.ctx)}
			}
		}
	}
	return m, nil
}

func (m boardModel) moveCmd(id string, status model.Status) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.app.Tasks.UpdateTask(m.ctx, id, task.Update{Status: &status})}
	}
}

func (m boardModel) View() string {
	rendered := make([]string, 0, 3)
	for i, status := range model.Statuses {
		var body string
		title := titleStyle.Render(fmt.Sprintf("%s (%d)", columnTitle(status), len(m.columns[i])))
		if len(m.columns[i]) == 0 {
			body = mutedStyle.Render("(empty)")
		}
		for j, t := range m.columns[i] {
			line := t.Title
			if t.Priority == model.PriorityHigh {
				line += " !"
			}
			if i == m.col && j == m.idx[i] {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			if body != "" {
				body += "\n"
			}
			body += line
		}
		style := columnStyle
		if i == m.col {
			style = focusedColumnStyle
		}
		rendered = append(rendered, style.Render(title+"\n\n"+body))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.errMsg != "" {
		view += "\n" + errStyle.Render("error: "+m.errMsg)
	}
	view += "\n" + helpStyle.Render("h/l column  k/j task  H/L move  d delete  r refresh  q quit")
	return view
}

func columnTitle(status model.Status) string {
	switch status {
	case model.StatusTodo:
		return "To Do"
	case model.StatusInProgress:
		return "In Progress"
	case model.StatusDone:
		return "Done"
	}
	return string(status)
}

// Run starts the board and blocks until the user quits.
func Run(ctx context.Context, a *app.App) error {
	p := tea.NewProgram(newBoardModel(ctx, a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
