// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionConfirmed indicates the user confirmed a selection.
	ActionConfirmed
	// ActionAborted indicates the user aborted without exporting.
	ActionAborted
)

// SelectionResult holds the result of a TUI note selection.
type SelectionResult struct {
	Action SelectionAction
	Notes  []string
}

type noteItem struct {
	path string
}

func (i noteItem) Title() string       { return i.path }
func (i noteItem) Description() string { return "" }
func (i noteItem) FilterValue() string { return i.path }

type itemStyles struct {
	normal   lipgloss.Style
	cursor   lipgloss.Style
	checked  lipgloss.Style
	checkbox lipgloss.Style
}

func newItemStyles() itemStyles {
	return itemStyles{
		normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("237")),
		checked: lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")),
		checkbox: lipgloss.NewStyle().
			Foreground(lipgloss.Color("110")),
	}
}

type noteDelegate struct {
	styles  itemStyles
	checked *map[string]bool
}

func (d noteDelegate) Height() int                         { return 1 }
func (d noteDelegate) Spacing() int                        { return 0 }
func (d noteDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d noteDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	note, ok := item.(noteItem)
	if !ok {
		return
	}

	box := "[ ]"
	line := d.styles.normal
	if (*d.checked)[note.path] {
		box = "[x]"
		line = d.styles.checked
	}
	if idx == m.Index() {
		line = d.styles.cursor
	}

	_, _ = fmt.Fprint(w, d.styles.checkbox.Render(box)+" "+line.Render(note.path))
}

type model struct {
	list    list.Model
	checked map[string]bool
	result  SelectionResult
}

func newModel(notes []string) *model {
	items := make([]list.Item, len(notes))
	for i, note := range notes {
		items[i] = noteItem{path: note}
	}

	checked := make(map[string]bool)
	delegate := noteDelegate{styles: newItemStyles(), checked: &checked}

	l := list.New(items, delegate, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.DisableQuitKeybindings()

	return &model{
		list:    l,
		checked: checked,
		result:  SelectionResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			if note, ok := m.list.SelectedItem().(noteItem); ok {
				m.checked[note.path] = !m.checked[note.path]
			}
			return m, nil
		case "a":
			for _, item := range m.list.Items() {
				if note, ok := item.(noteItem); ok {
					m.checked[note.path] = true
				}
			}
			return m, nil
		case "enter":
			m.result = SelectionResult{
				Action: ActionConfirmed,
				Notes:  m.selection(),
			}
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.result = SelectionResult{Action: ActionAborted}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// selection returns checked notes in list order, not toggle order.
func (m *model) selection() []string {
	var notes []string
	for _, item := range m.list.Items() {
		if note, ok := item.(noteItem); ok && m.checked[note.path] {
			notes = append(notes, note.path)
		}
	}
	return notes
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("Select notes to export (%d checked)", len(m.selection())))
	help := helpStyle.Render("Up/Down navigate | Space toggle | a all | Enter export | q abort")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectNotes presents an interactive multi-select over vault notes.
func SelectNotes(notes []string) (SelectionResult, error) {
	if len(notes) == 0 {
		return SelectionResult{Action: ActionConfirmed}, nil
	}

	m := newModel(notes)
	finalModel, err := runProgram(m)
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
