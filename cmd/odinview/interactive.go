package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/odin-inspect/inspect"
	"github.com/wippyai/odin-inspect/snapshot"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// node is one visible row of the variable tree.
type node struct {
	value    inspect.Value
	children []*node
	depth    int
	leaf     bool
	expanded bool
}

type interactiveModel struct {
	err      error
	snap     *snapshot.Snapshot
	ins      *inspect.Inspector
	opts     options
	roots    []*node
	rows     []*node
	filter   textinput.Model
	selected int
	offset   int
	height   int
	loaded   bool
}

func newInteractiveModel(o options) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "variable name"
	ti.Prompt = "filter: "
	ti.Width = 40
	return &interactiveModel{opts: o, filter: ti, height: 20}
}

type loadedMsg struct {
	err  error
	snap *snapshot.Snapshot
	ins  *inspect.Inspector
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadSnapshot
}

func (m *interactiveModel) loadSnapshot() tea.Msg {
	snap, ins, err := m.opts.load(context.Background())
	return loadedMsg{err: err, snap: snap, ins: ins}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 1)
		m.scroll()

	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "ctrl+c":
				return m, m.quit()
			case "enter", "esc":
				m.filter.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.refresh()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, m.quit()

		case "/":
			return m, m.filter.Focus()

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}

		case "enter", "right", "l":
			if n := m.current(); n != nil && !n.leaf {
				m.expand(n)
				n.expanded = !n.expanded
				m.refresh()
			}

		case "left", "h":
			if n := m.current(); n != nil && n.expanded {
				n.expanded = false
				m.refresh()
			}
		}
		m.scroll()

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.snap = msg.snap
		m.ins = msg.ins
		for _, v := range m.snap.Variables() {
			m.roots = append(m.roots, m.newNode(v.Value(), 0))
		}
		m.refresh()
	}
	return m, nil
}

func (m *interactiveModel) quit() tea.Cmd {
	if m.snap != nil {
		_ = m.snap.Close(context.Background())
	}
	return tea.Quit
}

func (m *interactiveModel) newNode(v inspect.Value, depth int) *node {
	return &node{
		value: v,
		depth: depth,
		leaf:  !m.ins.Children(v).HasChildren(),
	}
}

// expand materializes the children of n on first use.
func (m *interactiveModel) expand(n *node) {
	if n.children != nil {
		return
	}
	c := m.ins.Children(n.value)
	k := c.NumChildren()
	n.children = make([]*node, k)
	for i := 0; i < k; i++ {
		n.children[i] = m.newNode(c.ChildAt(i), n.depth+1)
	}
}

func (m *interactiveModel) current() *node {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return nil
	}
	return m.rows[m.selected]
}

// refresh flattens the expanded tree into rows.
func (m *interactiveModel) refresh() {
	filter := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.rows = m.rows[:0]
	var walk func(n *node)
	walk = func(n *node) {
		m.rows = append(m.rows, n)
		if !n.expanded {
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	for _, r := range m.roots {
		if filter != "" && !strings.Contains(strings.ToLower(r.value.Name()), filter) {
			continue
		}
		walk(r)
	}
	if m.selected >= len(m.rows) {
		m.selected = max(len(m.rows)-1, 0)
	}
	m.scroll()
}

func (m *interactiveModel) scroll() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Loading snapshot..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Odin Inspector"))
	b.WriteString(" ")
	b.WriteString(m.opts.snapshot)
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString("No variables.\n")
	}
	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		line := m.formatRow(m.rows[i])
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.filter.Focused() || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select • enter/→ expand • ← collapse • / filter • q quit"))
	return b.String()
}

func (m *interactiveModel) formatRow(n *node) string {
	marker := "  "
	switch {
	case n.leaf:
	case n.expanded:
		marker = "▾ "
	default:
		marker = "▸ "
	}
	v := n.value
	return strings.Repeat("  ", n.depth) + marker +
		nameStyle.Render(v.Name()) + ": " +
		typeStyle.Render(inspect.DisplayType(v.Type())) + " = " +
		m.ins.Text(v)
}

func runInteractive(o options) error {
	p := tea.NewProgram(newInteractiveModel(o), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
