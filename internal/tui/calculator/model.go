// ============================================================================
// meinRECHENWERK (mRW) - Rechenplattform
// ============================================================================
//
// Package:     calculator
// Description: Bubbletea model of the calculator TUI
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package calculator

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mRW/internal/euler/report"
	"github.com/msto63/mRW/internal/euler/service"
)

// ViewState represents the current view
type ViewState int

const (
	ViewList ViewState = iota
	ViewForm
)

// item adapts a calculator to the list component
type item struct {
	calc *service.Calculator
}

func (i item) Title() string       { return i.calc.Title }
func (i item) Description() string { return i.calc.Category + " · " + i.calc.Description }
func (i item) FilterValue() string { return i.calc.Name + " " + i.calc.Title }

// calculatedMsg carries the outcome of one calculation
type calculatedMsg struct {
	calc string
	out  *service.Outcome
	err  error
}

// Model is the main Bubbletea model
type Model struct {
	service *service.Service
	opts    report.Options

	view   ViewState
	width  int
	height int

	list list.Model
	form *form

	// Last successful outcome of the open calculator
	result *service.Outcome
	lines  []report.Line
	err    error
}

// New creates the calculator model for svc
func New(svc *service.Service, opts report.Options) Model {
	calcs := svc.Calculators()
	items := make([]list.Item, len(calcs))
	for i, c := range calcs {
		items[i] = item{calc: c}
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = "meinRECHENWERK"
	l.Styles.Title = TitleStyle
	l.SetShowStatusBar(false)

	return Model{
		service: svc,
		opts:    opts,
		view:    ViewList,
		list:    l,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case calculatedMsg:
		if m.form == nil || m.form.calc.Name != msg.calc {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		lines, err := report.Lines(msg.out, m.opts)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.result, m.lines, m.err = msg.out, lines, nil
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view == ViewForm {
			return m.handleFormKey(msg)
		}
		if msg.String() == "enter" && m.list.FilterState() != list.Filtering {
			if it, ok := m.list.SelectedItem().(item); ok {
				cmd := m.open(it.calc)
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	if m.view == ViewList {
		m.list, cmd = m.list.Update(msg)
	} else if m.form != nil {
		cmd = m.form.update(msg)
	}
	return m, cmd
}

// open switches to the form of calc. The caller must assign the model.
func (m *Model) open(calc *service.Calculator) tea.Cmd {
	m.view = ViewForm
	m.form = newForm(calc)
	m.result, m.lines, m.err = nil, nil, nil
	return textinput.Blink
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewList
		m.form = nil
		m.result, m.lines, m.err = nil, nil, nil
		return m, nil
	case "tab", "down":
		return m, m.form.next()
	case "shift+tab", "up":
		return m, m.form.prev()
	case "ctrl+n":
		return m, m.form.addRow()
	case "ctrl+d":
		return m, m.form.removeRow()
	case "enter":
		return m, m.calculate()
	}
	return m, m.form.update(msg)
}

// calculate runs the open calculator on the current form values
func (m Model) calculate() tea.Cmd {
	svc := m.service
	name := m.form.calc.Name
	values := m.form.values()
	return func() tea.Msg {
		out, err := svc.Calculate(context.Background(), name, values)
		return calculatedMsg{calc: name, out: out, err: err}
	}
}

// View renders the current view
func (m Model) View() string {
	if m.view == ViewForm && m.form != nil {
		return m.renderForm()
	}
	return m.list.View() + "\n" + RenderHelp("Enter: öffnen  /: filtern  q: beenden")
}

func (m Model) renderForm() string {
	var b strings.Builder
	calc := m.form.calc

	b.WriteString(RenderTitle(calc.Title))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(calc.Description))
	b.WriteString("\n\n")

	for i, in := range m.form.inputs {
		style := LabelStyle
		if i == m.form.focus {
			style = FocusedLabelStyle
		}
		label := in.label
		if in.required {
			label += RequiredStyle.Render(" *")
		}
		b.WriteString(style.Render(label))
		b.WriteString(in.model.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(RenderError(m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.lines) > 0 {
		b.WriteString("\n")
		b.WriteString(ResultBoxStyle.Render(renderLines(m.lines)))
		b.WriteString("\n")
	}

	help := "Enter: berechnen  Tab/Shift+Tab: Feld wechseln  Esc: zurück  Ctrl+C: beenden"
	if len(calc.Groups) > 0 {
		help += "  Ctrl+N/Ctrl+D: Zeile hinzufügen/entfernen"
	}
	b.WriteString(RenderHelp(help))
	return b.String()
}

func renderLines(lines []report.Line) string {
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		indent := strings.Repeat("  ", l.Depth)
		if l.Header {
			rows = append(rows, indent+ResultHeaderStyle.Render(l.Label))
			continue
		}
		rows = append(rows, indent+ResultLabelStyle.Render(l.Label+": ")+ResultValueStyle.Render(l.Value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Run starts the calculator TUI
func Run(svc *service.Service, opts report.Options) error {
	p := tea.NewProgram(New(svc, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
