package calculator

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mRW/internal/euler/service"
)

// input is one text field of a calculator form
type input struct {
	key      string
	label    string
	group    string
	row      int
	required bool
	model    textinput.Model
}

// form holds the inputs of the selected calculator. Group fields are
// expanded into one input per row.
type form struct {
	calc   *service.Calculator
	rows   map[string]int
	inputs []input
	focus  int
}

func newForm(calc *service.Calculator) *form {
	f := &form{calc: calc, rows: make(map[string]int)}
	for _, g := range calc.Groups {
		rows := g.Rows
		if rows <= 0 {
			rows = 1
		}
		f.rows[g.Name] = rows
	}
	f.build(nil)
	return f
}

// build recreates the inputs, keeping the values already typed
func (f *form) build(values map[string]string) {
	f.inputs = f.inputs[:0]
	for _, field := range f.calc.Fields {
		f.inputs = append(f.inputs, newInput(field.Name, field.Label, "", 0, field, values))
	}
	for _, g := range f.calc.Groups {
		for i := 0; i < f.rows[g.Name]; i++ {
			for _, field := range g.Fields {
				label := g.Label + " " + strconv.Itoa(i+1)
				if field.Label != "" {
					label += " " + field.Label
				}
				f.inputs = append(f.inputs, newInput(field.Key(g.Name, i), label, g.Name, i, field, values))
			}
		}
	}
	if f.focus >= len(f.inputs) {
		f.focus = len(f.inputs) - 1
	}
	if f.focus < 0 {
		f.focus = 0
	}
	f.setFocus(f.focus)
}

func newInput(key, label, group string, row int, field service.Field, values map[string]string) input {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = 32
	switch {
	case field.Default != "":
		ti.Placeholder = field.Default
	case field.Help != "":
		ti.Placeholder = field.Help
	}
	if v, ok := values[key]; ok {
		ti.SetValue(v)
	}
	return input{key: key, label: label, group: group, row: row, required: field.Required, model: ti}
}

func (f *form) setFocus(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].model.Focus()
			continue
		}
		f.inputs[j].model.Blur()
	}
	return cmd
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

// addRow appends a row to the group of the focused input, or to the first
// group when the focused input is a plain field
func (f *form) addRow() tea.Cmd {
	if len(f.calc.Groups) == 0 {
		return nil
	}
	group := f.calc.Groups[0].Name
	if len(f.inputs) > 0 && f.inputs[f.focus].group != "" {
		group = f.inputs[f.focus].group
	}
	values := f.values()
	f.rows[group]++
	f.build(values)
	return nil
}

// removeRow drops the row of the focused input and moves the rows below it
// up by one. A group keeps at least one row.
func (f *form) removeRow() tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	in := f.inputs[f.focus]
	if in.group == "" || f.rows[in.group] <= 1 {
		return nil
	}

	var group service.Group
	for _, g := range f.calc.Groups {
		if g.Name == in.group {
			group = g
		}
	}

	values := f.values()
	last := f.rows[in.group] - 1
	for i := in.row; i <= last; i++ {
		for _, field := range group.Fields {
			key := field.Key(group.Name, i)
			delete(values, key)
			if i == last {
				continue
			}
			if v, ok := values[field.Key(group.Name, i+1)]; ok {
				values[key] = v
			}
		}
	}
	f.rows[in.group]--
	f.build(values)
	return nil
}

// values returns the non-empty input values by form key
func (f *form) values() map[string]string {
	out := make(map[string]string, len(f.inputs))
	for _, in := range f.inputs {
		if v := in.model.Value(); v != "" {
			out[in.key] = v
		}
	}
	return out
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus].model, cmd = f.inputs[f.focus].model.Update(msg)
	return cmd
}
