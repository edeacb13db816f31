package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/logging"
)

type PickerMode int

const (
	PickMulti PickerMode = iota
	PickSingle
)

const pickerRows = 12

// --- Messages ---------------------------------------------------------------

type (
	// PickerConfirmedMsg carries the result of a picker. Multi pickers fill
	// Selection; single pickers fill Index and Value.
	PickerConfirmedMsg struct {
		ID        string
		Selection dataset.Selection
		Index     int
		Value     string
	}
	PickerCanceledMsg struct{ ID string }
)

var (
	pickerCursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("#3a3a3a")).Foreground(lipgloss.Color("#e0e0e0"))
	pickerTitleStyle  = lipgloss.NewStyle().Bold(true)
	pickerCheckStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9f1c"))
)

// Picker is a modal list. In multi mode the first entry is "All" and the
// result is a dataset.Selection; in single mode exactly one option is chosen.
type Picker struct {
	id      string
	title   string
	mode    PickerMode
	options []string

	sel    dataset.Selection
	cursor int // index into rows()

	search  textinput.Model
	visible bool
}

func NewMultiPicker(id, title string, options []string, current dataset.Selection) *Picker {
	p := newPicker(id, title, PickMulti, options)
	p.sel = current
	return p
}

func NewSinglePicker(id, title string, options []string, current int) *Picker {
	p := newPicker(id, title, PickSingle, options)
	if current >= 0 && current < len(options) {
		p.cursor = current
	}
	return p
}

func newPicker(id, title string, mode PickerMode, options []string) *Picker {
	ti := textinput.New()
	ti.Prompt = "search: "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 64
	ti.Width = 30
	if mode == PickMulti {
		ti.Focus()
	}
	return &Picker{id: id, title: title, mode: mode, options: options, search: ti, visible: true}
}

func (p *Picker) Init() tea.Cmd {
	if p.mode == PickMulti {
		return textinput.Blink
	}
	return nil
}

func (p *Picker) ID() string                   { return p.id }
func (p *Picker) Selection() dataset.Selection { return p.sel }

// rows returns the visible entries: "All" (multi mode, no search) followed
// by options matching the search text.
func (p *Picker) rows() []string {
	q := strings.ToLower(strings.TrimSpace(p.search.Value()))
	var out []string
	if p.mode == PickMulti && q == "" {
		out = append(out, dataset.AllLabel)
	}
	for _, o := range p.options {
		if q == "" || strings.Contains(strings.ToLower(o), q) {
			out = append(out, o)
		}
	}
	return out
}

func (p *Picker) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		return p, cmd
	}

	rows := p.rows()
	switch km.String() {
	case "esc":
		id := p.id
		return p, func() tea.Msg { return PickerCanceledMsg{ID: id} }
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil
	case "down", "ctrl+n":
		if p.cursor < len(rows)-1 {
			p.cursor++
		}
		return p, nil
	case "pgup":
		p.cursor = max(0, p.cursor-pickerRows)
		return p, nil
	case "pgdown":
		p.cursor = max(0, min(len(rows)-1, p.cursor+pickerRows))
		return p, nil
	case " ", "space":
		if p.mode == PickMulti {
			p.toggleAt(rows)
			return p, nil
		}
	case "enter":
		return p, p.confirm(rows)
	}

	if p.mode == PickSingle {
		return p, nil
	}
	before := p.search.Value()
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if p.search.Value() != before {
		p.cursor = 0
	}
	return p, cmd
}

func (p *Picker) toggleAt(rows []string) {
	if p.cursor < 0 || p.cursor >= len(rows) {
		return
	}
	name := rows[p.cursor]
	if name == dataset.AllLabel && p.search.Value() == "" && p.cursor == 0 {
		if p.sel.IsAll() {
			p.sel = dataset.Subset()
		} else {
			p.sel = dataset.All()
		}
	} else {
		p.sel = p.sel.Toggle(name)
	}
	logging.Debugf("Picker[%s]: toggled %q -> %s", p.id, name, p.sel)
}

func (p *Picker) confirm(rows []string) tea.Cmd {
	id := p.id
	if p.mode == PickMulti {
		sel := p.sel
		return func() tea.Msg { return PickerConfirmedMsg{ID: id, Selection: sel} }
	}
	if p.cursor < 0 || p.cursor >= len(rows) {
		return nil
	}
	idx, val := p.cursor, rows[p.cursor]
	return func() tea.Msg { return PickerConfirmedMsg{ID: id, Index: idx, Value: val} }
}

func (p *Picker) checked(row string, i int) bool {
	if row == dataset.AllLabel && i == 0 && p.search.Value() == "" {
		return p.sel.IsAll()
	}
	return p.sel.Contains(row)
}

func (p *Picker) View() string {
	if !p.visible {
		return ""
	}
	rows := p.rows()
	if p.cursor >= len(rows) {
		p.cursor = max(0, len(rows)-1)
	}

	start := 0
	if p.cursor >= pickerRows {
		start = p.cursor - pickerRows + 1
	}
	end := min(len(rows), start+pickerRows)

	var lines []string
	for i := start; i < end; i++ {
		mark := "  "
		if p.mode == PickMulti {
			mark = "[ ] "
			if p.checked(rows[i], i) {
				mark = pickerCheckStyle.Render("[x]") + " "
			}
		}
		line := mark + rows[i]
		if i == p.cursor {
			line = pickerCursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	var list string
	if len(lines) == 0 {
		list = center(hintStyle.Render("No matches"), boxWidth-6, pickerRows)
	} else {
		list = strings.Join(lines, "\n")
	}

	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render(p.title))
	if p.mode == PickMulti {
		b.WriteString("  " + hintStyle.Render(p.sel.String()))
		b.WriteString("\n" + p.search.View())
	}
	b.WriteString("\n\n" + list)
	if len(rows) > pickerRows {
		b.WriteString("\n" + hintStyle.Render(fmt.Sprintf("%d/%d", p.cursor+1, len(rows))))
	}
	hint := "↑/↓ move • enter select • esc cancel"
	if p.mode == PickMulti {
		hint = "↑/↓ move • space toggle • enter apply • esc cancel"
	}
	b.WriteString("\n\n" + hintStyle.Render(hint))
	return boxStyle().Render(b.String())
}

func (p *Picker) Show() {
	p.visible = true
	if p.mode == PickMulti {
		p.search.Focus()
	}
}

func (p *Picker) Hide() {
	p.visible = false
	p.search.Blur()
}

func (p *Picker) Focus() tea.Cmd {
	if p.mode == PickMulti {
		return p.search.Focus()
	}
	return nil
}
func (p *Picker) Blur()           { p.search.Blur() }
func (p *Picker) IsVisible() bool { return p.visible }
