package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const helpKeyWidth = 12

// Help lists key bindings with their descriptions.
type Help struct {
	visible  bool
	title    string
	bindings []key.Binding
}

func (d Help) Init() tea.Cmd { return nil }

func NewHelpDialog(title string, bindings []key.Binding) *Help {
	return &Help{
		visible:  true,
		title:    title,
		bindings: bindings,
	}
}

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter", "esc", "?", "q":
			d.visible = false
		}
	}
	return d, nil
}

func (d Help) View() string {
	if !d.visible {
		return ""
	}

	// inner width: box minus padding
	descWidth := boxWidth - 4 - helpKeyWidth - 1
	var lines []string
	for _, b := range d.bindings {
		h := b.Help()
		desc := wordwrap.String(h.Desc, descWidth)
		first, rest, _ := strings.Cut(desc, "\n")
		lines = append(lines, fmt.Sprintf("%-*s %s", helpKeyWidth, h.Key, first))
		if rest != "" {
			lines = append(lines, indent.String(rest, helpKeyWidth+1))
		}
	}

	content := strings.Join(lines, "\n")
	if d.title != "" {
		content = d.title + "\n\n" + content
	}
	content += "\n\n" + hintStyle.Render("enter/esc to return")
	return boxStyle().Render(content)
}

func (d *Help) Show() {
	d.visible = true
}

func (d *Help) Hide() {
	d.visible = false
}

func (d *Help) Focus() tea.Cmd { return nil }
func (d *Help) Blur()          {}
func (d Help) IsVisible() bool { return d.visible }
