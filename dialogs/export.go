package dialogs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-covid/logging"
)

type ExportKind int

const (
	ExportCSV ExportKind = iota
	ExportCharts
)

func (k ExportKind) prompt() string {
	if k == ExportCharts {
		return "Charts dir: "
	}
	return "Export CSV as: "
}

func (k ExportKind) String() string {
	if k == ExportCharts {
		return "charts"
	}
	return "csv"
}

// --- Messages ---------------------------------------------------------------

type (
	ExportConfirmedMsg struct {
		Kind ExportKind
		Path string
	}
	ExportCanceledMsg struct{ Kind ExportKind }
	ExportErrorMsg    struct {
		Kind ExportKind
		Err  error
	}
	ExportOKMsg struct {
		Kind  ExportKind
		Path  string
		Files int
	}
)

// Export asks for a destination: a CSV file name or a directory for the
// chart images.
type Export struct {
	kind    ExportKind
	input   textinput.Model
	visible bool
	lastDir string
}

func (d Export) Init() tea.Cmd { return d.input.Focus() }

func NewExportDialog(kind ExportKind, defaultName, lastDir string) *Export {
	ti := textinput.New()
	ti.Placeholder = defaultName
	ti.Prompt = kind.prompt()
	ti.CharLimit = 256
	ti.Width = 44
	if defaultName != "" {
		ti.SetValue(defaultName)
	}
	ti.Focus()
	return &Export{kind: kind, input: ti, visible: true, lastDir: lastDir}
}

func (d *Export) Kind() ExportKind { return d.kind }

func (d *Export) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			val := strings.TrimSpace(d.input.Value())
			if val == "" {
				val = d.input.Placeholder
			}
			if val == "" {
				return d, nil
			}
			path := val
			if d.lastDir != "" && !filepath.IsAbs(path) && filepath.Dir(path) == "." {
				path = filepath.Join(d.lastDir, filepath.Base(path))
			}
			logging.Debugf("ExportDialog: confirmed %s export to %s", d.kind, path)
			kind := d.kind
			return d, func() tea.Msg { return ExportConfirmedMsg{Kind: kind, Path: path} }
		case "esc":
			kind := d.kind
			return d, func() tea.Msg { return ExportCanceledMsg{Kind: kind} }
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d Export) View() string {
	if !d.visible {
		return ""
	}
	help := hintStyle.Render("enter to export • esc to cancel")
	return boxStyle().Render(fmt.Sprintf("%s\n\n%s", d.input.View(), help))
}

func (d *Export) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Export) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Export) Focus() tea.Cmd { return d.input.Focus() }
func (d *Export) Blur()          { d.input.Blur() }
func (d Export) IsVisible() bool { return d.visible }
