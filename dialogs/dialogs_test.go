package dialogs

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-covid/dataset"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, d Dialog, keys ...string) tea.Msg {
	t.Helper()
	var last tea.Msg
	for _, k := range keys {
		var cmd tea.Cmd
		d, cmd = d.Update(keyMsg(k))
		if cmd != nil {
			last = cmd()
		}
	}
	return last
}

var continents = []string{"Africa", "Asia", "Europe"}

func TestMultiPickerNarrowsFromAll(t *testing.T) {
	p := NewMultiPicker("continents", "Continents", continents, dataset.All())
	// rows: All, Africa, Asia, Europe
	send(t, p, "down", "down", " ")
	if !p.Selection().Equal(dataset.Subset("Asia")) {
		t.Fatalf("selection = %s, want Asia", p.Selection())
	}
	msg := send(t, p, "enter")
	got, ok := msg.(PickerConfirmedMsg)
	if !ok || got.ID != "continents" || !got.Selection.Equal(dataset.Subset("Asia")) {
		t.Fatalf("msg = %#v", msg)
	}
}

func TestMultiPickerAllToggle(t *testing.T) {
	p := NewMultiPicker("c", "C", continents, dataset.Subset("Asia"))
	send(t, p, " ")
	if !p.Selection().IsAll() {
		t.Fatalf("selecting All should give All, got %s", p.Selection())
	}
	send(t, p, " ")
	if !p.Selection().IsEmpty() {
		t.Fatalf("deselecting All should give empty, got %s", p.Selection())
	}
}

func TestMultiPickerDeselectAll(t *testing.T) {
	p := NewMultiPicker("c", "C", continents, dataset.Subset("Asia"))
	send(t, p, "down", "down", " ")
	if !p.Selection().IsEmpty() {
		t.Errorf("selection = %s, want empty", p.Selection())
	}
}

func TestMultiPickerSearch(t *testing.T) {
	p := NewMultiPicker("countries", "Countries", []string{"Germany", "Japan", "Jamaica"}, dataset.All())
	send(t, p, "j", "a")
	rows := p.rows()
	if len(rows) != 2 || rows[0] != "Japan" || rows[1] != "Jamaica" {
		t.Fatalf("rows = %v", rows)
	}
	send(t, p, "down", " ")
	if !p.Selection().Equal(dataset.Subset("Jamaica")) {
		t.Errorf("selection = %s", p.Selection())
	}
	if !strings.Contains(p.View(), "Jamaica") {
		t.Error("view should list the match")
	}
}

func TestMultiPickerCancel(t *testing.T) {
	p := NewMultiPicker("c", "C", continents, dataset.All())
	if msg, ok := send(t, p, "esc").(PickerCanceledMsg); !ok || msg.ID != "c" {
		t.Errorf("msg = %#v", msg)
	}
}

func TestSinglePicker(t *testing.T) {
	labels := []string{"Past 5 Years", "Past Year", "Past 6 Months", "Past 3 Months"}
	p := NewSinglePicker("range", "Date range", labels, 3)
	msg := send(t, p, "up", "enter")
	got, ok := msg.(PickerConfirmedMsg)
	if !ok || got.Index != 2 || got.Value != "Past 6 Months" {
		t.Fatalf("msg = %#v", msg)
	}
	if strings.Contains(p.View(), "[ ]") {
		t.Error("single picker should not show checkboxes")
	}
}

func TestExportDialog(t *testing.T) {
	d := NewExportDialog(ExportCSV, "covid.csv", "/tmp/out")
	msg := send(t, d, "enter")
	got, ok := msg.(ExportConfirmedMsg)
	if !ok || got.Kind != ExportCSV || got.Path != filepath.Join("/tmp/out", "covid.csv") {
		t.Fatalf("msg = %#v", msg)
	}

	d = NewExportDialog(ExportCharts, "charts", "")
	if msg, ok := send(t, d, "esc").(ExportCanceledMsg); !ok || msg.Kind != ExportCharts {
		t.Errorf("msg = %#v", msg)
	}
	if !strings.Contains(d.View(), "Charts dir") {
		t.Error("charts prompt missing")
	}
}

func TestHelpDialogCloses(t *testing.T) {
	h := NewHelpDialog("Keys", []key.Binding{
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	})
	if !strings.Contains(h.View(), "quit") {
		t.Error("help should list bindings")
	}
	send(t, h, "esc")
	if h.IsVisible() || h.View() != "" {
		t.Error("esc should close help")
	}
}
