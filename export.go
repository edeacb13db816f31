package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-covid/charts"
	"github.com/andareed/siftly-covid/clipboard"
	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/dialogs"
	"github.com/andareed/siftly-covid/logging"
)

// writeFilteredCSV writes ds to path, creating parent directories. The file
// is written to a temporary name first and renamed into place.
func writeFilteredCSV(path string, ds *dataset.Dataset) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, ds); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeChartPNGs renders every panel into dir as <panel-id>.png and returns
// how many files were written.
func writeChartPNGs(dir string, ds *dataset.Dataset, width, height int) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dir, err)
	}
	written := 0
	for _, p := range charts.Panels {
		path := filepath.Join(dir, p.ID+".png")
		f, err := os.Create(path)
		if err != nil {
			return written, fmt.Errorf("creating %s: %w", path, err)
		}
		err = charts.WritePNG(f, p, ds, width, height)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return written, fmt.Errorf("rendering %s: %w", p.ID, err)
		}
		written++
	}
	return written, nil
}

// exportCmd runs an export off the UI loop.
func (m *model) exportCmd(kind dialogs.ExportKind, path string) tea.Cmd {
	ds := m.data.filtered
	width, height := m.export.Width, m.export.Height
	return func() tea.Msg {
		switch kind {
		case dialogs.ExportCharts:
			n, err := writeChartPNGs(path, ds, width, height)
			if err != nil {
				return dialogs.ExportErrorMsg{Kind: kind, Err: err}
			}
			return dialogs.ExportOKMsg{Kind: kind, Path: path, Files: n}
		default:
			if err := writeFilteredCSV(path, ds); err != nil {
				return dialogs.ExportErrorMsg{Kind: kind, Err: err}
			}
			return dialogs.ExportOKMsg{Kind: kind, Path: path, Files: 1}
		}
	}
}

func (m *model) openExportDialog(kind dialogs.ExportKind) tea.Cmd {
	if !m.data.loaded() {
		return m.startNotice("Nothing to export yet", "warn", noticeDuration)
	}
	name := defaultCSVName(m)
	lastDir := m.ui.lastExportDir
	if kind == dialogs.ExportCharts {
		name = m.export.Dir
		lastDir = ""
	}
	return m.openDialog(dialogs.NewExportDialog(kind, name, lastDir))
}

func (m *model) handleExportResult(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dialogs.ExportOKMsg:
		logging.Infof("export %s -> %s (%d files)", msg.Kind, msg.Path, msg.Files)
		if msg.Kind == dialogs.ExportCSV {
			m.ui.lastExportDir = filepath.Dir(msg.Path)
			return m.startNotice(fmt.Sprintf("Exported %d rows to %s", m.data.filtered.Len(), msg.Path), "success", noticeDuration)
		}
		return m.startNotice(fmt.Sprintf("Wrote %d charts to %s", msg.Files, msg.Path), "success", noticeDuration)
	case dialogs.ExportErrorMsg:
		logging.Errorf("export %s failed: %v", msg.Kind, msg.Err)
		return m.startNotice("Export failed: "+msg.Err.Error(), "error", noticeDuration)
	}
	return nil
}

// copyCSV puts the filtered table on the clipboard.
func (m *model) copyCSV() tea.Cmd {
	if !m.data.loaded() {
		return m.startNotice("Nothing to copy yet", "warn", noticeDuration)
	}
	var buf strings.Builder
	if err := dataset.WriteCSV(&buf, m.data.filtered); err != nil {
		return m.startNotice("Copy failed: "+err.Error(), "error", noticeDuration)
	}
	if err := clipboard.Copy(buf.String()); err != nil {
		logging.Warnf("clipboard copy failed: %v", err)
		return m.startNotice("Copy failed: "+err.Error(), "error", noticeDuration)
	}
	return m.startNotice(fmt.Sprintf("Copied %d rows to clipboard", m.data.filtered.Len()), "success", noticeDuration)
}

func defaultCSVName(m *model) string {
	return "covid-" + m.now().Format("20060102") + ".csv"
}
