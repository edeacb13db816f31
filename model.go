package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-covid/charts"
	"github.com/andareed/siftly-covid/config"
	"github.com/andareed/siftly-covid/dataset"
	"github.com/andareed/siftly-covid/dialogs"
	"github.com/andareed/siftly-covid/logging"
)

type mode int

const (
	modeView mode = iota
	modeCommand
)

const (
	pickContinent = "continent"
	pickCountry   = "country"
	pickRange     = "range"
)

// datasetSource is satisfied by *source.Cache.
type datasetSource interface {
	Get(ctx context.Context) (*dataset.Dataset, error)
	Describe() string
}

type datasetLoadedMsg struct {
	ds  *dataset.Dataset
	err error
	at  time.Time
}

type model struct {
	src    datasetSource
	now    func() time.Time
	export config.ExportConfig
	keys   Keymap

	data dataState
	ui   uiState

	viewport viewport.Model
	spinner  spinner.Model
	ready    bool

	cursor              int // index into data.filtered.Rows
	pageRowSize         int
	lastVisibleRowCount int
	terminalWidth       int
	terminalHeight      int

	activeDialog dialogs.Dialog
}

func newModel(src datasetSource, q dataset.Query, export config.ExportConfig) *model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle

	return &model{
		src:     src,
		now:     time.Now,
		export:  export,
		keys:    Keys,
		data:    dataState{query: q},
		ui:      uiState{tabs: make([]int, len(charts.TabGroups))},
		spinner: sp,
		cursor:  -1,
	}
}

func (m *model) Init() tea.Cmd {
	logging.Infof("siftly-covid: Initialised, source %s", m.src.Describe())
	return m.loadCmd()
}

// loadCmd fetches the dataset off the UI loop. The cache makes repeat calls
// after a success free.
func (m *model) loadCmd() tea.Cmd {
	m.ui.loading = true
	m.ui.loadErr = nil
	src, now := m.src, m.now
	load := func() tea.Msg {
		ds, err := src.Get(context.Background())
		return datasetLoadedMsg{ds: ds, err: err, at: now()}
	}
	return tea.Batch(m.spinner.Tick, load)
}

func (m *model) reload() tea.Cmd {
	switch {
	case m.ui.loading:
		return nil
	case m.data.loaded():
		return m.startNotice("Dataset already loaded for this session", "info", noticeDuration)
	}
	logging.Infof("reload requested after failure: %v", m.ui.loadErr)
	return m.loadCmd()
}

func (m *model) handleLoaded(msg datasetLoadedMsg) tea.Cmd {
	m.ui.loading = false
	if msg.err != nil {
		m.ui.loadErr = msg.err
		logging.Errorf("load failed: %v", msg.err)
		return m.startNotice("Load failed, press R to retry", "error", noticeDuration)
	}
	m.ui.loadErr = nil
	m.data.setDataset(msg.ds, msg.at)
	m.applyFilter()

	note := fmt.Sprintf("Loaded %s rows", charts.FormatCount(float64(msg.ds.Len())))
	if msg.ds.Skipped > 0 {
		note += fmt.Sprintf(", skipped %d malformed", msg.ds.Skipped)
	}
	return m.startNotice(note, "success", noticeDuration)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth, m.terminalHeight = msg.Width, msg.Height
		m.resize()
		m.ready = true
		m.refreshView()
		return m, nil

	case datasetLoadedMsg:
		return m, m.handleLoaded(msg)

	case spinner.TickMsg:
		if !m.ui.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearNoticeMsg:
		m.clearNotice(msg)
		return m, nil

	case dialogs.PickerConfirmedMsg:
		m.closeDialog()
		m.applyPicker(msg)
		return m, nil

	case dialogs.PickerCanceledMsg, dialogs.ExportCanceledMsg:
		m.closeDialog()
		return m, nil

	case dialogs.ExportConfirmedMsg:
		m.closeDialog()
		return m, m.exportCmd(msg.Kind, msg.Path)

	case dialogs.ExportOKMsg, dialogs.ExportErrorMsg:
		return m, m.handleExportResult(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// cursor blinks and the like belong to whichever dialog is open
	if m.dialogOpen() {
		d, cmd := m.activeDialog.Update(msg)
		m.activeDialog = d
		return m, cmd
	}
	return m, nil
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialogOpen() {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		d, cmd := m.activeDialog.Update(msg)
		m.activeDialog = d
		if !d.IsVisible() {
			m.closeDialog()
		}
		return m, cmd
	}

	switch m.ui.mode {
	case modeCommand:
		return m.handleCommandKey(msg)
	default:
		return m.handleViewModeKey(msg)
	}
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.OpenHelp):
		return m, m.openDialog(dialogs.NewHelpDialog("Keys", k.Legend()))
	case key.Matches(msg, k.Reload):
		return m, m.reload()
	}

	if !m.data.loaded() {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, k.PickContinent):
		cmd = m.openDialog(dialogs.NewMultiPicker(pickContinent, "Continents", m.data.full.Continents(), m.data.query.Continents))
	case key.Matches(msg, k.PickCountry):
		cmd = m.openDialog(dialogs.NewMultiPicker(pickCountry, "Countries", m.data.full.Locations(m.data.query.Continents), m.data.query.Countries))
	case key.Matches(msg, k.PickRange):
		labels := make([]string, len(dataset.Ranges))
		for i, r := range dataset.Ranges {
			labels[i] = r.Label()
		}
		cmd = m.openDialog(dialogs.NewSinglePicker(pickRange, "Date range", labels, m.data.query.Range.Index()))
	case key.Matches(msg, k.RangeShorter):
		cmd = m.stepRange(false)
	case key.Matches(msg, k.RangeLonger):
		cmd = m.stepRange(true)
	case key.Matches(msg, k.PrevTab):
		m.stepTab(-1)
	case key.Matches(msg, k.NextTab):
		m.stepTab(1)
	case key.Matches(msg, k.NextTabGroup):
		m.ui.groupFocus = (m.ui.groupFocus + 1) % len(charts.TabGroups)
	case key.Matches(msg, k.ToggleView):
		m.toggleView()
	case key.Matches(msg, k.Where):
		m.enterCommandMode(CmdWhere, m.data.query.Where.String())
	case key.Matches(msg, k.ClearWhere):
		cmd = m.clearWhere()
	case key.Matches(msg, k.AddCountry):
		m.enterCommandMode(CmdCountry, "")
	case key.Matches(msg, k.JumpToRow):
		m.enterCommandMode(CmdJump, "")
	case key.Matches(msg, k.ExportCSV):
		cmd = m.openExportDialog(dialogs.ExportCSV)
	case key.Matches(msg, k.ExportCharts):
		cmd = m.openExportDialog(dialogs.ExportCharts)
	case key.Matches(msg, k.CopyCSV):
		cmd = m.copyCSV()
	case key.Matches(msg, k.RowDown):
		m.scroll(1)
	case key.Matches(msg, k.RowUp):
		m.scroll(-1)
	case key.Matches(msg, k.PageDown):
		m.scrollPage(1)
	case key.Matches(msg, k.PageUp):
		m.scrollPage(-1)
	case key.Matches(msg, k.JumpToStart):
		m.jumpToStart()
		m.viewport.GotoTop()
	case key.Matches(msg, k.JumpToEnd):
		m.jumpToEnd()
		if m.ui.view == viewCharts {
			m.viewport.GotoBottom()
		}
	}

	m.refreshView()
	return m, cmd
}

func (m *model) applyPicker(msg dialogs.PickerConfirmedMsg) {
	switch msg.ID {
	case pickContinent:
		m.data.query.Continents = msg.Selection
	case pickCountry:
		m.data.query.Countries = msg.Selection
	case pickRange:
		if msg.Index < 0 || msg.Index >= len(dataset.Ranges) {
			return
		}
		m.data.query.Range = dataset.Ranges[msg.Index]
	default:
		return
	}
	logging.Debugf("picker %s confirmed: %s", msg.ID, msg.Selection)
	m.applyFilter()
}

func (m *model) dialogOpen() bool {
	return m.activeDialog != nil && m.activeDialog.IsVisible()
}

func (m *model) openDialog(d dialogs.Dialog) tea.Cmd {
	m.activeDialog = d
	d.Show()
	return d.Init()
}

func (m *model) closeDialog() {
	if m.activeDialog != nil {
		m.activeDialog.Hide()
	}
	m.activeDialog = nil
	m.refreshView()
}

func (m *model) stepTab(delta int) {
	g := m.ui.groupFocus
	n := len(charts.TabGroups[g].Panels)
	m.ui.tabs[g] = (m.ui.tabs[g] + delta + n) % n
}

func (m *model) toggleView() {
	if m.ui.view == viewCharts {
		m.ui.view = viewRows
	} else {
		m.ui.view = viewCharts
	}
	m.viewport.GotoTop()
}

// scroll moves the row cursor in the rows view and the charts otherwise.
func (m *model) scroll(delta int) {
	if m.ui.view == viewRows {
		m.moveCursor(delta)
		return
	}
	m.viewport.SetYOffset(m.viewport.YOffset + delta)
}

func (m *model) scrollPage(dir int) {
	if m.ui.view == viewRows {
		if dir > 0 {
			m.pageDown()
		} else {
			m.pageUp()
		}
		return
	}
	m.viewport.SetYOffset(m.viewport.YOffset + dir*max(1, m.viewport.Height))
}

// mainSize is the inner size of the bordered main area.
func (m *model) mainSize() (int, int) {
	contentW := m.terminalWidth - 2 // appstyle margin
	w := contentW - sidebarWidth - 2
	h := m.terminalHeight - headerLines - footerLines - 2
	return max(1, w), max(1, h)
}

const (
	headerLines = 3
	footerLines = 2
)

func (m *model) resize() {
	w, h := m.mainSize()
	if !m.ready {
		m.viewport = viewport.New(w, h)
		return
	}
	m.viewport.Width = w
	m.viewport.Height = h
}

// refreshView re-renders the viewport content for the current view.
func (m *model) refreshView() {
	if !m.ready || !m.data.loaded() {
		return
	}
	if m.ui.view == viewRows {
		m.viewport.SetContent(m.renderViewport())
		m.viewport.GotoTop()
		return
	}
	off := m.viewport.YOffset
	m.viewport.SetContent(m.renderCharts(m.viewport.Width))
	m.viewport.SetYOffset(off)
}
