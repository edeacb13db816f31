package main

type viewKind int

const (
	viewCharts viewKind = iota
	viewRows
)

type uiState struct {
	mode       mode
	command    CommandInput
	view       viewKind
	noticeMsg  string
	noticeType noticeKind
	noticeSeq  int

	loading bool
	loadErr error

	// tab group focus and the selected tab in each group
	groupFocus int
	tabs       []int

	lastExportDir string

	visibleStart            int
	visibleEnd              int
	debugCursorHeight       int
	debugHeightFree         int
	debugDesiredAboveHeight int
}
