package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

type FooterState struct {
	Mode      Command
	ModeLabel string // overrides the command label, e.g. LOADING
	ModeInput string

	Source string

	WhereLabel string
	RangeLabel string

	Row       int
	TotalRows int

	StatusMessage string
	Legend        string
}

type FooterStyles struct {
	BarBG      lipgloss.Color
	StatusBG   lipgloss.Color
	ModePillBG lipgloss.Color
	ModePillFG lipgloss.Color
	SourceFG   lipgloss.Color
	TextFG     lipgloss.Color
	DimFG      lipgloss.Color
	StatusFG   lipgloss.Color
	LegendFG   lipgloss.Color
}

func DefaultFooterStyles() FooterStyles {
	return FooterStyles{
		BarBG:      lipgloss.Color("#2b2b2b"),
		StatusBG:   lipgloss.Color("#000000"),
		ModePillBG: lipgloss.Color(accentColor),
		ModePillFG: lipgloss.Color("#000000"),
		SourceFG:   lipgloss.Color("#e0e0e0"),
		TextFG:     lipgloss.Color("#cfcfcf"),
		DimFG:      lipgloss.Color("#a0a0a0"),
		StatusFG:   lipgloss.Color("#9a9a9a"),
		LegendFG:   lipgloss.Color("#b0b0b0"),
	}
}

const (
	whereValW = 16
	rangeValW = 13 // "Past 6 Months"
)

// RenderFooter draws the two footer lines: a control bar with mode, source,
// query state and row position, and a status bar with the notice and key
// legend.
func RenderFooter(width int, st FooterState, styles FooterStyles) string {
	if width <= 0 {
		return ""
	}
	if st.WhereLabel == "" {
		st.WhereLabel = "None"
	}
	if st.Legend == "" {
		st.Legend = "(? help · q quit)"
	}
	if st.Row < 0 {
		st.Row = 0
	}
	if st.TotalRows < 0 {
		st.TotalRows = 0
	}

	line1 := renderControlBar(width, st, styles)
	line2 := renderStatusBar(width, st, styles)
	return line1 + "\n" + line2
}

func renderControlBar(width int, st FooterState, styles FooterStyles) string {
	gapW := 1
	statusFixedW := runeWidth(fmt.Sprintf("[WHERE: %s] · [RANGE: %s]", strings.Repeat("X", whereValW), strings.Repeat("X", rangeValW)))

	rightPlain := fmt.Sprintf(" Rows %d/%d", st.Row, st.TotalRows)
	rightPlain = truncatePlain(rightPlain, width)
	rightW := runeWidth(rightPlain)

	leftW := max(0, width-rightW)

	modeColW := clamp(leftW/4, 12, 36)
	statusColW := statusFixedW
	sourceColW := leftW - modeColW - statusColW - 2*gapW
	if sourceColW < 0 {
		deficit := -sourceColW
		if statusColW > 10 {
			shrink := min(deficit, statusColW-10)
			statusColW -= shrink
			deficit -= shrink
		}
		if deficit > 0 && modeColW > 10 {
			shrink := min(deficit, modeColW-10)
			modeColW -= shrink
		}
		sourceColW = leftW - modeColW - statusColW - 2*gapW
		if sourceColW < 0 {
			modeColW = max(0, modeColW+sourceColW)
			sourceColW = 0
		}
	}

	modeText := modeLabel(st)
	innerModeW := max(0, modeColW-2)
	modePillW := modeColW
	if runeWidth(modeText) <= innerModeW {
		modePillW = runeWidth(modeText) + 2
	}
	if slack := modeColW - modePillW; slack > 0 {
		modeColW = modePillW
		sourceColW += slack
	}

	modeSeg := renderModeSegment(modeColW, st, styles)
	sourceSeg := renderSourceSegment(sourceColW, st, styles)
	statusSeg := renderQuerySegment(statusColW, st, styles)

	left := modeSeg + strings.Repeat(" ", gapW) + sourceSeg + strings.Repeat(" ", gapW) + statusSeg
	if actual := modeColW + sourceColW + statusColW + 2*gapW; actual < leftW {
		left += strings.Repeat(" ", leftW-actual)
	}

	return applyBar(left+rightPlain, styles.BarBG, styles.TextFG)
}

func renderStatusBar(width int, st FooterState, styles FooterStyles) string {
	legendPlain := truncatePlain(st.Legend, width)
	legendW := runeWidth(legendPlain)

	leftW := max(0, width-legendW)

	msgPlain := truncatePlain(st.StatusMessage, leftW)
	msgPlain = padRightPlain(msgPlain, leftW)

	linePlain := applyFG(msgPlain, styles.StatusFG, styles.StatusFG) + applyFG(legendPlain, styles.LegendFG, styles.StatusFG)
	return applyBar(linePlain, styles.StatusBG, styles.StatusFG)
}

func renderModeSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	content := truncatePlain(modeLabel(st), max(0, colW-2))
	pillPlain := truncatePlain(" "+content+" ", colW)
	pad := strings.Repeat(" ", colW-runeWidth(pillPlain))

	pill := ansiBg(styles.ModePillBG) + ansiFg(styles.ModePillFG) + pillPlain
	pill += ansiBg(styles.BarBG) + ansiFg(styles.TextFG) + pad
	return pill
}

// renderSourceSegment shows the data source, followed by the command line
// while one is being typed.
func renderSourceSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	name := strings.TrimSpace(st.Source)
	if name == "" {
		name = "(no source)"
	}
	remaining := colW
	sourcePlain := ""
	inputPlain := ""

	input := strings.TrimSpace(st.ModeInput)
	if input != "" {
		// the command line gets priority over the source name
		inputPlain = truncatePlain(input, remaining)
		remaining -= runeWidth(inputPlain)
	} else {
		sourcePlain = truncateLeft("▸ "+name, remaining)
		remaining -= runeWidth(sourcePlain)
	}
	remaining = max(0, remaining)

	return applyFG(sourcePlain, styles.SourceFG, styles.TextFG) + inputPlain + strings.Repeat(" ", remaining)
}

func renderQuerySegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	where := truncatePlain(strings.TrimSpace(st.WhereLabel), whereValW)
	rng := truncatePlain(st.RangeLabel, rangeValW)

	plain := fmt.Sprintf("[WHERE: %s] · [RANGE: %s]", where, rng)
	plain = truncatePlain(plain, colW)
	plain = padRightPlain(plain, colW)
	return applyFG(plain, styles.DimFG, styles.TextFG)
}

func applyBar(s string, bg lipgloss.Color, baseFG lipgloss.Color) string {
	return ansiBg(bg) + ansiFg(baseFG) + s + termenv.CSI + termenv.ResetSeq + "m"
}

func modeLabel(st FooterState) string {
	if st.ModeLabel != "" {
		return st.ModeLabel
	}
	return commandLabel(st.Mode)
}

func commandLabel(cmd Command) string {
	switch cmd {
	case CmdWhere:
		return "WHERE"
	case CmdCountry:
		return "COUNTRY"
	case CmdJump:
		return "JUMP"
	default:
		return "NORMAL"
	}
}

func applyFG(s string, fg lipgloss.Color, resetFG lipgloss.Color) string {
	return ansiFg(fg) + s + ansiFg(resetFG)
}

func ansiFg(c lipgloss.Color) string {
	return ansiColor(false, c)
}

func ansiBg(c lipgloss.Color) string {
	return ansiColor(true, c)
}

func ansiColor(isBg bool, c lipgloss.Color) string {
	s := string(c)
	if s == "" {
		if isBg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		return termenv.CSI + termenv.RGBColor(s).Sequence(isBg) + "m"
	}
	return ""
}

func padRightPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	cur := runeWidth(s)
	if cur >= w {
		return s
	}
	return s + strings.Repeat(" ", w-cur)
}

func truncatePlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runeWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "")
}

// truncateLeft keeps the tail of s, which for URLs and paths is the part
// worth seeing.
func truncateLeft(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runeWidth(s) <= w {
		return s
	}
	return runewidth.TruncateLeft(s, runeWidth(s)-w+1, "…")
}

func runeWidth(s string) int {
	return runewidth.StringWidth(s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
