package viewer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/yaklabco/clikemode/pkg/clike"
	"github.com/yaklabco/clikemode/pkg/highlight"
)

// drawLine draws a highlighted line starting at column x, expanding tabs
// and clipping at width.
func drawLine(s tcell.Screen, x, y, width int, line highlight.Line, base tcell.Style, tabSize int) {
	visual := 0
	spanIdx := 0
	for offset, r := range line.Text {
		for spanIdx < len(line.Spans) && line.Spans[spanIdx].End <= offset {
			spanIdx++
		}
		st := base
		if spanIdx < len(line.Spans) && line.Spans[spanIdx].Start <= offset {
			st = tokenStyle(base, line.Spans[spanIdx].Style)
		}

		if r == '\t' {
			next := (visual/tabSize + 1) * tabSize
			for ; visual < next; visual++ {
				if x+visual < width {
					s.SetContent(x+visual, y, ' ', nil, st)
				}
			}
			continue
		}
		if x+visual >= width {
			return
		}
		s.SetContent(x+visual, y, r, nil, st)
		visual++
	}
}

// tokenStyle maps a highlighting tag onto base.
func tokenStyle(base tcell.Style, style clike.Style) tcell.Style {
	switch style {
	case clike.StyleKeyword:
		return base.Foreground(tcell.ColorMediumPurple).Bold(true)
	case clike.StyleAtom:
		return base.Foreground(tcell.ColorOrchid)
	case clike.StyleNumber:
		return base.Foreground(tcell.ColorLightSalmon)
	case clike.StyleString:
		return base.Foreground(tcell.ColorLightGreen)
	case clike.StyleComment:
		return base.Foreground(tcell.ColorDarkSeaGreen).Italic(true)
	case clike.StyleMeta:
		return base.Foreground(tcell.ColorLightSkyBlue)
	case clike.StyleVariable:
		return base.Foreground(tcell.ColorKhaki)
	default:
		return base
	}
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}

func fillRow(s tcell.Screen, y, w int, st tcell.Style) {
	for x := range w {
		s.SetContent(x, y, ' ', nil, st)
	}
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:max(0, width)])
}
