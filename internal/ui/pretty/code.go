package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/clikemode/pkg/highlight"
)

// RenderLine renders one highlighted line. Text between spans is written
// unstyled.
func (s *Styles) RenderLine(line highlight.Line) string {
	if !s.colorEnabled {
		return line.Text
	}

	var builder strings.Builder
	pos := 0
	for _, span := range line.Spans {
		if span.Start < pos || span.End > len(line.Text) {
			continue
		}
		builder.WriteString(line.Text[pos:span.Start])
		text := span.Text(line.Text)
		if span.Style == "" {
			builder.WriteString(text)
		} else {
			builder.WriteString(s.Token(span.Style).Render(text))
		}
		pos = span.End
	}
	builder.WriteString(line.Text[pos:])
	return builder.String()
}

// RenderBlock renders lines with a right-aligned line number gutter.
// firstLine is the 1-based number of lines[0].
func (s *Styles) RenderBlock(lines []highlight.Line, firstLine int) string {
	if len(lines) == 0 {
		return ""
	}

	width := len(strconv.Itoa(firstLine + len(lines) - 1))
	var builder strings.Builder
	for i, line := range lines {
		gutter := fmt.Sprintf("%*d │ ", width, firstLine+i)
		builder.WriteString(s.LineNumber.Render(gutter))
		builder.WriteString(s.RenderLine(line))
		builder.WriteString("\n")
	}
	return builder.String()
}
