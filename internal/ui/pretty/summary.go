package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/clikemode/pkg/pipeline"
	"github.com/yaklabco/clikemode/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files need re-indent (12 lines) in 10 files, 1 skipped".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, action pipeline.Action) string {
	var parts []string

	switch {
	case action == pipeline.ActionHighlight:
		parts = append(parts, fmt.Sprintf("%d tokens in %d %s",
			stats.Tokens, stats.Blocks, plural(stats.Blocks, "block", "blocks")))
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("Re-indented %d %s (%d %s)",
			stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles),
			stats.LinesChanged, plural(stats.LinesChanged, "line", "lines"))))
	case stats.FilesChanged > 0:
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s re-indent (%d %s)",
			stats.FilesChanged, plural(stats.FilesChanged, "file needs", "files need"),
			stats.LinesChanged, plural(stats.LinesChanged, "line", "lines"))))
	default:
		parts = append(parts, s.Success.Render("Indentation ok"))
	}

	parts[0] += s.Dim.Render(fmt.Sprintf(" (%d %s checked)",
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.FilesErrored,
			plural(stats.FilesErrored, "error", "errors"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, action pipeline.Action) string {
	var builder strings.Builder

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Skipped.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files with errors", s.Error.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Code blocks", s.SummaryValue.Render(strconv.Itoa(stats.Blocks)))

	if action == pipeline.ActionHighlight {
		row("Tokens", s.SummaryValue.Render(strconv.Itoa(stats.Tokens)))
	} else {
		row("Files changed", s.SummaryValue.Render(strconv.Itoa(stats.FilesChanged)))
		row("Lines changed", s.SummaryValue.Render(strconv.Itoa(stats.LinesChanged)))
		if stats.FilesWritten > 0 {
			row("Files written", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
		}
	}

	if len(stats.Languages) > 0 {
		builder.WriteString("\n")
		for _, lang := range slices.Sorted(maps.Keys(stats.Languages)) {
			row("  "+lang, s.Language.Render(strconv.Itoa(stats.Languages[lang])))
		}
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Completed with errors"))
	case action == pipeline.ActionHighlight:
		builder.WriteString(s.Success.Render("Highlight complete"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Warning.Render("Indentation check failed"))
	default:
		builder.WriteString(s.Success.Render("Indentation ok"))
	}
	builder.WriteString("\n")

	return builder.String()
}
