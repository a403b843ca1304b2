package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/clikemode/internal/ui/pretty"
	"github.com/yaklabco/clikemode/pkg/pipeline"
	"github.com/yaklabco/clikemode/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		stats  runner.Stats
		action pipeline.Action
		want   string
	}{
		{
			name:   "clean",
			stats:  runner.Stats{FilesProcessed: 5},
			action: pipeline.ActionIndent,
			want:   "Indentation ok (5 files checked)\n",
		},
		{
			name:   "needs re-indent",
			stats:  runner.Stats{FilesProcessed: 10, FilesChanged: 1, LinesChanged: 3, FilesSkipped: 2},
			action: pipeline.ActionIndent,
			want:   "1 file needs re-indent (3 lines) (10 files checked), 2 skipped\n",
		},
		{
			name:   "written",
			stats:  runner.Stats{FilesProcessed: 1, FilesChanged: 1, FilesWritten: 1, LinesChanged: 1},
			action: pipeline.ActionIndent,
			want:   "Re-indented 1 file (1 line) (1 file checked)\n",
		},
		{
			name:   "highlight with error",
			stats:  runner.Stats{FilesProcessed: 2, Blocks: 3, Tokens: 40, FilesErrored: 1},
			action: pipeline.ActionHighlight,
			want:   "40 tokens in 3 blocks (2 files checked), 1 error\n",
		},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, styles.FormatSummaryOneLine(testCase.stats, testCase.action))
		})
	}
}

func TestFormatSummary_Indent(t *testing.T) {
	t.Parallel()

	stats := runner.Stats{
		FilesProcessed: 4,
		FilesChanged:   2,
		LinesChanged:   7,
		Blocks:         5,
		Languages:      map[string]int{"java": 1, "c": 4},
	}
	result := pretty.NewStyles(false).FormatSummary(stats, pipeline.ActionIndent)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:     4")
	assert.Contains(t, result, "Lines changed:     7")
	assert.NotContains(t, result, "Files written")
	assert.Less(t, strings.Index(result, "  c:"), strings.Index(result, "  java:"), "languages are sorted")
	assert.Contains(t, result, "Indentation check failed")
}

func TestFormatSummary_Highlight(t *testing.T) {
	t.Parallel()

	stats := runner.Stats{FilesProcessed: 1, Blocks: 1, Tokens: 9}
	result := pretty.NewStyles(false).FormatSummary(stats, pipeline.ActionHighlight)

	assert.Contains(t, result, "Tokens:            9")
	assert.NotContains(t, result, "Lines changed")
	assert.Contains(t, result, "Highlight complete")
}

func TestFormatSummary_Errors(t *testing.T) {
	t.Parallel()

	stats := runner.Stats{FilesProcessed: 1, FilesErrored: 1}
	result := pretty.NewStyles(false).FormatSummary(stats, pipeline.ActionIndent)
	assert.Contains(t, result, "Files with errors: 1")
	assert.Contains(t, result, "Completed with errors")
}
