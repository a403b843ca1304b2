package reindent

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each hunk.
const contextLines = 3

// Diff is a unified diff between two versions of a file.
type Diff struct {
	Path      string
	Unified   string
	Additions int
	Deletions int
}

// Empty reports whether the versions were identical.
func (d *Diff) Empty() bool {
	return d == nil || d.Unified == ""
}

// GenerateDiff returns the unified diff from original to modified, or nil
// when they are equal.
func GenerateDiff(path, original, modified string) (*Diff, error) {
	if original == modified {
		return nil, nil
	}

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	diff := &Diff{Path: path, Unified: unified}
	for _, line := range strings.Split(unified, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			diff.Additions++
		case strings.HasPrefix(line, "-"):
			diff.Deletions++
		}
	}
	return diff, nil
}

// Diff returns the unified diff of the result for path.
func (r Result) Diff(path string) (*Diff, error) {
	return GenerateDiff(path, r.Original, r.Text)
}
