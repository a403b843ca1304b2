package stream_test

import (
	"testing"
	"unicode"

	"github.com/yaklabco/clikemode/pkg/stream"
)

func TestStream_NextAndPeek(t *testing.T) {
	t.Parallel()

	s := stream.New("ab", 4)
	if !s.SOL() {
		t.Error("expected SOL at start")
	}
	if got := s.Peek(); got != 'a' {
		t.Errorf("Peek() = %q, want 'a'", got)
	}
	if got := s.Next(); got != 'a' {
		t.Errorf("Next() = %q, want 'a'", got)
	}
	if s.SOL() {
		t.Error("expected SOL to be false after Next")
	}
	if got := s.Next(); got != 'b' {
		t.Errorf("Next() = %q, want 'b'", got)
	}
	if !s.EOL() {
		t.Error("expected EOL")
	}
	if got := s.Next(); got != stream.EOF {
		t.Errorf("Next() at EOL = %q, want EOF", got)
	}
	if got := s.Current(); got != "ab" {
		t.Errorf("Current() = %q, want %q", got, "ab")
	}
}

func TestStream_EatHelpers(t *testing.T) {
	t.Parallel()

	s := stream.New("  foo_1+bar", 4)
	if !s.EatSpace() {
		t.Fatal("expected EatSpace to consume leading spaces")
	}
	s.StartToken()
	if !s.EatWhile(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }) {
		t.Fatal("expected EatWhile to consume identifier")
	}
	if got := s.Current(); got != "foo_1" {
		t.Errorf("Current() = %q, want %q", got, "foo_1")
	}
	if s.Eat('-') {
		t.Error("Eat('-') should not match '+'")
	}
	if !s.Eat('+') {
		t.Error("Eat('+') should match")
	}
	s.StartToken()
	s.SkipToEnd()
	if got := s.Current(); got != "bar" {
		t.Errorf("Current() = %q, want %q", got, "bar")
	}
}

func TestStream_BackUpStopsAtTokenStart(t *testing.T) {
	t.Parallel()

	s := stream.New("abcdef", 4)
	s.Next()
	s.StartToken()
	s.Next()
	s.Next()
	s.BackUp(5)
	if got := s.Pos(); got != 1 {
		t.Errorf("Pos() = %d, want 1", got)
	}
}

func TestStream_ColumnAndIndentation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		line        string
		tabSize     int
		advance     int
		column      int
		indentation int
	}{
		{name: "spaces", line: "    x", tabSize: 4, advance: 4, column: 4, indentation: 4},
		{name: "tab", line: "\tx", tabSize: 4, advance: 1, column: 4, indentation: 4},
		{name: "tab after spaces", line: "  \tx", tabSize: 4, advance: 3, column: 4, indentation: 4},
		{name: "tab size eight", line: "\t\tx", tabSize: 8, advance: 2, column: 16, indentation: 16},
		{name: "blank line", line: "   ", tabSize: 4, advance: 0, column: 0, indentation: 3},
		{name: "default tab size", line: "\tx", tabSize: 0, advance: 1, column: 4, indentation: 4},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s := stream.New(testCase.line, testCase.tabSize)
			for range testCase.advance {
				s.Next()
			}
			s.StartToken()
			if got := s.Column(); got != testCase.column {
				t.Errorf("Column() = %d, want %d", got, testCase.column)
			}
			if got := s.Indentation(); got != testCase.indentation {
				t.Errorf("Indentation() = %d, want %d", got, testCase.indentation)
			}
		})
	}
}

func TestStream_Unicode(t *testing.T) {
	t.Parallel()

	s := stream.New("é{", 4)
	if got := s.Next(); got != 'é' {
		t.Errorf("Next() = %q, want 'é'", got)
	}
	s.StartToken()
	if got := s.Column(); got != 1 {
		t.Errorf("Column() = %d, want 1", got)
	}
}

func TestIndentEnd(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		"":        0,
		"x":       0,
		"  x":     2,
		"\t x":    2,
		"    ":    4,
		" \t\tfoo": 3,
	}
	for line, want := range tests {
		if got := stream.IndentEnd(line); got != want {
			t.Errorf("IndentEnd(%q) = %d, want %d", line, got, want)
		}
	}
}
