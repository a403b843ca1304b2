// Package stream provides a cursor over a single line of source text.
//
// A Stream is handed to a tokenizer one line at a time. The tokenizer
// consumes characters from the current position and the host reads the
// consumed lexeme with Current before calling StartToken for the next one.
// Positions are byte offsets into the line; columns are visual columns with
// tabs expanded to the configured tab size.
package stream

import (
	"unicode"
	"unicode/utf8"
)

// EOF is returned by Peek and Next when the cursor is at end of line.
const EOF rune = -1

// DefaultTabSize is used when New is given a non-positive tab size.
const DefaultTabSize = 4

// Stream is a cursor over one line of text.
type Stream struct {
	line    string
	pos     int
	start   int
	tabSize int
}

// New returns a Stream positioned at the start of line.
func New(line string, tabSize int) *Stream {
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	return &Stream{line: line, tabSize: tabSize}
}

// Line returns the full text of the line.
func (s *Stream) Line() string {
	return s.line
}

// Pos returns the byte offset of the cursor.
func (s *Stream) Pos() int {
	return s.pos
}

// Start returns the byte offset where the current token began.
func (s *Stream) Start() int {
	return s.start
}

// TabSize returns the tab width used for column computations.
func (s *Stream) TabSize() int {
	return s.tabSize
}

// EOL reports whether the cursor is at the end of the line.
func (s *Stream) EOL() bool {
	return s.pos >= len(s.line)
}

// SOL reports whether the cursor is at the start of the line.
func (s *Stream) SOL() bool {
	return s.pos == 0
}

// Peek returns the next character without consuming it.
func (s *Stream) Peek() rune {
	if s.EOL() {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(s.line[s.pos:])
	return r
}

// Next consumes and returns the next character.
func (s *Stream) Next() rune {
	if s.EOL() {
		return EOF
	}
	r, size := utf8.DecodeRuneInString(s.line[s.pos:])
	s.pos += size
	return r
}

// Eat consumes the next character if it equals want.
func (s *Stream) Eat(want rune) bool {
	if s.Peek() != want || want == EOF {
		return false
	}
	s.Next()
	return true
}

// EatFunc consumes the next character if match accepts it.
func (s *Stream) EatFunc(match func(rune) bool) bool {
	r := s.Peek()
	if r == EOF || !match(r) {
		return false
	}
	s.Next()
	return true
}

// EatWhile consumes characters while match accepts them and reports whether
// anything was consumed.
func (s *Stream) EatWhile(match func(rune) bool) bool {
	begin := s.pos
	for s.EatFunc(match) {
	}
	return s.pos > begin
}

// EatSpace consumes a run of whitespace.
func (s *Stream) EatSpace() bool {
	return s.EatWhile(unicode.IsSpace)
}

// SkipToEnd moves the cursor to the end of the line.
func (s *Stream) SkipToEnd() {
	s.pos = len(s.line)
}

// BackUp moves the cursor back n bytes, never before the token start.
func (s *Stream) BackUp(n int) {
	s.pos -= n
	if s.pos < s.start {
		s.pos = s.start
	}
}

// Current returns the text consumed since the last StartToken.
func (s *Stream) Current() string {
	return s.line[s.start:s.pos]
}

// StartToken marks the cursor position as the start of the next token.
func (s *Stream) StartToken() {
	s.start = s.pos
}

// Column returns the visual column where the current token starts.
func (s *Stream) Column() int {
	return CountColumn(s.line, s.start, s.tabSize)
}

// Indentation returns the visual width of the line's leading whitespace.
func (s *Stream) Indentation() int {
	return CountColumn(s.line, IndentEnd(s.line), s.tabSize)
}

// CountColumn returns the visual column of byte offset end in text, expanding
// tabs to the next multiple of tabSize.
func CountColumn(text string, end, tabSize int) int {
	if end > len(text) {
		end = len(text)
	}
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	col := 0
	for _, r := range text[:end] {
		if r == '\t' {
			col += tabSize - col%tabSize
			continue
		}
		col++
	}
	return col
}

// IndentEnd returns the byte offset of the first non-whitespace character
// in text, or len(text) if the line is blank.
func IndentEnd(text string) int {
	for i, r := range text {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return len(text)
}
