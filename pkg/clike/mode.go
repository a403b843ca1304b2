// Package clike implements an incremental tokenizer and indentation engine
// for brace-delimited languages in the C family.
//
// A Mode is built from an immutable Config. The host scans a document one
// line at a time, calling Token repeatedly on a stream.Stream for each line
// and threading a single State from line to line. Before a new line is
// typed, Indent reports the column it should start at, based on a stack of
// open contexts (blocks, brackets, parenthesized groups and unterminated
// statements).
package clike

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/clikemode/pkg/stream"
)

// ElectricChars are the characters whose insertion should re-indent the line.
const ElectricChars = "{}"

// IsElectric reports whether typing r should trigger re-indentation.
func IsElectric(r rune) bool {
	return strings.ContainsRune(ElectricChars, r)
}

// Mode tokenizes and indents one language.
type Mode struct {
	cfg  Config
	unit int
}

// New returns a Mode for cfg.
func New(cfg Config) *Mode {
	return &Mode{cfg: cfg, unit: cfg.indentUnit()}
}

// Config returns the configuration the mode was built with.
func (m *Mode) Config() Config {
	return m.cfg
}

// IndentUnit returns the number of columns per indentation level.
func (m *Mode) IndentUnit() int {
	return m.unit
}

// StartState returns the state for the start of a document whose top-level
// code is indented at baseColumn.
func (m *Mode) StartState(baseColumn int) *State {
	return &State{
		Contexts: []Context{{
			Indented: baseColumn - m.unit,
			Column:   0,
			Type:     ContextTop,
			Align:    AlignFalse,
		}},
		StartOfLine: true,
	}
}

// Token consumes the next token from s and updates st. Each call consumes at
// least one character; callers stop once s.EOL() is true.
func (m *Mode) Token(s *stream.Stream, st *State) Token {
	s.StartToken()
	if s.SOL() {
		m.startLine(s.Indentation(), st)
	}
	if s.EOL() {
		return m.finish(s, Token{Kind: KindSpace})
	}
	if s.EatSpace() {
		return m.finish(s, Token{Kind: KindSpace})
	}

	tok := m.finish(s, m.scan(s, st))
	if tok.affectsContext() {
		m.track(s, st, tok)
	}
	return tok
}

// BlankLine updates st for a line with no characters, which produces no
// tokens but still ends any pending alignment decision.
func (m *Mode) BlankLine(st *State) {
	top := st.top()
	if top.Align == AlignUnset {
		top.Align = AlignFalse
	}
}

// ScanLine tokenizes the rest of s and returns the tokens in order.
func (m *Mode) ScanLine(s *stream.Stream, st *State) []Token {
	if s.SOL() && s.EOL() {
		m.BlankLine(st)
		return nil
	}
	var tokens []Token
	for !s.EOL() {
		tokens = append(tokens, m.Token(s, st))
	}
	return tokens
}

// Indent returns the suggested indentation of a line whose text (after
// leading whitespace) is textAfter, given the state at the end of the
// previous line. Lines that start inside a comment or string get 0.
func (m *Mode) Indent(st *State, textAfter string) int {
	if st.Scan.Pending() {
		return 0
	}
	first, _ := utf8.DecodeRuneInString(strings.TrimLeftFunc(textAfter, unicode.IsSpace))
	ctx := st.Context()
	closing := ctx.Type.Closer() != 0 && first == ctx.Type.Closer()

	var indent int
	switch {
	case ctx.Type == ContextStatement:
		indent = ctx.Indented
		if first != '{' {
			indent += m.unit
		}
	case ctx.Align == AlignTrue:
		indent = ctx.Column
		if !closing {
			indent++
		}
	default:
		indent = ctx.Indented
		if !closing {
			indent += m.unit
		}
	}
	return max(indent, 0)
}

func (m *Mode) startLine(indentation int, st *State) {
	m.BlankLine(st)
	st.Indented = indentation
	st.StartOfLine = true
}

func (m *Mode) finish(s *stream.Stream, tok Token) Token {
	tok.Text = s.Current()
	tok.Start = s.Start()
	tok.End = s.Pos()
	return tok
}

// track applies a significant token to the context stack.
func (m *Mode) track(s *stream.Stream, st *State, tok Token) {
	ctx := st.top()
	if ctx.Align == AlignUnset {
		ctx.Align = AlignTrue
	}

	switch {
	case (tok.IsPunct(';') || tok.IsPunct(':')) && ctx.Type == ContextStatement:
		st.pop()
	case tok.IsPunct('{'):
		st.push(s.Column(), ContextBrace)
	case tok.IsPunct('['):
		st.push(s.Column(), ContextBracket)
	case tok.IsPunct('('):
		st.push(s.Column(), ContextParen)
	case tok.IsPunct('}'):
		st.popIf(ContextStatement)
		st.popIf(ContextBrace)
		st.popIf(ContextStatement)
	case tok.Kind == KindPunctuation && ctx.Type.Closer() != 0 && tok.Char == ctx.Type.Closer():
		st.pop()
	case ctx.Type == ContextBrace || ctx.Type == ContextTop:
		st.push(s.Column(), ContextStatement)
	}
	st.StartOfLine = false
}
