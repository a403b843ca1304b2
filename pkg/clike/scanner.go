package clike

import (
	"unicode"

	"github.com/yaklabco/clikemode/pkg/stream"
)

// ScanMode is the tokenizer mode carried from one call to the next.
type ScanMode uint8

// Scan modes.
const (
	ScanBase ScanMode = iota
	ScanString
	ScanBlockComment
	ScanVerbatimString
)

// String returns the lowercase name of the mode.
func (m ScanMode) String() string {
	switch m {
	case ScanBase:
		return "base"
	case ScanString:
		return "string"
	case ScanBlockComment:
		return "block-comment"
	case ScanVerbatimString:
		return "verbatim-string"
	default:
		return "unknown"
	}
}

// Scanner is the active tokenizer mode. Quote is set for ScanString.
type Scanner struct {
	Mode  ScanMode
	Quote rune
}

// Pending reports whether a comment or string continues past the current position.
func (s Scanner) Pending() bool {
	return s.Mode != ScanBase
}

func (m *Mode) scan(s *stream.Stream, st *State) Token {
	switch st.Scan.Mode {
	case ScanString:
		return m.scanString(s, st)
	case ScanBlockComment:
		return scanBlockComment(s, st)
	case ScanVerbatimString:
		return scanVerbatimString(s, st)
	default:
		return m.scanBase(s, st)
	}
}

func (m *Mode) scanBase(s *stream.Stream, st *State) Token {
	ch := s.Next()
	switch {
	case ch == '"' || ch == '\'':
		st.Scan = Scanner{Mode: ScanString, Quote: ch}
		return m.scanString(s, st)
	case isStructural(ch):
		return Token{Kind: KindPunctuation, Char: ch}
	case ch == '#' && m.cfg.Directives && st.StartOfLine:
		s.SkipToEnd()
		return Token{Kind: KindDirective, Style: StyleMeta}
	case isDigit(ch):
		s.EatWhile(isNumberChar)
		return Token{Kind: KindNumber, Style: StyleNumber}
	case ch == '/':
		if s.Eat('*') {
			st.Scan = Scanner{Mode: ScanBlockComment}
			return scanBlockComment(s, st)
		}
		if s.Eat('/') {
			s.SkipToEnd()
			return Token{Kind: KindComment, Style: StyleComment}
		}
		s.EatWhile(isOperatorChar)
		return Token{Kind: KindOperator}
	case isOperatorChar(ch):
		s.EatWhile(isOperatorChar)
		return Token{Kind: KindOperator}
	case ch == '@' && m.cfg.VerbatimStrings && s.Eat('"'):
		st.Scan = Scanner{Mode: ScanVerbatimString}
		return scanVerbatimString(s, st)
	case ch == '@' && m.cfg.Annotations:
		s.EatWhile(isWordChar)
		return Token{Kind: KindAnnotation, Style: StyleMeta}
	case ch == '$' && m.cfg.DollarVariables:
		s.EatWhile(isWordChar)
		return Token{Kind: KindVariable, Style: StyleVariable}
	case isWordChar(ch):
		s.EatWhile(isWordChar)
		return m.classifyWord(s.Current())
	default:
		return Token{Kind: KindPunctuation, Char: ch}
	}
}

func (m *Mode) classifyWord(word string) Token {
	if !m.cfg.Keywords.Has(word) {
		return Token{Kind: KindIdentifier}
	}
	if m.cfg.LiteralAtoms && isLiteralAtom(word) {
		return Token{Kind: KindAtom, Style: StyleAtom}
	}
	return Token{Kind: KindKeyword, Style: StyleKeyword}
}

// scanString consumes up to the closing quote or end of line. An
// unterminated string stays open only when the line ends in an escape or
// multi-line strings are enabled.
func (m *Mode) scanString(s *stream.Stream, st *State) Token {
	quote := st.Scan.Quote
	escaped, closed := false, false
	for {
		r := s.Next()
		if r == stream.EOF {
			break
		}
		if r == quote && !escaped {
			closed = true
			break
		}
		escaped = !escaped && r == '\\'
	}
	if closed || !(escaped || m.cfg.MultiLineStrings) {
		st.Scan = Scanner{}
	}
	return Token{Kind: KindString, Style: StyleString}
}

// scanVerbatimString consumes a @"..." body where "" is a literal quote.
func scanVerbatimString(s *stream.Stream, st *State) Token {
	for {
		r := s.Next()
		if r == stream.EOF {
			break
		}
		if r == '"' && !s.Eat('"') {
			st.Scan = Scanner{}
			break
		}
	}
	return Token{Kind: KindString, Style: StyleString}
}

func scanBlockComment(s *stream.Stream, st *State) Token {
	maybeEnd := false
	for {
		r := s.Next()
		if r == stream.EOF {
			break
		}
		if r == '/' && maybeEnd {
			st.Scan = Scanner{}
			break
		}
		maybeEnd = r == '*'
	}
	return Token{Kind: KindComment, Style: StyleComment}
}

func isStructural(r rune) bool {
	switch r {
	case '[', ']', '{', '}', '(', ')', ',', ';', ':', '.':
		return true
	default:
		return false
	}
}

func isOperatorChar(r rune) bool {
	switch r {
	case '+', '-', '*', '&', '%', '=', '<', '>', '!', '?', '|':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNumberChar(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '.'
}

func isWordChar(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isLiteralAtom(word string) bool {
	return word == "true" || word == "false" || word == "null"
}
