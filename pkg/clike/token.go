package clike

import "fmt"

// Kind classifies a token produced by Mode.Token.
type Kind uint8

// Token kinds.
const (
	KindSpace Kind = iota
	KindIdentifier
	KindKeyword
	KindNumber
	KindString
	KindOperator
	KindComment
	KindPunctuation // one of [ ] { } ( ) , ; : . or an unrecognized character
	KindAnnotation  // @Name
	KindDirective   // #include ...
	KindAtom        // true, false, null
	KindVariable    // $name
)

var kindNames = [...]string{
	KindSpace:       "space",
	KindIdentifier:  "identifier",
	KindKeyword:     "keyword",
	KindNumber:      "number",
	KindString:      "string",
	KindOperator:    "operator",
	KindComment:     "comment",
	KindPunctuation: "punctuation",
	KindAnnotation:  "annotation",
	KindDirective:   "directive",
	KindAtom:        "atom",
	KindVariable:    "variable",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown token kind %q", text)
}

// Style is the highlighting tag attached to a token. The empty style means
// the token is rendered as plain text.
type Style string

// Style tags.
const (
	StyleNone     Style = ""
	StyleKeyword  Style = "keyword"
	StyleAtom     Style = "atom"
	StyleNumber   Style = "number"
	StyleString   Style = "string"
	StyleComment  Style = "comment"
	StyleMeta     Style = "meta"
	StyleVariable Style = "variable"
)

// Styles lists every non-empty style tag.
func Styles() []Style {
	return []Style{StyleKeyword, StyleAtom, StyleNumber, StyleString, StyleComment, StyleMeta, StyleVariable}
}

// Token is a classified lexeme. Start and End are byte offsets within the
// line that produced it.
type Token struct {
	Kind  Kind
	Style Style
	// Char is the punctuation character for KindPunctuation tokens.
	Char  rune
	Text  string
	Start int
	End   int
}

// IsPunct reports whether the token is the punctuation character r.
func (t Token) IsPunct(r rune) bool {
	return t.Kind == KindPunctuation && t.Char == r
}

// affectsContext reports whether the token participates in context tracking.
// Whitespace, comments, and whole-line directives leave the stack alone.
func (t Token) affectsContext() bool {
	switch t.Kind {
	case KindSpace, KindComment, KindDirective:
		return false
	default:
		return true
	}
}
