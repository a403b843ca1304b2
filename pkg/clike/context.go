package clike

import "slices"

// ContextType identifies the syntactic scope a Context tracks.
type ContextType uint8

// Context types.
const (
	ContextTop ContextType = iota
	ContextBrace
	ContextBracket
	ContextParen
	ContextStatement
)

// Closer returns the punctuation that closes the context, or 0 for the top
// level and statements.
func (t ContextType) Closer() rune {
	switch t {
	case ContextBrace:
		return '}'
	case ContextBracket:
		return ']'
	case ContextParen:
		return ')'
	default:
		return 0
	}
}

// String returns the lowercase name of the context type.
func (t ContextType) String() string {
	switch t {
	case ContextTop:
		return "top"
	case ContextBrace:
		return "brace"
	case ContextBracket:
		return "bracket"
	case ContextParen:
		return "paren"
	case ContextStatement:
		return "statement"
	default:
		return "unknown"
	}
}

// Alignment records whether a token followed a context's opener on the same line.
type Alignment int8

// Alignment values.
const (
	AlignUnset Alignment = iota
	AlignFalse
	AlignTrue
)

// String returns "unset", "false" or "true".
func (a Alignment) String() string {
	switch a {
	case AlignFalse:
		return "false"
	case AlignTrue:
		return "true"
	default:
		return "unset"
	}
}

// Context is one entry of the context stack.
type Context struct {
	// Indented is the indentation of the line the context opened on.
	Indented int
	// Column is the visual column of the opening delimiter.
	Column int
	Type   ContextType
	Align  Alignment
}

// State is the scanner and context state threaded through a document.
// The zero value is not usable; obtain one from Mode.StartState.
type State struct {
	Scan Scanner
	// Contexts is the context stack, innermost last. It always holds the
	// top-level context at index 0.
	Contexts []Context
	// Indented is the indentation of the line being scanned.
	Indented int
	// StartOfLine is true until the first significant token of a line.
	StartOfLine bool
}

// Context returns the innermost context.
func (st *State) Context() Context {
	return st.Contexts[len(st.Contexts)-1]
}

// Depth returns the number of contexts above the top level.
func (st *State) Depth() int {
	return len(st.Contexts) - 1
}

// Copy returns a deep copy of st.
func (st *State) Copy() *State {
	out := *st
	out.Contexts = slices.Clone(st.Contexts)
	return &out
}

// Equal reports whether st and other would scan identically from here on.
func (st *State) Equal(other *State) bool {
	if st == nil || other == nil {
		return st == other
	}
	return st.Scan == other.Scan &&
		st.Indented == other.Indented &&
		st.StartOfLine == other.StartOfLine &&
		slices.Equal(st.Contexts, other.Contexts)
}

func (st *State) top() *Context {
	return &st.Contexts[len(st.Contexts)-1]
}

func (st *State) push(column int, typ ContextType) {
	st.Contexts = append(st.Contexts, Context{
		Indented: st.Indented,
		Column:   column,
		Type:     typ,
		Align:    AlignUnset,
	})
}

// pop removes the innermost context. The top-level context is never removed.
func (st *State) pop() {
	if len(st.Contexts) > 1 {
		st.Contexts = st.Contexts[:len(st.Contexts)-1]
	}
}

func (st *State) popIf(typ ContextType) {
	if st.top().Type == typ {
		st.pop()
	}
}
