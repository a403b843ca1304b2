package clike

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultIndentUnit is the indentation width used when a config leaves it unset.
const DefaultIndentUnit = 4

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid language config")

// KeywordSet is an immutable set of reserved words.
type KeywordSet struct {
	words map[string]struct{}
}

// NewKeywordSet builds a set from words. Empty strings are ignored.
func NewKeywordSet(words ...string) KeywordSet {
	set := KeywordSet{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w != "" {
			set.words[w] = struct{}{}
		}
	}
	return set
}

// ParseKeywords builds a set from a space separated word list.
func ParseKeywords(list string) KeywordSet {
	return NewKeywordSet(strings.Fields(list)...)
}

// Has reports whether word is in the set.
func (k KeywordSet) Has(word string) bool {
	_, ok := k.words[word]
	return ok
}

// Len returns the number of words.
func (k KeywordSet) Len() int {
	return len(k.words)
}

// Words returns the words in sorted order.
func (k KeywordSet) Words() []string {
	out := make([]string, 0, len(k.words))
	for w := range k.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Union returns a new set holding the words of k plus extra.
func (k KeywordSet) Union(extra ...string) KeywordSet {
	return NewKeywordSet(append(k.Words(), extra...)...)
}

// Without returns a new set holding the words of k minus remove.
func (k KeywordSet) Without(remove ...string) KeywordSet {
	words := k.Words()
	words = slices.DeleteFunc(words, func(w string) bool {
		return slices.Contains(remove, w)
	})
	return NewKeywordSet(words...)
}

// Config describes one C-like language. Values are copied into a Mode at
// construction and never mutated afterwards.
type Config struct {
	// Name is the preset identifier, e.g. "cpp".
	Name string
	// Title is a human readable name, e.g. "C++".
	Title string
	// MIME is the content type the language is registered under.
	MIME string

	IndentUnit int
	Keywords   KeywordSet

	// Directives enables whole-line "#..." preprocessor tokens.
	Directives bool
	// MultiLineStrings keeps an unterminated quoted string open across lines.
	MultiLineStrings bool
	// VerbatimStrings enables @"..." strings with doubled-quote escapes.
	VerbatimStrings bool
	// Annotations enables @Name tokens.
	Annotations bool
	// DollarVariables enables $name variable tokens.
	DollarVariables bool
	// LiteralAtoms marks true, false and null keywords as atoms.
	LiteralAtoms bool
}

// WithIndentUnit returns a copy of c using unit columns per level.
func (c Config) WithIndentUnit(unit int) Config {
	c.IndentUnit = unit
	return c
}

// WithKeywords returns a copy of c with extra keywords added.
func (c Config) WithKeywords(extra ...string) Config {
	c.Keywords = c.Keywords.Union(extra...)
	return c
}

// WithoutKeywords returns a copy of c with the given keywords removed.
func (c Config) WithoutKeywords(remove ...string) Config {
	c.Keywords = c.Keywords.Without(remove...)
	return c
}

// Validate checks that c can drive a Mode.
func (c Config) Validate() error {
	if c.IndentUnit < 0 {
		return fmt.Errorf("%w: indent unit %d is negative", ErrInvalidConfig, c.IndentUnit)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidConfig)
	}
	return nil
}

func (c Config) indentUnit() int {
	if c.IndentUnit <= 0 {
		return DefaultIndentUnit
	}
	return c.IndentUnit
}
