package clike

import (
	"slices"
	"strings"
)

// Preset names.
const (
	NameC      = "c"
	NameCPP    = "cpp"
	NameJava   = "java"
	NameCSharp = "csharp"
)

const cKeywords = "auto if break int case long char register continue return default short do sizeof " +
	"double static else struct entry switch extern typedef float union for unsigned " +
	"goto while enum void const signed volatile"

const cppKeywords = cKeywords + " asm dynamic_cast namespace reinterpret_cast try bool explicit new " +
	"static_cast typeid catch false operator template typename class friend private " +
	"this using const_cast inline public throw virtual delete mutable protected true " +
	"wchar_t"

const javaKeywords = "abstract assert boolean break byte case catch char class const continue default " +
	"do double else enum extends false final finally float for goto if implements import " +
	"instanceof int interface long native new null package private protected public " +
	"return short static strictfp super switch synchronized this throw throws transient " +
	"true try void volatile while"

const csharpKeywords = "abstract as base bool break byte case catch char checked class const continue decimal" +
	" default delegate do double else enum event explicit extern false finally fixed float for" +
	" foreach goto if implicit in int interface internal is lock long namespace new null object" +
	" operator out override params private protected public readonly ref return sbyte sealed short" +
	" sizeof stackalloc static string struct switch this throw true try typeof uint ulong unchecked" +
	" unsafe ushort using virtual void volatile while add alias ascending descending dynamic from get" +
	" global group into join let orderby partial remove select set value var yield"

// C returns the C language preset.
func C() Config {
	return Config{
		Name:       NameC,
		Title:      "C",
		MIME:       "text/x-csrc",
		IndentUnit: DefaultIndentUnit,
		Keywords:   ParseKeywords(cKeywords),
		Directives: true,
	}
}

// CPP returns the C++ language preset.
func CPP() Config {
	return Config{
		Name:       NameCPP,
		Title:      "C++",
		MIME:       "text/x-c++src",
		IndentUnit: DefaultIndentUnit,
		Keywords:   ParseKeywords(cppKeywords),
		Directives: true,
	}
}

// Java returns the Java language preset.
func Java() Config {
	return Config{
		Name:         NameJava,
		Title:        "Java",
		MIME:         "text/x-java",
		IndentUnit:   DefaultIndentUnit,
		Keywords:     ParseKeywords(javaKeywords),
		Annotations:  true,
		LiteralAtoms: true,
	}
}

// CSharp returns the C# language preset.
func CSharp() Config {
	return Config{
		Name:            NameCSharp,
		Title:           "C#",
		MIME:            "text/x-csharp",
		IndentUnit:      DefaultIndentUnit,
		Keywords:        ParseKeywords(csharpKeywords),
		Annotations:     true,
		VerbatimStrings: true,
	}
}

// Presets returns every built-in language in a stable order.
func Presets() []Config {
	return []Config{C(), CPP(), Java(), CSharp()}
}

// Names returns the preset names in the same order as Presets.
func Names() []string {
	return []string{NameC, NameCPP, NameJava, NameCSharp}
}

var aliases = map[string]string{
	"c":             NameC,
	"h":             NameC,
	"cpp":           NameCPP,
	"c++":           NameCPP,
	"cc":            NameCPP,
	"cxx":           NameCPP,
	"hpp":           NameCPP,
	"hh":            NameCPP,
	"java":          NameJava,
	"csharp":        NameCSharp,
	"cs":            NameCSharp,
	"c#":            NameCSharp,
	"text/x-csrc":   NameC,
	"text/x-c++src": NameCPP,
	"text/x-java":   NameJava,
	"text/x-csharp": NameCSharp,
}

// Canonical maps a preset name, alias, or MIME type to a preset name.
// The second result is false if name is not recognized.
func Canonical(name string) (string, bool) {
	canonical, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// AliasesOf returns the sorted alternative names of a preset, excluding
// the name itself and MIME types.
func AliasesOf(name string) []string {
	var out []string
	for alias, canonical := range aliases {
		if canonical == name && alias != name && !strings.Contains(alias, "/") {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// Lookup returns the preset registered under name, an alias, or a MIME type.
func Lookup(name string) (Config, bool) {
	canonical, ok := Canonical(name)
	if !ok {
		return Config{}, false
	}
	switch canonical {
	case NameC:
		return C(), true
	case NameCPP:
		return CPP(), true
	case NameJava:
		return Java(), true
	case NameCSharp:
		return CSharp(), true
	}
	return Config{}, false
}
