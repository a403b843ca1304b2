// Package langdetect maps source files to clike language presets.
// It uses go-enry for extension and classifier based detection and falls
// back to a handful of highly indicative patterns for ambiguous headers
// and snippets without a file name.
package langdetect

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/clikemode/pkg/clike"
)

// Markdown is returned for Markdown documents, whose fenced code blocks
// are processed separately.
const Markdown = "markdown"

// Unknown is returned when no C-family language matches.
const Unknown = ""

// candidates restricts the enry classifier to the languages we support.
var candidates = []string{"C", "C++", "Java", "C#"}

var enryNames = map[string]string{
	"C":        clike.NameC,
	"C++":      clike.NameCPP,
	"Java":     clike.NameJava,
	"C#":       clike.NameCSharp,
	"Markdown": Markdown,
}

var javaPackage = regexp.MustCompile(`(?m)^\s*package\s+[\w.]+\s*;`)

// Detect returns the preset name for a file, "markdown" for Markdown
// documents, or Unknown. Either argument may be empty. A path whose
// extension belongs to another language is Unknown regardless of content.
func Detect(path string, content []byte) string {
	if path != "" {
		if lang, ok := byExtension(path, content); ok {
			return lang
		}
	}
	return DetectContent(content)
}

// DetectContent guesses the language of a snippet.
func DetectContent(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Unknown
	}
	if lang := detectByPattern(content); lang != Unknown {
		return lang
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe {
		return normalize(lang)
	}
	return Unknown
}

// byExtension resolves unambiguous extensions directly and narrows
// ambiguous ones (such as .h) with content.
func byExtension(path string, content []byte) (string, bool) {
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return normalize(lang), true
	}

	langs := enry.GetLanguagesByExtension(path, content, nil)
	var supported []string
	for _, lang := range langs {
		if name := normalize(lang); name != Unknown {
			supported = append(supported, lang)
		}
	}
	switch len(supported) {
	case 0:
		return Unknown, false
	case 1:
		return normalize(supported[0]), true
	}

	if lang := detectByPattern(content); lang != Unknown {
		return lang, true
	}
	if lang, safe := enry.GetLanguageByClassifier(content, supported); safe {
		return normalize(lang), true
	}
	// Headers default to C when nothing points at C++.
	if strings.EqualFold(filepath.Ext(path), ".h") {
		return clike.NameC, true
	}
	return normalize(supported[0]), true
}

// detectByPattern checks for constructs that identify one language.
func detectByPattern(content []byte) string {
	text := string(content)

	switch {
	case detectCSharp(text):
		return clike.NameCSharp
	case detectJava(text):
		return clike.NameJava
	case detectCPP(text):
		return clike.NameCPP
	case detectC(text):
		return clike.NameC
	}
	return Unknown
}

func detectCSharp(text string) bool {
	return strings.Contains(text, "using System") ||
		strings.Contains(text, "Console.Write") ||
		strings.Contains(text, "[assembly:")
}

func detectJava(text string) bool {
	return javaPackage.MatchString(text) ||
		strings.Contains(text, "import java.") ||
		strings.Contains(text, "System.out.print")
}

func detectCPP(text string) bool {
	return strings.Contains(text, "std::") ||
		strings.Contains(text, "#include <iostream>") ||
		strings.Contains(text, "template <") ||
		strings.Contains(text, "template<") ||
		strings.Contains(text, "nullptr")
}

func detectC(text string) bool {
	return strings.Contains(text, "#include <stdio.h>") ||
		strings.Contains(text, "#include <stdlib.h>") ||
		strings.Contains(text, "printf(")
}

// normalize converts a go-enry language name to a preset name.
func normalize(lang string) string {
	return enryNames[lang]
}
