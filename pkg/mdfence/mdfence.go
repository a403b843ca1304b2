// Package mdfence locates C-family fenced code blocks in Markdown documents
// so their bodies can be highlighted or re-indented in place.
package mdfence

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/clikemode/pkg/clike"
)

// Line is one line of a code block body. Start and End are byte offsets in
// the document and exclude the line terminator.
type Line struct {
	Start int
	End   int
	// Padding is the number of columns goldmark expanded from a tab that
	// straddles the container indentation. Lines with padding cannot be
	// rewritten byte for byte.
	Padding int
}

// Block is a fenced code block whose info string names a C-family language.
type Block struct {
	Info     string
	Language string
	// StartLine is the 1-based document line of the first body line.
	StartLine int
	Lines     []Line
}

// Text returns the body lines of b.
func (b Block) Text(content []byte) []string {
	out := make([]string, len(b.Lines))
	for i, line := range b.Lines {
		out[i] = string(content[line.Start:line.End])
	}
	return out
}

// Rewritable reports whether every body line maps to a contiguous byte range.
func (b Block) Rewritable() bool {
	for _, line := range b.Lines {
		if line.Padding > 0 {
			return false
		}
	}
	return true
}

// Language resolves a fence info string such as "cpp title=x" to a preset name.
func Language(info string) (string, bool) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "", false
	}
	word := strings.Trim(fields[0], "{}.")
	return clike.Canonical(word)
}

// Find returns the C-family fenced code blocks of a Markdown document in
// document order. Blocks with an empty body are skipped.
func Find(content []byte) []Block {
	doc := goldmark.New().Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	var blocks []Block
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok || fenced.Info == nil {
			return ast.WalkContinue, nil
		}
		info := string(fenced.Info.Value(content))
		lang, ok := Language(info)
		if !ok || fenced.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		blocks = append(blocks, newBlock(content, info, lang, fenced.Lines()))
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func newBlock(content []byte, info, lang string, segments *text.Segments) Block {
	block := Block{Info: info, Language: lang}
	for i := range segments.Len() {
		seg := segments.At(i)
		block.Lines = append(block.Lines, Line{
			Start:   seg.Start,
			End:     seg.Start + len(trimEOL(content[seg.Start:seg.Stop])),
			Padding: seg.Padding,
		})
	}
	block.StartLine = bytes.Count(content[:block.Lines[0].Start], []byte("\n")) + 1
	return block
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}

// Rewrite returns content with the body lines of each block replaced by
// replace. replace receives the current body and returns the same number of
// lines; blocks that are not Rewritable or whose replacement has a
// different length are left unchanged.
func Rewrite(content []byte, blocks []Block, replace func(Block, []string) []string) []byte {
	var out bytes.Buffer
	out.Grow(len(content))
	prev := 0
	for _, block := range blocks {
		if !block.Rewritable() {
			continue
		}
		updated := replace(block, block.Text(content))
		if len(updated) != len(block.Lines) {
			continue
		}
		for i, line := range block.Lines {
			out.Write(content[prev:line.Start])
			out.WriteString(updated[i])
			prev = line.End
		}
	}
	out.Write(content[prev:])
	return out.Bytes()
}
