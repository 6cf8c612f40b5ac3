// Package md converts markdown help sources into the XML dialects of the
// help-authoring toolchain: the tree dialect describing navigation and the
// XHP document dialect describing page content.
package md

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// mdParser is a pre-configured goldmark instance with the extension set the
// help sources are written against.
var mdParser = goldmark.New(
	goldmark.WithParser(parser.NewParser(
		parser.WithBlockParsers(blockParsers()...),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)),
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.Footnote,
		extension.Linkify,
		InlineExtensions,
	),
)

// blockParsers returns goldmark's block parsers without indented code
// blocks; indented lines are prose and code must be fenced.
func blockParsers() []util.PrioritizedValue {
	codeBlock := parser.NewCodeBlockParser()
	var parsers []util.PrioritizedValue
	for _, p := range parser.DefaultBlockParsers() {
		if p.Value == codeBlock {
			continue
		}
		parsers = append(parsers, p)
	}
	return parsers
}

// Render parses markdown and drives a fresh Visitor from r over it. The
// result is the header, the body fragments in document order, then the
// footer.
func Render(markdown []byte, r Renderer, doc Document) string {
	v := r.Begin(doc)

	root := mdParser.Parser().Parse(text.NewReader(markdown))
	w := &walker{source: markdown, v: v}
	body := w.renderChildren(root)

	var sb strings.Builder
	sb.WriteString(v.DocHeader())
	sb.WriteString(body)
	sb.WriteString(v.DocFooter())
	return sb.String()
}

// ToXHP renders markdown into an XHP help document.
func ToXHP(markdown []byte, opts XhpOptions, doc Document) string {
	return Render(markdown, NewXhpRenderer(opts), doc)
}

// ToTree renders markdown into a help tree.
func ToTree(markdown []byte, opts TreeOptions) string {
	return Render(markdown, NewTreeRenderer(opts), Document{})
}
