package md

import (
	"fmt"
	"strings"
)

const treeHeader = `<?xml version="1.0" encoding="UTF-8"?>
<tree_view version="13-11-2011">
`

// TreeOptions configures the tree dialect.
type TreeOptions struct {
	// Identifier is the extension identifier used in topic ids.
	Identifier string
	// Application is the namespace token prefixed to topic ids, usually
	// from NewApplicationToken.
	Application string
	// IDs generates element ids; nil uses the process-wide random source.
	IDs *IDGenerator
}

// TreeRenderer renders the navigation tree of a help section. Only level
// one and two headings and links contribute to the output.
type TreeRenderer struct {
	opts TreeOptions
}

// NewTreeRenderer creates a TreeRenderer.
func NewTreeRenderer(opts TreeOptions) *TreeRenderer {
	return &TreeRenderer{opts: opts}
}

// Begin starts a new tree document.
func (r *TreeRenderer) Begin(_ Document) Visitor {
	return &treeDocument{opts: r.opts}
}

// treeDocument holds the state of one tree render.
type treeDocument struct {
	BaseVisitor
	opts TreeOptions

	sectionWritten bool
	nodeLevel      int
}

func (d *treeDocument) DocHeader() string { return treeHeader }

func (d *treeDocument) DocFooter() string {
	var sb strings.Builder
	for ; d.nodeLevel > 0; d.nodeLevel-- {
		sb.WriteString("</node>\n")
	}
	if d.sectionWritten {
		sb.WriteString("</help_section>\n")
	}
	sb.WriteString("</tree_view>")
	return sb.String()
}

// Heading opens the help section on the first level one heading and a new
// node on every level two heading. Everything else is dropped.
func (d *treeDocument) Heading(content string, level int) string {
	switch level {
	case 1:
		// one section per tree; later level one headings are ignored
		if d.sectionWritten {
			return ""
		}
		d.sectionWritten = true
		return fmt.Sprintf("<help_section application=\"%s\" id=\"%s\" title=\"%s\">\n",
			Escape(d.opts.Application), d.opts.IDs.Number(), content)
	case 2:
		var sb strings.Builder
		if d.nodeLevel > 0 {
			sb.WriteString("</node>\n")
			d.nodeLevel--
		}
		d.nodeLevel++
		fmt.Fprintf(&sb, "<node id=\"%s\" title=\"%s\">\n", d.opts.IDs.Number(), content)
		return sb.String()
	default:
		return ""
	}
}

func (d *treeDocument) Link(content, link, _ string) string {
	id := d.opts.Application + "/" + d.opts.Identifier + "/" + TopicPath(link)
	return fmt.Sprintf("<topic id=\"%s\">%s</topic>\n", Escape(id), content)
}

func (d *treeDocument) NormalText(text string) string {
	return Escape(strings.TrimSpace(text))
}
