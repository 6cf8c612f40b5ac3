package md

import (
	"fmt"
	"strings"
)

// XhpOptions configures the XHP document dialect.
type XhpOptions struct {
	// Identifier is the extension identifier internal links and images
	// are moved below.
	Identifier string
	// BaseAddr is the image source prefix replaced by the identifier.
	// Empty disables image rewriting.
	BaseAddr string
	// ShowErrors renders diagnostics for invalid macros and raw HTML.
	ShowErrors bool
	// EmphasiseTableHeader wraps header cells in <emph>.
	EmphasiseTableHeader bool
	// UseDummyHRule renders horizontal rules as a dashed paragraph.
	UseDummyHRule bool
	// IDs generates element ids; nil uses the process-wide random source.
	IDs *IDGenerator
}

// XhpRenderer renders help page content. A single renderer is reused for
// every page of a conversion run.
type XhpRenderer struct {
	opts XhpOptions
}

// NewXhpRenderer creates an XhpRenderer.
func NewXhpRenderer(opts XhpOptions) *XhpRenderer {
	return &XhpRenderer{opts: opts}
}

// Begin starts a new XHP document for doc.
func (r *XhpRenderer) Begin(doc Document) Visitor {
	return &xhpDocument{opts: r.opts, doc: doc}
}

// xhpDocument renders one XHP page.
type xhpDocument struct {
	BaseVisitor
	opts XhpOptions
	doc  Document

	title string // first level one heading, tags stripped
}

func (d *xhpDocument) macroContext() MacroContext {
	return MacroContext{Lang: d.doc.Lang, ShowErrors: d.opts.ShowErrors, IDs: d.opts.IDs}
}

func (d *xhpDocument) paragraph(content, role string) string {
	return xhpParagraph(d.opts.IDs, d.doc.Lang, role, content)
}

// xhpParagraph renders a <paragraph> with the given role.
func xhpParagraph(ids *IDGenerator, lang, role, content string) string {
	return fmt.Sprintf("<paragraph id=\"%s\" role=\"%s\" xml-lang=\"%s\">%s</paragraph>\n",
		ids.Generate("par"), Escape(role), Escape(lang), content)
}

func (d *xhpDocument) DocHeader() string {
	fileName := "/" + d.opts.Identifier + "/" + d.doc.FileName
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<helpdocument version="1.0">
 <meta>
  <topic id="topic_" indexer="include">
  <title id="tit" xml-lang="%s">%s</title>
  <filename>%s</filename>
 </topic>
 </meta>
<body>
`, Escape(d.doc.Lang), d.title, Escape(fileName))
}

func (d *xhpDocument) DocFooter() string {
	return "\n</body></helpdocument>"
}

// Heading renders every level as a heading paragraph; level one headings
// are also added to the index.
func (d *xhpDocument) Heading(content string, level int) string {
	lang := Escape(d.doc.Lang)
	var sb strings.Builder
	if level == 1 {
		text := StripTags(content)
		if d.title == "" {
			d.title = text
		}
		fmt.Fprintf(&sb, "<bookmark branch=\"index\" id=\"%s\" xml-lang=\"%s\"><bookmark_value>%s</bookmark_value></bookmark>\n",
			d.opts.IDs.Generate("id"), lang, text)
	}
	fmt.Fprintf(&sb, "<paragraph id=\"%s\" level=\"%d\" role=\"heading\" xml-lang=\"%s\">%s</paragraph>\n",
		d.opts.IDs.Generate("hd"), level, lang, content)
	return sb.String()
}

func (d *xhpDocument) Paragraph(content string) string {
	return d.paragraph(content, "paragraph")
}

func (d *xhpDocument) List(content string, ordered bool) string {
	if ordered {
		return "<list type=\"ordered\" format=\"1\">\n" + content + "</list>\n"
	}
	return "<list type=\"unordered\" bullet=\"disc\">\n" + content + "</list>\n"
}

func (d *xhpDocument) ListItem(content string, _ bool) string {
	return "<listitem>" + strings.TrimRight(content, " \t\r\n") + "</listitem>\n"
}

// BlockCode keeps line structure with explicit breaks. The language hint is
// accepted but not rendered.
func (d *xhpDocument) BlockCode(text, _ string) string {
	text = strings.TrimSuffix(text, "\n")
	return d.paragraph(strings.Join(strings.Split(Escape(text), "\n"), "<br />"), "code")
}

// BlockHTML expands a macro comment at the start of the block and drops
// any other raw HTML.
func (d *xhpDocument) BlockHTML(text string) string {
	return ExpandMacro(text, d.macroContext())
}

func (d *xhpDocument) HRule() string {
	if d.opts.UseDummyHRule {
		return d.paragraph("--------", "paragraph")
	}
	return ""
}

func (d *xhpDocument) Table(content string) string {
	return fmt.Sprintf("<table id=\"%s\">\n%s</table>\n", d.opts.IDs.Generate("tab"), content)
}

func (d *xhpDocument) TableRow(content string) string {
	return "<tablerow>" + content + "</tablerow>\n"
}

func (d *xhpDocument) TableCell(content string, _ Alignment, header bool) string {
	if header && d.opts.EmphasiseTableHeader {
		content = "<emph>" + content + "</emph>"
	}
	return "<tablecell>" + content + "</tablecell>"
}

func (d *xhpDocument) AutoLink(link string, _ bool) string {
	url := Escape(link)
	return fmt.Sprintf(`<link href="%s">%s</link>`, url, url)
}

// Emphasis of any strength maps to <emph>; the dialect has no italics.
func (d *xhpDocument) Emphasis(content string) string {
	return "<emph>" + content + "</emph>"
}

func (d *xhpDocument) DoubleEmphasis(content string) string {
	return d.Emphasis(content)
}

func (d *xhpDocument) Quote(content string) string {
	return "&quot;" + content + "&quot;"
}

func (d *xhpDocument) Strikethrough(content string) string {
	return "~~" + content + "~~"
}

func (d *xhpDocument) Image(link, title, _ string) string {
	src := RewriteImage(link, d.opts.Identifier, d.opts.BaseAddr)
	return fmt.Sprintf(`<image id="%s" src="%s">%s</image>`,
		d.opts.IDs.Generate("img"), Escape(src), Escape(title))
}

func (d *xhpDocument) LineBreak() string {
	return "<br />"
}

func (d *xhpDocument) Link(content, link, title string) string {
	href := RewriteLink(link, d.opts.Identifier)
	return fmt.Sprintf(`<link href="%s" name="%s">%s</link>`, Escape(href), Escape(title), content)
}

// RawHTML honours line breaks only.
func (d *xhpDocument) RawHTML(text string) string {
	switch text {
	case "<br />", "<br/>", "<br>":
		return d.LineBreak()
	}
	if d.opts.ShowErrors {
		return "-- raw html is invalid --"
	}
	return ""
}
