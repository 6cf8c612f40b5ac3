package md

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

// walker feeds a goldmark AST to a Visitor inside-out.
type walker struct {
	source []byte
	v      Visitor
}

// renderChildren renders the children of n. Inline parsers split a run of
// text into several Text nodes; each run reaches NormalText in one call.
func (w *walker) renderChildren(n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; {
		t, ok := child.(*ast.Text)
		if !ok {
			sb.WriteString(w.render(child))
			child = child.NextSibling()
			continue
		}
		last := w.renderTextRun(&sb, t)
		child = last.NextSibling()
	}
	return sb.String()
}

// renderTextRun renders t and the Text siblings following it up to the
// first line break, and returns the last node consumed.
func (w *walker) renderTextRun(sb *strings.Builder, t *ast.Text) *ast.Text {
	var run []byte
	for {
		run = append(run, w.textValue(t)...)
		if t.SoftLineBreak() || t.HardLineBreak() {
			break
		}
		next, ok := t.NextSibling().(*ast.Text)
		if !ok {
			break
		}
		t = next
	}
	sb.WriteString(w.v.NormalText(string(run)))
	sb.WriteString(w.lineBreak(t))
	return t
}

func (w *walker) render(n ast.Node) string {
	switch node := n.(type) {
	case *ast.Heading:
		return w.v.Heading(w.renderChildren(node), node.Level)
	case *ast.Paragraph:
		return w.v.Paragraph(w.renderChildren(node))
	case *ast.TextBlock:
		// tight list items carry their inline content without a paragraph
		return w.renderChildren(node)
	case *ast.List:
		return w.v.List(w.renderChildren(node), node.IsOrdered())
	case *ast.ListItem:
		ordered := false
		if list, ok := node.Parent().(*ast.List); ok {
			ordered = list.IsOrdered()
		}
		return w.v.ListItem(w.renderChildren(node), ordered)
	case *ast.FencedCodeBlock:
		return w.v.BlockCode(w.lines(node), string(node.Language(w.source)))
	case *ast.CodeBlock:
		return w.v.BlockCode(w.lines(node), "")
	case *ast.Blockquote:
		return w.v.BlockQuote(w.renderChildren(node))
	case *ast.HTMLBlock:
		raw := w.lines(node)
		if node.HasClosure() {
			raw += string(node.ClosureLine.Value(w.source))
		}
		return w.v.BlockHTML(raw)
	case *ast.ThematicBreak:
		return w.v.HRule()
	case *extast.Table:
		return w.renderTable(node)
	case *extast.TableHeader:
		return w.v.TableHeader(w.v.TableRow(w.renderChildren(node)))
	case *extast.TableRow:
		return w.v.TableRow(w.renderChildren(node))
	case *extast.TableCell:
		_, header := node.Parent().(*extast.TableHeader)
		return w.v.TableCell(w.renderChildren(node), alignment(node.Alignment), header)
	case *extast.FootnoteList:
		return w.v.Footnotes(w.renderChildren(node))
	case *extast.Footnote:
		return w.v.FootnoteDef(w.renderChildren(node), node.Index)
	case *extast.FootnoteLink:
		return w.v.FootnoteRef(node.Index)
	case *extast.FootnoteBacklink:
		return ""

	case *ast.Text:
		return w.v.NormalText(string(w.textValue(node))) + w.lineBreak(node)
	case *ast.String:
		return w.v.NormalText(string(node.Value))
	case *ast.CodeSpan:
		return w.v.CodeSpan(w.plainText(node))
	case *ast.Emphasis:
		if node.Level >= 2 {
			return w.v.DoubleEmphasis(w.renderChildren(node))
		}
		return w.v.Emphasis(w.renderChildren(node))
	case *Underline:
		return w.v.Underline(w.renderChildren(node))
	case *Highlight:
		return w.v.Highlight(w.renderChildren(node))
	case *Superscript:
		return w.v.Superscript(w.renderChildren(node))
	case *Quote:
		return w.v.Quote(w.renderChildren(node))
	case *extast.Strikethrough:
		return w.v.Strikethrough(w.renderChildren(node))
	case *Math:
		return w.v.Math(string(node.Value), node.Display)
	case *ast.Link:
		return w.v.Link(w.renderChildren(node), string(node.Destination), string(node.Title))
	case *ast.Image:
		return w.v.Image(string(node.Destination), string(node.Title), w.plainText(node))
	case *ast.AutoLink:
		return w.v.AutoLink(string(node.URL(w.source)), node.AutoLinkType == ast.AutoLinkEmail)
	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			sb.Write(seg.Value(w.source))
		}
		return w.v.RawHTML(sb.String())
	default:
		return w.renderChildren(n)
	}
}

func (w *walker) renderTable(n *extast.Table) string {
	var header, body strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if _, ok := child.(*extast.TableHeader); ok {
			header.WriteString(w.render(child))
			continue
		}
		body.WriteString(w.render(child))
	}
	content := header.String()
	if body.Len() > 0 {
		content += w.v.TableBody(body.String())
	}
	return w.v.Table(content)
}

// textValue resolves escapes and entity references so the visitor sees
// the literal text.
func (w *walker) textValue(n *ast.Text) []byte {
	value := n.Segment.Value(w.source)
	if !n.IsRaw() {
		value = util.UnescapePunctuations(value)
		value = util.ResolveNumericReferences(value)
		value = util.ResolveEntityNames(value)
	}
	return value
}

func (w *walker) lineBreak(n *ast.Text) string {
	switch {
	case n.HardLineBreak():
		return w.v.LineBreak()
	case n.SoftLineBreak():
		return w.v.NormalText("\n")
	}
	return ""
}

// lines joins the raw source lines of a block node.
func (w *walker) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(w.source))
	}
	return sb.String()
}

// plainText collects the literal text below n, ignoring markup.
func (w *walker) plainText(n ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(w.source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func alignment(a extast.Alignment) Alignment {
	switch a {
	case extast.AlignLeft:
		return AlignLeft
	case extast.AlignCenter:
		return AlignCenter
	case extast.AlignRight:
		return AlignRight
	default:
		return AlignNone
	}
}
