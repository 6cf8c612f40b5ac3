package md

// Alignment is the column alignment of a table cell.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Document carries the values that change from one rendered file to the
// next while a Renderer is reused.
type Document struct {
	FileName string // path of the generated file below the identifier, slash separated
	Lang     string // language tag of the source tree
}

// Renderer creates one Visitor per document. Traversal state lives on the
// returned Visitor, so nothing leaks from one document into the next.
type Renderer interface {
	Begin(doc Document) Visitor
}

// Visitor receives one callback per markdown construct. Children are
// rendered before their parent, so every content argument is a finished
// fragment. Each callback returns the fragment for its construct.
type Visitor interface {
	DocHeader() string
	DocFooter() string

	// block level
	Heading(content string, level int) string
	Paragraph(content string) string
	List(content string, ordered bool) string
	ListItem(content string, ordered bool) string
	BlockCode(text, lang string) string
	BlockQuote(content string) string
	BlockHTML(text string) string
	HRule() string
	Table(content string) string
	TableHeader(content string) string
	TableBody(content string) string
	TableRow(content string) string
	TableCell(content string, align Alignment, header bool) string
	Footnotes(content string) string
	FootnoteDef(content string, num int) string

	// inline level
	AutoLink(link string, email bool) string
	CodeSpan(text string) string
	Emphasis(content string) string
	DoubleEmphasis(content string) string
	Underline(content string) string
	Highlight(content string) string
	Quote(content string) string
	Superscript(content string) string
	Strikethrough(content string) string
	Image(link, title, alt string) string
	LineBreak() string
	Link(content, link, title string) string
	RawHTML(text string) string
	Math(text string, display bool) string
	FootnoteRef(num int) string
	NormalText(text string) string
}

// BaseVisitor passes content through and drops constructs that carry no
// content of their own. Dialects embed it and override what they support.
type BaseVisitor struct{}

func (BaseVisitor) DocHeader() string { return "" }
func (BaseVisitor) DocFooter() string { return "" }
func (BaseVisitor) Heading(content string, _ int) string { return content }
func (BaseVisitor) Paragraph(content string) string { return content }
func (BaseVisitor) List(content string, _ bool) string { return content }
func (BaseVisitor) ListItem(content string, _ bool) string { return content }
func (BaseVisitor) BlockCode(_, _ string) string { return "" }
func (BaseVisitor) BlockQuote(content string) string { return content }
func (BaseVisitor) BlockHTML(_ string) string { return "" }
func (BaseVisitor) HRule() string { return "" }
func (BaseVisitor) Table(content string) string { return content }
func (BaseVisitor) TableHeader(content string) string { return content }
func (BaseVisitor) TableBody(content string) string { return content }
func (BaseVisitor) TableRow(content string) string { return content }

func (BaseVisitor) TableCell(content string, _ Alignment, _ bool) string { return content }

// Footnotes are not supported by either dialect.
func (BaseVisitor) Footnotes(_ string) string { return "" }
func (BaseVisitor) FootnoteDef(_ string, _ int) string { return "" }
func (BaseVisitor) FootnoteRef(_ int) string { return "" }

func (BaseVisitor) AutoLink(link string, _ bool) string { return Escape(link) }
func (BaseVisitor) CodeSpan(text string) string { return Escape(text) }
func (BaseVisitor) Emphasis(content string) string { return content }
func (BaseVisitor) DoubleEmphasis(content string) string { return content }
func (BaseVisitor) Underline(content string) string { return content }
func (BaseVisitor) Highlight(content string) string { return content }
func (BaseVisitor) Quote(content string) string { return content }
func (BaseVisitor) Superscript(content string) string { return content }
func (BaseVisitor) Strikethrough(content string) string { return content }
func (BaseVisitor) Image(_, _, _ string) string { return "" }
func (BaseVisitor) LineBreak() string { return "" }
func (BaseVisitor) Link(content, _, _ string) string { return content }
func (BaseVisitor) RawHTML(_ string) string { return "" }
func (BaseVisitor) Math(text string, _ bool) string { return Escape(text) }
func (BaseVisitor) NormalText(text string) string { return Escape(text) }
