package md

import (
	"bytes"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Inline node kinds added on top of CommonMark and GFM.
var (
	KindUnderline   = ast.NewNodeKind("Underline")
	KindHighlight   = ast.NewNodeKind("Highlight")
	KindSuperscript = ast.NewNodeKind("Superscript")
	KindQuote       = ast.NewNodeKind("Quote")
	KindMath        = ast.NewNodeKind("Math")
)

// Underline is `_text_`.
type Underline struct{ ast.BaseInline }

func (n *Underline) Kind() ast.NodeKind { return KindUnderline }

func (n *Underline) Dump(source []byte, level int) { ast.DumpHelper(n, source, level, nil, nil) }

// Highlight is `==text==`.
type Highlight struct{ ast.BaseInline }

func (n *Highlight) Kind() ast.NodeKind { return KindHighlight }

func (n *Highlight) Dump(source []byte, level int) { ast.DumpHelper(n, source, level, nil, nil) }

// Superscript is `^text^`.
type Superscript struct{ ast.BaseInline }

func (n *Superscript) Kind() ast.NodeKind { return KindSuperscript }

func (n *Superscript) Dump(source []byte, level int) { ast.DumpHelper(n, source, level, nil, nil) }

// Quote is `"text"`.
type Quote struct{ ast.BaseInline }

func (n *Quote) Kind() ast.NodeKind { return KindQuote }

func (n *Quote) Dump(source []byte, level int) { ast.DumpHelper(n, source, level, nil, nil) }

// Math is `$$text$$`. Its content is kept verbatim.
type Math struct {
	ast.BaseInline
	Value   []byte
	Display bool
}

func (n *Math) Kind() ast.NodeKind { return KindMath }

func (n *Math) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

// delimiterProcessor pairs runs of one character into a node built by match.
type delimiterProcessor struct {
	char  byte
	match func(consumes int) ast.Node
}

func (p *delimiterProcessor) IsDelimiter(b byte) bool { return b == p.char }

func (p *delimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *delimiterProcessor) OnMatch(consumes int) ast.Node { return p.match(consumes) }

// delimiterParser scans runs of exactly min..max delimiter characters.
type delimiterParser struct {
	processor *delimiterProcessor
	min, max  int
}

func (s *delimiterParser) Trigger() []byte { return []byte{s.processor.char} }

func (s *delimiterParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, s.min, s.processor)
	if node == nil || node.OriginalLength > s.max || before == rune(s.processor.char) {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func newUnderlineParser() parser.InlineParser {
	return &delimiterParser{
		processor: &delimiterProcessor{char: '_', match: func(consumes int) ast.Node {
			if consumes == 1 {
				return &Underline{}
			}
			return ast.NewEmphasis(consumes)
		}},
		min: 1,
		max: 3,
	}
}

func newHighlightParser() parser.InlineParser {
	return &delimiterParser{
		processor: &delimiterProcessor{char: '=', match: func(int) ast.Node { return &Highlight{} }},
		min:       2,
		max:       2,
	}
}

func newSuperscriptParser() parser.InlineParser {
	return &delimiterParser{
		processor: &delimiterProcessor{char: '^', match: func(int) ast.Node { return &Superscript{} }},
		min:       1,
		max:       1,
	}
}

func newQuoteParser() parser.InlineParser {
	return &delimiterParser{
		processor: &delimiterProcessor{char: '"', match: func(int) ast.Node { return &Quote{} }},
		min:       1,
		max:       1,
	}
}

// emphasisParser handles "*" emphasis. A run that directly follows a
// letter or digit cannot open, so snake*case*word stays literal.
type emphasisParser struct {
	processor *delimiterProcessor
}

func newEmphasisParser() parser.InlineParser {
	return &emphasisParser{
		processor: &delimiterProcessor{char: '*', match: func(consumes int) ast.Node {
			return ast.NewEmphasis(consumes)
		}},
	}
}

func (s *emphasisParser) Trigger() []byte { return []byte{'*'} }

func (s *emphasisParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, s.processor)
	if node == nil {
		return nil
	}
	if unicode.IsLetter(before) || unicode.IsDigit(before) {
		node.CanOpen = false
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

var mathDelimiter = []byte("$$")

type mathParser struct{}

func (mathParser) Trigger() []byte { return []byte{'$'} }

func (mathParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, mathDelimiter) {
		return nil
	}
	end := bytes.Index(line[len(mathDelimiter):], mathDelimiter)
	if end <= 0 {
		return nil
	}
	value := line[len(mathDelimiter) : len(mathDelimiter)+end]
	node := &Math{Value: append([]byte(nil), value...)}
	block.Advance(end + 2*len(mathDelimiter))
	return node
}

type inlineExtensions struct{}

// InlineExtensions enables intra-word safe "*" emphasis, underline, highlight, superscript, quoted text
// and math spans.
var InlineExtensions goldmark.Extender = &inlineExtensions{}

func (e *inlineExtensions) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(newUnderlineParser(), 450),
		util.Prioritized(newEmphasisParser(), 450),
		util.Prioritized(newHighlightParser(), 500),
		util.Prioritized(newSuperscriptParser(), 500),
		util.Prioritized(newQuoteParser(), 500),
		util.Prioritized(mathParser{}, 500),
	))
}
