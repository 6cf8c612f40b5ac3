// macro.go defines the {{NAME|ARG|...}} macros embedded in HTML comments.
package md

import (
	"fmt"
	"regexp"
	"strings"
)

// MacroKind identifies the handler a macro name dispatches to.
type MacroKind int

const (
	MacroProductName MacroKind = iota
	MacroParagraph             // Tip, Note, Caution, Warning
	MacroAHelp
	MacroBookmark
	MacroSection // HowToGet, RelatedTopics
	MacroVariable
	MacroEmbedVar
)

// MacroType describes a macro name. MinParts and MaxParts count the name
// itself; MaxParts 0 means no upper bound.
type MacroType struct {
	Name     string
	Kind     MacroKind
	MinParts int
	MaxParts int
}

// MacroRegistry maps case-sensitive macro names to their definitions.
var MacroRegistry = map[string]MacroType{
	"OOo":           {Name: "OOo", Kind: MacroProductName, MinParts: 1, MaxParts: 1},
	"PRODUCTNAME":   {Name: "PRODUCTNAME", Kind: MacroProductName, MinParts: 1, MaxParts: 1},
	"Tip":           {Name: "Tip", Kind: MacroParagraph, MinParts: 2, MaxParts: 2},
	"Note":          {Name: "Note", Kind: MacroParagraph, MinParts: 2, MaxParts: 2},
	"Caution":       {Name: "Caution", Kind: MacroParagraph, MinParts: 2, MaxParts: 2},
	"Warning":       {Name: "Warning", Kind: MacroParagraph, MinParts: 2, MaxParts: 2},
	"aHelp":         {Name: "aHelp", Kind: MacroAHelp, MinParts: 4, MaxParts: 4},
	"Bookmark":      {Name: "Bookmark", Kind: MacroBookmark, MinParts: 3},
	"HowToGet":      {Name: "HowToGet", Kind: MacroSection, MinParts: 2, MaxParts: 2},
	"RelatedTopics": {Name: "RelatedTopics", Kind: MacroSection, MinParts: 2, MaxParts: 2},
	"Variable":      {Name: "Variable", Kind: MacroVariable, MinParts: 4, MaxParts: 4},
	"Embedvar":      {Name: "Embedvar", Kind: MacroEmbedVar, MinParts: 2, MaxParts: 2},
}

// LookupMacro returns the MacroType registered for name.
func LookupMacro(name string) (MacroType, bool) {
	mt, ok := MacroRegistry[name]
	return mt, ok
}

// accepts reports whether an invocation with n parts satisfies the arity.
func (mt MacroType) accepts(n int) bool {
	if n < mt.MinParts {
		return false
	}
	return mt.MaxParts == 0 || n <= mt.MaxParts
}

// MacroContext is what macro handlers need from the document being rendered.
type MacroContext struct {
	Lang       string
	ShowErrors bool
	IDs        *IDGenerator
}

// macroCommentPattern matches a macro comment at the start of a raw block.
var macroCommentPattern = regexp.MustCompile(`^<!--\s*\{\{([^}]*)\}\}\s*-->`)

// ProductName is substituted for the OOo and PRODUCTNAME macros.
const ProductName = "%PRODUCTNAME"

// ParseMacro extracts the macro parts from a comment such as
// "<!-- {{Tip|text}} -->". ok is false when the comment holds no macro.
func ParseMacro(comment string) (parts []string, ok bool) {
	m := macroCommentPattern.FindStringSubmatch(comment)
	if m == nil {
		return nil, false
	}
	return strings.Split(m[1], "|"), true
}

// ExpandMacro renders the macro held in comment. Comments without a macro
// expand to nothing; unknown names and arity mismatches expand to a
// diagnostic when ctx.ShowErrors is set and to nothing otherwise.
func ExpandMacro(comment string, ctx MacroContext) string {
	parts, ok := ParseMacro(comment)
	if !ok {
		return ""
	}
	mt, ok := LookupMacro(parts[0])
	if !ok || !mt.accepts(len(parts)) {
		return macroError(parts, ctx)
	}

	switch mt.Kind {
	case MacroProductName:
		return ProductName
	case MacroParagraph:
		return expandParagraph(parts, ctx)
	case MacroAHelp:
		return fmt.Sprintf(`<ahelp hid="%s" visibility="%s">%s</ahelp>`,
			Escape(parts[1]), visibility(parts[2]), Escape(parts[3]))
	case MacroBookmark:
		return expandBookmark(parts, ctx)
	case MacroSection:
		return fmt.Sprintf(`<section id="%s" xml-lang="%s">%s</section>`,
			ctx.IDs.Generate("sec"), Escape(ctx.Lang), Escape(parts[1]))
	case MacroVariable:
		return fmt.Sprintf(`<variable id="%s" visibility="%s">%s</variable>`,
			ctx.IDs.Generate("var"), visibility(parts[2]), Escape(parts[3]))
	case MacroEmbedVar:
		// href is forwarded as written
		return fmt.Sprintf(`<embedvar href="%s" />`, parts[1])
	default:
		return macroError(parts, ctx)
	}
}

func macroError(parts []string, ctx MacroContext) string {
	if !ctx.ShowErrors {
		return ""
	}
	return "invalid: " + Escape(strings.Join(parts, "|"))
}

func visibility(v string) string {
	if v == "visible" {
		return "visible"
	}
	return "hidden"
}

// expandParagraph handles {{Tip|CONTENT}} and friends. Caution is rendered
// with the warning role.
func expandParagraph(parts []string, ctx MacroContext) string {
	role := strings.ToLower(parts[0])
	if role == "caution" {
		role = "warning"
	}
	return xhpParagraph(ctx.IDs, ctx.Lang, role, Escape(parts[1]))
}

// expandBookmark handles {{Bookmark|BRANCH|COMPONENTS|VALUES}} and
// {{Bookmark|BRANCH|VALUES}}. VALUES holds entries separated by "||".
func expandBookmark(parts []string, ctx MacroContext) string {
	if len(parts) == 3 {
		parts = []string{parts[0], parts[1], "", parts[2]}
	}
	branch, components := parts[1], parts[2]
	values := strings.Split(strings.Join(parts[3:], "|"), "||")

	id := ctx.IDs.Generate("bk")
	if components != "" {
		names := strings.Split(components, ",")
		for i, name := range names {
			names[i] = strings.ToLower(strings.TrimSpace(name))
		}
		id += strings.Join(names, "_")
	}

	lang := Escape(ctx.Lang)
	entries := make([]string, 0, len(values))
	for _, v := range values {
		entries = append(entries, fmt.Sprintf(`<bookmark_value xml-lang="%s">%s</bookmark_value>`, lang, Escape(v)))
	}
	return fmt.Sprintf(`<bookmark branch="%s" id="%s" xml-lang="%s">%s</bookmark>`,
		Escape(branch), Escape(id), lang, strings.Join(entries, "\n"))
}
