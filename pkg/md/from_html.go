package md

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// macroPlaceholder marks where a macro comment is restored after HTML
// conversion. It must not look like markdown formatting.
const (
	macroPlaceholderPrefix = "MIKASAMACRO"
	macroPlaceholderSuffix = "END"
)

// ImportOptions configures HTML to markdown conversion.
type ImportOptions struct {
	// DropMacros removes {{...}} macro comments instead of keeping them.
	DropMacros bool
}

var macroCommentAnywhere = regexp.MustCompile(`<!--\s*\{\{[^}]*\}\}\s*-->`)

// FromHTML converts a legacy HTML help page to markdown source. Macro
// comments survive the conversion as standalone blocks.
func FromHTML(html string, opts ImportOptions) (string, error) {
	if html == "" {
		return "", nil
	}

	var macros []string
	html = macroCommentAnywhere.ReplaceAllStringFunc(html, func(comment string) string {
		if opts.DropMacros {
			return ""
		}
		macros = append(macros, comment)
		return "<p>" + formatPlaceholder(len(macros)-1) + "</p>"
	})

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}

	for i, comment := range macros {
		markdown = strings.Replace(markdown, formatPlaceholder(i), comment, 1)
	}
	return strings.TrimSpace(markdown), nil
}

func formatPlaceholder(id int) string {
	return fmt.Sprintf("%s%d%s", macroPlaceholderPrefix, id, macroPlaceholderSuffix)
}
