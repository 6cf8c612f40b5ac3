package md

import "strings"

// TargetSuffix is the file suffix internal markdown links are rewritten to.
const TargetSuffix = ".xhp"

// externalSchemes are left untouched by link rewriting.
var externalSchemes = []string{
	"http://",
	"https://",
	"ftp://",
	"vnd.sun.star.help://",
}

// IsExternalLink reports whether link starts with a recognised absolute scheme.
func IsExternalLink(link string) bool {
	for _, scheme := range externalSchemes {
		if strings.HasPrefix(link, scheme) {
			return true
		}
	}
	return false
}

// TopicPath strips one leading "./" or "../" and replaces a trailing ".md"
// with TargetSuffix.
func TopicPath(link string) string {
	if rest, ok := strings.CutPrefix(link, "./"); ok {
		link = rest
	} else if rest, ok := strings.CutPrefix(link, "../"); ok {
		link = rest
	}
	if base, ok := strings.CutSuffix(link, ".md"); ok {
		link = base + TargetSuffix
	}
	return link
}

// RewriteLink converts a document-internal link into a path below the
// extension identifier. External links are returned unchanged.
//
//	RewriteLink("foo/bar.md", "ID") == "ID/foo/bar.xhp"
func RewriteLink(link, identifier string) string {
	if IsExternalLink(link) {
		return link
	}
	return identifier + "/" + TopicPath(link)
}

// RewriteImage moves image sources below the extension identifier when
// they start with baseAddr. An empty baseAddr disables rewriting.
func RewriteImage(src, identifier, baseAddr string) string {
	if baseAddr == "" {
		return src
	}
	rest, ok := strings.CutPrefix(src, baseAddr)
	if !ok {
		return src
	}
	return identifier + "/" + rest
}
