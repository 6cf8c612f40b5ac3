package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteLink(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		expected string
	}{
		{"relative markdown", "foo/bar.md", "ID/foo/bar.xhp"},
		{"dot slash", "./foo.md", "ID/foo.xhp"},
		{"parent dir", "../foo.md", "ID/foo.xhp"},
		{"only first parent stripped", "../../foo.md", "ID/../foo.xhp"},
		{"no suffix", "foo/bar", "ID/foo/bar"},
		{"md not at end", "foo.md/bar", "ID/foo.md/bar"},
		{"suffix needs dot", "readmemd", "ID/readmemd"},
		{"http", "http://example.org/a.md", "http://example.org/a.md"},
		{"https", "https://example.org/", "https://example.org/"},
		{"ftp", "ftp://example.org/file", "ftp://example.org/file"},
		{"help scheme", "vnd.sun.star.help://swriter/x.xhp", "vnd.sun.star.help://swriter/x.xhp"},
		{"leading segment that only looks like dot slash", "ab/foo.md", "ID/ab/foo.xhp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RewriteLink(tt.link, "ID"))
		})
	}
}

func TestRewriteImage(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		base     string
		expected string
	}{
		{"empty base leaves link", "x/y.png", "", "x/y.png"},
		{"empty base leaves absolute link", "https://host/y.png", "", "https://host/y.png"},
		{"matching base", "https://host/img/y.png", "https://host/img/", "ID/y.png"},
		{"non matching base", "other/y.png", "https://host/img/", "other/y.png"},
		{"no suffix translation", "img/page.md", "img/", "ID/page.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RewriteImage(tt.src, "ID", tt.base))
		})
	}
}

func TestTopicPath(t *testing.T) {
	assert.Equal(t, "a/b.xhp", TopicPath("./a/b.md"))
	assert.Equal(t, "b.xhp", TopicPath("../b.md"))
	assert.Equal(t, "b.html", TopicPath("b.html"))
}

func TestIsExternalLink(t *testing.T) {
	assert.True(t, IsExternalLink("https://example.org"))
	assert.False(t, IsExternalLink("mailto:x@example.org"))
	assert.False(t, IsExternalLink("page.md"))
}
