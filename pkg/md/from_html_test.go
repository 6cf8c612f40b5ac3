package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     ImportOptions
		contains []string
		absent   []string
	}{
		{
			name:     "empty",
			input:    "",
			contains: nil,
		},
		{
			name:     "heading and paragraph",
			input:    "<h1>Saving</h1><p>Press <strong>Ctrl+S</strong>.</p>",
			contains: []string{"# Saving", "**Ctrl+S**"},
		},
		{
			name:     "links kept",
			input:    `<p><a href="other.md">Other</a></p>`,
			contains: []string{"[Other](other.md)"},
		},
		{
			name:     "macro comment kept",
			input:    "<p>Intro</p><!-- {{Tip|Save often}} --><p>More</p>",
			contains: []string{"<!-- {{Tip|Save often}} -->", "Intro", "More"},
			absent:   []string{macroPlaceholderPrefix},
		},
		{
			name:   "macro comment dropped",
			input:  "<p>Intro</p><!-- {{Tip|Save often}} -->",
			opts:   ImportOptions{DropMacros: true},
			absent: []string{"{{Tip", macroPlaceholderPrefix},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FromHTML(tt.input, tt.opts)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestFromHTML_MacroRoundTrip(t *testing.T) {
	markdown, err := FromHTML("<p>Intro</p><!-- {{Note|Read me}} -->", ImportOptions{})
	require.NoError(t, err)

	out := ToXHP([]byte(markdown), XhpOptions{Identifier: "ID"}, Document{Lang: "en"})
	assert.Contains(t, out, `role="note" xml-lang="en">Read me</paragraph>`)
}
