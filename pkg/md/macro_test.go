package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMacroRegistry_ContainsExpectedMacros(t *testing.T) {
	expected := []string{
		"OOo", "PRODUCTNAME", "Tip", "Note", "Caution", "Warning", "aHelp",
		"Bookmark", "HowToGet", "RelatedTopics", "Variable", "Embedvar",
	}

	for _, name := range expected {
		t.Run(name, func(t *testing.T) {
			mt, ok := MacroRegistry[name]
			assert.True(t, ok, "MacroRegistry should contain %q", name)
			assert.Equal(t, name, mt.Name)
		})
	}
	assert.Len(t, MacroRegistry, len(expected))
}

func TestMacroRegistry_EveryKindExpands(t *testing.T) {
	ctx := MacroContext{Lang: "en", ShowErrors: true, IDs: seededIDs(1)}
	for name, mt := range MacroRegistry {
		t.Run(name, func(t *testing.T) {
			parts := []string{name}
			for len(parts) < mt.MinParts {
				parts = append(parts, "x")
			}
			comment := "<!-- {{" + joinParts(parts) + "}} -->"
			out := ExpandMacro(comment, ctx)
			assert.NotEmpty(t, out)
			assert.NotContains(t, out, "invalid:")
		})
	}
}

func joinParts(parts []string) string {
	s := parts[0]
	for _, p := range parts[1:] {
		s += "|" + p
	}
	return s
}

func TestLookupMacro_CaseSensitive(t *testing.T) {
	_, ok := LookupMacro("Tip")
	assert.True(t, ok)
	_, ok = LookupMacro("tip")
	assert.False(t, ok)
	_, ok = LookupMacro("TIP")
	assert.False(t, ok)
}

func TestParseMacro(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		parts   []string
		ok      bool
	}{
		{"simple", "<!-- {{OOo}} -->", []string{"OOo"}, true},
		{"args", "<!-- {{Tip|Read this}} -->\n", []string{"Tip", "Read this"}, true},
		{"no spaces", "<!--{{Tip|x}}-->", []string{"Tip", "x"}, true},
		{"extra whitespace", "<!--   {{Tip|x}}\n-->", []string{"Tip", "x"}, true},
		{"empty args kept", "<!-- {{Bookmark|a||b}} -->", []string{"Bookmark", "a", "", "b"}, true},
		{"plain comment", "<!-- just a note -->", nil, false},
		{"not at start", "<div><!-- {{OOo}} --></div>", nil, false},
		{"plain html", "<div>x</div>", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, ok := ParseMacro(tt.comment)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.parts, parts)
		})
	}
}

func TestExpandMacro(t *testing.T) {
	tests := []struct {
		name     string
		comment  string
		expected string
	}{
		{
			name:     "product name",
			comment:  "<!-- {{OOo}} -->",
			expected: "%PRODUCTNAME",
		},
		{
			name:     "productname alias",
			comment:  "<!-- {{PRODUCTNAME}} -->",
			expected: "%PRODUCTNAME",
		},
		{
			name:     "tip",
			comment:  "<!-- {{Tip|Save often & early}} -->",
			expected: "<paragraph id=\"par_idX\" role=\"tip\" xml-lang=\"en\">Save often &amp; early</paragraph>\n",
		},
		{
			name:     "note",
			comment:  "<!-- {{Note|Heads up}} -->",
			expected: "<paragraph id=\"par_idX\" role=\"note\" xml-lang=\"en\">Heads up</paragraph>\n",
		},
		{
			name:     "caution becomes warning",
			comment:  "<!-- {{Caution|Hot}} -->",
			expected: "<paragraph id=\"par_idX\" role=\"warning\" xml-lang=\"en\">Hot</paragraph>\n",
		},
		{
			name:     "warning",
			comment:  "<!-- {{Warning|Hot}} -->",
			expected: "<paragraph id=\"par_idX\" role=\"warning\" xml-lang=\"en\">Hot</paragraph>\n",
		},
		{
			name:     "ahelp visible",
			comment:  "<!-- {{aHelp|.uno:Save|visible|Saves the document}} -->",
			expected: `<ahelp hid=".uno:Save" visibility="visible">Saves the document</ahelp>`,
		},
		{
			name:     "ahelp anything else is hidden",
			comment:  "<!-- {{aHelp|.uno:Save|Visible|Saves}} -->",
			expected: `<ahelp hid=".uno:Save" visibility="hidden">Saves</ahelp>`,
		},
		{
			name:     "how to get",
			comment:  "<!-- {{HowToGet|Choose Tools}} -->",
			expected: `<section id="sec_idX" xml-lang="en">Choose Tools</section>`,
		},
		{
			name:     "related topics",
			comment:  "<!-- {{RelatedTopics|See also}} -->",
			expected: `<section id="sec_idX" xml-lang="en">See also</section>`,
		},
		{
			name:     "variable",
			comment:  "<!-- {{Variable|myvar|visible|<Value>}} -->",
			expected: `<variable id="var_idX" visibility="visible">&lt;Value&gt;</variable>`,
		},
		{
			name:     "embedvar keeps href raw",
			comment:  "<!-- {{Embedvar|text/shared/main.xhp#var}} -->",
			expected: `<embedvar href="text/shared/main.xhp#var" />`,
		},
		{
			name:     "not a macro",
			comment:  "<!-- TODO: write more -->",
			expected: "",
		},
	}

	ctx := MacroContext{Lang: "en", IDs: seededIDs(3)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeIDs(ExpandMacro(tt.comment, ctx)))
		})
	}
}

func TestExpandMacro_Errors(t *testing.T) {
	tests := []struct {
		name     string
		comment  string
		expected string
	}{
		{"wrong arity", "<!-- {{aHelp|onlyonearg}} -->", "invalid: aHelp|onlyonearg"},
		{"markup is escaped", "<!-- {{aHelp|<b>x</b>}} -->", "invalid: aHelp|&lt;b&gt;x&lt;/b&gt;"},
		{"unknown name", "<!-- {{Frobnicate|x}} -->", "invalid: Frobnicate|x"},
		{"name is case sensitive", "<!-- {{tip|x}} -->", "invalid: tip|x"},
		{"too many args", "<!-- {{Tip|a|b}} -->", "invalid: Tip|a|b"},
		{"product name takes no args", "<!-- {{OOo|x}} -->", "invalid: OOo|x"},
		{"bookmark too short", "<!-- {{Bookmark|index}} -->", "invalid: Bookmark|index"},
		{"empty payload", "<!-- {{}} -->", "invalid: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shown := ExpandMacro(tt.comment, MacroContext{Lang: "en", ShowErrors: true})
			assert.Equal(t, tt.expected, shown)
			assert.NotContains(t, shown, "<b>")

			hidden := ExpandMacro(tt.comment, MacroContext{Lang: "en"})
			assert.Empty(t, hidden)
		})
	}
}

func TestExpandMacro_Bookmark(t *testing.T) {
	ctx := MacroContext{Lang: "de", IDs: seededIDs(5)}

	t.Run("three parts equal empty components", func(t *testing.T) {
		short := normalizeIDs(ExpandMacro("<!-- {{Bookmark|index|Saving}} -->", ctx))
		long := normalizeIDs(ExpandMacro("<!-- {{Bookmark|index||Saving}} -->", ctx))
		assert.Equal(t, long, short)
		assert.Equal(t,
			`<bookmark branch="index" id="bk_idX" xml-lang="de"><bookmark_value xml-lang="de">Saving</bookmark_value></bookmark>`,
			short)
	})

	t.Run("components appended to id", func(t *testing.T) {
		out := normalizeIDs(ExpandMacro("<!-- {{Bookmark|hid/x|Writer, CALC |Saving}} -->", ctx))
		assert.Contains(t, out, `id="bk_idXwriter_calc"`)
		assert.Regexp(t, `id="bk_id\d{8}writer_calc"`, ExpandMacro("<!-- {{Bookmark|br|Writer, Calc|v}} -->", ctx))
		assert.Contains(t, out, `branch="hid/x"`)
	})

	t.Run("multiple values", func(t *testing.T) {
		out := ExpandMacro("<!-- {{Bookmark|index|writer|saving;documents||documents;saving}} -->", ctx)
		assert.Contains(t, out, `<bookmark_value xml-lang="de">saving;documents</bookmark_value>`+"\n"+
			`<bookmark_value xml-lang="de">documents;saving</bookmark_value>`)
	})

	t.Run("values are escaped", func(t *testing.T) {
		out := ExpandMacro("<!-- {{Bookmark|index|<script>}} -->", ctx)
		assert.Contains(t, out, "&lt;script&gt;")
		assert.NotContains(t, out, "<script>")
	})
}
