package beamlint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractor(t *testing.T) *extractor {
	t.Helper()
	vars, err := NewVariableGraphBuilder("**/theme.css", "primitive-")
	require.NoError(t, err)
	parser := NewSelectorParser("l_")
	return &extractor{
		parser: parser,
		naming: NewNamingValidator(defaultStateWords),
		layout: NewLayoutExclusivityValidator(parser),
		vars:   vars,
	}
}

func TestExtract_Stylesheet(t *testing.T) {
	ex := testExtractor(t)

	facts := ex.extract(SourceFile{
		Path: "styles/nav.css",
		Text: `.nav_bar { display: flex; }
.nav_bar-page_link { color: var(--link-color); }
.NavBar { color: red; }
`,
	})

	assert.Equal(t, 3, facts.selectorsParsed)
	require.Len(t, facts.diagnostics, 1)
	assert.Equal(t, RuleBlockCase, facts.diagnostics[0].Rule)
	assert.Equal(t, 3, facts.diagnostics[0].Primary().Line)
}

func TestExtract_SelectorLocations(t *testing.T) {
	ex := testExtractor(t)

	facts := ex.extract(SourceFile{
		Path: "styles/nav.css",
		Text: ".nav_bar { }\n  .nav_bar-list-list_item { }\n",
	})

	require.Len(t, facts.diagnostics, 1)
	d := facts.diagnostics[0]
	assert.Equal(t, RuleFlatNesting, d.Rule)
	assert.Equal(t, 2, d.Primary().Line)
	// Column points at the identifier, one past the dot.
	assert.Equal(t, 4, d.Primary().Column)
}

func TestExtract_VariableDeclarations(t *testing.T) {
	ex := testExtractor(t)

	facts := ex.extract(SourceFile{
		Path: "styles/theme.css",
		Text: `:root {
  --primitive-slate-50: #f8fafc;
  --bg-surface: var(--primitive-slate-50);
}
`,
	})

	require.Len(t, facts.declarations, 2)

	prim := facts.declarations[0]
	assert.Equal(t, "--primitive-slate-50", prim.Name)
	assert.Equal(t, TierPrimitive, prim.Tier)
	assert.Equal(t, "#f8fafc", prim.TerminalLiteral)
	assert.Equal(t, 2, prim.Location.Line)

	sem := facts.declarations[1]
	assert.Equal(t, "--bg-surface", sem.Name)
	assert.Equal(t, TierSemantic, sem.Tier)
	assert.Equal(t, []string{"--primitive-slate-50"}, sem.References)
}

func TestExtract_Markup(t *testing.T) {
	ex := testExtractor(t)

	facts := ex.extract(SourceFile{
		Path: "views/profile.html",
		Text: `<div class="l_stack user_profile">
  <span class="user_profile-name">x</span>
  <div class='l_cluster'></div>
</div>
`,
	})

	assert.Equal(t, 3, facts.observations)
	require.Len(t, facts.diagnostics, 1)
	assert.Equal(t, RuleLayoutBlockMutex, facts.diagnostics[0].Rule)
	assert.Equal(t, 1, facts.diagnostics[0].Primary().Line)
}

func TestExtract_MarkupSkipsCommentLines(t *testing.T) {
	ex := testExtractor(t)

	facts := ex.extract(SourceFile{
		Path: "views/profile.templ",
		Text: `// <div class="l_stack user_profile">
templ profile() {
	<div class="user_profile"></div>
}
`,
	})

	assert.Equal(t, 1, facts.observations)
	assert.Empty(t, facts.diagnostics)
}

func TestExtract_EmptyFile(t *testing.T) {
	ex := testExtractor(t)

	for _, text := range []string{"", "   \n\t\n"} {
		facts := ex.extract(SourceFile{Path: "styles/empty.css", Text: text})
		require.Len(t, facts.diagnostics, 1)
		d := facts.diagnostics[0]
		assert.Equal(t, RuleInputError, d.Rule)
		assert.Equal(t, SeverityError, d.Severity)
		assert.Equal(t, SourceLocation{File: "styles/empty.css", Line: 1, Column: 1}, d.Primary())
		assert.Empty(t, facts.declarations)
		assert.Zero(t, facts.selectorsParsed)
	}
}

func TestExtract_InvalidUTF8(t *testing.T) {
	ex := testExtractor(t)

	facts := ex.extract(SourceFile{Path: "styles/bad.css", Text: ".nav\xff{}"})
	require.Len(t, facts.diagnostics, 1)
	assert.Equal(t, RuleInputError, facts.diagnostics[0].Rule)
	assert.Empty(t, facts.declarations)
}

func TestScanVariableDeclarations_MultiplePerLine(t *testing.T) {
	vars, err := NewVariableGraphBuilder("**/theme.css", "primitive-")
	require.NoError(t, err)

	decls := scanVariableDeclarations(SourceFile{
		Path: "styles/card.css",
		Text: ".card { --card-bg: var(--bg-surface); --card-pad: 1rem }",
	}, vars)

	require.Len(t, decls, 2)
	assert.Equal(t, "--card-bg", decls[0].Name)
	assert.Equal(t, "--card-pad", decls[1].Name)
	assert.Equal(t, "1rem", decls[1].TerminalLiteral)
}

func TestLineIndex(t *testing.T) {
	idx := newLineIndex("ab\ncd\n\nef")

	tests := []struct {
		offset, line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 4, 1},
	}
	for _, tt := range tests {
		line, col := idx.locate(tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "offset %d", tt.offset)
	}
}
