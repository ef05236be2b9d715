package beamlint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tierGraph builds and freezes a graph from declaration fixtures.
func tierGraph(t *testing.T, decls ...*VariableDeclaration) *VariableGraph {
	t.Helper()
	g := NewVariableGraph()
	for _, d := range decls {
		g.Add(d)
	}
	require.NoError(t, g.Freeze())
	return g
}

func TestValidateTiers_CleanChain(t *testing.T) {
	g := tierGraph(t,
		&VariableDeclaration{
			Name: "--primitive-slate-50", Tier: TierPrimitive,
			TerminalLiteral: "#f8fafc", File: "theme.css",
		},
		&VariableDeclaration{
			Name: "--bg-surface", Tier: TierSemantic,
			References: []string{"--primitive-slate-50"}, File: "theme.css",
		},
		&VariableDeclaration{
			Name: "--card-bg", Tier: TierLocal,
			References: []string{"--bg-surface"}, File: "card.css",
		},
	)

	assert.Empty(t, ValidateTiers(g))
}

func TestValidateTiers_RequiresFreeze(t *testing.T) {
	g := NewVariableGraph()
	g.Add(&VariableDeclaration{Name: "--a"})

	assert.Panics(t, func() { ValidateTiers(g) })
}

func TestValidateTiers_UnresolvedReference(t *testing.T) {
	g := tierGraph(t,
		&VariableDeclaration{
			Name: "--card-bg", Tier: TierLocal,
			References: []string{"--missing-token"},
			Location:   SourceLocation{File: "card.css", Line: 4, Column: 3},
		},
	)

	diags := ValidateTiers(g)
	require.Len(t, diags, 1)
	assert.Equal(t, RuleVariableUnresolved, diags[0].Rule)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "--missing-token")
	assert.Contains(t, diags[0].Message, "--card-bg")
	assert.Equal(t, SourceLocation{File: "card.css", Line: 4, Column: 3}, diags[0].Primary())
}

func TestValidateTiers_Cycle(t *testing.T) {
	g := tierGraph(t,
		&VariableDeclaration{
			Name: "--a", Tier: TierLocal, References: []string{"--b"},
			Location: SourceLocation{File: "card.css", Line: 1, Column: 1},
		},
		&VariableDeclaration{
			Name: "--b", Tier: TierLocal, References: []string{"--a"},
			Location: SourceLocation{File: "card.css", Line: 2, Column: 1},
		},
	)

	diags := ValidateTiers(g)
	require.Len(t, diags, 1)
	assert.Equal(t, RuleVariableCycle, diags[0].Rule)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, "variable fallback cycle: --a -> --b -> --a", diags[0].Message)
	assert.Len(t, diags[0].Locations, 2)
}

func TestValidateTiers_SelfCycle(t *testing.T) {
	g := tierGraph(t,
		&VariableDeclaration{Name: "--a", Tier: TierLocal, References: []string{"--a"}},
	)

	diags := ValidateTiers(g)
	require.Len(t, diags, 1)
	assert.Equal(t, RuleVariableCycle, diags[0].Rule)
	assert.Equal(t, "variable fallback cycle: --a -> --a", diags[0].Message)
}

func TestValidateTiers_CycleReportedOnce(t *testing.T) {
	// A three-node cycle is the same cycle from every entry point.
	g := tierGraph(t,
		&VariableDeclaration{Name: "--a", Tier: TierLocal, References: []string{"--b"}},
		&VariableDeclaration{Name: "--b", Tier: TierLocal, References: []string{"--c"}},
		&VariableDeclaration{Name: "--c", Tier: TierLocal, References: []string{"--a"}},
	)

	diags := ValidateTiers(g)
	require.Len(t, diags, 1)
	assert.Equal(t, RuleVariableCycle, diags[0].Rule)
	assert.Equal(t, "variable fallback cycle: --a -> --b -> --c -> --a", diags[0].Message)
}

func TestValidateTiers_HardcodedColor(t *testing.T) {
	g := tierGraph(t,
		&VariableDeclaration{
			Name: "--card-bg", Tier: TierLocal, TerminalLiteral: "#ff0000",
			File: "card.css",
		},
	)

	diags := ValidateTiers(g)
	require.Len(t, diags, 1)
	assert.Equal(t, RuleHardcodedColor, diags[0].Rule)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Contains(t, diags[0].Message, `"#ff0000"`)
	assert.Equal(t, "reference a semantic token instead", diags[0].SuggestedFix)
}

func TestValidateTiers_ThemeHexLiteralsAllowed(t *testing.T) {
	g := tierGraph(t,
		&VariableDeclaration{Name: "--primitive-red", Tier: TierPrimitive, TerminalLiteral: "#ff0000"},
		&VariableDeclaration{Name: "--accent", Tier: TierSemantic, TerminalLiteral: "#ff0000"},
	)

	assert.Empty(t, ValidateTiers(g))
}

func TestValidateTiers_PrimitiveLeak(t *testing.T) {
	g := tierGraph(t,
		&VariableDeclaration{Name: "--primitive-slate-50", Tier: TierPrimitive, TerminalLiteral: "#f8fafc"},
		&VariableDeclaration{
			Name: "--card-bg", Tier: TierLocal,
			References: []string{"--primitive-slate-50"},
		},
	)

	diags := ValidateTiers(g)
	require.Len(t, diags, 1)
	assert.Equal(t, RulePrimitiveLeak, diags[0].Rule)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "--primitive-slate-50")
}

func TestValidateTiers_MissingSemanticFallback(t *testing.T) {
	// A chain of locals that bottoms out in a non-color literal never
	// reaches the semantic tier.
	g := tierGraph(t,
		&VariableDeclaration{Name: "--pad", Tier: TierLocal, References: []string{"--pad-base"}},
		&VariableDeclaration{Name: "--pad-base", Tier: TierLocal, TerminalLiteral: "1rem"},
	)

	diags := ValidateTiers(g)
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, RuleMissingSemanticFallback, d.Rule)
		assert.Equal(t, SeverityError, d.Severity)
	}
}

func TestValidateTiers_LocalChainThroughLocalIsClean(t *testing.T) {
	g := tierGraph(t,
		&VariableDeclaration{Name: "--bg-surface", Tier: TierSemantic, TerminalLiteral: "#fff"},
		&VariableDeclaration{Name: "--card-bg", Tier: TierLocal, References: []string{"--bg-surface"}},
		&VariableDeclaration{Name: "--card-header-bg", Tier: TierLocal, References: []string{"--card-bg"}},
	)

	assert.Empty(t, ValidateTiers(g))
}

func TestValidateTiers_CycleSuppressesResolutionCheck(t *testing.T) {
	// Nodes on a cycle get the cycle diagnostic only; no second report
	// about the chain never reaching a semantic token.
	g := tierGraph(t,
		&VariableDeclaration{Name: "--a", Tier: TierLocal, References: []string{"--b"}},
		&VariableDeclaration{Name: "--b", Tier: TierLocal, References: []string{"--a"}},
	)

	diags := ValidateTiers(g)
	require.Len(t, diags, 1)
	assert.Equal(t, RuleVariableCycle, diags[0].Rule)
}

func TestValidateTiers_UnresolvedSuppressesResolutionCheck(t *testing.T) {
	g := tierGraph(t,
		&VariableDeclaration{Name: "--card-bg", Tier: TierLocal, References: []string{"--missing"}},
	)

	diags := ValidateTiers(g)
	require.Len(t, diags, 1)
	assert.Equal(t, RuleVariableUnresolved, diags[0].Rule)
}
