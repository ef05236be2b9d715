package beamlint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/gobwas/glob"
)

// VariableTier classifies a custom property by its declaration site.
type VariableTier int

const (
	// TierUnknown is a placeholder for declarations that cannot be classified.
	TierUnknown VariableTier = iota
	// TierPrimitive is a raw value token declared in the theme artifact.
	TierPrimitive
	// TierSemantic is a named contract declared in the theme artifact.
	TierSemantic
	// TierLocal is a component-scoped input declared anywhere else.
	TierLocal
)

func (t VariableTier) String() string {
	switch t {
	case TierPrimitive:
		return "primitive"
	case TierSemantic:
		return "semantic"
	case TierLocal:
		return "local"
	}
	return "unknown"
}

// VariableDeclaration is one `--name: value` declaration. References holds
// every `var(--x)` name in the value, fallback chain included, in source
// order. TerminalLiteral is the literal that ends the chain, if any.
type VariableDeclaration struct {
	Name            string
	Tier            VariableTier
	References      []string
	TerminalLiteral string
	File            string
	Location        SourceLocation
}

// UnresolvedReferenceError reports a reference to a name that was never
// declared in the whole input set. It can only be raised after every file
// has been ingested, which is why tier validation runs in phase 2.
type UnresolvedReferenceError struct {
	Name         string // the missing name
	ReferencedBy string // the declaration holding the reference
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("variable %s references %s, which is never declared", e.ReferencedBy, e.Name)
}

// VariableGraphBuilder parses declarations and classifies their tier.
type VariableGraphBuilder struct {
	themeArtifact   glob.Glob
	primitivePrefix string
}

// NewVariableGraphBuilder compiles the theme artifact pattern and returns a
// builder. The pattern identifies which files count as the global theme tier.
func NewVariableGraphBuilder(themePattern, primitivePrefix string) (*VariableGraphBuilder, error) {
	if themePattern == "" {
		themePattern = defaultThemeArtifact
	}
	if primitivePrefix == "" {
		primitivePrefix = defaultPrimitivePrefix
	}
	matcher, err := glob.Compile(themePattern, '/')
	if err != nil {
		return nil, fmt.Errorf("compiling theme artifact pattern %q: %w", themePattern, err)
	}
	return &VariableGraphBuilder{
		themeArtifact:   matcher,
		primitivePrefix: primitivePrefix,
	}, nil
}

// IsThemeArtifact reports whether a file path counts as the global theme tier.
func (b *VariableGraphBuilder) IsThemeArtifact(path string) bool {
	return b.themeArtifact.Match(strings.ReplaceAll(path, "\\", "/"))
}

// ParseDeclaration turns one `--name: value` pair into a declaration node.
// A value matching `var(--inner[, fallback])` records an edge to --inner and
// recurses into the fallback; a literal fallback terminates the chain.
func (b *VariableGraphBuilder) ParseDeclaration(name, value, file string, loc SourceLocation) *VariableDeclaration {
	decl := &VariableDeclaration{
		Name:     name,
		Tier:     b.tierFor(name, file),
		File:     file,
		Location: loc,
	}
	decl.References, decl.TerminalLiteral = parseReferenceChain(value)
	return decl
}

// tierFor infers the tier from the declaring artifact: theme artifact
// declarations are Primitive when the name carries the primitive prefix and
// Semantic otherwise; any other artifact is Local.
func (b *VariableGraphBuilder) tierFor(name, file string) VariableTier {
	if b.IsThemeArtifact(file) {
		if strings.HasPrefix(strings.TrimPrefix(name, "--"), b.primitivePrefix) {
			return TierPrimitive
		}
		return TierSemantic
	}
	return TierLocal
}

// parseReferenceChain parses the var() reference sub-grammar of a value.
// It returns every referenced name in order and the literal terminating the
// chain ("" when the chain ends in a reference without fallback).
func parseReferenceChain(value string) (refs []string, terminal string) {
	value = strings.TrimSpace(value)
	for {
		inner, fallback, ok := splitVarExpr(value)
		if !ok {
			// Not a var() wrapping: a literal ends the chain. Plain
			// declarations are literal leaves.
			if value != "" {
				terminal = value
			}
			return refs, terminal
		}
		refs = append(refs, inner)
		if fallback == "" {
			return refs, ""
		}
		value = fallback
	}
}

// splitVarExpr decomposes `var(--name[, fallback])` into its parts. ok is
// false when the value is not a var() expression.
func splitVarExpr(value string) (name, fallback string, ok bool) {
	if !strings.HasPrefix(value, "var(") || !strings.HasSuffix(value, ")") {
		return "", "", false
	}
	inner := value[len("var(") : len(value)-1]

	// The fallback may itself contain commas inside nested var() calls, so
	// split at the first top-level comma only.
	depth := 0
	for i, r := range inner {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(inner[:i]), strings.TrimSpace(inner[i+1:]), true
			}
		}
	}
	return strings.TrimSpace(inner), "", true
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// isHexColor reports whether a literal is a raw hex color.
func isHexColor(literal string) bool {
	return hexColorPattern.MatchString(strings.TrimSpace(literal))
}

// VariableGraph maps declaration names to declarations with derived edges
// name -> fallback-name. It is assembled incrementally during phase 1 and
// frozen before phase 2 begins; Freeze is the hard synchronization point.
type VariableGraph struct {
	decls  map[string]*VariableDeclaration
	frozen bool

	// Built by Freeze: the directed graph restricted to edges where both
	// endpoints are known, plus its adjacency map for traversal.
	dag       graph.Graph[string, *VariableDeclaration]
	adjacency map[string]map[string]graph.Edge[string]
}

// NewVariableGraph returns an empty, unfrozen graph.
func NewVariableGraph() *VariableGraph {
	return &VariableGraph{decls: make(map[string]*VariableDeclaration)}
}

// Add records a declaration. The first declaration of a name wins; later
// duplicates are ignored so per-file merge order cannot change the result.
func (g *VariableGraph) Add(decl *VariableDeclaration) {
	if g.frozen {
		panic("beamlint: Add called on frozen VariableGraph")
	}
	if _, exists := g.decls[decl.Name]; exists {
		return
	}
	g.decls[decl.Name] = decl
}

// Len returns the number of tracked declarations.
func (g *VariableGraph) Len() int { return len(g.decls) }

// Decl returns the declaration for a name, or nil.
func (g *VariableGraph) Decl(name string) *VariableDeclaration {
	return g.decls[name]
}

// Names returns all declaration names in sorted order for deterministic
// traversal.
func (g *VariableGraph) Names() []string {
	names := make([]string, 0, len(g.decls))
	for name := range g.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Freeze materializes the directed graph and closes the graph to writes.
// Phase 2 must not run before Freeze, and Freeze must not be called before
// every file's contribution has been merged.
func (g *VariableGraph) Freeze() error {
	if g.frozen {
		return nil
	}
	g.frozen = true

	g.dag = graph.New(func(d *VariableDeclaration) string { return d.Name }, graph.Directed())
	for _, name := range g.Names() {
		if err := g.dag.AddVertex(g.decls[name]); err != nil {
			return fmt.Errorf("adding variable %s: %w", name, err)
		}
	}
	for _, name := range g.Names() {
		for _, ref := range g.decls[name].References {
			if _, known := g.decls[ref]; !known {
				continue // unresolved references are reported in phase 2
			}
			if err := g.dag.AddEdge(name, ref); err != nil && err != graph.ErrEdgeAlreadyExists {
				return fmt.Errorf("adding edge %s -> %s: %w", name, ref, err)
			}
		}
	}

	adjacency, err := g.dag.AdjacencyMap()
	if err != nil {
		return fmt.Errorf("building adjacency map: %w", err)
	}
	g.adjacency = adjacency
	return nil
}

// Frozen reports whether the graph has been frozen.
func (g *VariableGraph) Frozen() bool { return g.frozen }

// edgesFrom returns the known-edge targets of a node in sorted order.
// Only valid after Freeze.
func (g *VariableGraph) edgesFrom(name string) []string {
	targets := make([]string, 0, len(g.adjacency[name]))
	for target := range g.adjacency[name] {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

// resolve returns the declaration a name refers to, or an
// UnresolvedReferenceError naming the referrer.
func (g *VariableGraph) resolve(name, referencedBy string) (*VariableDeclaration, error) {
	if decl, ok := g.decls[name]; ok {
		return decl, nil
	}
	return nil, &UnresolvedReferenceError{Name: name, ReferencedBy: referencedBy}
}
