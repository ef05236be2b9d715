package beamlint

import (
	"errors"
	"fmt"
	"strings"
)

// TierConsistencyValidator walks the frozen variable graph once, after
// every file's contribution has been merged (phase 2). It detects fallback
// cycles, unresolved references and tier-ordering violations.
type TierConsistencyValidator struct {
	g *VariableGraph

	// DFS coloring: absent = white, false = gray (on path), true = black.
	visited map[string]bool
	// onCycle marks nodes that participate in a reported cycle; their
	// tier-resolution checks are skipped because the chain never terminates.
	onCycle map[string]bool
	// seenCycles dedupes cycles by canonical form so each one is reported
	// exactly once regardless of entry point.
	seenCycles map[string]bool
}

// ValidateTiers runs the full phase-2 pass over a frozen graph.
func ValidateTiers(g *VariableGraph) []Diagnostic {
	if !g.Frozen() {
		panic("beamlint: ValidateTiers called before Freeze")
	}
	v := &TierConsistencyValidator{
		g:          g,
		visited:    make(map[string]bool),
		onCycle:    make(map[string]bool),
		seenCycles: make(map[string]bool),
	}

	var diags []Diagnostic
	diags = append(diags, v.checkUnresolved()...)
	diags = append(diags, v.checkCycles()...)
	diags = append(diags, v.checkTierOrdering()...)
	return diags
}

// checkUnresolved reports every reference to a name no file ever declared.
func (v *TierConsistencyValidator) checkUnresolved() []Diagnostic {
	var diags []Diagnostic
	for _, name := range v.g.Names() {
		decl := v.g.Decl(name)
		for _, ref := range decl.References {
			if _, err := v.g.resolve(ref, name); err != nil {
				var unresolved *UnresolvedReferenceError
				if errors.As(err, &unresolved) {
					diags = append(diags, Diagnostic{
						Rule:      RuleVariableUnresolved,
						Severity:  SeverityError,
						Message:   unresolved.Error(),
						Locations: []SourceLocation{decl.Location},
					})
				}
			}
		}
	}
	return diags
}

// checkCycles runs path-coloring DFS over the known edges and reports each
// cycle once, listing the full path.
func (v *TierConsistencyValidator) checkCycles() []Diagnostic {
	var diags []Diagnostic
	var path []string

	var walk func(name string)
	walk = func(name string) {
		v.visited[name] = false // gray
		path = append(path, name)

		for _, target := range v.g.edgesFrom(name) {
			done, seen := v.visited[target]
			if !seen {
				walk(target)
				continue
			}
			if !done {
				// Back edge: target is on the current path.
				if d, ok := v.reportCycle(path, target); ok {
					diags = append(diags, d)
				}
			}
		}

		path = path[:len(path)-1]
		v.visited[name] = true // black
	}

	for _, name := range v.g.Names() {
		if _, seen := v.visited[name]; !seen {
			walk(name)
		}
	}
	return diags
}

// reportCycle extracts the cycle closed by a back edge to target, rotates it
// to a canonical starting node and emits a diagnostic unless the same cycle
// was already reported.
func (v *TierConsistencyValidator) reportCycle(path []string, target string) (Diagnostic, bool) {
	start := -1
	for i, name := range path {
		if name == target {
			start = i
			break
		}
	}
	if start < 0 {
		return Diagnostic{}, false
	}
	cycle := append([]string(nil), path[start:]...)

	// Canonical rotation: lexicographically smallest node first.
	smallest := 0
	for i, name := range cycle {
		if name < cycle[smallest] {
			smallest = i
		}
	}
	rotated := append(append([]string(nil), cycle[smallest:]...), cycle[:smallest]...)
	key := strings.Join(rotated, "\x00")
	if v.seenCycles[key] {
		return Diagnostic{}, false
	}
	v.seenCycles[key] = true

	locations := make([]SourceLocation, 0, len(rotated))
	for _, name := range rotated {
		v.onCycle[name] = true
		locations = append(locations, v.g.Decl(name).Location)
	}

	return Diagnostic{
		Rule:     RuleVariableCycle,
		Severity: SeverityError,
		Message: fmt.Sprintf("variable fallback cycle: %s -> %s",
			strings.Join(rotated, " -> "), rotated[0]),
		Locations: locations,
	}, true
}

// checkTierOrdering enforces the tier rules on every Local node: the
// fallback chain must land on a Semantic or Primitive node, hex literals
// outside the theme artifact are hardcoded colors, and a direct edge to a
// Primitive node bypassing the Semantic tier is a leak.
func (v *TierConsistencyValidator) checkTierOrdering() []Diagnostic {
	var diags []Diagnostic

	for _, name := range v.g.Names() {
		decl := v.g.Decl(name)
		if decl.Tier != TierLocal {
			// Semantic tokens may hold literals; nothing to enforce here.
			continue
		}

		for _, target := range v.g.edgesFrom(name) {
			if v.g.Decl(target).Tier == TierPrimitive {
				diags = append(diags, Diagnostic{
					Rule:     RulePrimitiveLeak,
					Severity: SeverityWarning,
					Message: fmt.Sprintf("local variable %s references primitive %s directly; route it through a semantic token",
						name, target),
					Locations: []SourceLocation{decl.Location},
				})
			}
		}

		// Local declarations live outside the theme artifact by definition,
		// so any hex terminal literal is a hardcoded color.
		hasHexLiteral := decl.TerminalLiteral != "" && isHexColor(decl.TerminalLiteral)
		if hasHexLiteral {
			diags = append(diags, Diagnostic{
				Rule:     RuleHardcodedColor,
				Severity: SeverityError,
				Message: fmt.Sprintf("local variable %s falls back to hex color %q outside the theme artifact",
					name, strings.TrimSpace(decl.TerminalLiteral)),
				Locations:    []SourceLocation{decl.Location},
				SuggestedFix: "reference a semantic token instead",
			})
		}

		if v.onCycle[name] || v.hasUnresolved(name) || hasHexLiteral {
			// The chain either never terminates, is incomplete, or was
			// already reported as a hardcoded color.
			continue
		}
		if !v.reachesContract(name) {
			diags = append(diags, Diagnostic{
				Rule:     RuleMissingSemanticFallback,
				Severity: SeverityError,
				Message: fmt.Sprintf("local variable %s never resolves to a semantic or primitive token",
					name),
				Locations: []SourceLocation{decl.Location},
			})
		}
	}

	return diags
}

// reachesContract reports whether any node reachable from name (through
// Local and Unknown intermediates) is Semantic or Primitive.
func (v *TierConsistencyValidator) reachesContract(name string) bool {
	seen := map[string]bool{name: true}
	queue := v.g.edgesFrom(name)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			continue
		}
		seen[current] = true

		switch v.g.Decl(current).Tier {
		case TierSemantic, TierPrimitive:
			return true
		}
		queue = append(queue, v.g.edgesFrom(current)...)
	}
	return false
}

// hasUnresolved reports whether name or anything reachable from it holds a
// reference to an undeclared variable.
func (v *TierConsistencyValidator) hasUnresolved(name string) bool {
	seen := make(map[string]bool)
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			continue
		}
		seen[current] = true

		for _, ref := range v.g.Decl(current).References {
			if v.g.Decl(ref) == nil {
				return true
			}
		}
		queue = append(queue, v.g.edgesFrom(current)...)
	}
	return false
}
