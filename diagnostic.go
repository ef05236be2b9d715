package beamlint

import "fmt"

// SourceLocation points at the origin of a parsed fact. It is attached to
// every diagnostic and is immutable once created.
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`   // 1-based
	Column int    `json:"column"` // 1-based
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic represents a single conformance finding. Diagnostics are
// append-only values: once created they are never mutated, the aggregator
// only reorders and deduplicates them.
type Diagnostic struct {
	Rule         string           `json:"rule"`     // "rule:block-case"
	Severity     string           `json:"severity"` // "error", "warning"
	Message      string           `json:"message"`
	Locations    []SourceLocation `json:"locations"`               // first entry is the primary location
	SuggestedFix string           `json:"suggested_fix,omitempty"` // optional replacement text
}

// Primary returns the primary (first) location of the diagnostic.
func (d Diagnostic) Primary() SourceLocation {
	if len(d.Locations) == 0 {
		return SourceLocation{}
	}
	return d.Locations[0]
}

// identity is the deduplication key: (rule, primary location, message).
func (d Diagnostic) identity() string {
	p := d.Primary()
	return d.Rule + "\x00" + p.String() + "\x00" + d.Message
}

// Severity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule identifiers for every check beamlint performs.
const (
	RuleBlockCase               = "rule:block-case"
	RuleElementCase             = "rule:element-case"
	RuleFlatNesting             = "rule:flat-nesting"
	RuleStateInClass            = "rule:state-in-class"
	RuleLayoutBlockMutex        = "rule:layout-block-mutex"
	RuleVariableCycle           = "rule:variable-cycle"
	RuleVariableUnresolved      = "rule:variable-unresolved"
	RuleHardcodedColor          = "rule:hardcoded-color"
	RuleMissingSemanticFallback = "rule:missing-semantic-fallback"
	RulePrimitiveLeak           = "rule:primitive-leak"
	RuleInputError              = "rule:input-error"
)

// RunStatus is the overall outcome of a check run.
type RunStatus string

const (
	StatusClean     RunStatus = "clean"
	StatusWarnings  RunStatus = "warnings"
	StatusFailed    RunStatus = "failed"
	StatusCancelled RunStatus = "cancelled"
)
