package beamlint

import (
	"fmt"
	"strings"
)

// NamingValidator applies the casing and nesting rules to parsed selectors.
type NamingValidator struct {
	stateWords map[string]bool
}

// NewNamingValidator creates a validator with the given state-word
// vocabulary for rule:state-in-class.
func NewNamingValidator(stateWords []string) *NamingValidator {
	words := make(map[string]bool, len(stateWords))
	for _, w := range stateWords {
		words[strings.ToLower(w)] = true
	}
	return &NamingValidator{stateWords: words}
}

// Validate emits zero or more diagnostics for a single parsed selector.
func (v *NamingValidator) Validate(sel *ParsedSelector, loc SourceLocation) []Diagnostic {
	var diags []Diagnostic

	if sel.Kind == KindMalformed {
		switch sel.Reason {
		case ReasonBlockCase:
			diags = append(diags, Diagnostic{
				Rule:     RuleBlockCase,
				Severity: SeverityError,
				Message: fmt.Sprintf("block segment %q in selector %q must be lower_snake_case",
					sel.Offending, sel.Raw),
				Locations: []SourceLocation{loc},
			})
		case ReasonElementCase:
			diags = append(diags, Diagnostic{
				Rule:     RuleElementCase,
				Severity: SeverityError,
				Message: fmt.Sprintf("element segment %q in selector %q must be lower_snake_case",
					sel.Offending, sel.Raw),
				Locations: []SourceLocation{loc},
			})
		case ReasonExcessDepth:
			diags = append(diags, Diagnostic{
				Rule:     RuleFlatNesting,
				Severity: SeverityError,
				Message: fmt.Sprintf("selector %q nests %d levels deep; elements are flat, use %q",
					sel.Raw, sel.Depth, sel.FlatForm()),
				Locations:    []SourceLocation{loc},
				SuggestedFix: sel.FlatForm(),
			})
		}
		return diags
	}

	// State words only apply to well-formed element selectors.
	if sel.Kind == KindElement {
		if word := v.stateWord(sel.Element); word != "" {
			diags = append(diags, Diagnostic{
				Rule:     RuleStateInClass,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("selector %q encodes state %q in the class name; use a data attribute instead",
					sel.Raw, word),
				Locations:    []SourceLocation{loc},
				SuggestedFix: fmt.Sprintf("[data-%s]", word),
			})
		}
	}

	return diags
}

// ValidateParseError converts a MalformedSelectorError into the casing
// diagnostic for the position of the offending substring: before the first
// hyphen it is a block violation, after it an element violation.
func (v *NamingValidator) ValidateParseError(perr *MalformedSelectorError, loc SourceLocation) Diagnostic {
	rule := RuleBlockCase
	if hyphen := strings.Index(perr.Raw, "-"); hyphen >= 0 {
		if off := strings.Index(perr.Raw, perr.Offending); off > hyphen {
			rule = RuleElementCase
		}
	}
	return Diagnostic{
		Rule:      rule,
		Severity:  SeverityError,
		Message:   perr.Error(),
		Locations: []SourceLocation{loc},
	}
}

// stateWord returns the first state word found among the element segment's
// underscore/hyphen-delimited words, or "".
func (v *NamingValidator) stateWord(element string) string {
	for _, word := range strings.FieldsFunc(element, func(r rune) bool {
		return r == '-' || r == '_'
	}) {
		if v.stateWords[word] {
			return word
		}
	}
	return ""
}
