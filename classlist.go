package beamlint

import "fmt"

// ClassListObservation is the ordered set of raw class tokens seen on one
// markup element, with the element's location. Created once per source pass
// and read-only afterwards.
type ClassListObservation struct {
	Tokens   []string
	Location SourceLocation
}

// LayoutExclusivityValidator enforces the mutual-exclusion invariant:
// a layout primitive and a block/element class must never share an element.
// The rule is strictly per element, never across elements or files.
type LayoutExclusivityValidator struct {
	parser *SelectorParser
}

// NewLayoutExclusivityValidator creates a validator classifying tokens with
// the given selector parser.
func NewLayoutExclusivityValidator(parser *SelectorParser) *LayoutExclusivityValidator {
	return &LayoutExclusivityValidator{parser: parser}
}

// Validate emits at most one rule:layout-block-mutex error for an
// observation, citing the first offending token of each category.
func (v *LayoutExclusivityValidator) Validate(obs ClassListObservation) []Diagnostic {
	var layoutToken, beamToken string

	for _, token := range obs.Tokens {
		sel, err := v.parser.Parse(token)
		if err != nil {
			// Unclassifiable tokens cannot trigger the mutex rule.
			continue
		}
		switch sel.Kind {
		case KindLayoutPrimitive:
			if layoutToken == "" {
				layoutToken = token
			}
		case KindBlock, KindElement:
			if beamToken == "" {
				beamToken = token
			}
		}
	}

	if layoutToken == "" || beamToken == "" {
		return nil
	}

	return []Diagnostic{{
		Rule:     RuleLayoutBlockMutex,
		Severity: SeverityError,
		Message: fmt.Sprintf("layout primitive %q and block/element class %q cannot appear on the same element",
			layoutToken, beamToken),
		Locations: []SourceLocation{obs.Location},
	}}
}
