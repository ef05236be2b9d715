package beamlint

import (
	"fmt"
	"strings"
)

// SelectorKind is the tagged classification of a class token.
type SelectorKind int

const (
	// KindBlock is a top-level component identity selector ("nav_bar").
	KindBlock SelectorKind = iota
	// KindElement is a part of a block, flatly named ("nav_bar-page_link").
	KindElement
	// KindLayoutPrimitive is a generic structural selector ("l_stack").
	KindLayoutPrimitive
	// KindMalformed is a token that violates the naming grammar but is still
	// segmented, so later rules can report a precise violation.
	KindMalformed
)

func (k SelectorKind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindElement:
		return "element"
	case KindLayoutPrimitive:
		return "layout-primitive"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

// MalformedReason is the sub-kind attached to malformed selectors.
type MalformedReason string

const (
	ReasonNone        MalformedReason = ""
	ReasonBlockCase   MalformedReason = "block casing"
	ReasonElementCase MalformedReason = "element casing"
	ReasonExcessDepth MalformedReason = "excess nesting depth"
)

// ParsedSelector is the structured form of a class token. Depth counts
// hyphen-joins beyond the block segment; depth > 1 is a nesting violation.
type ParsedSelector struct {
	Raw       string
	Kind      SelectorKind
	Block     string // block segment ("nav_bar"); full token for layout primitives
	Element   string // element segment, empty for block-only selectors
	Depth     int
	Reason    MalformedReason // set when Kind == KindMalformed
	Offending string          // the segment that triggered Reason
}

// MalformedSelectorError reports a token the parser cannot segment at all
// (empty token, illegal character, empty hyphen segment).
type MalformedSelectorError struct {
	Raw       string
	Offending string
}

func (e *MalformedSelectorError) Error() string {
	return fmt.Sprintf("malformed selector %q (offending %q)", e.Raw, e.Offending)
}

// SelectorParser turns raw class tokens into ParsedSelector values.
// Tokens beginning with the layout prefix are classified layout-primitive
// and parsed no further.
type SelectorParser struct {
	layoutPrefix string
}

// NewSelectorParser creates a parser with the given layout-primitive prefix
// (typically "l_").
func NewSelectorParser(layoutPrefix string) *SelectorParser {
	if layoutPrefix == "" {
		layoutPrefix = defaultLayoutPrefix
	}
	return &SelectorParser{layoutPrefix: layoutPrefix}
}

// Parse classifies a single class token. Casing and nesting violations come
// back as a KindMalformed selector with the offending segment recorded;
// only tokens that cannot be segmented at all produce an error.
func (p *SelectorParser) Parse(raw string) (*ParsedSelector, error) {
	if raw == "" {
		return nil, &MalformedSelectorError{Raw: raw, Offending: raw}
	}
	if off := firstIllegalRun(raw); off != "" {
		return nil, &MalformedSelectorError{Raw: raw, Offending: off}
	}

	if strings.HasPrefix(raw, p.layoutPrefix) {
		sel := &ParsedSelector{Raw: raw, Kind: KindLayoutPrimitive, Block: raw}
		if !isSnakeWord(raw) {
			sel.Kind = KindMalformed
			sel.Reason = ReasonBlockCase
			sel.Offending = raw
		}
		return sel, nil
	}

	segments := strings.Split(raw, "-")
	for _, seg := range segments {
		if seg == "" {
			// Leading, trailing or doubled hyphen.
			return nil, &MalformedSelectorError{Raw: raw, Offending: "-"}
		}
	}

	sel := &ParsedSelector{
		Raw:   raw,
		Block: segments[0],
		Depth: len(segments) - 1,
	}
	if sel.Depth > 0 {
		sel.Element = strings.Join(segments[1:], "-")
	}

	if !isSnakeWord(sel.Block) {
		sel.Kind = KindMalformed
		sel.Reason = ReasonBlockCase
		sel.Offending = sel.Block
		return sel, nil
	}
	for _, seg := range segments[1:] {
		if !isSnakeWord(seg) {
			sel.Kind = KindMalformed
			sel.Reason = ReasonElementCase
			sel.Offending = seg
			return sel, nil
		}
	}
	if sel.Depth > 1 {
		sel.Kind = KindMalformed
		sel.Reason = ReasonExcessDepth
		sel.Offending = sel.Element
		return sel, nil
	}

	if sel.Depth == 1 {
		sel.Kind = KindElement
	} else {
		sel.Kind = KindBlock
	}
	return sel, nil
}

// FlatForm returns the minimal single-hyphen form a nested selector should
// have taken: block plus the last path segment.
func (s *ParsedSelector) FlatForm() string {
	segments := strings.Split(s.Raw, "-")
	if len(segments) < 2 {
		return s.Raw
	}
	return s.Block + "-" + segments[len(segments)-1]
}

// isSnakeWord reports whether a segment matches lower_snake_case: letters,
// digits and underscores only, no leading/trailing underscore, no
// consecutive underscores.
func isSnakeWord(s string) bool {
	if s == "" || s[0] == '_' || s[len(s)-1] == '_' {
		return false
	}
	prevUnderscore := false
	for _, r := range s {
		switch {
		case r == '_':
			if prevUnderscore {
				return false
			}
			prevUnderscore = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			prevUnderscore = false
		default:
			return false
		}
	}
	return true
}

// firstIllegalRun returns the first run of characters outside the selector
// alphabet (ASCII letters, digits, underscore, hyphen), or "" if none.
// Uppercase letters are part of the alphabet here; they are a casing
// violation, not a parse failure.
func firstIllegalRun(s string) string {
	start := -1
	for i, r := range s {
		legal := r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !legal {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}
