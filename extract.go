package beamlint

import (
	"bufio"
	"errors"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// SourceFile is one (path, raw text) input pair. The core never touches the
// filesystem; file discovery is the caller's job.
type SourceFile struct {
	Path string
	Text string
}

// locatedSelector is a raw class token with its source location.
type locatedSelector struct {
	raw      string
	location SourceLocation
}

// fileFacts holds everything phase 1 learns about a single file. Facts are
// produced once per source pass and are read-only afterwards.
type fileFacts struct {
	diagnostics  []Diagnostic
	declarations []*VariableDeclaration

	selectorsParsed int
	observations    int
}

// extractor runs the per-file pass: fact extraction plus the per-file
// validators (naming, layout exclusivity). Each call is independent, so
// extractors are safe to share across workers.
type extractor struct {
	parser *SelectorParser
	naming *NamingValidator
	layout *LayoutExclusivityValidator
	vars   *VariableGraphBuilder
}

var (
	// Custom-property declarations: `--name: value` up to the terminator.
	varDeclPattern = regexp.MustCompile(`(--[A-Za-z0-9_-]+)\s*:\s*([^;{}]+)`)

	// Class-list attributes in markup, double- or single-quoted.
	classAttrPattern = regexp.MustCompile(`class\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// extract produces the facts for one file. Empty or undecodable content
// yields a single rule:input-error diagnostic and no other facts, so a
// broken file can never corrupt the global variable graph.
func (e *extractor) extract(f SourceFile) *fileFacts {
	facts := &fileFacts{}

	if strings.TrimSpace(f.Text) == "" || !utf8.ValidString(f.Text) {
		facts.diagnostics = append(facts.diagnostics, Diagnostic{
			Rule:      RuleInputError,
			Severity:  SeverityError,
			Message:   "file is empty or not valid UTF-8",
			Locations: []SourceLocation{{File: f.Path, Line: 1, Column: 1}},
		})
		return facts
	}

	if isStylesheet(f.Path) {
		e.extractStylesheet(f, facts)
	} else {
		e.extractMarkup(f, facts)
	}
	return facts
}

func isStylesheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".css")
}

// extractStylesheet lexes the file with the CSS tokenizer, classifies every
// class selector through the naming rules and collects custom-property
// declarations for the variable graph.
func (e *extractor) extractStylesheet(f SourceFile, facts *fileFacts) {
	for _, sel := range scanClassSelectors(f) {
		facts.selectorsParsed++
		parsed, err := e.parser.Parse(sel.raw)
		if err != nil {
			var perr *MalformedSelectorError
			if errors.As(err, &perr) {
				facts.diagnostics = append(facts.diagnostics, e.naming.ValidateParseError(perr, sel.location))
			}
			continue
		}
		facts.diagnostics = append(facts.diagnostics, e.naming.Validate(parsed, sel.location)...)
	}

	for _, decl := range scanVariableDeclarations(f, e.vars) {
		facts.declarations = append(facts.declarations, decl)
	}
}

// extractMarkup scans markup lines for class-list attributes. Every
// attribute is one element's observation; the layout exclusivity rule is
// applied per observation, never across elements.
func (e *extractor) extractMarkup(f SourceFile, facts *fileFacts) {
	scanner := bufio.NewScanner(strings.NewReader(f.Text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}

		for _, match := range classAttrPattern.FindAllStringSubmatchIndex(line, -1) {
			start, end := match[2], match[3]
			if start < 0 {
				start, end = match[4], match[5] // single-quoted variant
			}
			value := line[start:end]
			tokens := strings.Fields(value)
			if len(tokens) == 0 {
				continue
			}

			obs := ClassListObservation{
				Tokens: tokens,
				Location: SourceLocation{
					File:   f.Path,
					Line:   lineNum,
					Column: start + 1,
				},
			}
			facts.observations++
			facts.diagnostics = append(facts.diagnostics, e.layout.Validate(obs)...)
		}
	}
}

// scanClassSelectors walks the CSS token stream looking for a '.' delimiter
// followed by an identifier. Offsets are tracked by summing token lengths;
// the lexer emits whitespace and comment tokens, so the sum is exact.
func scanClassSelectors(f SourceFile) []locatedSelector {
	var selectors []locatedSelector
	lines := newLineIndex(f.Text)
	lexer := css.NewLexer(parse.NewInputString(f.Text))

	offset := 0
	prevDot := false
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		tokStart := offset
		offset += len(text)

		if tt == css.DelimToken && len(text) == 1 && text[0] == '.' {
			prevDot = true
			continue
		}
		if tt == css.IdentToken && prevDot {
			line, col := lines.locate(tokStart)
			selectors = append(selectors, locatedSelector{
				raw:      string(text),
				location: SourceLocation{File: f.Path, Line: line, Column: col},
			})
		}
		prevDot = false
	}
	return selectors
}

// scanVariableDeclarations finds `--name: value` declarations line by line.
// Multi-line values are out of scope for the sub-grammar; declarations in
// real stylesheets are overwhelmingly single-line.
func scanVariableDeclarations(f SourceFile, builder *VariableGraphBuilder) []*VariableDeclaration {
	var decls []*VariableDeclaration
	scanner := bufio.NewScanner(strings.NewReader(f.Text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !strings.Contains(line, "--") {
			continue
		}

		for _, match := range varDeclPattern.FindAllStringSubmatchIndex(line, -1) {
			name := line[match[2]:match[3]]
			value := strings.TrimSpace(line[match[4]:match[5]])
			loc := SourceLocation{File: f.Path, Line: lineNum, Column: match[2] + 1}
			decls = append(decls, builder.ParseDeclaration(name, value, f.Path, loc))
		}
	}
	return decls
}

// lineIndex maps byte offsets to 1-based line/column pairs.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (idx lineIndex) locate(offset int) (line, col int) {
	i := sort.SearchInts(idx, offset+1) - 1
	if i < 0 {
		i = 0
	}
	return i + 1, offset - idx[i] + 1
}
