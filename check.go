package beamlint

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Defaults for the configuration surface.
const (
	defaultLayoutPrefix    = "l_"
	defaultPrimitivePrefix = "primitive-"
	defaultThemeArtifact   = "**/theme.css"
)

// defaultStateWords is the default vocabulary for rule:state-in-class.
var defaultStateWords = []string{"active", "disabled", "danger", "selected", "open", "hidden"}

// Config holds the checker configuration.
type Config struct {
	Strict          bool     // treat warnings as errors (exit-code mapping, CLI concern)
	StateWords      []string // vocabulary for rule:state-in-class
	ThemeArtifact   string   // glob identifying the global theme tier files
	LayoutPrefix    string   // reserved prefix for layout primitives
	PrimitivePrefix string   // name prefix marking primitive tokens in the theme artifact
	Workers         int      // phase-1 parallelism; 0 = GOMAXPROCS
}

// DefaultConfig returns the configuration beamlint ships with.
func DefaultConfig() Config {
	return Config{
		StateWords:      defaultStateWords,
		ThemeArtifact:   defaultThemeArtifact,
		LayoutPrefix:    defaultLayoutPrefix,
		PrimitivePrefix: defaultPrimitivePrefix,
	}
}

// withDefaults fills zero values so a partially populated Config behaves
// like DefaultConfig for the unset fields.
func (c Config) withDefaults() Config {
	if c.StateWords == nil {
		c.StateWords = defaultStateWords
	}
	if c.ThemeArtifact == "" {
		c.ThemeArtifact = defaultThemeArtifact
	}
	if c.LayoutPrefix == "" {
		c.LayoutPrefix = defaultLayoutPrefix
	}
	if c.PrimitivePrefix == "" {
		c.PrimitivePrefix = defaultPrimitivePrefix
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// Report is the single output value of a run: the overall status plus the
// ordered, deduplicated diagnostics and a few run statistics.
type Report struct {
	Status      RunStatus
	Diagnostics []Diagnostic

	FilesChecked     int
	SelectorsParsed  int
	Observations     int
	VariablesTracked int
}

// ErrorCount returns the number of error-severity diagnostics.
func (r *Report) ErrorCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity diagnostics.
func (r *Report) WarningCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Check runs the full pipeline over the given files.
//
// Phase 1 is a worker-per-file pool: each file's facts depend only on that
// file's text, so workers share no mutable state and results are merged
// after the pool joins. The merged variable graph is then frozen (the hard
// barrier) and phase 2 walks it with complete cross-file knowledge.
//
// Cancelling the context abandons in-flight workers and yields a report
// with status cancelled and no diagnostics, never a partial set.
func Check(ctx context.Context, files []SourceFile, config Config) (*Report, error) {
	config = config.withDefaults()

	varBuilder, err := NewVariableGraphBuilder(config.ThemeArtifact, config.PrimitivePrefix)
	if err != nil {
		return nil, err
	}
	parser := NewSelectorParser(config.LayoutPrefix)
	ex := &extractor{
		parser: parser,
		naming: NewNamingValidator(config.StateWords),
		layout: NewLayoutExclusivityValidator(parser),
		vars:   varBuilder,
	}

	// Phase 1: parallel per-file extraction and validation.
	facts := make([]*fileFacts, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Workers)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			facts[i] = ex.extract(file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Only cancellation makes a worker fail; report it without partial
		// diagnostics to avoid misleading incomplete results.
		return &Report{Status: StatusCancelled}, nil
	}
	if ctx.Err() != nil {
		return &Report{Status: StatusCancelled}, nil
	}

	// Merge-after-join: accumulate per-file facts into the shared graph.
	report := &Report{FilesChecked: len(files)}
	varGraph := NewVariableGraph()
	var diags []Diagnostic
	for _, f := range facts {
		if f == nil {
			continue
		}
		diags = append(diags, f.diagnostics...)
		for _, decl := range f.declarations {
			varGraph.Add(decl)
		}
		report.SelectorsParsed += f.selectorsParsed
		report.Observations += f.observations
	}
	report.VariablesTracked = varGraph.Len()

	// Hard barrier: freeze before the global walk.
	if err := varGraph.Freeze(); err != nil {
		return nil, err
	}

	// Phase 2: cross-file tier consistency.
	diags = append(diags, ValidateTiers(varGraph)...)

	report.Diagnostics, report.Status = Aggregate(diags)
	return report, nil
}
