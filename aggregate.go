package beamlint

import "sort"

// Aggregate deduplicates diagnostics by identity key, orders them by
// (file, line, column, rule) and computes the overall run status. It is a
// pure function of its input: repeated runs on identical diagnostics
// produce byte-identical output.
func Aggregate(diags []Diagnostic) ([]Diagnostic, RunStatus) {
	seen := make(map[string]bool, len(diags))
	deduped := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		key := d.identity()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, d)
	}

	SortDiagnostics(deduped)
	return deduped, statusOf(deduped)
}

// SortDiagnostics orders diagnostics by (file, line, column, rule id), with
// the message as a final tie-break for full determinism.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Primary(), diags[j].Primary()
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if diags[i].Rule != diags[j].Rule {
			return diags[i].Rule < diags[j].Rule
		}
		return diags[i].Message < diags[j].Message
	})
}

// statusOf maps a diagnostic set to a run status: clean when empty, failed
// when any error is present, warnings otherwise.
func statusOf(diags []Diagnostic) RunStatus {
	if len(diags) == 0 {
		return StatusClean
	}
	for _, d := range diags {
		if d.Severity == SeverityError {
			return StatusFailed
		}
	}
	return StatusWarnings
}
