package beamlint

import (
	"encoding/json"
	"io"
)

// JSONOutput is the structured export schema.
type JSONOutput struct {
	Version     string       `json:"version"`
	Status      string       `json:"status"`
	Summary     JSONSummary  `json:"summary"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// JSONSummary contains high-level counts.
type JSONSummary struct {
	Total            int `json:"total"`
	Errors           int `json:"errors"`
	Warnings         int `json:"warnings"`
	FilesChecked     int `json:"files_checked"`
	SelectorsParsed  int `json:"selectors_parsed"`
	VariablesTracked int `json:"variables_tracked"`
}

// WriteJSON writes the report as indented JSON. The output is a pure
// function of the report, so identical runs serialize byte-identically.
func WriteJSON(w io.Writer, report *Report) error {
	diags := report.Diagnostics
	if diags == nil {
		diags = []Diagnostic{}
	}
	output := JSONOutput{
		Version: "1.0",
		Status:  string(report.Status),
		Summary: JSONSummary{
			Total:            len(report.Diagnostics),
			Errors:           report.ErrorCount(),
			Warnings:         report.WarningCount(),
			FilesChecked:     report.FilesChecked,
			SelectorsParsed:  report.SelectorsParsed,
			VariablesTracked: report.VariablesTracked,
		},
		Diagnostics: diags,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
