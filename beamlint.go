// Package beamlint validates stylesheet and markup artifacts against the
// BEAM (Block / Element / Attribute / Module) naming convention.
//
// beamlint is a conformance checker, not a CSS engine. It consumes raw
// (path, text) pairs supplied by a file-discovery collaborator, extracts
// class selectors, class-list observations and custom-property declarations,
// and reports naming, layout-exclusivity and variable-tier violations.
//
// # Checking
//
// Run the full pipeline over a set of files:
//
//	files := []beamlint.SourceFile{
//		{Path: "styles/theme.css", Text: themeCSS},
//		{Path: "styles/card.css", Text: cardCSS},
//		{Path: "pages/home.html", Text: homeHTML},
//	}
//	report, err := beamlint.Check(ctx, files, beamlint.DefaultConfig())
//
// The report carries an overall status (clean, warnings, failed or
// cancelled) and an ordered, deduplicated sequence of diagnostics.
//
// # CLI Tool
//
// beamlint also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/beamlint/cmd/beamlint@latest
package beamlint
