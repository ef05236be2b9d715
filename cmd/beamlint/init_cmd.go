package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigContent = `# beamlint configuration
# Precedence: CLI flags > environment (BEAMLINT_*) > this file > defaults

check:
  # Glob patterns to scan
  paths:
    - "**/*.css"
    - "**/*.html"
    - "**/*.templ"

  # Exit non-zero on warnings as well as errors
  strict: false

  # Glob matching the generated theme artifact; variables declared there
  # form the primitive and semantic tiers
  theme: "**/theme.css"

  # Class prefix marking layout primitives
  layout-prefix: "l_"

  # Variable prefix marking primitive tokens inside the theme artifact
  primitive-prefix: "primitive-"

  # Words treated as state names when they appear in element classes
  state-words:
    - active
    - disabled
    - danger
    - selected
    - open
    - hidden

  # Parallel file workers (0 = number of CPUs)
  workers: 0

  # Output format: issues, summary, json
  output-format: issues
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default .beamlint.yaml config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := ".beamlint.yaml"
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(configPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}

		if err := os.WriteFile(configPath, []byte(defaultConfigContent), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", configPath, err)
		}

		fmt.Printf("Created %s\n", configPath)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
