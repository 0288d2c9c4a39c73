package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spboyer/gavel/internal/validation"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the project's .gavel.yaml against its schema",
		Long: `Check validates .gavel.yaml in the project directory against the embedded
JSON Schema and reports every violation. A missing config file is fine — the
pipeline then runs entirely on defaults.`,
		Args: cobra.NoArgs,
		RunE: checkCommandE,
	}
}

func checkCommandE(cmd *cobra.Command, _ []string) error {
	path := filepath.Join(projectDir, ".gavel.yaml")
	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(out, "No .gavel.yaml in %s; defaults will be used.\n", projectDir)
		return nil
	}

	errs, err := validation.ValidateConfigFile(path)
	if err != nil {
		return err
	}
	if len(errs) == 0 {
		fmt.Fprintf(out, "%s is valid.\n", path)
		return nil
	}

	fmt.Fprintf(out, "%s has %d problem(s):\n", path, len(errs))
	for _, e := range errs {
		fmt.Fprintf(out, "  %s\n", e)
	}
	return fmt.Errorf("invalid project configuration")
}
