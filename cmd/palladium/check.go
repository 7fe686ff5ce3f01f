package main

import (
	"fmt"

	"github.com/palladium-lang/palladium/internal/diag"
	"github.com/palladium-lang/palladium/internal/driver"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.pd>",
	Short: "Run the pipeline through semantic analysis and report diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(args[0])
	},
}

func runCheck(path string) error {
	formatter := diag.NewFormatter()

	if _, err := driver.Check(path); err != nil {
		formatter.Format(driver.Diagnostic(err))
		return fmt.Errorf("check failed")
	}
	fmt.Printf("%s: no errors\n", path)
	return nil
}
