package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version can be overridden at build time with -ldflags, matching
// playbymail-ottomap's version reporting convention.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "palladium",
	Short: "Palladium ahead-of-time compiler",
	Long:  "palladium compiles a Rust-like systems language to portable C.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("palladium version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
}
