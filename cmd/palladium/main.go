// Command palladium is the ahead-of-time compiler's CLI driver: `build`
// compiles one file or a directory of `.pd` files to C (and, unless
// --emit-c-only is set, links a native binary); `check` runs the pipeline
// through semantic analysis only. Built with spf13/cobra, grounded on
// playbymail-ottomap/main.go and termfx-morfx's cobra-based command trees,
// in place of the teacher's raw flag package.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
