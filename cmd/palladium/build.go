package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/palladium-lang/palladium/internal/config"
	"github.com/palladium-lang/palladium/internal/diag"
	"github.com/palladium-lang/palladium/internal/driver"
	"github.com/palladium-lang/palladium/internal/runtime"
	"github.com/palladium-lang/palladium/internal/toolchain"
	"github.com/spf13/cobra"
)

var buildFlags struct {
	outDir     string
	cc         string
	optLevel   string
	keepC      bool
	emitCOnly  bool
	configPath string
}

var buildCmd = &cobra.Command{
	Use:   "build <file.pd | directory>",
	Short: "Compile a source file, or every .pd file in a directory, to C and link a binary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(args[0])
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildFlags.outDir, "out-dir", "", "output directory (overrides palladium.toml)")
	buildCmd.Flags().StringVar(&buildFlags.cc, "cc", "", "C compiler to invoke (overrides palladium.toml)")
	buildCmd.Flags().StringVar(&buildFlags.optLevel, "opt-level", "", "C compiler optimization level (overrides palladium.toml)")
	buildCmd.Flags().BoolVar(&buildFlags.keepC, "keep-c", false, "keep the generated .c file next to the binary")
	buildCmd.Flags().BoolVar(&buildFlags.emitCOnly, "emit-c-only", false, "generate C and stop, without invoking a C toolchain")
	buildCmd.Flags().StringVar(&buildFlags.configPath, "config", "palladium.toml", "path to a palladium.toml project file")
}

// runBuild compiles path, which names either a single source file or a
// directory. A directory is globbed for every *.pd file with doublestar
// (spec.md §1 leaves module/package resolution across files out of scope,
// so each match still compiles and links as its own independent program).
func runBuild(path string) error {
	cfg, err := config.Load(buildFlags.configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var sources []string
	if info.IsDir() {
		sources, err = doublestar.FilepathGlob(filepath.Join(path, "**/*.pd"))
		if err != nil {
			return fmt.Errorf("glob %s: %w", path, err)
		}
		if len(sources) == 0 {
			return fmt.Errorf("no .pd files found under %s", path)
		}
	} else {
		sources = []string{path}
	}

	for _, src := range sources {
		if err := buildOne(src, cfg); err != nil {
			return err
		}
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if buildFlags.outDir != "" {
		cfg.Build.OutDir = buildFlags.outDir
	}
	if buildFlags.cc != "" {
		cfg.Build.CC = buildFlags.cc
	}
	if buildFlags.optLevel != "" {
		cfg.Build.OptLevel = buildFlags.optLevel
	}
	if buildFlags.keepC {
		cfg.Build.KeepC = true
	}
}

func buildOne(srcPath string, cfg *config.Config) error {
	fmt.Printf("Building %s...\n", srcPath)

	cSrc, err := driver.GenerateC(srcPath)
	if err != nil {
		diag.NewFormatter().Format(driver.Diagnostic(err))
		return fmt.Errorf("build failed: %s", srcPath)
	}

	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	outDir := cfg.Build.OutDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	cPath := filepath.Join(outDir, base+".c")
	if err := toolchain.WriteSource(cPath, cSrc); err != nil {
		return fmt.Errorf("write generated C: %w", err)
	}

	if buildFlags.emitCOnly {
		fmt.Printf("Generated %s\n", cPath)
		return nil
	}

	// Every invocation gets its own build-scratch directory, tagged with a
	// UUID so concurrent `build` runs never collide on /tmp paths (spec.md
	// §1's toolchain-invocation collaborator is out of core scope; this is
	// the thin driver-side wiring around it).
	buildDir := filepath.Join(os.TempDir(), "palladium-build-"+uuid.NewString())
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("create build directory: %w", err)
	}
	defer os.RemoveAll(buildDir)

	runtimePath := filepath.Join(buildDir, runtime.FileName)
	if err := toolchain.WriteSource(runtimePath, runtime.Source); err != nil {
		return fmt.Errorf("write runtime source: %w", err)
	}

	cc, err := toolchain.Find(cfg.Build.CC)
	if err != nil {
		return err
	}

	outBinary := filepath.Join(outDir, base)
	if err := cc.Compile(toolchain.CompileOptions{
		Sources:  []string{cPath, runtimePath},
		Output:   outBinary,
		OptLevel: cfg.Build.OptLevel,
	}); err != nil {
		return err
	}

	if !cfg.Build.KeepC {
		os.Remove(cPath)
	}

	fmt.Printf("Build successful: %s\n", outBinary)
	return nil
}
