// Package toolchain shells out to a C compiler to turn generated C into a
// native binary. It is grounded on the teacher's findLLC/findOpt external
// tool discovery in cmd/malphas/main.go, adapted from locating llc/opt on
// Homebrew paths to locating cc/gcc/clang on PATH.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// compileTimeout bounds how long one invocation of the C compiler may run,
// mirroring the teacher's 60-second cap on its own llc/clang subprocesses.
const compileTimeout = 60 * time.Second

// Compiler locates and invokes a C toolchain.
type Compiler struct {
	// Path is the resolved path to the compiler executable.
	Path string
}

// Find locates a C compiler. preferred, if non-empty, is tried first (the
// value from palladium.toml or a --cc flag); otherwise cc, gcc and clang
// are tried in that order on PATH, matching the teacher's PATH-first,
// fallback-locations-second search order.
func Find(preferred string) (*Compiler, error) {
	candidates := []string{"cc", "gcc", "clang"}
	if preferred != "" {
		candidates = append([]string{preferred}, candidates...)
	}

	var tried []string
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return &Compiler{Path: path}, nil
		}
		tried = append(tried, name)
	}
	return nil, fmt.Errorf("no C compiler found on PATH (tried: %s)", strings.Join(tried, ", "))
}

// CompileOptions configures one Compile invocation.
type CompileOptions struct {
	// Sources are the .c files to compile, in argument order.
	Sources []string
	// Output is the path of the binary to produce.
	Output string
	// OptLevel is passed through as -O<level> (e.g. "0", "2"); empty means
	// the compiler's own default.
	OptLevel string
	// ExtraArgs are appended verbatim after the standard flags, e.g.
	// "-lm" for libraries the runtime needs.
	ExtraArgs []string
}

// Compile links sources into a single native binary at opts.Output,
// capturing stderr for the caller to report on failure.
func (c *Compiler) Compile(opts CompileOptions) error {
	args := make([]string, 0, len(opts.Sources)+4+len(opts.ExtraArgs))
	if opts.OptLevel != "" {
		args = append(args, "-O"+opts.OptLevel)
	}
	args = append(args, opts.Sources...)
	args = append(args, "-o", opts.Output)
	args = append(args, opts.ExtraArgs...)

	ctx, cancel := context.WithTimeout(context.Background(), compileTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Path, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("C compilation timed out after %s", compileTimeout)
		}
		if stderr.Len() > 0 {
			return fmt.Errorf("C compilation failed: %v\n%s", err, stderr.String())
		}
		return fmt.Errorf("C compilation failed: %v", err)
	}
	return nil
}

// WriteSource writes generated C text to path, creating it if needed.
func WriteSource(path, src string) error {
	return os.WriteFile(path, []byte(src), 0644)
}
