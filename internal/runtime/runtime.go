// Package runtime embeds the C implementation of the fixed ABI generated
// Palladium code calls into (spec.md §6.3), so `palladium build` can write
// it out next to the generated translation unit and hand both files to the
// C toolchain without requiring a separate install step.
package runtime

import _ "embed"

//go:embed runtime.c
var Source string

// FileName is the name runtime.c is written under inside a build directory.
const FileName = "palladium_runtime.c"
