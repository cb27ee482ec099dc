// Package toolchain wraps the external clang invocation emit-mode depends
// on (spec §6, out of the core pipeline's scope). Grounded on
// original_source/src/build_script.rs: write the IR, remove a stale
// binary, invoke clang, proxy the resulting binary's stdout/stderr.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Clang is narrowed to the two operations the CLI's emit mode needs. Both
// shell out; tests point Path at a stand-in binary such as `true` or
// `false` instead of a real clang.
type Clang struct {
	// Path is the clang binary name or path; defaults to "clang" (spec
	// §6's ambient config lets .blocklang.yaml override it).
	Path string
}

func New(path string) *Clang {
	if path == "" {
		path = "clang"
	}
	return &Clang{Path: path}
}

// Compile removes any stale binary at outPath, then invokes
// `clang llPath -o outPath`. A non-zero exit reports clang's stderr.
func (c *Clang) Compile(ctx context.Context, llPath, outPath string) error {
	if _, err := os.Stat(outPath); err == nil {
		if err := os.Remove(outPath); err != nil {
			return fmt.Errorf("removing stale binary %s: %w", outPath, err)
		}
	}

	cmd := exec.CommandContext(ctx, c.Path, llPath, "-o", outPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clang failed: %w: %s", err, stderr.String())
	}
	return nil
}

// Run executes the compiled binary at exePath and captures its stdout and
// stderr separately, so the caller (cmd/blocklang) decides how to proxy
// them rather than this package writing to the process's own streams.
func (c *Clang) Run(ctx context.Context, exePath string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, exePath)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	runErr := cmd.Run()
	return outBuf.String(), errBuf.String(), runErr
}
