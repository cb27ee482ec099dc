package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCompileRemovesStaleBinaryAndInvokesClang(t *testing.T) {
	dir := t.TempDir()
	llPath := filepath.Join(dir, "llvm.ll")
	outPath := filepath.Join(dir, "main.exe")
	if err := os.WriteFile(llPath, []byte("; unused by the fake clang"), 0o644); err != nil {
		t.Fatalf("write llPath: %v", err)
	}
	if err := os.WriteFile(outPath, []byte("stale binary"), 0o644); err != nil {
		t.Fatalf("write stale outPath: %v", err)
	}

	c := New("true") // `true` ignores its arguments and exits 0
	if err := c.Compile(context.Background(), llPath, outPath); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	// `true` never recreates outPath; Compile only needed to remove the
	// stale one without erroring and to invoke the configured binary.
	if _, err := os.Stat(outPath); err == nil {
		t.Error("expected the stale binary to have been removed and not recreated by `true`")
	}
}

func TestCompileReportsClangFailure(t *testing.T) {
	c := New("false") // `false` always exits 1
	err := c.Compile(context.Background(), "in.ll", filepath.Join(t.TempDir(), "out"))
	if err == nil {
		t.Fatal("expected an error from a non-zero clang exit")
	}
}

func TestRunCapturesStdoutAndStderr(t *testing.T) {
	c := New("unused")
	stdout, stderr, err := c.Run(context.Background(), "/bin/echo")
	_ = stderr
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stdout != "\n" {
		t.Errorf("got stdout %q, want a single newline from a bare echo", stdout)
	}
}
