package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blocklang/blocklang/internal/ast"
	"github.com/blocklang/blocklang/internal/interp"
	"github.com/blocklang/blocklang/internal/ir"
	"github.com/blocklang/blocklang/internal/parser"
	"github.com/blocklang/blocklang/internal/toolchain"
	"github.com/blocklang/blocklang/internal/trace"
	"github.com/spf13/cobra"
)

var noCompile bool

var emitCmd = &cobra.Command{
	Use:   "emit <file>",
	Short: "Emit LLVM IR for a blocklang source file and compile it",
	Long: `Splits the file into blocks, orders them by the dependency DAG, and
translates their combined statements into a single LLVM-IR "@main"
function (spec: emission is a deterministic function of the whole
program's statements and variable map, not a per-block one). The IR is
written to <build-dir>/llvm.ll; unless --no-compile is set, clang then
compiles it to <build-dir>/main.exe and the resulting binary is run, with
its stdout/stderr proxied here.`,
	Args: cobra.ExactArgs(1),
	RunE: runEmit,
}

func init() {
	rootCmd.AddCommand(emitCmd)
	emitCmd.Flags().BoolVar(&noCompile, "no-compile", false, "write llvm.ll but skip invoking clang")
	emitCmd.Flags().StringVar(&traceJSONOut, "trace-json", "", "write the -vv structured dump as JSON to this path")
}

func runEmit(_ *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		fail(err)
	}

	g, err := buildGraph(source)
	if err != nil {
		fail(err)
	}

	builder := trace.NewBuilder()
	if veryVerbose || traceJSONOut != "" {
		dumpVerboseTokensAndTree(g, builder)
	}

	waves, err := g.Waves()
	if err != nil {
		fail(err)
	}

	// Emission is one deterministic pass over the whole program's
	// statements, not a per-block one (spec: a single .ll file with one
	// @main function) — the DAG still fixes the order blocks are flattened
	// in, so a producer's DefineVariable always precedes a dependent's
	// reference to it, but no concurrency or cross-block export filtering
	// applies here the way it does in interpret mode (see DESIGN.md).
	var allStmts []ast.Stmt
	for i, wave := range waves {
		if veryVerbose || traceJSONOut != "" {
			if err := builder.AddWave(i, wave); err != nil {
				fail(err)
			}
		}
		for _, id := range wave {
			stmts, err := parser.Parse(g.Blocks[id].Tokens)
			if err != nil {
				fail(err)
			}
			allStmts = append(allStmts, stmts...)
		}
	}

	llvm, err := ir.New().Emit(allStmts, make(interp.Environment))
	if err != nil {
		fail(err)
	}

	cfg := loadConfig()
	if err := os.MkdirAll(cfg.BuildDir, 0o755); err != nil {
		fail(err)
	}
	llPath := filepath.Join(cfg.BuildDir, "llvm.ll")
	if err := os.WriteFile(llPath, []byte(llvm), 0o644); err != nil {
		fail(err)
	}

	if traceJSONOut != "" {
		if err := os.WriteFile(traceJSONOut, []byte(builder.JSON()), 0o644); err != nil {
			fail(err)
		}
	}

	if noCompile {
		return nil
	}

	outPath := filepath.Join(cfg.BuildDir, "main.exe")
	clang := toolchain.New(cfg.ClangPath)
	ctx := context.Background()
	if err := clang.Compile(ctx, llPath, outPath); err != nil {
		fail(err)
	}

	stdout, stderr, err := clang.Run(ctx, outPath)
	fmt.Print(stdout)
	fmt.Fprint(os.Stderr, stderr)
	if err != nil {
		fail(fmt.Errorf("compiled program exited with an error: %w", err))
	}
	return nil
}
