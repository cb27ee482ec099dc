package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/blocklang/blocklang/internal/block"
	"github.com/blocklang/blocklang/internal/dag"
	"github.com/blocklang/blocklang/internal/interp"
	"github.com/blocklang/blocklang/internal/parser"
	"github.com/blocklang/blocklang/internal/state"
	"github.com/blocklang/blocklang/internal/trace"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Interpret a blocklang source file",
	Long: `Splits the file into blocks, schedules them in dependency order with
intra-wave concurrency, and interprets each block's statements directly
against a shared export mailbox.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&traceJSONOut, "trace-json", "", "write the -vv structured dump as JSON to this path")
}

func runRun(_ *cobra.Command, args []string) error {
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

	mailbox := state.NewMailbox()
	worker := func(id string, tb block.TokenBlock) error {
		stmts, err := parser.Parse(tb.Tokens)
		if err != nil {
			return err
		}
		env := mailbox.Collect(tb.Requires)
		interpreter := interp.New(os.Stdout)
		if err := interpreter.Run(stmts, env); err != nil {
			return err
		}
		mailbox.Publish(id, env)
		return nil
	}

	waves, err := g.Waves()
	if err != nil {
		fail(err)
	}
	if veryVerbose || traceJSONOut != "" {
		for i, wave := range waves {
			if err := builder.AddWave(i, wave); err != nil {
				fail(err)
			}
		}
	}

	cfg := loadConfig()
	runOpts := dag.RunOptions{Verbose: verbose || veryVerbose, Color: true, Log: os.Stderr, WorkerCap: cfg.WorkerCap}
	if err := g.Run(worker, runOpts); err != nil {
		fail(err)
	}

	if traceJSONOut != "" {
		if err := os.WriteFile(traceJSONOut, []byte(builder.JSON()), 0o644); err != nil {
			fail(err)
		}
	}
	return nil
}

// dumpVerboseTokensAndTree prints the -vv human-readable token dump and DAG
// tree to stderr, and records the same data into builder for --trace-json.
func dumpVerboseTokensAndTree(g *dag.Graph, builder *trace.Builder) {
	ids := make([]string, 0, len(g.Blocks))
	for id := range g.Blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		tb := g.Blocks[id]
		rendered := make([]string, 0, len(tb.Tokens))
		fmt.Fprintf(os.Stderr, "Block %s:\n", id)
		for _, tok := range tb.Tokens {
			fmt.Fprintf(os.Stderr, "  %s\n", tok.String())
			rendered = append(rendered, tok.String())
		}
		if err := builder.AddBlockTokens(id, rendered); err != nil {
			fail(err)
		}
	}
	g.PrintTree(os.Stderr, true)
}
