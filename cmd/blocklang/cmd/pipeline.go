package cmd

import (
	"fmt"
	"os"

	"github.com/blocklang/blocklang/internal/block"
	"github.com/blocklang/blocklang/internal/cerrors"
	"github.com/blocklang/blocklang/internal/config"
	"github.com/blocklang/blocklang/internal/dag"
)

// fail formats and prints a fatal error, then exits the process — the
// path every fatal pipeline error takes (spec §7, §6's error-handling
// ambient section), matching the teacher's own `exitWithError`. main
// exits separately only when cobra itself rejects the command line.
func fail(err error) {
	if ce, ok := err.(*cerrors.CompilerError); ok {
		exitWithError("%s", ce.Format(true))
		return
	}
	exitWithError("%v", err)
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", cerrors.New(cerrors.FileMissing, fmt.Sprintf("cannot read %s: %v", path, err)).WithSource("", path)
	}
	return string(data), nil
}

// splitAndTokenize runs the splitter (spec §4.1) and tokenizer (spec §4.2)
// stages shared by every subcommand that needs a block's token stream.
func splitAndTokenize(source string) (map[string]block.TokenBlock, error) {
	blocks, err := block.Split(source)
	if err != nil {
		return nil, err
	}
	return block.Tokenize(blocks)
}

// buildGraph runs the splitter/tokenizer/DAG-build stages common to `run`
// and `emit` (spec §4.1, §4.6).
func buildGraph(source string) (*dag.Graph, error) {
	tokenBlocks, err := splitAndTokenize(source)
	if err != nil {
		return nil, err
	}
	return dag.Build(tokenBlocks)
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fail(err)
	}
	return cfg
}
