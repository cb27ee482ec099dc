package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of every block",
	Long: `Splits the file into blocks and prints each block's token stream in
the parenthesized dump format (Identifier(x), MathOp(+), String(hi), ...).

This command is a debugging aid and never runs the parser, interpreter,
scheduler, or emitter.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(_ *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		fail(err)
	}

	tokenBlocks, err := splitAndTokenize(source)
	if err != nil {
		fail(err)
	}

	ids := make([]string, 0, len(tokenBlocks))
	for id := range tokenBlocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Printf("Block %s:\n", id)
		for _, tok := range tokenBlocks[id].Tokens {
			fmt.Printf("  %s\n", tok.String())
		}
	}
	return nil
}
