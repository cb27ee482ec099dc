package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose      bool
	veryVerbose  bool
	configPath   string
	traceJSONOut string
)

var rootCmd = &cobra.Command{
	Use:   "blocklang",
	Short: "blocklang interpreter, IR emitter and block scheduler",
	Long: `blocklang runs programs written as named, dependency-ordered blocks:

  block main requires[other] {
      print("hello");
  }

Blocks with no dependency between them run concurrently; a block that
requires another waits for it and inherits its exported variables.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "per-block start/finish timing on stderr")
	rootCmd.PersistentFlags().BoolVar(&veryVerbose, "vv", false, "also dump tokenized blocks and the DAG tree")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to .blocklang.yaml (default: ./.blocklang.yaml)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
