package cmd

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "finsight",
	Short: "Finsight - grounded Q&A over SEC filings",
	Long: `Finsight answers natural-language questions about a company's SEC filings.

It fetches 10-K reports from EDGAR, ingests them into a local fragment
store, and answers questions strictly from retrieved filing text, with
an explicit refusal when the filings do not contain the answer.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			charmlog.SetLevel(charmlog.DebugLevel)
		}
	},
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Show debug logging")
}
