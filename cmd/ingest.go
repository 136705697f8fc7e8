package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/finsight-labs/finsight/internal/fragment"
	"github.com/finsight-labs/finsight/internal/ingest"
)

var (
	ingestDBPath    string
	ingestChunkSize int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [ticker] [file...]",
	Short: "Ingest filing files into the fragment store",
	Long: `Ingest downloaded filing files into the local fragment store.

Each file is split into paragraph-aware fragments, PII (phone numbers,
email addresses, SSNs) is redacted with markers, and the fragments are
stored under the given ticker for retrieval.

Examples:
  finsight ingest NFLX data/filings/NFLX/nflx-20241231.htm
  finsight ingest AAPL data/filings/AAPL/*.htm --chunk-size 2000`,
	Args: cobra.MinimumNArgs(2),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestDBPath, "db", "data/fragments.db", "Fragment database path")
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", ingest.DefaultChunkSize, "Target fragment size in characters")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ticker := strings.ToUpper(args[0])
	files := args[1:]
	ctx := context.Background()

	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	contextStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)

	store, err := fragment.NewSQLiteStore(ingestDBPath)
	if err != nil {
		return fmt.Errorf("opening fragment store: %w", err)
	}
	defer store.Close()

	ingestor, err := ingest.NewIngestor(store, ingestChunkSize)
	if err != nil {
		return err
	}

	total := 0
	for _, file := range files {
		fmt.Println(contextStyle.Render(fmt.Sprintf("Ingesting %s...", file)))

		fragments, err := ingestor.IngestFile(ctx, ticker, file)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", file, err)
		}
		total += len(fragments)

		fmt.Println(successStyle.Render(fmt.Sprintf("✓ %s → %d fragments", file, len(fragments))))
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Stored %d fragments for %s", total, ticker)))
	return nil
}
