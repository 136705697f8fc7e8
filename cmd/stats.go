package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/finsight-labs/finsight/internal/fragment"
)

var statsDBPath string

var statsCmd = &cobra.Command{
	Use:   "stats [ticker]",
	Short: "Show fragment counts for a ticker",
	Long: `Show how many fragments are stored for a ticker and how many of
them carry PII redaction markers. Without a ticker, lists all tickers
present in the store.

Examples:
  finsight stats NFLX
  finsight stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsDBPath, "db", "data/fragments.db", "Fragment database path")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E9E9F4"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))

	store, err := fragment.NewSQLiteStore(statsDBPath)
	if err != nil {
		return fmt.Errorf("opening fragment store: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		entities, err := store.Entities(ctx)
		if err != nil {
			return err
		}
		if len(entities) == 0 {
			fmt.Println(warnStyle.Render("No data ingested yet. Run 'finsight fetch' and 'finsight ingest' first."))
			return nil
		}
		fmt.Println(headerStyle.Render("Indexed tickers:"))
		fmt.Println(valueStyle.Render(strings.Join(entities, ", ")))
		return nil
	}

	ticker := strings.ToUpper(args[0])
	stats, err := store.Stats(ctx, ticker)
	if err != nil {
		if errors.Is(err, fragment.ErrNoSuchEntity) {
			fmt.Println(warnStyle.Render(fmt.Sprintf("No fragments stored for %s yet.", ticker)))
			return nil
		}
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Fragments for %s:", ticker)))
	fmt.Println(valueStyle.Render(fmt.Sprintf("Total:    %d", stats.Total)))
	fmt.Println(valueStyle.Render(fmt.Sprintf("Redacted: %d", stats.Redacted)))
	fmt.Println(valueStyle.Render(fmt.Sprintf("Clean:    %d", stats.Total-stats.Redacted)))
	return nil
}
