package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/finsight-labs/finsight/internal/edgar"
)

var (
	fetchForm      string
	fetchLimit     int
	fetchOutDir    string
	fetchUserAgent string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [ticker]",
	Short: "Download recent filings from SEC EDGAR",
	Long: `Download a company's recent filings from SEC EDGAR to local disk.

The SEC requires every request to carry a User-Agent identifying the
caller with a contact address. Set it with --user-agent or the
EDGAR_USER_AGENT environment variable.

Examples:
  finsight fetch NFLX
  finsight fetch AAPL --form 10-K --limit 2 --out data/filings`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchForm, "form", "10-K", "Filing form type to download")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 2, "Maximum filings to download")
	fetchCmd.Flags().StringVar(&fetchOutDir, "out", "data/filings", "Output directory")
	fetchCmd.Flags().StringVar(&fetchUserAgent, "user-agent", "", "User-Agent with contact address (or EDGAR_USER_AGENT)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ticker := strings.ToUpper(args[0])
	ctx := context.Background()

	userAgent := fetchUserAgent
	if userAgent == "" {
		userAgent = os.Getenv("EDGAR_USER_AGENT")
	}

	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	contextStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)

	client, err := edgar.NewClient(userAgent)
	if err != nil {
		return err
	}

	fmt.Println(contextStyle.Render(fmt.Sprintf("Resolving CIK for %s...", ticker)))
	cik, err := client.ResolveCIK(ctx, ticker)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", ticker, err)
	}

	filings, err := client.RecentFilings(ctx, cik, fetchForm, fetchLimit)
	if err != nil {
		return fmt.Errorf("listing filings for %s: %w", ticker, err)
	}
	if len(filings) == 0 {
		fmt.Printf("No %s filings found for %s\n", fetchForm, ticker)
		return nil
	}

	outDir := filepath.Join(fetchOutDir, ticker)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, filing := range filings {
		fmt.Println(contextStyle.Render(fmt.Sprintf("Downloading %s %s (%s)...", filing.Form, filing.AccessionNumber, filing.FilingDate)))

		doc, err := client.DownloadFiling(ctx, filing)
		if err != nil {
			return fmt.Errorf("downloading %s: %w", filing.AccessionNumber, err)
		}

		path := filepath.Join(outDir, filing.PrimaryDocument)
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Saved %s", path)))
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Downloaded %d filings for %s", len(filings), ticker)))
	return nil
}
