package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/finsight-labs/finsight/internal/analyst"
	"github.com/finsight-labs/finsight/internal/fragment"
	"github.com/finsight-labs/finsight/internal/orchestrator"
	"github.com/finsight-labs/finsight/internal/rag"
)

var (
	askDBPath      string
	askLimit       int
	askMaxContext  int
	askModel       string
	askShowContext bool
)

var askCmd = &cobra.Command{
	Use:   "ask [ticker] [question]",
	Short: "Ask a question about a company's filings",
	Long: `Ask a natural language question about a company's ingested SEC filings.

This command:
1. Extracts 2-3 search terms from your question using an LLM (OpenAI)
2. Retrieves matching filing fragments for the ticker from the local store
3. Generates an answer grounded strictly in the retrieved fragments

When the filings do not contain the answer, the reply is an explicit
refusal rather than a guess.

Required environment variables:
  OPENAI_API_KEY     - OpenAI API key for term extraction and answering

Examples:
  finsight ask NFLX "What are the risks and litigations?"
  finsight ask AAPL "How does the company describe supply chain exposure?" --show-context
  finsight ask MSFT "What were the main revenue drivers?" --verbose`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askDBPath, "db", "data/fragments.db", "Fragment database path")
	askCmd.Flags().IntVar(&askLimit, "limit", rag.FragmentLimit, "Maximum fragments to retrieve")
	askCmd.Flags().IntVar(&askMaxContext, "max-context", rag.DefaultContextChars, "Maximum context size in characters")
	askCmd.Flags().StringVar(&askModel, "model", "gpt-4o", "LLM model for extraction and answering")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "Show the retrieved fragments below the answer")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ticker := strings.ToUpper(args[0])
	question := args[1]
	ctx := context.Background()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	// Styling
	var (
		headerColor   = lipgloss.Color("#F780FF") // Bright pink
		questionColor = lipgloss.Color("#8BE9FD") // Cyan
		answerColor   = lipgloss.Color("#E9E9F4") // Light purple/white
		contextColor  = lipgloss.Color("#6272A4") // Muted purple
		refusalColor  = lipgloss.Color("#FFB86C") // Orange
		errorColor    = lipgloss.Color("#FF5555") // Red
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true)

	questionStyle := lipgloss.NewStyle().
		Foreground(questionColor).
		Italic(true)

	answerStyle := lipgloss.NewStyle().
		Foreground(answerColor)

	contextStyle := lipgloss.NewStyle().
		Foreground(contextColor).
		Italic(true)

	refusalStyle := lipgloss.NewStyle().
		Foreground(refusalColor).
		Bold(true)

	errorStyle := lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Question (%s):", ticker)))
	fmt.Println(questionStyle.Render(question))
	fmt.Println()

	config := orchestrator.DefaultConfig()
	config.StorePath = askDBPath
	config.FragmentLimit = askLimit
	config.MaxContextChars = askMaxContext
	config.LLM.Model = askModel
	config.LLM.APIKey = apiKey

	pipeline, err := orchestrator.NewPipeline(config)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	defer pipeline.Close()

	resp, err := pipeline.Ask(ctx, ticker, question)
	if err != nil {
		return fmt.Errorf("%s %s", errorStyle.Render("Error:"), describeAskError(err))
	}

	if len(resp.Terms) > 0 {
		fmt.Println(contextStyle.Render(fmt.Sprintf("Searched for: %s", strings.Join(resp.Terms, ", "))))
		fmt.Println()
	}

	fmt.Println(headerStyle.Render("Answer:"))
	fmt.Println()
	if resp.Grounded {
		fmt.Println(answerStyle.Render(strings.TrimSpace(resp.Answer)))
	} else {
		fmt.Println(refusalStyle.Render(strings.TrimSpace(resp.Answer)))
	}
	fmt.Println()

	if askShowContext && len(resp.Evidence) > 0 {
		fmt.Println(headerStyle.Render(fmt.Sprintf("Retrieved context (%d fragments):", len(resp.Evidence))))
		for _, text := range resp.Evidence {
			preview := text
			if len(preview) > 200 {
				preview = preview[:200] + "..."
			}
			fmt.Println(contextStyle.Render("- " + preview))
		}
		fmt.Println()
	}

	return nil
}

// describeAskError maps pipeline failure kinds to user-facing messages.
func describeAskError(err error) string {
	switch {
	case errors.Is(err, rag.ErrExtractionFailed):
		return fmt.Sprintf("could not understand the question: %v", err)
	case errors.Is(err, fragment.ErrStoreUnavailable):
		return fmt.Sprintf("retrieval unavailable: %v", err)
	case errors.Is(err, analyst.ErrGenerationFailed):
		return fmt.Sprintf("found context but could not generate an answer: %v", err)
	default:
		return err.Error()
	}
}
