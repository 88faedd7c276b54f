package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okondratev/devdocs-qa/internal/bootstrap"
	"github.com/okondratev/devdocs-qa/internal/config"
	"github.com/okondratev/devdocs-qa/internal/core/ports"
	"github.com/okondratev/devdocs-qa/internal/observability/logging"
)

var askFlags struct {
	question  string
	apiKey    string
	endpoint  string
	searchURL string
	logLevel  string
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question about the supported developer tooling",
	Long: `Classify a question into a tooling domain, search the documentation
endpoints, and synthesize an answer with source citations.

Usage:
  qactl ask "how do I rotate Jenkins credentials"
  qactl ask --question "how do I rotate Jenkins credentials"
  qactl ask                                   # interactive loop

Settings default to the same environment variables the API service
reads (AZURE_OPENAI_*, SEARCH_BASE_URL); flags override them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	f := askCmd.Flags()
	f.StringVar(&askFlags.question, "question", "", "Question text (positional arg works too)")
	f.StringVar(&askFlags.apiKey, "api-key", "", "Azure OpenAI API key (default: $AZURE_OPENAI_API_KEY)")
	f.StringVar(&askFlags.endpoint, "endpoint", "", "Azure OpenAI endpoint (default: $AZURE_OPENAI_ENDPOINT)")
	f.StringVar(&askFlags.searchURL, "search-url", "", "Documentation search base URL (default: $SEARCH_BASE_URL)")
	f.StringVar(&askFlags.logLevel, "log-level", "error", "Log level for pipeline diagnostics")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if askFlags.apiKey != "" {
		cfg.AzureOpenAIAPIKey = askFlags.apiKey
	}
	if askFlags.endpoint != "" {
		cfg.AzureOpenAIEndpoint = askFlags.endpoint
	}
	if askFlags.searchURL != "" {
		cfg.SearchBaseURL = askFlags.searchURL
	}
	slog.SetDefault(logging.New("qactl", askFlags.logLevel))

	qa, err := bootstrap.NewPipeline(cfg, nil)
	if err != nil {
		return err
	}

	question := askFlags.question
	if question == "" && len(args) > 0 {
		question = args[0]
	}
	if question != "" {
		return answerOnce(cmd, qa, question)
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	for {
		fmt.Fprint(cmd.OutOrStdout(), "question> ")
		if !scanner.Scan() {
			fmt.Fprintln(cmd.OutOrStdout())
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := answerOnce(cmd, qa, line); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}
}

func answerOnce(cmd *cobra.Command, qa ports.QuestionAnswerer, question string) error {
	result, err := qa.Process(cmd.Context(), question)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Answer)
	fmt.Fprintf(out, "\ndomain: %s (confidence %.2f), status: %s\n",
		result.PrimaryDomain, result.Confidence, result.Status)
	if len(result.SearchedDomains) > 0 {
		names := make([]string, 0, len(result.SearchedDomains))
		for _, d := range result.SearchedDomains {
			names = append(names, string(d))
		}
		fmt.Fprintf(out, "searched: %s\n", strings.Join(names, ", "))
	}
	if len(result.Sources) > 0 {
		fmt.Fprintln(out, "sources:")
		for i, src := range result.Sources {
			fmt.Fprintf(out, "  [%d] %s (%s, score %.2f)\n", i+1, src.Title, src.Domain, src.RelevanceScore)
		}
	}
	return nil
}
