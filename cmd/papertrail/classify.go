package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/papertrail/internal/arxiv"
	"github.com/Veraticus/papertrail/internal/cli"
	"github.com/Veraticus/papertrail/internal/config"
	"github.com/Veraticus/papertrail/internal/llm"
	"github.com/Veraticus/papertrail/internal/pipeline"
	"github.com/Veraticus/papertrail/internal/remote"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Rate recent arXiv papers and publish the results table",
		Long: `Fetch the most recent cs.CL and cs.AI submissions from arXiv, rate each
paper's relevance to hard-prefix prompt engineering with a language model,
and commit the sorted results as a dated CSV file to the GitHub repository.`,
		RunE: runClassify,
	}

	cmd.Flags().Int("max-results", pipeline.DefaultMaxResults, "number of papers to fetch")
	cmd.Flags().String("model", "", "model to classify with (default depends on provider)")
	cmd.Flags().String("provider", "openai", "LLM provider (openai, anthropic)")

	_ = viper.BindPFlag("arxiv.max_results", cmd.Flags().Lookup("max-results"))
	_ = viper.BindPFlag("llm.model", cmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("llm.provider", cmd.Flags().Lookup("provider"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()
	v := viper.GetViper()

	// Credentials are checked before any network call.
	llmCfg, err := config.LoadLLM(v)
	if err != nil {
		return err
	}
	ghCfg, err := config.LoadGitHub(v)
	if err != nil {
		return err
	}
	arxivCfg, err := config.LoadArxiv(v)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(llmCfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	repo, err := remote.NewRepository(ctx, ghCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create repository client: %w", err)
	}

	classifier := llm.NewClassifier(client, llmCfg.Model, logger)
	run := &pipeline.ClassificationRun{
		Source:     arxiv.NewFetcher(arxivCfg.Fetcher, logger),
		Classifier: classifier,
		Publisher:  repo,
		Logger:     logger,
		Progress:   os.Stderr,
		MaxResults: arxivCfg.MaxResults,
	}

	report, err := run.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := cli.PrintClassifications(out, report.Papers); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Classified %d papers with %s, published %s",
		len(report.Papers), classifier.Model(), report.Path)))
	if report.Errors > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d papers could not be classified", report.Errors)))
	}
	return nil
}
