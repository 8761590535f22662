package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/papertrail/internal/cli"
	"github.com/Veraticus/papertrail/internal/common"
	"github.com/Veraticus/papertrail/internal/config"
	"github.com/Veraticus/papertrail/internal/model"
	"github.com/Veraticus/papertrail/internal/pipeline"
	"github.com/Veraticus/papertrail/internal/remote"
)

func pagesCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Publish a webpage for every highly relevant paper",
		Long: `Read today's classification table from the GitHub repository and commit
one HTML page per highly relevant paper. If no table exists for the date,
nothing is written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPages(cmd, date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "table date to read (YYYY-MM-DD, default: today in UTC)")

	return cmd
}

func runPages(cmd *cobra.Command, date string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	if date != "" {
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			return common.NewUserError(fmt.Sprintf("invalid --date %q, expected YYYY-MM-DD", date), common.ErrInvalidConfig)
		}
	}

	ghCfg, err := config.LoadGitHub(viper.GetViper())
	if err != nil {
		return err
	}

	repo, err := remote.NewRepository(ctx, ghCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create repository client: %w", err)
	}

	run := &pipeline.PageRun{
		Reader:    repo,
		Publisher: repo,
		Logger:    logger,
		Date:      date,
	}

	report, err := run.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case !report.Found, report.Unreadable:
		fmt.Fprintln(out, cli.FormatWarning(report.Summary()))
	case len(report.Failed) > 0:
		fmt.Fprintln(out, cli.FormatWarning(report.Summary()))
		for _, path := range report.Failed {
			fmt.Fprintln(out, cli.FormatError("failed to publish "+path))
		}
	default:
		fmt.Fprintln(out, cli.FormatSuccess(report.Summary()))
	}
	return nil
}
