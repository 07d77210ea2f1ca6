package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/regatta-backend/internal/adapter/postgres"
	"github.com/heartmarshall/regatta-backend/internal/domain"
	"github.com/heartmarshall/regatta-backend/internal/service/report"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, logger, err := openPool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			return postgres.Migrate(cmd.Context(), pool, logger)
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a results CSV file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd.Context(), &rootOptions{})
			if err != nil {
				return err
			}
			defer b.close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := b.svcs.Ingest.Upload(cmd.Context(), f)
			if err != nil {
				return err
			}
			for _, s := range res.Skipped {
				b.log.Warn("row skipped", slog.Int("line", s.Line), slog.String("reason", s.Reason))
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored result record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}

			b, err := openBackend(cmd.Context(), &rootOptions{})
			if err != nil {
				return err
			}
			defer b.close()

			n, err := b.svcs.Ingest.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d records\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	var showIntent bool

	cmd := &cobra.Command{
		Use:   `ask "<question>"`,
		Short: "Answer a free-text question about the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer b.close()

			question := strings.Join(args, " ")
			if showIntent {
				return printJSON(cmd.OutOrStdout(), b.svcs.Chat.ResolveIntent(cmd.Context(), question))
			}

			ans, err := b.svcs.Chat.Ask(cmd.Context(), question)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ans)
		},
	}
	cmd.Flags().BoolVar(&showIntent, "intent", false, "print the classified intent instead of answering")
	return cmd
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		p         report.Params
		dateRange string
	)

	cmd := &cobra.Command{
		Use:   "report <kind>",
		Short: "Run an aggregate report",
		Long: "Run an aggregate report. Kinds: top_sailors, club_skippers, club_summary, " +
			"regatta_results, regatta_count, regatta_stats, regatta_search, top_clubs, " +
			"most_active_sailor, database_status, data_quality.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.AggregateKind(args[0])
			p.DateRange = domain.DateRange(dateRange)
			if err := p.Validate(kind); err != nil {
				return err
			}

			b, err := openBackend(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer b.close()

			out, err := b.svcs.Reports.Aggregate(cmd.Context(), kind, p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&p.Club, "club", "", "yacht club name")
	cmd.Flags().StringVar(&p.Regatta, "regatta", "", "regatta name")
	cmd.Flags().IntVar(&p.Year, "year", 0, "regatta year")
	cmd.Flags().StringVar(&p.Metric, "metric", "", "regatta_stats metric")
	cmd.Flags().StringVar(&dateRange, "range", "", "regatta_search date range: recent or upcoming")
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "maximum rows")
	return cmd
}

func newHashTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-token <token>",
		Short: "Print the bcrypt hash to use as ADMIN_TOKEN_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}
