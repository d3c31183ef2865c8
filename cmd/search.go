package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/FranksOps/skim/internal/aggregate"
	"github.com/FranksOps/skim/internal/config"
	"github.com/FranksOps/skim/internal/metrics"
	"github.com/FranksOps/skim/internal/result"
)

var (
	flagPage    int
	flagGrouped bool
	flagJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a query against the configured backends and print ranked results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger := newLogger()
		ctx := cmd.Context()

		if cfg.MetricsPort > 0 {
			srv := metrics.Start(cfg.MetricsPort)
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Stop(stopCtx)
			}()
		}

		agg, cleanup, err := buildAggregator(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		query := strings.Join(args, " ")
		results := agg.Search(ctx, query, flagPage)

		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}

		if flagGrouped {
			printGrouped(results)
			return nil
		}
		printRanked(results)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&flagPage, "page", 1, "result page (1-based)")
	searchCmd.Flags().BoolVar(&flagGrouped, "grouped", false, "group results by category")
	searchCmd.Flags().BoolVar(&flagJSON, "json", false, "emit raw JSON")
}

func printRanked(results []result.SearchResult) {
	for i, r := range results {
		marker := fmt.Sprintf("%2d.", i+1)
		if r.Kind == result.KindInfoBox {
			marker = " ★ "
		}
		fmt.Printf("%s %s\n", marker, r.Title)
		fmt.Printf("    %s\n", r.DisplayURL)
		if r.Snippet != "" {
			fmt.Printf("    %s\n", r.Snippet)
		}
		meta := fmt.Sprintf("    [%s, score %d", r.Category, r.Score)
		if r.Date != "" {
			meta += ", " + r.Date
		}
		fmt.Println(meta + "]")
	}
}

func printGrouped(results []result.SearchResult) {
	grouped := aggregate.GroupByCategory(results)
	for _, cat := range result.AllCategories() {
		bucket := grouped[cat]
		if len(bucket) == 0 {
			continue
		}
		fmt.Printf("== %s (%d) ==\n", cat, len(bucket))
		for _, r := range bucket {
			fmt.Printf("  %s\n    %s\n", r.Title, r.DisplayURL)
		}
	}
}
