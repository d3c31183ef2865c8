package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/FranksOps/skim/internal/config"
	"github.com/FranksOps/skim/internal/report"
	"github.com/FranksOps/skim/internal/storage"
)

var (
	flagFormat string
	flagSince  string
	flagLimit  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize archived search activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.ArchiveBackend == "none" {
			return fmt.Errorf("archiving is disabled, nothing to report on")
		}

		archive, err := openArchive(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer archive.Close()

		filter := storage.Filter{Limit: flagLimit}
		if flagSince != "" {
			d, err := time.ParseDuration(flagSince)
			if err != nil {
				return fmt.Errorf("invalid --since value: %w", err)
			}
			since := time.Now().Add(-d)
			filter.Since = &since
		}

		records, err := archive.Query(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("querying archive: %w", err)
		}

		summary := report.GenerateSummary(records)
		switch flagFormat {
		case "json":
			return report.WriteJSON(os.Stdout, summary)
		case "text":
			return report.WriteText(os.Stdout, summary)
		default:
			return fmt.Errorf("unknown format %q", flagFormat)
		}
	},
}

func init() {
	reportCmd.Flags().StringVar(&flagFormat, "format", "text", "output format (text or json)")
	reportCmd.Flags().StringVar(&flagSince, "since", "", "only include searches from the last duration (e.g. 24h)")
	reportCmd.Flags().IntVar(&flagLimit, "limit", 0, "cap the number of records considered (0 = all)")
}
