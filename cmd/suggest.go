package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FranksOps/skim/internal/config"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <prefix>",
	Short: "Print query completions for a prefix",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		agg, cleanup, err := buildAggregator(cmd.Context(), cfg, newLogger())
		if err != nil {
			return err
		}
		defer cleanup()

		for _, s := range agg.Suggest(cmd.Context(), strings.Join(args, " ")) {
			fmt.Println(s)
		}
		return nil
	},
}
