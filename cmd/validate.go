package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/venture-check/internal/workflow"
)

var (
	validateQuick   bool
	skipTrends      bool
	skipCompetitors bool
	skipCommunity   bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <idea>",
	Short: "Validate one startup idea",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}

		req := workflow.Request{
			Idea:               strings.Join(args, " "),
			IncludeTrends:      !skipTrends,
			IncludeCompetitors: !skipCompetitors,
			IncludeCommunity:   !skipCommunity,
		}

		var out any
		if validateQuick {
			out = engine.RunQuick(cmd.Context(), req)
		} else {
			out = engine.Run(cmd.Context(), req)
		}

		return printJSON(out)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	validateCmd.Flags().BoolVar(&validateQuick, "quick", false, "run the reduced quick assessment")
	validateCmd.Flags().BoolVar(&skipTrends, "skip-trends", false, "skip the search trends source")
	validateCmd.Flags().BoolVar(&skipCompetitors, "skip-competitors", false, "skip the competitor search source")
	validateCmd.Flags().BoolVar(&skipCommunity, "skip-community", false, "skip the community sentiment source")
	rootCmd.AddCommand(validateCmd)
}
