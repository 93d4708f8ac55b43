package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/venture-check/internal/workflow"
)

var batchCmd = &cobra.Command{
	Use:   "batch <ideas-file>",
	Short: "Validate several ideas from a file, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ideas, err := readIdeas(args[0])
		if err != nil {
			return err
		}

		engine, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}

		results, err := engine.RunBatch(cmd.Context(), workflow.BatchRequest{
			Ideas:              ideas,
			IncludeTrends:      !skipTrends,
			IncludeCompetitors: !skipCompetitors,
			IncludeCommunity:   !skipCommunity,
		})
		if err != nil {
			return err
		}

		return printJSON(results)
	},
}

// readIdeas loads one idea per line, skipping blanks and # comments.
func readIdeas(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open ideas file %s", path)
	}
	defer f.Close()

	var ideas []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ideas = append(ideas, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "read ideas file")
	}
	if len(ideas) == 0 {
		return nil, eris.Errorf("no ideas found in %s", path)
	}

	return ideas, nil
}

func init() {
	batchCmd.Flags().BoolVar(&skipTrends, "skip-trends", false, "skip the search trends source")
	batchCmd.Flags().BoolVar(&skipCompetitors, "skip-competitors", false, "skip the competitor search source")
	batchCmd.Flags().BoolVar(&skipCommunity, "skip-community", false, "skip the community sentiment source")
	rootCmd.AddCommand(batchCmd)
}
