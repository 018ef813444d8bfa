package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "convert <input-path> <output-path>",
		Short: "Convert an org-mode timelog into one row per same-day clock span",
		Long: `Reads headings and CLOCK lines from an org-mode style timelog and writes
a table with the columns Activity, ActivityType, Start and End. Ranges that
cross midnight are split at the day boundary; a running clock is closed at
the current time.

Output is tab-separated unless the output file ends in .db or .sqlite.`,
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// usage only for argument errors
			cmd.SilenceUsage = true
			opts.input = args[0]
			opts.output = args[1]
			return run(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Vocabulary config file (TOML or YAML)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format (tsv/sqlite), default from file extension")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on clock lines with invalid timestamps instead of skipping them")
	cmd.Flags().BoolVar(&opts.splitEveryDay, "split-every-day", false, "Emit one span per day for ranges longer than two days")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every heading and running clock")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print the summary")

	return cmd
}
