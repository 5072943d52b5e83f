package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/textshelf/shelf"
	"github.com/textshelf/shelf/simulation"
	"github.com/textshelf/shelf/simulation/reporting"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank every eviction policy on the same traffic",
	Long: `Run the simulation once per eviction policy, all runs sharing one
seed and identical parameters, and report the ranking by aggregate hit
rate.

Examples:
  # Compare all policies on random traffic
  shelf compare

  # Reproducible comparison
  shelf compare --seed 42 --users 5 --requests 500`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().Uint64Var(&seedFlag, "seed", 0, "seed for reproducible runs (random when omitted)")
	compareCmd.Flags().IntVar(&usersFlag, "users", simulation.DefaultUsers, "number of simulated users per pattern")
	compareCmd.Flags().IntVar(&requestsFlag, "requests", simulation.DefaultRequestsPerUser, "requests per user")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	opts, err := simulationOptions(cmd)
	if err != nil {
		return err
	}

	factory := func(name string) (*shelf.Cache, error) {
		dataOpt, err := shelf.WithDataDir(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening corpus at %q (run 'shelf build' first): %w", dataDir, err)
		}
		return shelf.New(
			dataOpt,
			shelf.WithPolicy(name),
			shelf.WithCapacity(capacity),
		)
	}

	comparison, err := simulation.Compare(cmd.Context(), factory, shelf.Policies(), opts)
	if err != nil {
		return err
	}

	users, requests := opts.Users, opts.RequestsPerUser
	if users <= 0 {
		users = simulation.DefaultUsers
	}
	if requests <= 0 {
		requests = simulation.DefaultRequestsPerUser
	}

	report := reporting.NewMarkdownReport(os.Stdout)
	report.WriteHeader("Eviction Policy Comparison")
	report.WriteMethodology(users, requests, comparison.Seed)
	for _, summary := range comparison.Summaries {
		report.WriteSummary(summary)
	}
	report.WriteComparison(comparison)
	report.WriteFooter()
	return nil
}
