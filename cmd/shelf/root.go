package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/textshelf/shelf"
)

var (
	// Global flags.
	dataDir    string
	policyName string
	capacity   int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Explore document caching over a deliberately slow store",
	Long: `Shelf builds a corpus of numbered text documents, serves them through
a simulated slow disk, and puts a small cache with interchangeable
eviction policies in front of it.

Examples:
  # Build a 100-document corpus from a local text file
  shelf build --source ./book.txt --output ./data

  # Read one document through the cache
  shelf read 42

  # Browse documents interactively
  shelf browse

  # Simulate synthetic user traffic against one policy
  shelf simulate --policy lfu --seed 42

  # Rank every policy on the same traffic
  shelf compare --seed 42`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "./data", "directory containing the document corpus")
	rootCmd.PersistentFlags().StringVarP(&policyName, "policy", "p", shelf.PolicyFIFO, "eviction policy: fifo, mru, lfu, lru")
	rootCmd.PersistentFlags().IntVarP(&capacity, "capacity", "c", shelf.DefaultCapacity, "maximum number of cached documents")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newLogger builds the CLI logger, honoring --verbose.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// openCache opens a cache over the corpus in --data-dir using the global
// policy and capacity flags.
func openCache() (*shelf.Cache, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	dataOpt, err := shelf.WithDataDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening corpus at %q (run 'shelf build' first): %w", dataDir, err)
	}

	return shelf.New(
		dataOpt,
		shelf.WithPolicy(policyName),
		shelf.WithCapacity(capacity),
		shelf.WithLogger(logger),
	)
}
