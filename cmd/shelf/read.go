package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/textshelf/shelf"
)

var readCmd = &cobra.Command{
	Use:   "read [ID]",
	Short: "Read one document through the cache",
	Long: `Read a single document by ID through the cache and print its content.

The first read of an ID pays the simulated slow-disk latency; with
--timing the elapsed time makes the difference visible.

Examples:
  # Read document 42
  shelf read 42

  # Show how long the read took
  shelf read 42 --timing`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

var showTiming bool

func init() {
	readCmd.Flags().BoolVar(&showTiming, "timing", false, "show read timing")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("document ID must be a number, got %q", args[0])
	}

	cache, err := openCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	start := time.Now()
	content, err := cache.Get(context.Background(), id)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, shelf.ErrNotFound) {
			return fmt.Errorf("document %d not found", id)
		}
		return fmt.Errorf("reading document %d: %w", id, err)
	}

	fmt.Printf("%s\n", content)
	if showTiming {
		fmt.Printf("\nTime: %s\n", elapsed.Round(time.Millisecond))
	}
	return nil
}
