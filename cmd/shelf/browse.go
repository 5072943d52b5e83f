package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/textshelf/shelf"
	"github.com/textshelf/shelf/simulation"
	"github.com/textshelf/shelf/simulation/reporting"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse documents interactively through the cache",
	Long: `Open an interactive prompt over the corpus. Enter a document ID to
read it through the cache; repeated reads of the same ID show the cache
absorbing the slow-disk latency.

Commands at the prompt:
  1..N     read document N
  cached   list the currently cached document IDs
  stats    show hit/miss counters and cumulative read time
  -1       run the traffic simulation against this cache's policy
  0        quit`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cache, err := openCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	fmt.Printf("Browsing corpus at %s (policy=%s, capacity=%d)\n",
		dataDir, cache.Policy(), cache.Capacity())
	fmt.Println("Enter a document ID, 'cached', 'stats', -1 to simulate, 0 to quit.")

	return browseLoop(cmd.Context(), cache, os.Stdin, os.Stdout)
}

// browseLoop runs the interactive menu. Split out from runBrowse so tests
// can drive it with scripted input.
func browseLoop(ctx context.Context, cache *shelf.Cache, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "cached":
			keys := cache.Keys()
			if len(keys) == 0 {
				fmt.Fprintln(out, "cache is empty")
				continue
			}
			fmt.Fprintf(out, "cached documents: %v\n", keys)
			continue
		case "stats":
			printStats(out, cache.Stats())
			continue
		}

		id, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(out, "unrecognized input %q\n", line)
			continue
		}

		switch {
		case id == 0:
			printStats(out, cache.Stats())
			return nil
		case id == -1:
			summary, err := simulation.Run(ctx, cache, simulation.Options{})
			if err != nil {
				return err
			}
			report := reporting.NewMarkdownReport(out)
			report.WriteSummary(summary)
			// The simulation left the cache warm with its own traffic.
			cache.Reset(false)
		default:
			start := time.Now()
			content, err := cache.Get(ctx, id)
			elapsed := time.Since(start)
			if errors.Is(err, shelf.ErrNotFound) {
				fmt.Fprintf(out, "document %d not found\n", id)
				continue
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n", preview(content))
			fmt.Fprintf(out, "[%s]\n", elapsed.Round(time.Millisecond))
		}
	}
}

func printStats(out io.Writer, s shelf.Stats) {
	fmt.Fprintf(out, "requests: %d  hits: %d  misses: %d  hit rate: %.2f%%\n",
		s.Requests(), s.Hits, s.Misses, s.HitRate())
	fmt.Fprintf(out, "cached: %d  time reading from store: %s\n",
		s.Size, s.ReadTime.Round(time.Millisecond))
}

// preview truncates long documents for terminal display.
func preview(content []byte) string {
	const maxChars = 400
	if len(content) <= maxChars {
		return string(content)
	}
	return string(content[:maxChars]) + "..."
}
