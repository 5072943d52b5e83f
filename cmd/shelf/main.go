// Package main provides the shelf CLI tool for building a document corpus
// and exploring cache behavior over it.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
