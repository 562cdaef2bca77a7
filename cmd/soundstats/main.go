// Command soundstats analyzes a Chinook-schema SQLite dataset and renders
// the results as tables and charts.
package main

import (
	"os"

	"github.com/soundstats-io/soundstats/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
