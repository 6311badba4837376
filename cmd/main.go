package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trading-journal",
	Short: "A CLI for the Trading Journal services",
	Long: `Trading Journal is a backend for logging trades, reviewing performance and competing with other traders.
Run each service through its own binary: api-service, worker-service and migrate.`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
