// Command weatherctl normalizes raw forecast payloads from a file, stdin, or
// the upstream provider and prints the result.
//
// Usage:
//
//	weatherctl normalize testdata/forecast.json --location "Huế"
//	cat forecast.json | weatherctl normalize - --format text
//	weatherctl fetch "Đà Nẵng" --format text
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "weatherctl",
		Short:         "Normalize weather forecasts",
		Long:          "Reconciles raw forecast payloads into the normalized weather model and derives feels-like, UV, condition, and icon.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("format", "f", formatJSON, "output format (json, text)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newNormalizeCmd(), newFetchCmd())
	return root
}
