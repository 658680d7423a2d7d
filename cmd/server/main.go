// Package main is the entry point for the character API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "character-api",
	Short: "D&D 5e character API server",
	Long:  `character-api serves an HTTP/JSON interface for building, mutating, and leveling D&D 5e characters.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
