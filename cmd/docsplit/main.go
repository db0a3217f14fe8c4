package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docsplit",
	Short: "docsplit inserts semantic split markers into .docx documents",
	Long: `docsplit analyzes .docx documents and rewrites them with <!--split-->
marker paragraphs at semantically chosen positions, keeping sentences,
headings, tables, and images intact.

Usage:
  docsplit process <path> [flags]`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
