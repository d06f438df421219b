package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joestump/vite/internal/build"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "vite",
		Short:   "A reversible URL and text shortener",
		Long:    "vite maps URLs and text to short identifiers and redirects them back.",
		Version: build.String(),
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDecodeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
