package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "nexuscore",
		Short:   "NexusCore - creator community session backend",
		Version: Version,
	}
	rootCmd.PersistentFlags().String("config", "config/config.dev.yaml", "Path to configuration file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(registryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
