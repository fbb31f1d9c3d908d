package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var identityFlag string

var rootCmd = &cobra.Command{
	Use:   "dverse",
	Short: "dverse identity CLI",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadDotenvBestEffort()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&identityFlag, "identity", "", "Identity name from config.yaml")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
