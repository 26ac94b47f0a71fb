package main

import (
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "peerflow",
	Short: "Group expense splitter with approval voting and debt simplification",
	Long: "PeerFlow tracks shared expenses in groups, derives who owes whom,\n" +
		"simplifies the debt graph into a minimal settlement plan, and runs\n" +
		"peer governance for chronically overdue members.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to TOML config file")
}
