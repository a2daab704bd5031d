package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	authToken string
	apiURL    = "http://localhost:8000"
	output    = "text" // "text" or "json"
)

var rootCmd = &cobra.Command{
	Use:   "trendlens",
	Short: "TrendLens CLI - Query the TrendLens API from the command line",
	Long: `TrendLens CLI provides command-line access to the TrendLens API.
Fetch real-time trends, analyze keywords, and check service health.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if authToken == "" {
			authToken = os.Getenv("TRENDLENS_TOKEN")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Authentication token (defaults to TRENDLENS_TOKEN env var)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiURL, "API server URL")
	rootCmd.PersistentFlags().StringVar(&output, "output", output, "Output format: text or json")

	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
