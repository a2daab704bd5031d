package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Query trend data",
	Long:  "Commands for fetching real-time trends and analyzing keywords",
}

var trendsRealtimeCmd = &cobra.Command{
	Use:   "realtime",
	Short: "Fetch real-time trending topics",
	Long: `Fetch real-time trending topics, optionally filtered by platform.

Examples:
  trendlens trends realtime
  trendlens trends realtime --platform twitter --limit 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, _ := cmd.Flags().GetString("platform")
		location, _ := cmd.Flags().GetString("location")
		limit, _ := cmd.Flags().GetInt("limit")
		return fetchRealtimeTrends(platform, location, limit)
	},
}

var trendsAnalyzeCmd = &cobra.Command{
	Use:   "analyze <keyword> [keyword...]",
	Short: "Analyze keywords for volume, growth, and sentiment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timeframe, _ := cmd.Flags().GetString("timeframe")
		return analyzeKeywords(args, timeframe)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API health",
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkHealth()
	},
}

func init() {
	trendsRealtimeCmd.Flags().String("platform", "all", "Platform filter (twitter, instagram, linkedin, tiktok, facebook, all)")
	trendsRealtimeCmd.Flags().String("location", "worldwide", "Location filter")
	trendsRealtimeCmd.Flags().Int("limit", 20, "Maximum number of trends")
	trendsAnalyzeCmd.Flags().String("timeframe", "24h", "Analysis timeframe")

	trendsCmd.AddCommand(trendsRealtimeCmd)
	trendsCmd.AddCommand(trendsAnalyzeCmd)
}

func fetchRealtimeTrends(platform, location string, limit int) error {
	params := url.Values{}
	params.Set("platform", platform)
	params.Set("location", location)
	params.Set("limit", strconv.Itoa(limit))

	result, err := apiGet("/api/trends/realtime?" + params.Encode())
	if err != nil {
		return err
	}

	if output == "json" {
		return printJSON(result)
	}

	data, _ := result["data"].([]interface{})
	cached, _ := result["cached"].(bool)
	fmt.Printf("%d trends (cached=%v)\n", len(data), cached)
	for _, item := range data {
		trend, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Printf("  %-30v %-10v volume=%v growth=%v\n",
			trend["name"], trend["platform"], trend["volume"], trend["growth"])
	}
	return nil
}

func analyzeKeywords(keywords []string, timeframe string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"keywords":  keywords,
		"timeframe": timeframe,
	})
	if err != nil {
		return err
	}

	result, err := apiPost("/api/trends/analyze", payload)
	if err != nil {
		return err
	}

	if output == "json" {
		return printJSON(result)
	}

	data, _ := result["data"].([]interface{})
	for _, item := range data {
		a, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Printf("  %-20v volume=%v growth=%v sentiment=%v viral=%v\n",
			a["keyword"], a["volume"], a["growth"], a["sentiment"], a["viral_potential"])
	}
	return nil
}

func checkHealth() error {
	result, err := apiGet("/health")
	if err != nil {
		return err
	}
	if output == "json" {
		return printJSON(result)
	}
	fmt.Printf("status=%v environment=%v\n", result["status"], result["environment"])
	return nil
}

func apiGet(path string) (map[string]interface{}, error) {
	req, err := http.NewRequest("GET", apiURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return doRequest(req)
}

func apiPost(path string, payload []byte) (map[string]interface{}, error) {
	req, err := http.NewRequest("POST", apiURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return doRequest(req)
}

func doRequest(req *http.Request) (map[string]interface{}, error) {
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg, ok := result["error"].(string); ok {
			return nil, fmt.Errorf("API error: %s", msg)
		}
		return nil, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	return result, nil
}

func printJSON(result map[string]interface{}) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
