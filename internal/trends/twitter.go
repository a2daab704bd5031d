package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// woeidByLocation maps the location names this API accepts to Twitter
// "where on earth" IDs. Unknown locations fall back to worldwide.
var woeidByLocation = map[string]string{
	"worldwide":      "1",
	"united states":  "23424977",
	"united kingdom": "23424975",
	"japan":          "23424856",
	"brazil":         "23424768",
	"india":          "23424848",
}

// TwitterSource fetches live trends from the Twitter trends/place endpoint.
// It only covers the twitter platform; other platforms come from whatever
// source it is composed with.
type TwitterSource struct {
	bearerToken string
	baseURL     string
	httpClient  *http.Client
}

// NewTwitterSource creates a Twitter-backed data source. The bearer token
// must be non-empty; callers decide whether to enable this source at all.
func NewTwitterSource(bearerToken string) *TwitterSource {
	return &TwitterSource{
		bearerToken: bearerToken,
		baseURL:     "https://api.twitter.com/1.1",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type twitterTrend struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Query       string `json:"query"`
	TweetVolume int    `json:"tweet_volume"`
}

type twitterTrendsResponse []struct {
	Trends    []twitterTrend `json:"trends"`
	AsOf      time.Time      `json:"as_of"`
	CreatedAt time.Time      `json:"created_at"`
}

// FetchTrends calls trends/place for the location's WOEID and adapts the
// payload into TrendRecords. Twitter reports no growth or sentiment, so those
// fields stay at their zero values.
func (t *TwitterSource) FetchTrends(ctx context.Context, location string) ([]TrendRecord, error) {
	if t.bearerToken == "" {
		return nil, fmt.Errorf("twitter bearer token not configured")
	}

	woeid, ok := woeidByLocation[location]
	if !ok {
		woeid = woeidByLocation["worldwide"]
	}

	url := fmt.Sprintf("%s/trends/place.json?id=%s", t.baseURL, woeid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Authorization", "Bearer "+t.bearerToken)
	req.Header.Add("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter API returned status code %d", resp.StatusCode)
	}

	var trendsResp twitterTrendsResponse
	if err := json.NewDecoder(resp.Body).Decode(&trendsResp); err != nil {
		return nil, err
	}
	if len(trendsResp) == 0 {
		return []TrendRecord{}, nil
	}

	records := make([]TrendRecord, 0, len(trendsResp[0].Trends))
	for _, tr := range trendsResp[0].Trends {
		volume := tr.TweetVolume
		if volume < 0 {
			volume = 0
		}
		records = append(records, TrendRecord{
			Name:     tr.Name,
			Platform: PlatformTwitter,
			Volume:   volume,
		})
	}
	return records, nil
}
