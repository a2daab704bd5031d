package trends

import (
	"context"
	"fmt"
	"sort"

	"github.com/brianvoe/gofakeit/v7"
)

// DataSource supplies the full, unfiltered trend set for a location. The
// query engine filters and truncates; sources must return records in
// recency/popularity order because that ordering is preserved all the way to
// the client.
type DataSource interface {
	FetchTrends(ctx context.Context, location string) ([]TrendRecord, error)
}

func ptr(f float64) *float64 { return &f }

// staticTrends is the fixed demo data set. Useful offline and as a test
// fixture: every field is deterministic.
var staticTrends = []TrendRecord{
	{Name: "AI Revolution 2025", Platform: PlatformTwitter, Volume: 15420, Sentiment: ptr(0.8), Growth: "42.3%"},
	{Name: "Climate Tech Solutions", Platform: PlatformInstagram, Volume: 8930, Sentiment: ptr(0.6), Growth: "18.7%"},
	{Name: "Web3 Development", Platform: PlatformLinkedIn, Volume: 5670, Sentiment: ptr(0.4), Growth: "-5.2%"},
	{Name: "Sustainable Energy", Platform: PlatformTwitter, Volume: 12340, Sentiment: ptr(0.7), Growth: "31.0%"},
	{Name: "Remote Work Culture", Platform: PlatformAll, Volume: 18750, Sentiment: ptr(0.9), Growth: "64.8%"},
	{Name: "Digital Marketing", Platform: PlatformInstagram, Volume: 9870, Sentiment: ptr(0.5), Growth: "7.4%"},
	{Name: "Blockchain Innovation", Platform: PlatformTwitter, Volume: 7650, Sentiment: ptr(0.3), Growth: "-12.9%"},
}

// StaticSource serves the fixed demo trend set regardless of location.
type StaticSource struct{}

// NewStaticSource creates a data source over the built-in demo records.
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// FetchTrends returns a copy of the demo set so callers can't mutate the
// shared fixture.
func (s *StaticSource) FetchTrends(_ context.Context, _ string) ([]TrendRecord, error) {
	out := make([]TrendRecord, len(staticTrends))
	copy(out, staticTrends)
	return out, nil
}

// mockTopics seeds the randomized source with plausible trend names.
var mockTopics = []string{
	"Artificial Intelligence", "Machine Learning", "ChatGPT",
	"Social Media Trends", "Tech Innovation", "Digital Marketing",
	"Content Creation", "Viral Videos", "Meme Culture", "Web3",
}

var mockPlatforms = []Platform{
	PlatformTwitter, PlatformInstagram, PlatformLinkedIn,
	PlatformTikTok, PlatformFacebook, PlatformAll,
}

// MockSource produces randomized but realistic-looking trend records. It
// stands in for a real provider in demo deployments; randomness lives here,
// behind the DataSource interface, never inside the query engine.
type MockSource struct {
	faker *gofakeit.Faker
	count int
}

// NewMockSource creates a randomized source emitting count records per fetch.
// seed 0 derives a seed from the clock.
func NewMockSource(seed uint64, count int) *MockSource {
	if count <= 0 {
		count = 25
	}
	return &MockSource{
		faker: gofakeit.New(seed),
		count: count,
	}
}

// FetchTrends generates a fresh batch, sorted the way providers return
// trends: hottest first.
func (m *MockSource) FetchTrends(_ context.Context, _ string) ([]TrendRecord, error) {
	records := make([]TrendRecord, 0, m.count)
	for i := 0; i < m.count; i++ {
		sentiment := m.faker.Float64Range(-1, 1)
		records = append(records, TrendRecord{
			Name:      mockTopics[m.faker.IntRange(0, len(mockTopics)-1)],
			Platform:  mockPlatforms[m.faker.IntRange(0, len(mockPlatforms)-1)],
			Volume:    m.faker.IntRange(1000, 100000),
			Sentiment: ptr(roundTo(sentiment, 2)),
			Growth:    fmt.Sprintf("%.1f%%", m.faker.Float64Range(-100, 100)),
		})
	}
	// Providers hand back trends ordered by volume
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Volume > records[j].Volume
	})
	return records, nil
}

func roundTo(f float64, decimals int) float64 {
	shift := 1.0
	for i := 0; i < decimals; i++ {
		shift *= 10
	}
	if f >= 0 {
		return float64(int(f*shift+0.5)) / shift
	}
	return float64(int(f*shift-0.5)) / shift
}
