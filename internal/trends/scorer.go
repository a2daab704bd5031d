package trends

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Scorer produces per-keyword metrics for the analysis engine. Keywords are
// scored independently; implementations hold no per-request state.
type Scorer interface {
	ScoreKeyword(ctx context.Context, keyword, timeframe string) (KeywordAnalysis, error)
	KeywordHistory(ctx context.Context, keyword string, days int) ([]HistoricalPoint, error)
}

// MockScorer fabricates keyword metrics with gofakeit. Demo-mode stand-in for
// a real sentiment/volume provider.
type MockScorer struct {
	faker *gofakeit.Faker
}

// NewMockScorer creates a randomized scorer. seed 0 derives a seed from the
// clock.
func NewMockScorer(seed uint64) *MockScorer {
	return &MockScorer{faker: gofakeit.New(seed)}
}

// ScoreKeyword fabricates metrics within the documented ranges: volume >= 0,
// growth one decimal place, sentiment in [-1,1] at 2 decimals, viral
// potential in [0,100].
func (m *MockScorer) ScoreKeyword(_ context.Context, keyword, _ string) (KeywordAnalysis, error) {
	return KeywordAnalysis{
		Keyword:        keyword,
		Volume:         m.faker.IntRange(100, 1100),
		Growth:         fmt.Sprintf("%.1f%%", m.faker.Float64Range(-100, 100)),
		Sentiment:      roundTo(m.faker.Float64Range(-1, 1), 2),
		Platforms:      []Platform{PlatformTwitter, PlatformInstagram, PlatformLinkedIn},
		ViralPotential: m.faker.IntRange(0, 100),
	}, nil
}

// KeywordHistory fabricates one point per day, most recent last.
func (m *MockScorer) KeywordHistory(_ context.Context, _ string, days int) ([]HistoricalPoint, error) {
	points := make([]HistoricalPoint, 0, days)
	now := time.Now().UTC()
	for i := days - 1; i >= 0; i-- {
		points = append(points, HistoricalPoint{
			Date:      now.AddDate(0, 0, -i).Format("2006-01-02"),
			Volume:    m.faker.IntRange(1000, 50000),
			Sentiment: roundTo(m.faker.Float64Range(-1, 1), 2),
		})
	}
	return points, nil
}

// StaticScorer derives every metric from a hash of the keyword, so the same
// keyword always scores identically. Test fixture and offline mode.
type StaticScorer struct{}

// NewStaticScorer creates a deterministic scorer.
func NewStaticScorer() *StaticScorer {
	return &StaticScorer{}
}

func keywordSeed(keyword string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(keyword))
	return h.Sum64()
}

// ScoreKeyword maps the keyword hash into each metric's documented range.
func (s *StaticScorer) ScoreKeyword(_ context.Context, keyword, _ string) (KeywordAnalysis, error) {
	seed := keywordSeed(keyword)
	sentiment := roundTo(float64(seed%201)/100.0-1.0, 2) // [-1.00, 1.00]
	growth := float64(seed%2001)/10.0 - 100.0            // [-100.0, 100.0]
	return KeywordAnalysis{
		Keyword:        keyword,
		Volume:         int(seed % 50000),
		Growth:         fmt.Sprintf("%.1f%%", growth),
		Sentiment:      sentiment,
		Platforms:      []Platform{PlatformTwitter, PlatformInstagram, PlatformLinkedIn},
		ViralPotential: int(seed % 101),
	}, nil
}

// KeywordHistory derives a stable series from the keyword hash, most recent
// day last.
func (s *StaticScorer) KeywordHistory(_ context.Context, keyword string, days int) ([]HistoricalPoint, error) {
	seed := keywordSeed(keyword)
	points := make([]HistoricalPoint, 0, days)
	now := time.Now().UTC()
	for i := days - 1; i >= 0; i-- {
		daySeed := seed + uint64(i)*2654435761
		points = append(points, HistoricalPoint{
			Date:      now.AddDate(0, 0, -i).Format("2006-01-02"),
			Volume:    int(daySeed % 50000),
			Sentiment: roundTo(float64(daySeed%201)/100.0-1.0, 2),
		})
	}
	return points, nil
}
