package trends

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlens/backend/internal/cache"
	"github.com/trendlens/backend/internal/logger"
)

func init() {
	logger.InitializeForTests()
}

// fixtureSource returns a fixed record set: three twitter records and two
// platform-agnostic ones, hottest first.
type fixtureSource struct {
	fetches int
}

func (f *fixtureSource) FetchTrends(_ context.Context, _ string) ([]TrendRecord, error) {
	f.fetches++
	return []TrendRecord{
		{Name: "tw-one", Platform: PlatformTwitter, Volume: 500, Growth: "10.0%"},
		{Name: "any-one", Platform: PlatformAll, Volume: 400, Growth: "5.0%"},
		{Name: "tw-two", Platform: PlatformTwitter, Volume: 300, Growth: "-2.0%"},
		{Name: "ig-one", Platform: PlatformInstagram, Volume: 200, Growth: "1.5%"},
		{Name: "any-two", Platform: PlatformAll, Volume: 100, Growth: "0.0%"},
		{Name: "tw-three", Platform: PlatformTwitter, Volume: 50, Growth: "3.3%"},
	}, nil
}

// brokenStore fails every operation, simulating an unreachable backend.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}
func (brokenStore) SetEx(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}
func (brokenStore) Del(context.Context, ...string) error { return errors.New("connection refused") }
func (brokenStore) Ping(context.Context) error           { return errors.New("connection refused") }
func (brokenStore) Close() error                         { return nil }

func newTestService(source DataSource) (*Service, *cache.MemoryStore) {
	store := cache.NewMemoryStore(0)
	return NewService(store, source, NewStaticScorer()), store
}

func TestQueryTrendsFilterAndLimit(t *testing.T) {
	svc, _ := newTestService(&fixtureSource{})

	result, err := svc.QueryTrends(context.Background(), "twitter", "worldwide", 2)
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.False(t, result.Cached)
	// Source order preserved: tw-one then any-one
	assert.Equal(t, "tw-one", result.Records[0].Name)
	assert.Equal(t, "any-one", result.Records[1].Name)
	for _, r := range result.Records {
		assert.True(t, r.Platform == PlatformTwitter || r.Platform == PlatformAll)
	}
}

func TestQueryTrendsAllPlatforms(t *testing.T) {
	svc, _ := newTestService(&fixtureSource{})

	result, err := svc.QueryTrends(context.Background(), "all", "worldwide", 20)
	require.NoError(t, err)
	assert.Len(t, result.Records, 6)
}

func TestQueryTrendsSecondCallIsCached(t *testing.T) {
	source := &fixtureSource{}
	svc, _ := newTestService(source)
	ctx := context.Background()

	first, err := svc.QueryTrends(ctx, "twitter", "worldwide", 3)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.QueryTrends(ctx, "twitter", "worldwide", 3)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, 1, source.fetches, "cache hit must not refetch")
}

func TestQueryTrendsNormalizationSharesCacheKey(t *testing.T) {
	source := &fixtureSource{}
	svc, _ := newTestService(source)
	ctx := context.Background()

	_, err := svc.QueryTrends(ctx, "Twitter", "Worldwide", 3)
	require.NoError(t, err)

	second, err := svc.QueryTrends(ctx, "twitter", "", 3)
	require.NoError(t, err)
	assert.True(t, second.Cached, "normalized parameters must hit the same key")
	assert.Equal(t, 1, source.fetches)
}

func TestQueryTrendsLimitZero(t *testing.T) {
	source := &fixtureSource{}
	svc, _ := newTestService(source)

	result, err := svc.QueryTrends(context.Background(), "twitter", "worldwide", 0)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, 0, source.fetches)
}

func TestQueryTrendsUnknownPlatform(t *testing.T) {
	svc, _ := newTestService(&fixtureSource{})

	result, err := svc.QueryTrends(context.Background(), "myspace", "worldwide", 10)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestQueryTrendsLimitCapped(t *testing.T) {
	svc, _ := newTestService(&fixtureSource{})

	result, err := svc.QueryTrends(context.Background(), "all", "worldwide", 5000)
	require.NoError(t, err)
	// Fixture has 6 records; the point is the call succeeds with the capped key
	assert.Len(t, result.Records, 6)

	_, err = svc.QueryTrends(context.Background(), "all", "worldwide", MaxLimit)
	require.NoError(t, err)
}

func TestQueryTrendsCacheFailSoft(t *testing.T) {
	source := &fixtureSource{}
	svc := NewService(brokenStore{}, source, NewStaticScorer())
	ctx := context.Background()

	first, err := svc.QueryTrends(ctx, "twitter", "worldwide", 2)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	require.Len(t, first.Records, 2)

	// Still works, still uncached: every call recomputes
	second, err := svc.QueryTrends(ctx, "twitter", "worldwide", 2)
	require.NoError(t, err)
	assert.False(t, second.Cached)
	assert.Equal(t, 2, source.fetches)
}

func TestCacheKeyComposition(t *testing.T) {
	assert.Equal(t, "trends:v1:twitter:worldwide:20", CacheKey(PlatformTwitter, "worldwide", 20))
	assert.Equal(t, CacheKey(PlatformAll, "worldwide", 20), CacheKey(PlatformAll, "worldwide", 20))
	assert.NotEqual(t, CacheKey(PlatformAll, "worldwide", 20), CacheKey(PlatformAll, "worldwide", 21))
}

func TestAnalyzeKeywordsValidation(t *testing.T) {
	svc, _ := newTestService(&fixtureSource{})

	_, err := svc.AnalyzeKeywords(context.Background(), nil, "24h")
	assert.ErrorIs(t, err, ErrNoKeywords)

	_, err = svc.AnalyzeKeywords(context.Background(), []string{}, "24h")
	assert.ErrorIs(t, err, ErrNoKeywords)
}

func TestAnalyzeKeywordsOrderAndRanges(t *testing.T) {
	svc, _ := newTestService(&fixtureSource{})

	results, err := svc.AnalyzeKeywords(context.Background(), []string{"ai", "ml"}, "24h")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "ai", results[0].Keyword)
	assert.Equal(t, "ml", results[1].Keyword)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Volume, 0)
		assert.GreaterOrEqual(t, r.Sentiment, -1.0)
		assert.LessOrEqual(t, r.Sentiment, 1.0)
		assert.GreaterOrEqual(t, r.ViralPotential, 0)
		assert.LessOrEqual(t, r.ViralPotential, 100)
		assert.NotEmpty(t, r.Platforms)
	}
}

func TestAnalyzeKeywordsDeterministic(t *testing.T) {
	svc, _ := newTestService(&fixtureSource{})
	ctx := context.Background()

	first, err := svc.AnalyzeKeywords(ctx, []string{"golang"}, "24h")
	require.NoError(t, err)
	second, err := svc.AnalyzeKeywords(ctx, []string{"golang"}, "24h")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPredictions(t *testing.T) {
	svc, _ := newTestService(&fixtureSource{})

	all, confidence := svc.Predictions(context.Background(), "all", "7d")
	assert.Len(t, all, 3)
	assert.InDelta(t, 0.78, confidence, 0.001)

	tech, _ := svc.Predictions(context.Background(), "technology", "7d")
	require.Len(t, tech, 1)
	assert.Equal(t, "technology", tech[0].Category)

	none, _ := svc.Predictions(context.Background(), "sports", "7d")
	assert.Empty(t, none)
}

func TestHistorical(t *testing.T) {
	svc, _ := newTestService(&fixtureSource{})

	series, err := svc.Historical(context.Background(), "ai", 7)
	require.NoError(t, err)
	assert.Equal(t, "ai", series.Keyword)
	assert.Equal(t, "7 days", series.Period)
	require.Len(t, series.Data, 7)
	for _, p := range series.Data {
		assert.GreaterOrEqual(t, p.Volume, 0)
		assert.GreaterOrEqual(t, p.Sentiment, -1.0)
		assert.LessOrEqual(t, p.Sentiment, 1.0)
	}
	// Most recent day last
	assert.Less(t, series.Data[0].Date, series.Data[6].Date)
}

func TestMockSourceShape(t *testing.T) {
	source := NewMockSource(42, 10)

	records, err := source.FetchTrends(context.Background(), "worldwide")
	require.NoError(t, err)
	require.Len(t, records, 10)

	for i, r := range records {
		assert.NotEmpty(t, r.Name)
		assert.True(t, r.Platform.Valid())
		assert.GreaterOrEqual(t, r.Volume, 0)
		if i > 0 {
			assert.LessOrEqual(t, r.Volume, records[i-1].Volume, "records ordered by volume")
		}
	}
}
