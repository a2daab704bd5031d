package trends

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/cache"
	"github.com/trendlens/backend/internal/logger"
	"github.com/trendlens/backend/internal/metrics"
)

// ErrNoKeywords is returned by AnalyzeKeywords when the keyword list is
// missing or empty.
var ErrNoKeywords = errors.New("keywords array is required")

const (
	// DefaultLimit is applied when the client omits the limit parameter.
	DefaultLimit = 20
	// MaxLimit caps the number of records a single query may return.
	MaxLimit = 100
	// DefaultLocation is applied when the client omits the location.
	DefaultLocation = "worldwide"

	// cacheTTL bounds how stale a trend response may be.
	cacheTTL = 300 * time.Second

	// cacheKeyVersion tags cached payloads with their schema generation, so a
	// record-shape change can't serve old entries for a full TTL.
	cacheKeyVersion = "v1"
)

// Service is the trend query and keyword analysis engine. It holds no
// mutable state of its own and is safe for concurrent use; the cache store is
// the only shared collaborator and handles its own synchronization.
type Service struct {
	store  cache.Store
	source DataSource
	scorer Scorer
}

// NewService builds the engine from its collaborators. All three are
// required.
func NewService(store cache.Store, source DataSource, scorer Scorer) *Service {
	return &Service{
		store:  store,
		source: source,
		scorer: scorer,
	}
}

// QueryResult is the outcome of a trend query. Cached reports whether the
// records came from the cache store.
type QueryResult struct {
	Records []TrendRecord
	Cached  bool
}

// CacheKey composes the cache key for a normalized query parameter tuple.
// Identical normalized parameters always map to the same key.
func CacheKey(platform Platform, location string, limit int) string {
	return fmt.Sprintf("trends:%s:%s:%s:%d", cacheKeyVersion, platform, location, limit)
}

// QueryTrends returns up to limit trend records matching the platform
// filter, reading through the cache. Cache failures degrade to a fresh fetch
// and are never surfaced to the caller.
//
// Concurrent identical queries against a cold key may each fetch and write
// independently; last writer wins and the values are equivalent, so there is
// no single-flight here.
func (s *Service) QueryTrends(ctx context.Context, platform, location string, limit int) (*QueryResult, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(platform)))
	if p == "" {
		p = PlatformAll
	}
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		loc = DefaultLocation
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if limit <= 0 {
		return &QueryResult{Records: []TrendRecord{}}, nil
	}

	// Unknown platforms match nothing. Short-circuiting here also keeps
	// garbage parameter values out of the cache keyspace.
	if !p.Valid() {
		return &QueryResult{Records: []TrendRecord{}}, nil
	}

	key := CacheKey(p, loc, limit)

	if records, ok := s.cacheGet(ctx, key); ok {
		metrics.RecordCacheHit("trends")
		return &QueryResult{Records: records, Cached: true}, nil
	}
	metrics.RecordCacheMiss("trends")

	full, err := s.source.FetchTrends(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trends: %w", err)
	}

	filtered := make([]TrendRecord, 0, limit)
	for _, record := range full {
		if record.Platform == p || p == PlatformAll || record.Platform == PlatformAll {
			filtered = append(filtered, record)
			if len(filtered) == limit {
				break
			}
		}
	}

	s.cacheSet(ctx, key, filtered)

	return &QueryResult{Records: filtered, Cached: false}, nil
}

// cacheGet reads and decodes a cached record list. Any failure, including a
// payload that no longer decodes, counts as a miss.
func (s *Service) cacheGet(ctx context.Context, key string) ([]TrendRecord, bool) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Log.Warn("cache read failed, computing fresh",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil, false
	}

	var records []TrendRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logger.Log.Warn("cache entry undecodable, computing fresh",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	return records, true
}

// cacheSet stores a record list. Failures are logged and swallowed; the
// response was already computed.
func (s *Service) cacheSet(ctx context.Context, key string, records []TrendRecord) {
	raw, err := json.Marshal(records)
	if err != nil {
		logger.Log.Warn("failed to encode trends for cache", zap.Error(err))
		return
	}
	if err := s.store.SetEx(ctx, key, string(raw), cacheTTL); err != nil {
		logger.Log.Warn("cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// AnalyzeKeywords scores each keyword independently, preserving input order.
// An empty keyword list is a validation error.
func (s *Service) AnalyzeKeywords(ctx context.Context, keywords []string, timeframe string) ([]KeywordAnalysis, error) {
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}
	if timeframe == "" {
		timeframe = "24h"
	}

	results := make([]KeywordAnalysis, 0, len(keywords))
	for _, keyword := range keywords {
		analysis, err := s.scorer.ScoreKeyword(ctx, keyword, timeframe)
		if err != nil {
			return nil, fmt.Errorf("failed to score keyword %q: %w", keyword, err)
		}
		results = append(results, analysis)
	}
	return results, nil
}

// predictionSet is the fixed forecast catalog served by the demo predictor.
var predictionSet = []Prediction{
	{Trend: "AI-Powered Content Creation", Probability: 0.87, Timeframe: "2-3 weeks", Category: "technology"},
	{Trend: "Sustainable Fashion Movement", Probability: 0.72, Timeframe: "1-2 months", Category: "lifestyle"},
	{Trend: "Remote Work Innovation", Probability: 0.65, Timeframe: "3-4 weeks", Category: "business"},
}

// predictionConfidence is the model confidence reported alongside the demo
// forecasts.
const predictionConfidence = 0.78

// Predictions returns trend forecasts for a category, "all" returning every
// category.
func (s *Service) Predictions(_ context.Context, category, _ string) ([]Prediction, float64) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == "all" {
		out := make([]Prediction, len(predictionSet))
		copy(out, predictionSet)
		return out, predictionConfidence
	}

	out := make([]Prediction, 0, len(predictionSet))
	for _, p := range predictionSet {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, predictionConfidence
}

// Historical returns a per-day series for one keyword covering the last days
// days.
func (s *Service) Historical(ctx context.Context, keyword string, days int) (*HistoricalSeries, error) {
	points, err := s.scorer.KeywordHistory(ctx, keyword, days)
	if err != nil {
		return nil, fmt.Errorf("failed to build history for %q: %w", keyword, err)
	}
	return &HistoricalSeries{
		Keyword: keyword,
		Period:  fmt.Sprintf("%d days", days),
		Data:    points,
	}, nil
}
