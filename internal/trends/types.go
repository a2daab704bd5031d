package trends

// Platform identifies a social network a trend was observed on. The zero-ish
// value "all" means the record is platform-agnostic.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformFacebook  Platform = "facebook"
	PlatformAll       Platform = "all"
)

// knownPlatforms is the closed set of platform values the query engine
// accepts. Anything else filters to an empty result.
var knownPlatforms = map[Platform]bool{
	PlatformTwitter:   true,
	PlatformInstagram: true,
	PlatformLinkedIn:  true,
	PlatformTikTok:    true,
	PlatformFacebook:  true,
	PlatformAll:       true,
}

// Valid reports whether p is one of the known platform values.
func (p Platform) Valid() bool {
	return knownPlatforms[p]
}

// TrendRecord is a point-in-time snapshot of a trending topic. Records are
// immutable once produced; volume, growth, and sentiment are never updated in
// place.
type TrendRecord struct {
	Name      string   `json:"name"`
	Platform  Platform `json:"platform"`
	Volume    int      `json:"volume"`
	Sentiment *float64 `json:"sentiment,omitempty"`
	Growth    string   `json:"growth"`
}

// KeywordAnalysis holds the per-keyword metrics returned by the analysis
// engine. Produced fresh per request, never persisted.
type KeywordAnalysis struct {
	Keyword        string     `json:"keyword"`
	Volume         int        `json:"volume"`
	Growth         string     `json:"growth"`
	Sentiment      float64    `json:"sentiment"`
	Platforms      []Platform `json:"platforms"`
	ViralPotential int        `json:"viral_potential"`
}

// Prediction is a forecast of an emerging trend.
type Prediction struct {
	Trend       string  `json:"trend"`
	Probability float64 `json:"probability"`
	Timeframe   string  `json:"timeframe"`
	Category    string  `json:"category"`
}

// HistoricalPoint is one day of keyword history.
type HistoricalPoint struct {
	Date      string  `json:"date"`
	Volume    int     `json:"volume"`
	Sentiment float64 `json:"sentiment"`
}

// HistoricalSeries is the response payload for keyword history.
type HistoricalSeries struct {
	Keyword string            `json:"keyword"`
	Period  string            `json:"period"`
	Data    []HistoricalPoint `json:"data"`
}
