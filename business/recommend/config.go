package recommend

import "time"

// Config carries the engine's blending weights and thresholds. The defaults
// are the empirically chosen constants the engine shipped with; they are kept
// overridable rather than hard-coded because nothing proves they are optimal.
type Config struct {
	// per-strategy blend weights, expected to sum to 1.0
	ContentWeight       float64
	CollaborativeWeight float64
	TrendingWeight      float64

	// a rating at or above this counts as "liked" for co-rating discovery
	HighRating float64

	// trending candidates below this review count are noise and dropped
	MinReviews int64

	// freshness window of the result cache
	CacheTTL time.Duration

	// trending window; zero means whole rating history
	TrendLookback time.Duration

	// each scorer is asked for CandidateMultiplier*k candidates to tolerate
	// cross-strategy overlap
	CandidateMultiplier int
}

const (
	defaultContentWeight       = 0.40
	defaultCollaborativeWeight = 0.35
	defaultTrendingWeight      = 0.25
	defaultHighRating          = 4.0
	defaultMinReviews          = 10
	defaultCacheTTL            = time.Hour
	defaultTrendLookback       = 30 * 24 * time.Hour
	defaultCandidateMultiplier = 2
	defaultK                   = 4
)

func DefaultConfig() Config {
	return Config{
		ContentWeight:       defaultContentWeight,
		CollaborativeWeight: defaultCollaborativeWeight,
		TrendingWeight:      defaultTrendingWeight,
		HighRating:          defaultHighRating,
		MinReviews:          defaultMinReviews,
		CacheTTL:            defaultCacheTTL,
		TrendLookback:       defaultTrendLookback,
		CandidateMultiplier: defaultCandidateMultiplier,
	}
}

// normalized backfills zero-valued knobs so a partially filled Config still
// behaves.
func (c Config) normalized() Config {
	if c.ContentWeight == 0 && c.CollaborativeWeight == 0 && c.TrendingWeight == 0 {
		c.ContentWeight = defaultContentWeight
		c.CollaborativeWeight = defaultCollaborativeWeight
		c.TrendingWeight = defaultTrendingWeight
	}
	if c.HighRating == 0 {
		c.HighRating = defaultHighRating
	}
	if c.MinReviews == 0 {
		c.MinReviews = defaultMinReviews
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaultCacheTTL
	}
	if c.CandidateMultiplier <= 0 {
		c.CandidateMultiplier = defaultCandidateMultiplier
	}
	return c
}
