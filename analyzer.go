package trends

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// Analyzer runs the full analysis pipeline over a raw snapshot: enrichment,
// topic modeling, predictions, clustering, emerging-trend detection,
// category analysis, and recommendations.
type Analyzer struct {
	lex      *Lexicon
	enricher *Enricher
	modeler  *TopicModeler
	rec      *Recommender
	log      *zap.Logger
}

// NewAnalyzer creates an Analyzer with default settings.
func NewAnalyzer() *Analyzer {
	lex := DefaultLexicon()
	return &Analyzer{
		lex:      lex,
		enricher: NewEnricher(lex),
		modeler:  NewTopicModeler().WithLexicon(lex),
		rec:      NewRecommender().WithLexicon(lex),
		log:      zap.NewNop(),
	}
}

// WithLexicon overrides the keyword tables across every stage.
func (a *Analyzer) WithLexicon(lex *Lexicon) *Analyzer {
	a.lex = lex
	a.enricher = NewEnricher(lex)
	a.modeler.WithLexicon(lex)
	a.rec.WithLexicon(lex)
	return a
}

// WithTopicCount sets the requested number of latent topics.
func (a *Analyzer) WithTopicCount(k int) *Analyzer {
	a.modeler.WithTopicCount(k)
	return a
}

// WithFitter swaps the statistical topic model.
func (a *Analyzer) WithFitter(f TopicFitter) *Analyzer {
	a.modeler.WithFitter(f)
	return a
}

// WithRand sets the random source used for recommendation fit scores.
func (a *Analyzer) WithRand(rnd *rand.Rand) *Analyzer {
	a.rec.WithRand(rnd)
	return a
}

// WithLogger sets the logger.
func (a *Analyzer) WithLogger(log *zap.Logger) *Analyzer {
	a.log = log
	a.modeler.WithLogger(log)
	return a
}

// Analyze enriches the snapshot and derives every analytical product from
// it. The 7-day hashtag window drives topics, predictions, clusters,
// emerging trends, categories, and recommendations; the 30-day window
// serves as the prior period for momentum and prediction context.
func (a *Analyzer) Analyze(snap Snapshot) Report {
	hashtags7d := a.enricher.EnrichHashtags(snap.Hashtags7d, Timeframe7d)
	hashtags30d := a.enricher.EnrichHashtags(snap.Hashtags30d, Timeframe30d)
	hashtags7d = a.enricher.CrossPeriod(hashtags7d, hashtags30d)

	trending := a.enricher.EnrichSongs(snap.TrendingSongs, SongTrending)
	breakout := a.enricher.EnrichSongs(snap.BreakoutSongs, SongBreakout)

	topics := a.modeler.IdentifyTopics(hashtags7d)

	a.log.Info("analysis complete",
		zap.Int("hashtags_7d", len(hashtags7d)),
		zap.Int("hashtags_30d", len(hashtags30d)),
		zap.Int("topics", len(topics)))

	return Report{
		Hashtags7d:       hashtags7d,
		Hashtags30d:      hashtags30d,
		TrendingSongs:    trending,
		BreakoutSongs:    breakout,
		HashtagTopics:    topics,
		TrendPredictions: PredictTrends(hashtags7d, hashtags30d),
		HashtagClusters:  ClusterHashtags(hashtags7d),
		EmergingTrends:   DetectEmergingTrends(hashtags7d, breakout),
		CategoryAnalysis: AnalyzeCategories(hashtags7d),
		Recommendations:  a.rec.Generate(hashtags7d, trending, topics),
		LastUpdated:      snap.LastUpdated,
	}
}
