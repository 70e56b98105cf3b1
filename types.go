package trends

// Timeframe is the ranking window a hashtag list was collected for.
type Timeframe string

const (
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
)

// Direction is the movement of an item's rank since the previous ranking.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// Stage is the lifecycle stage assigned to a record during enrichment.
type Stage string

const (
	StageRising    Stage = "rising"
	StageGrowing   Stage = "growing"
	StageStable    Stage = "stable"
	StageDeclining Stage = "declining"
)

// Momentum compares a hashtag's 7-day rank against its 30-day rank.
type Momentum string

const (
	MomentumAccelerating Momentum = "accelerating"
	MomentumDecelerating Momentum = "decelerating"
	MomentumSteady       Momentum = "steady"
	MomentumNew          Momentum = "new"
)

// SongType distinguishes the two Creative Center song charts.
type SongType string

const (
	SongTrending SongType = "trending"
	SongBreakout SongType = "breakout"
)

// PredictionStatus is the predicted near-future trajectory of a hashtag.
type PredictionStatus string

const (
	StatusStronglyRising    PredictionStatus = "strongly_rising"
	StatusRising            PredictionStatus = "rising"
	StatusStable            PredictionStatus = "stable"
	StatusDeclining         PredictionStatus = "declining"
	StatusStronglyDeclining PredictionStatus = "strongly_declining"
)

// HashtagRecord is a ranked hashtag. The collector fills the raw fields
// (hashtag, rank, post_count, ranking_direction, ranking_change); enrichment
// fills the rest. JSON field names match the dashboard artifact format.
type HashtagRecord struct {
	Hashtag          string    `json:"hashtag"`
	Rank             int       `json:"rank"`
	PostCount        string    `json:"post_count,omitempty"`
	NumericPostCount float64   `json:"numeric_post_count"`
	Timeframe        Timeframe `json:"timeframe,omitempty"`
	RankingDirection Direction `json:"ranking_direction,omitempty"`
	RankingChange    int       `json:"ranking_change"`
	Categories       []string  `json:"categories,omitempty"`
	LifecycleStage   Stage     `json:"lifecycle_stage,omitempty"`
	PeriodMomentum   Momentum  `json:"period_momentum,omitempty"`
	PeriodGrowthPct  *float64  `json:"period_growth_pct,omitempty"`
}

// SongRecord is a ranked song from the trending or breakout chart.
type SongRecord struct {
	SongName         string    `json:"song_name"`
	Artist           string    `json:"artist,omitempty"`
	PostCount        string    `json:"post_count,omitempty"`
	NumericPostCount float64   `json:"numeric_post_count"`
	Rank             int       `json:"rank"`
	Type             SongType  `json:"type,omitempty"`
	RankingDirection Direction `json:"ranking_direction,omitempty"`
	RankingChange    int       `json:"ranking_change"`
	Categories       []string  `json:"categories,omitempty"`
	LifecycleStage   Stage     `json:"lifecycle_stage,omitempty"`
}

// Label formats the song for display as "name - artist".
func (s SongRecord) Label() string {
	artist := s.Artist
	if artist == "" {
		artist = "Unknown"
	}
	return s.SongName + " - " + artist
}

// Snapshot is one collection run: the raw input to analysis.
type Snapshot struct {
	Hashtags7d    []HashtagRecord `json:"hashtags_7d"`
	Hashtags30d   []HashtagRecord `json:"hashtags_30d"`
	TrendingSongs []SongRecord    `json:"trending_songs"`
	BreakoutSongs []SongRecord    `json:"breakout_songs"`
	LastUpdated   string          `json:"last_updated,omitempty"`
}

// TopicMember is a hashtag associated with a latent topic.
type TopicMember struct {
	Hashtag string  `json:"hashtag"`
	Rank    int     `json:"rank"`
	Score   float64 `json:"score"`
}

// Topic is a latent topic discovered over the hashtag corpus.
type Topic struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Keywords []string      `json:"keywords"`
	Hashtags []TopicMember `json:"hashtags"`
	Strength float64       `json:"strength"`
}

// Prediction scores a hashtag's likely near-future trajectory.
type Prediction struct {
	Hashtag      string           `json:"hashtag"`
	CurrentRank  int              `json:"current_rank"`
	CurrentStage Stage            `json:"current_stage"`
	Score        int              `json:"score"`
	Status       PredictionStatus `json:"status"`
	Longevity    string           `json:"longevity"`
}

// ClusterItem is one hashtag inside a similarity cluster.
type ClusterItem struct {
	Hashtag string `json:"hashtag"`
	Rank    int    `json:"rank"`
}

// Cluster groups textually similar hashtags. Clusters always have at least
// two members; singletons are dropped.
type Cluster struct {
	ID            string        `json:"id"`
	Items         []ClusterItem `json:"items"`
	Size          int           `json:"size"`
	Categories    []string      `json:"categories"`
	TrendStrength int           `json:"trend_strength"`
}

// EmergingTrend is a high-confidence breakout candidate.
type EmergingTrend struct {
	Type       string   `json:"type"` // "hashtag" or "song"
	Item       string   `json:"item"`
	Confidence int      `json:"confidence"`
	Categories []string `json:"categories"`
	PostCount  string   `json:"post_count"`
}

// CategoryHashtag is a top hashtag within a category.
type CategoryHashtag struct {
	Hashtag string `json:"hashtag"`
	Rank    int    `json:"rank"`
}

// CategoryStat is the distribution entry for one category.
type CategoryStat struct {
	Name        string            `json:"name"`
	Count       int               `json:"count"`
	Percentage  float64           `json:"percentage"`
	TopHashtags []CategoryHashtag `json:"top_hashtags"`
}

// Combination pairs a hashtag with a song and scores the fit.
type Combination struct {
	Hashtag  string `json:"hashtag"`
	Song     string `json:"song"`
	FitScore int    `json:"fit_score"`
}

// Strategy is a content strategy derived from a topic.
type Strategy struct {
	Topic    string   `json:"topic"`
	Hashtags []string `json:"hashtags"`
	Approach string   `json:"approach"`
}

// AudienceInsight is a static reference row for a content category.
type AudienceInsight struct {
	Category            string   `json:"category"`
	PrimaryDemographic  string   `json:"primary_demographic"`
	PeakEngagementTimes []string `json:"peak_engagement_times"`
	RetentionDrivers    string   `json:"retention_drivers"`
}

// Recommendations bundles the generated content recommendations.
type Recommendations struct {
	TopCombinations   []Combination     `json:"top_combinations"`
	ContentStrategies []Strategy        `json:"content_strategies"`
	AudienceInsights  []AudienceInsight `json:"audience_insights"`
}

// Report is the full analytical artifact produced from one snapshot. It
// carries the enriched input lists through alongside the derived artifacts
// so the dashboard needs a single file.
type Report struct {
	Hashtags7d       []HashtagRecord `json:"hashtags_7d"`
	Hashtags30d      []HashtagRecord `json:"hashtags_30d"`
	TrendingSongs    []SongRecord    `json:"trending_songs"`
	BreakoutSongs    []SongRecord    `json:"breakout_songs"`
	HashtagTopics    []Topic         `json:"hashtag_topics"`
	TrendPredictions []Prediction    `json:"trend_predictions"`
	Recommendations  Recommendations `json:"content_recommendations"`
	HashtagClusters  []Cluster       `json:"hashtag_clusters"`
	EmergingTrends   []EmergingTrend `json:"emerging_trends"`
	CategoryAnalysis []CategoryStat  `json:"category_analysis"`
	LastUpdated      string          `json:"last_updated,omitempty"`
}
