package trends

import (
	"math/rand/v2"
	"testing"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Hashtags7d: []HashtagRecord{
			{Hashtag: "#dance_moves", Rank: 1, PostCount: "1.2M", RankingDirection: DirectionUp, RankingChange: 12},
			{Hashtag: "#dance_floor", Rank: 2, PostCount: "900K", RankingDirection: DirectionUp, RankingChange: 6},
			{Hashtag: "#cooking_recipe", Rank: 3, PostCount: "850K"},
			{Hashtag: "#cooking_tips", Rank: 4, PostCount: "400K", RankingDirection: DirectionDown, RankingChange: 2},
			{Hashtag: "#travel_diary", Rank: 5, PostCount: "300K"},
			{Hashtag: "#fitness_goals", Rank: 6, PostCount: "250K", RankingDirection: DirectionUp, RankingChange: 9},
		},
		Hashtags30d: []HashtagRecord{
			{Hashtag: "#dance_moves", Rank: 4, PostCount: "1M"},
			{Hashtag: "#cooking_recipe", Rank: 2, PostCount: "800K"},
		},
		TrendingSongs: []SongRecord{
			{SongName: "Summer Nights", Artist: "DJ Wave", Rank: 1, PostCount: "500K", RankingDirection: DirectionUp, RankingChange: 8},
		},
		BreakoutSongs: []SongRecord{
			{SongName: "New Drop", Artist: "Fresh Act", Rank: 1, PostCount: "50K"},
		},
		LastUpdated: "2026-08-23 12:00:00",
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer().WithRand(rand.New(rand.NewPCG(7, 7)))
	report := a.Analyze(testSnapshot())

	if len(report.Hashtags7d) != 6 {
		t.Fatalf("got %d 7d hashtags, want 6", len(report.Hashtags7d))
	}
	first := report.Hashtags7d[0]
	if first.Timeframe != Timeframe7d || first.LifecycleStage != StageRising {
		t.Errorf("first hashtag not enriched: %+v", first)
	}
	if first.PeriodMomentum != MomentumAccelerating {
		t.Errorf("momentum = %q, want accelerating (rank 1 vs 4)", first.PeriodMomentum)
	}
	if report.Hashtags7d[4].PeriodMomentum != MomentumNew {
		t.Errorf("momentum = %q, want new for #travel_diary", report.Hashtags7d[4].PeriodMomentum)
	}

	if len(report.Hashtags30d) != 2 || report.Hashtags30d[0].Timeframe != Timeframe30d {
		t.Errorf("30d hashtags not enriched: %+v", report.Hashtags30d)
	}

	if report.BreakoutSongs[0].LifecycleStage != StageRising {
		t.Error("breakout song not staged rising")
	}

	if len(report.HashtagTopics) == 0 {
		t.Error("no topics in report")
	}
	if len(report.TrendPredictions) != 6 {
		t.Errorf("got %d predictions, want one per 7d hashtag", len(report.TrendPredictions))
	}
	if report.TrendPredictions[0].Hashtag != "#dance_moves" {
		t.Errorf("top prediction = %q, want the fast climber", report.TrendPredictions[0].Hashtag)
	}

	var foundRocket bool
	for _, e := range report.EmergingTrends {
		if e.Item == "#dance_moves" {
			foundRocket = true
		}
	}
	if !foundRocket {
		t.Error("fast climber missing from emerging trends")
	}

	if len(report.CategoryAnalysis) == 0 {
		t.Error("no category analysis")
	}
	if len(report.Recommendations.TopCombinations) == 0 {
		t.Error("no combinations despite hashtags and songs present")
	}
	if len(report.Recommendations.AudienceInsights) != 3 {
		t.Errorf("got %d audience insights", len(report.Recommendations.AudienceInsights))
	}

	if report.LastUpdated != "2026-08-23 12:00:00" {
		t.Errorf("last updated = %q", report.LastUpdated)
	}
}

func TestAnalyzeMomentumFlowsThrough(t *testing.T) {
	t.Parallel()

	// Climbing too slowly to qualify as emerging on rank change alone, so
	// only cross-period acceleration can carry it through.
	snap := Snapshot{
		Hashtags7d: []HashtagRecord{
			{Hashtag: "#slowclimb", Rank: 1, RankingDirection: DirectionUp, RankingChange: 2},
		},
		Hashtags30d: []HashtagRecord{
			{Hashtag: "#slowclimb", Rank: 5},
		},
	}
	report := NewAnalyzer().Analyze(snap)

	if got := report.Hashtags7d[0].PeriodMomentum; got != MomentumAccelerating {
		t.Fatalf("momentum = %q, want accelerating", got)
	}

	var found bool
	for _, e := range report.EmergingTrends {
		if e.Item == "#slowclimb" {
			found = true
		}
	}
	if !found {
		t.Error("accelerating hashtag missing from emerging trends")
	}

	// 50 + 4 direction + 10 rank gain + 15 accelerating = 79.
	if got := report.TrendPredictions[0].Score; got != 79 {
		t.Errorf("score = %d, want 79 with the acceleration bonus", got)
	}
}

func TestAnalyzeEmptySnapshot(t *testing.T) {
	t.Parallel()

	report := NewAnalyzer().Analyze(Snapshot{})

	if len(report.HashtagTopics) != 3 {
		t.Errorf("got %d topics, want 3 defaults on empty input", len(report.HashtagTopics))
	}
	if len(report.TrendPredictions) != 0 {
		t.Errorf("got %d predictions, want 0", len(report.TrendPredictions))
	}
	// Default topics feed the strategy generator, one per topic.
	if len(report.Recommendations.ContentStrategies) != 3 {
		t.Errorf("got %d strategies, want 3 from default topics", len(report.Recommendations.ContentStrategies))
	}
	if report.Recommendations.ContentStrategies[0].Topic != "Entertainment Content" {
		t.Errorf("first strategy = %q", report.Recommendations.ContentStrategies[0].Topic)
	}
	if report.EmergingTrends == nil || report.CategoryAnalysis == nil || report.HashtagClusters == nil {
		t.Error("derived slices should be empty, not nil")
	}
}
