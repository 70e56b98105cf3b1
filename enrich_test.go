package trends

import (
	"reflect"
	"testing"
)

func TestParseCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"1.2M", 1_200_000},
		{"850K", 850_000},
		{"2.5B", 2_500_000_000},
		{"1,234", 1234},
		{"42", 42},
		{"3.4m", 3_400_000},
		{" 17k ", 17_000},
		{"", 0},
		{"N/A", 0},
		{"views", 0},
	}
	for _, tt := range tests {
		if got := ParseCount(tt.in); got != tt.want {
			t.Errorf("ParseCount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnrichHashtags(t *testing.T) {
	t.Parallel()

	e := NewEnricher(nil)
	in := []HashtagRecord{
		{Hashtag: "#dancechallenge", Rank: 1, PostCount: "1.2M", RankingDirection: DirectionUp, RankingChange: 12},
		{Hashtag: "#recipeoftheday", Rank: 2, PostCount: "850K", RankingDirection: DirectionUp, RankingChange: 7},
		{Hashtag: "#zzqxv", Rank: 3, RankingChange: -4},
	}
	out := e.EnrichHashtags(in, Timeframe7d)

	if len(out) != 3 {
		t.Fatalf("got %d records, want 3", len(out))
	}

	first := out[0]
	if first.Timeframe != Timeframe7d {
		t.Errorf("timeframe = %q, want %q", first.Timeframe, Timeframe7d)
	}
	if first.NumericPostCount != 1_200_000 {
		t.Errorf("numeric post count = %v, want 1200000", first.NumericPostCount)
	}
	if first.LifecycleStage != StageRising {
		t.Errorf("stage = %q, want rising", first.LifecycleStage)
	}
	if !reflect.DeepEqual(first.Categories, []string{"entertainment"}) {
		t.Errorf("categories = %v, want [entertainment]", first.Categories)
	}

	if out[1].LifecycleStage != StageGrowing {
		t.Errorf("stage = %q, want growing", out[1].LifecycleStage)
	}
	if !reflect.DeepEqual(out[1].Categories, []string{"food"}) {
		t.Errorf("categories = %v, want [food]", out[1].Categories)
	}

	third := out[2]
	if third.RankingDirection != DirectionStable {
		t.Errorf("direction = %q, want stable default", third.RankingDirection)
	}
	if third.RankingChange != 0 {
		t.Errorf("change = %d, want clamped to 0", third.RankingChange)
	}
	if !reflect.DeepEqual(third.Categories, []string{"other"}) {
		t.Errorf("categories = %v, want [other]", third.Categories)
	}

	// Input must not be mutated.
	if in[2].RankingDirection != "" {
		t.Error("enrichment mutated the input slice")
	}
}

func TestEnrichHashtagsIdempotent(t *testing.T) {
	t.Parallel()

	e := NewEnricher(nil)
	in := []HashtagRecord{
		{Hashtag: "#fitnessjourney", Rank: 4, PostCount: "2.1M", RankingDirection: DirectionUp, RankingChange: 11},
	}
	once := e.EnrichHashtags(in, Timeframe7d)
	twice := e.EnrichHashtags(once, Timeframe7d)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("double enrichment changed records:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestEnrichHashtagsMultiCategory(t *testing.T) {
	t.Parallel()

	e := NewEnricher(nil)
	out := e.EnrichHashtags([]HashtagRecord{{Hashtag: "#funnyfoodhacks", Rank: 1}}, Timeframe7d)
	want := []string{"entertainment", "food"}
	if !reflect.DeepEqual(out[0].Categories, want) {
		t.Errorf("categories = %v, want %v", out[0].Categories, want)
	}
}

func TestEnrichSongs(t *testing.T) {
	t.Parallel()

	e := NewEnricher(nil)
	trending := e.EnrichSongs([]SongRecord{
		{SongName: "Summer Nights", Artist: "DJ Wave", Rank: 1, PostCount: "500K", RankingDirection: DirectionUp, RankingChange: 8},
		{SongName: "Slow Fade", Rank: 2, RankingDirection: DirectionDown, RankingChange: 9},
	}, SongTrending)

	if trending[0].LifecycleStage != StageRising {
		t.Errorf("stage = %q, want rising", trending[0].LifecycleStage)
	}
	if trending[0].NumericPostCount != 500_000 {
		t.Errorf("numeric post count = %v, want 500000", trending[0].NumericPostCount)
	}
	if trending[1].LifecycleStage != StageDeclining {
		t.Errorf("stage = %q, want declining", trending[1].LifecycleStage)
	}
	if !reflect.DeepEqual(trending[0].Categories, []string{"entertainment", "music"}) {
		t.Errorf("categories = %v", trending[0].Categories)
	}

	breakout := e.EnrichSongs([]SongRecord{
		{SongName: "New Drop", Rank: 1, RankingDirection: DirectionDown, RankingChange: 20},
	}, SongBreakout)
	if breakout[0].LifecycleStage != StageRising {
		t.Errorf("breakout stage = %q, want rising regardless of direction", breakout[0].LifecycleStage)
	}
	if breakout[0].Type != SongBreakout {
		t.Errorf("type = %q, want breakout", breakout[0].Type)
	}
}

func TestCrossPeriod(t *testing.T) {
	t.Parallel()

	e := NewEnricher(nil)
	current := []HashtagRecord{
		{Hashtag: "#a", Rank: 1, NumericPostCount: 1500},
		{Hashtag: "#b", Rank: 5, NumericPostCount: 900},
		{Hashtag: "#c", Rank: 3, NumericPostCount: 700},
		{Hashtag: "#fresh", Rank: 4, NumericPostCount: 100},
	}
	prior := []HashtagRecord{
		{Hashtag: "#a", Rank: 3, NumericPostCount: 1000},
		{Hashtag: "#b", Rank: 2, NumericPostCount: 1000},
		{Hashtag: "#c", Rank: 3, NumericPostCount: 0},
	}

	out := e.CrossPeriod(current, prior)

	if out[0].PeriodMomentum != MomentumAccelerating {
		t.Errorf("#a momentum = %q, want accelerating", out[0].PeriodMomentum)
	}
	if out[0].PeriodGrowthPct == nil || *out[0].PeriodGrowthPct != 50.0 {
		t.Errorf("#a growth = %v, want 50.0", out[0].PeriodGrowthPct)
	}
	if out[1].PeriodMomentum != MomentumDecelerating {
		t.Errorf("#b momentum = %q, want decelerating", out[1].PeriodMomentum)
	}
	if out[2].PeriodMomentum != MomentumSteady {
		t.Errorf("#c momentum = %q, want steady", out[2].PeriodMomentum)
	}
	if out[2].PeriodGrowthPct != nil {
		t.Errorf("#c growth = %v, want nil with zero prior count", *out[2].PeriodGrowthPct)
	}
	if out[3].PeriodMomentum != MomentumNew {
		t.Errorf("#fresh momentum = %q, want new", out[3].PeriodMomentum)
	}
	if out[3].PeriodGrowthPct != nil {
		t.Error("#fresh growth should be nil")
	}
}

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"#DanceChallenge", "dancechallenge"},
		{"#morning_routine", "morning routine"},
		{"#get-ready-with-me", "get ready with me"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := normalizeTag(tt.in); got != tt.want {
			t.Errorf("normalizeTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
