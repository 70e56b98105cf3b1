package trends

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Enricher attaches category tags, lifecycle stages, and numeric post
// counts to raw records. Enrichment overwrites these fields deterministically,
// so running it twice over already-enriched input is a no-op.
type Enricher struct {
	lex *Lexicon
}

// NewEnricher creates an Enricher. A nil lexicon selects the default tables.
func NewEnricher(lex *Lexicon) *Enricher {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Enricher{lex: lex}
}

// EnrichHashtags returns enriched copies of the given hashtag records,
// tagged with the timeframe. No records are dropped or added.
func (e *Enricher) EnrichHashtags(records []HashtagRecord, tf Timeframe) []HashtagRecord {
	out := make([]HashtagRecord, len(records))
	for i, h := range records {
		if h.RankingDirection == "" {
			h.RankingDirection = DirectionStable
		}
		if h.RankingChange < 0 {
			h.RankingChange = 0
		}
		if h.PostCount != "" {
			h.NumericPostCount = ParseCount(h.PostCount)
		}
		h.Timeframe = tf
		h.Categories = e.categorize(h.Hashtag)
		h.LifecycleStage = hashtagStage(h.RankingDirection, h.RankingChange)
		out[i] = h
	}
	return out
}

// EnrichSongs returns enriched copies of the given song records. Breakout
// songs are always staged rising regardless of their measured change.
func (e *Enricher) EnrichSongs(records []SongRecord, st SongType) []SongRecord {
	out := make([]SongRecord, len(records))
	for i, s := range records {
		if s.RankingDirection == "" {
			s.RankingDirection = DirectionStable
		}
		if s.RankingChange < 0 {
			s.RankingChange = 0
		}
		if s.PostCount != "" {
			s.NumericPostCount = ParseCount(s.PostCount)
		}
		s.Type = st
		s.Categories = []string{"entertainment", "music"}
		s.LifecycleStage = songStage(st, s.RankingDirection, s.RankingChange)
		out[i] = s
	}
	return out
}

// CrossPeriod computes period momentum and growth percent for the 7-day
// records against the 30-day records. Hashtags missing from the 30-day list
// are marked new. The input slice is not mutated.
func (e *Enricher) CrossPeriod(current, prior []HashtagRecord) []HashtagRecord {
	priorByTag := make(map[string]HashtagRecord, len(prior))
	for _, h := range prior {
		priorByTag[h.Hashtag] = h
	}

	out := make([]HashtagRecord, len(current))
	for i, h := range current {
		p, ok := priorByTag[h.Hashtag]
		if !ok {
			h.PeriodMomentum = MomentumNew
			h.PeriodGrowthPct = nil
			out[i] = h
			continue
		}

		switch {
		case h.Rank < p.Rank:
			h.PeriodMomentum = MomentumAccelerating
		case h.Rank > p.Rank:
			h.PeriodMomentum = MomentumDecelerating
		default:
			h.PeriodMomentum = MomentumSteady
		}

		h.PeriodGrowthPct = nil
		if h.NumericPostCount > 0 && p.NumericPostCount > 0 {
			growth := (h.NumericPostCount - p.NumericPostCount) / p.NumericPostCount * 100
			growth = math.Round(growth*100) / 100
			h.PeriodGrowthPct = &growth
		}
		out[i] = h
	}
	return out
}

// categorize tags hashtag text against the category keyword table. A
// hashtag can match several categories; zero matches yields "other".
func (e *Enricher) categorize(hashtag string) []string {
	text := normalizeTag(hashtag)

	var categories []string
	for _, rule := range e.lex.CategoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				categories = append(categories, rule.Name)
				break
			}
		}
	}
	if len(categories) == 0 {
		categories = []string{"other"}
	}
	return categories
}

// normalizeTag lowercases hashtag text, drops the # marker, and turns
// underscore/hyphen separators into spaces.
func normalizeTag(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "#", "")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

func hashtagStage(dir Direction, change int) Stage {
	switch {
	case dir == DirectionUp && change > 10:
		return StageRising
	case dir == DirectionUp && change > 5:
		return StageGrowing
	case dir == DirectionDown && change > 10:
		return StageDeclining
	default:
		return StageStable
	}
}

func songStage(st SongType, dir Direction, change int) Stage {
	if st == SongBreakout {
		return StageRising
	}
	switch {
	case dir == DirectionUp && change > 5:
		return StageRising
	case dir == DirectionDown && change > 5:
		return StageDeclining
	default:
		return StageStable
	}
}

var countNumberRe = regexp.MustCompile(`\d+\.?\d*`)

// ParseCount parses display counts like "1.2M" or "850K" into a number.
// Thousands separators are stripped, suffixes are case-insensitive, and
// anything unparsable comes back as 0.
func ParseCount(s string) float64 {
	if s == "" {
		return 0
	}
	u := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))

	multiplier := 1.0
	switch {
	case strings.Contains(u, "K"):
		multiplier = 1e3
	case strings.Contains(u, "M"):
		multiplier = 1e6
	case strings.Contains(u, "B"):
		multiplier = 1e9
	}

	numeric := countNumberRe.FindString(u)
	if numeric == "" {
		return 0
	}
	n, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0
	}
	return n * multiplier
}
