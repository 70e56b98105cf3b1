package trends

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

const (
	combinationBase = 70
	fitScoreMin     = 60
	fitScoreMax     = 95
	maxCombinations = 3
	maxStrategies   = 3
)

const genericApproach = "Focus on creating authentic, personality-driven content that aligns with current trends while staying true to your unique voice."

// Recommender synthesizes hashtag and song pairings and content strategies.
// The fit-score perturbation source is injectable so tests can fix it.
type Recommender struct {
	lex *Lexicon
	rnd *rand.Rand
}

// NewRecommender creates a Recommender with the default lexicon and a
// freshly seeded random source.
func NewRecommender() *Recommender {
	return &Recommender{
		lex: DefaultLexicon(),
		rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithLexicon overrides the keyword tables.
func (r *Recommender) WithLexicon(lex *Lexicon) *Recommender {
	r.lex = lex
	return r
}

// WithRand sets the random source used for the fit-score perturbation.
func (r *Recommender) WithRand(rnd *rand.Rand) *Recommender {
	r.rnd = rnd
	return r
}

// Generate builds the recommendation bundle from the enriched hashtags,
// trending songs, and discovered topics (which may be empty).
func (r *Recommender) Generate(hashtags []HashtagRecord, songs []SongRecord, topics []Topic) Recommendations {
	rec := Recommendations{
		TopCombinations:   []Combination{},
		ContentStrategies: []Strategy{},
		AudienceInsights:  r.lex.AudienceInsights(),
	}

	if len(hashtags) > 0 && len(songs) > 0 {
		topHashtags := hashtags
		if len(topHashtags) > 5 {
			topHashtags = topHashtags[:5]
		}
		topSongs := songs
		if len(topSongs) > 3 {
			topSongs = topSongs[:3]
		}

		combos := make([]Combination, 0, len(topHashtags))
		for i, h := range topHashtags {
			song := topSongs[i%len(topSongs)]
			combos = append(combos, Combination{
				Hashtag:  h.Hashtag,
				Song:     song.Label(),
				FitScore: r.combinationScore(h, song),
			})
		}
		sort.SliceStable(combos, func(i, j int) bool {
			return combos[i].FitScore > combos[j].FitScore
		})
		if len(combos) > maxCombinations {
			combos = combos[:maxCombinations]
		}
		rec.TopCombinations = combos
	}

	if len(topics) > 0 {
		limit := min(len(topics), maxStrategies)
		for _, t := range topics[:limit] {
			members := t.Hashtags
			if len(members) > 3 {
				members = members[:3]
			}
			tags := make([]string, len(members))
			for i, m := range members {
				tags[i] = m.Hashtag
			}
			rec.ContentStrategies = append(rec.ContentStrategies, Strategy{
				Topic:    t.Name,
				Hashtags: tags,
				Approach: r.approach(t.Name, t.Keywords),
			})
		}
	} else {
		rec.ContentStrategies = []Strategy{
			{
				Topic:    "Entertainment Content",
				Hashtags: hashtagTexts(hashtags, 0, 3),
				Approach: "Create short, engaging videos featuring trending sounds with a comedic twist.",
			},
			{
				Topic:    "Tutorial Content",
				Hashtags: hashtagTexts(hashtags, 3, 6),
				Approach: "Share quick, helpful tutorials that solve common problems or teach useful skills.",
			},
		}
	}

	return rec
}

// combinationScore estimates how well a hashtag and song fit together:
// a heuristic base, boosts when both are climbing or both rising, and a
// small random perturbation for variety, clamped to [60,95].
func (r *Recommender) combinationScore(h HashtagRecord, s SongRecord) int {
	score := combinationBase
	if h.RankingDirection == DirectionUp && s.RankingDirection == DirectionUp {
		score += 15
	}
	if h.LifecycleStage == StageRising && s.LifecycleStage == StageRising {
		score += 10
	}
	score += r.rnd.IntN(11) - 5
	return min(max(score, fitScoreMin), fitScoreMax)
}

// approach picks content-approach copy for a topic by matching fragments
// of its name, falling back to a template over its leading keywords.
func (r *Recommender) approach(topicName string, keywords []string) string {
	lower := strings.ToLower(topicName)
	for _, rule := range r.lex.Approaches {
		for _, trigger := range rule.Triggers {
			if strings.Contains(lower, trigger) {
				return rule.Text
			}
		}
	}
	if len(keywords) >= 2 {
		return fmt.Sprintf(
			"Create content focusing on %s and %s, with an emphasis on authentic, personal experiences that viewers can relate to.",
			keywords[0], keywords[1],
		)
	}
	return genericApproach
}

// hashtagTexts collects hashtag display text for positions [lo,hi),
// clamped to the slice. Always non-nil.
func hashtagTexts(hashtags []HashtagRecord, lo, hi int) []string {
	texts := []string{}
	if lo >= len(hashtags) {
		return texts
	}
	hi = min(hi, len(hashtags))
	for _, h := range hashtags[lo:hi] {
		texts = append(texts, h.Hashtag)
	}
	return texts
}
