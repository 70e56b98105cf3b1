package trends

import "sort"

// DetectEmergingTrends flags high-confidence breakout candidates: hashtags
// climbing fast or accelerating across periods, plus every breakout song.
// The combined list is sorted by confidence descending.
func DetectEmergingTrends(hashtags []HashtagRecord, breakoutSongs []SongRecord) []EmergingTrend {
	emerging := make([]EmergingTrend, 0)

	for _, h := range hashtags {
		climbing := h.RankingDirection == DirectionUp && h.RankingChange > 8
		if !climbing && h.PeriodMomentum != MomentumAccelerating {
			continue
		}

		categories := h.Categories
		if len(categories) == 0 {
			categories = []string{"other"}
		}
		emerging = append(emerging, EmergingTrend{
			Type:       "hashtag",
			Item:       h.Hashtag,
			Confidence: min(95, 50+h.RankingChange*3),
			Categories: categories,
			PostCount:  displayCount(h.PostCount),
		})
	}

	for _, s := range breakoutSongs {
		emerging = append(emerging, EmergingTrend{
			Type:       "song",
			Item:       s.Label(),
			Confidence: 90,
			Categories: []string{"entertainment", "music"},
			PostCount:  displayCount(s.PostCount),
		})
	}

	sort.SliceStable(emerging, func(i, j int) bool {
		return emerging[i].Confidence > emerging[j].Confidence
	})
	return emerging
}

func displayCount(raw string) string {
	if raw == "" {
		return "N/A"
	}
	return raw
}
