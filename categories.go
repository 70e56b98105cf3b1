package trends

import (
	"math"
	"sort"
)

// AnalyzeCategories computes the category distribution over the hashtag
// list, sorted by count descending. Percentages are taken over total tag
// assignments: a multi-category hashtag counts once per category, so the
// percentages can legitimately sum past 100.
func AnalyzeCategories(hashtags []HashtagRecord) []CategoryStat {
	stats := make([]CategoryStat, 0)
	if len(hashtags) == 0 {
		return stats
	}

	counts := make(map[string]int)
	var order []string
	for _, h := range hashtags {
		categories := h.Categories
		if len(categories) == 0 {
			categories = []string{"other"}
		}
		for _, c := range categories {
			if counts[c] == 0 {
				order = append(order, c)
			}
			counts[c]++
		}
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	for _, name := range order {
		count := counts[name]
		pct := math.Round(float64(count)/float64(total)*1000) / 10

		var inCategory []HashtagRecord
		for _, h := range hashtags {
			for _, c := range h.Categories {
				if c == name {
					inCategory = append(inCategory, h)
					break
				}
			}
		}
		sort.SliceStable(inCategory, func(i, j int) bool {
			return inCategory[i].Rank < inCategory[j].Rank
		})
		if len(inCategory) > 3 {
			inCategory = inCategory[:3]
		}

		top := make([]CategoryHashtag, len(inCategory))
		for i, h := range inCategory {
			top[i] = CategoryHashtag{Hashtag: h.Hashtag, Rank: h.Rank}
		}

		stats = append(stats, CategoryStat{
			Name:        name,
			Count:       count,
			Percentage:  pct,
			TopHashtags: top,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}
