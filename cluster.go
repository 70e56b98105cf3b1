package trends

import (
	"fmt"
	"sort"
	"strings"
)

// ClusterHashtags groups hashtags by textual similarity. Hashtags are
// scanned in input order: each unassigned hashtag seeds a cluster and pulls
// in every later unassigned hashtag it matches. Only clusters with at least
// two members are kept, and a hashtag belongs to at most one cluster.
func ClusterHashtags(hashtags []HashtagRecord) []Cluster {
	clusters := make([]Cluster, 0)
	assigned := make(map[string]bool, len(hashtags))

	for i, seed := range hashtags {
		if assigned[seed.Hashtag] {
			continue
		}
		members := []HashtagRecord{seed}
		assigned[seed.Hashtag] = true

		for _, other := range hashtags[i+1:] {
			if assigned[other.Hashtag] {
				continue
			}
			if similarTags(seed.Hashtag, other.Hashtag) {
				members = append(members, other)
				assigned[other.Hashtag] = true
			}
		}

		if len(members) < 2 {
			continue
		}

		items := make([]ClusterItem, len(members))
		trendStrength := 0
		for j, m := range members {
			items[j] = ClusterItem{Hashtag: m.Hashtag, Rank: m.Rank}
			if m.LifecycleStage == StageRising || m.LifecycleStage == StageGrowing {
				trendStrength++
			}
		}

		clusters = append(clusters, Cluster{
			ID:            fmt.Sprintf("cluster_%d", len(clusters)),
			Items:         items,
			Size:          len(members),
			Categories:    topCategories(members, 2),
			TrendStrength: trendStrength,
		})
	}
	return clusters
}

// similarTags reports whether two hashtags are textually similar: one is a
// substring of the other, or their word sets overlap by more than half of
// the larger set.
func similarTags(a, b string) bool {
	ta := strings.ReplaceAll(strings.ToLower(a), "#", "")
	tb := strings.ReplaceAll(strings.ToLower(b), "#", "")

	if strings.Contains(ta, tb) || strings.Contains(tb, ta) {
		return true
	}

	wordsA := wordSet(ta)
	wordsB := wordSet(tb)
	common := 0
	for w := range wordsA {
		if wordsB[w] {
			common++
		}
	}
	if common == 0 {
		return false
	}
	return float64(common)/float64(max(len(wordsA), len(wordsB))) > 0.5
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// topCategories returns the n most frequent category tags across the
// members, ties broken by first appearance.
func topCategories(members []HashtagRecord, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, m := range members {
		for _, c := range m.Categories {
			if counts[c] == 0 {
				order = append(order, c)
			}
			counts[c]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}
