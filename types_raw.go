package trends

import (
	"fmt"
	"strings"
)

// Raw Creative Center list API responses. Only fields we consume are mapped.

type rawPagination struct {
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

type hashtagListResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		List       []rawHashtagItem `json:"list"`
		Pagination rawPagination    `json:"pagination"`
	} `json:"data"`
}

type rawHashtagItem struct {
	HashtagName  string `json:"hashtag_name"`
	PublishCnt   int64  `json:"publish_cnt"`
	Rank         int    `json:"rank"`
	RankDiff     int    `json:"rank_diff"`
	RankDiffType int    `json:"rank_diff_type"`
}

type songListResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		List       []rawSongItem `json:"list"`
		Pagination rawPagination `json:"pagination"`
	} `json:"data"`
}

type rawSongItem struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Rank         int    `json:"rank"`
	RankDiff     int    `json:"rank_diff"`
	RankDiffType int    `json:"rank_diff_type"`
	PublishCnt   int64  `json:"publish_cnt"`
}

// rankDirection maps the API's rank_diff_type enum: 1 unchanged, 2 climbed,
// 3 dropped.
func rankDirection(diffType int) Direction {
	switch diffType {
	case 2:
		return DirectionUp
	case 3:
		return DirectionDown
	default:
		return DirectionStable
	}
}

func parseHashtagItem(raw rawHashtagItem) HashtagRecord {
	count := formatCount(raw.PublishCnt)
	return HashtagRecord{
		Hashtag:          "#" + strings.TrimPrefix(raw.HashtagName, "#"),
		Rank:             raw.Rank,
		PostCount:        count,
		NumericPostCount: float64(raw.PublishCnt),
		RankingDirection: rankDirection(raw.RankDiffType),
		RankingChange:    raw.RankDiff,
	}
}

func parseSongItem(raw rawSongItem) SongRecord {
	count := formatCount(raw.PublishCnt)
	return SongRecord{
		SongName:         raw.Title,
		Artist:           raw.Author,
		Rank:             raw.Rank,
		PostCount:        count,
		NumericPostCount: float64(raw.PublishCnt),
		RankingDirection: rankDirection(raw.RankDiffType),
		RankingChange:    raw.RankDiff,
	}
}

// formatCount renders a raw count the way the dashboard displays it:
// "1.2B", "34.5M", "890K", or the plain number below a thousand.
func formatCount(n int64) string {
	f := float64(n)
	switch {
	case f >= 1e9:
		return trimZero(fmt.Sprintf("%.1fB", f/1e9))
	case f >= 1e6:
		return trimZero(fmt.Sprintf("%.1fM", f/1e6))
	case f >= 1e3:
		return trimZero(fmt.Sprintf("%.1fK", f/1e3))
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.ReplaceAll(s, ".0", "")
}
