package trends

import "sort"

// Longevity labels per prediction status.
var longevityByStatus = map[PredictionStatus]string{
	StatusStronglyRising:    "2-3 weeks",
	StatusRising:            "1-2 weeks",
	StatusStable:            "5-7 days",
	StatusDeclining:         "2-4 days",
	StatusStronglyDeclining: "1-2 days",
}

// PredictTrends scores every current-period hashtag's likely near-future
// trajectory against the prior-period list (which may be empty) and returns
// the predictions sorted by score descending.
func PredictTrends(current, prior []HashtagRecord) []Prediction {
	priorByTag := make(map[string]HashtagRecord, len(prior))
	for _, h := range prior {
		priorByTag[h.Hashtag] = h
	}

	predictions := make([]Prediction, 0, len(current))
	for _, h := range current {
		stage := h.LifecycleStage
		if stage == "" {
			stage = StageStable
		}

		score := 50

		// Ranking direction and magnitude, capped at ±20.
		momentum := min(h.RankingChange*2, 20)
		switch h.RankingDirection {
		case DirectionUp:
			score += momentum
		case DirectionDown:
			score -= momentum
		}

		switch stage {
		case StageRising:
			score += 15
		case StageGrowing:
			score += 10
		case StageDeclining:
			score -= 15
		}

		if p, ok := priorByTag[h.Hashtag]; ok {
			if h.Rank < p.Rank {
				score += 10
			} else if h.Rank > p.Rank {
				score -= 5
			}
			switch h.PeriodMomentum {
			case MomentumAccelerating:
				score += 15
			case MomentumDecelerating:
				score -= 10
			}
		} else {
			// Slight bonus for being new to the rankings.
			score += 5
		}

		switch {
		case h.NumericPostCount > 1_000_000:
			score += 5
		case h.NumericPostCount > 100_000:
			score += 3
		}

		score = min(max(score, 5), 95)
		status := predictionStatus(score)

		predictions = append(predictions, Prediction{
			Hashtag:      h.Hashtag,
			CurrentRank:  h.Rank,
			CurrentStage: stage,
			Score:        score,
			Status:       status,
			Longevity:    longevityByStatus[status],
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Score > predictions[j].Score
	})
	return predictions
}

// predictionStatus maps a score to a status. The ranges overlap, so the
// checks must run in exactly this order: 60-69 is rising, not stable.
func predictionStatus(score int) PredictionStatus {
	switch {
	case score >= 70:
		return StatusStronglyRising
	case score >= 60:
		return StatusRising
	case score <= 30:
		return StatusStronglyDeclining
	case score <= 40:
		return StatusDeclining
	default:
		return StatusStable
	}
}
