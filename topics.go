package trends

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	defaultTopicCount = 5
	// Minimum corpus size for meaningful topics.
	minCorpusSize = 5
	// Membership weight below which a document is not attached to a topic.
	memberThreshold = 0.2
	// Documents considered per topic when attaching members.
	membersPerTopic = 5
	// Top weighted terms extracted per topic.
	termsPerTopic = 10
)

// TopicModeler clusters hashtag text into named latent topics. Any failure
// inside the statistical fit degrades to a fixed default topic set; the
// modeler never fails.
type TopicModeler struct {
	lex       *Lexicon
	fitter    TopicFitter
	numTopics int
	log       *zap.Logger
}

// NewTopicModeler creates a modeler with the default lexicon, topic count,
// and Gibbs-sampling fitter.
func NewTopicModeler() *TopicModeler {
	return &TopicModeler{
		lex:       DefaultLexicon(),
		fitter:    NewGibbsLDA(),
		numTopics: defaultTopicCount,
		log:       zap.NewNop(),
	}
}

// WithLexicon overrides the keyword tables.
func (m *TopicModeler) WithLexicon(lex *Lexicon) *TopicModeler {
	m.lex = lex
	return m
}

// WithTopicCount sets the requested number of topics.
func (m *TopicModeler) WithTopicCount(k int) *TopicModeler {
	if k > 0 {
		m.numTopics = k
	}
	return m
}

// WithFitter swaps the statistical topic model.
func (m *TopicModeler) WithFitter(f TopicFitter) *TopicModeler {
	m.fitter = f
	return m
}

// WithLogger sets the logger.
func (m *TopicModeler) WithLogger(log *zap.Logger) *TopicModeler {
	m.log = log
	return m
}

// IdentifyTopics discovers latent topics in the hashtag corpus and returns
// them sorted by strength descending. The result is never empty: small or
// degenerate corpora and modeling failures all yield the default topic set.
func (m *TopicModeler) IdentifyTopics(hashtags []HashtagRecord) (topics []Topic) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn("topic modeling failed, using defaults", zap.Any("cause", r))
			topics = m.lex.DefaultTopics()
		}
	}()

	if len(hashtags) < minCorpusSize {
		return m.lex.DefaultTopics()
	}

	corpus := make([]string, len(hashtags))
	for i, h := range hashtags {
		corpus[i] = normalizeTag(h.Hashtag)
	}

	// Ignore rare and near-universal terms; relax the bounds for small
	// corpora so a handful of hashtags can still form a vocabulary.
	minDF, maxDF := 2, 0.9
	if len(corpus) < 10 {
		minDF, maxDF = 1, 0.95
	}
	dtm := buildDocTermMatrix(corpus, m.lex.Stopwords, minDF, maxDF)
	if dtm.sum() == 0 {
		return m.lex.DefaultTopics()
	}

	k := min(m.numTopics, len(corpus)/2+1)
	theta, phi, err := m.fitter.Fit(dtm.counts, k)
	if err != nil {
		m.log.Warn("topic fit failed, using defaults", zap.Error(err))
		return m.lex.DefaultTopics()
	}

	for topicIdx := 0; topicIdx < k; topicIdx++ {
		termWeights := mat.Row(nil, topicIdx, phi)
		topWords := topTerms(dtm.terms, termWeights, termsPerTopic)
		name := m.topicName(topWords)

		members := topicMembers(hashtags, theta, topicIdx)
		if len(members) == 0 {
			continue
		}

		scores := make([]float64, len(members))
		for i, mem := range members {
			scores[i] = mem.Score
		}

		keywords := topWords
		if len(keywords) > 5 {
			keywords = keywords[:5]
		}
		topics = append(topics, Topic{
			ID:       fmt.Sprintf("topic_%d", topicIdx+1),
			Name:     name,
			Keywords: keywords,
			Hashtags: members,
			Strength: stat.Mean(scores, nil),
		})
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Strength > topics[j].Strength
	})

	if len(topics) == 0 {
		return m.lex.DefaultTopics()
	}
	return topics
}

// topicMembers attaches the documents most associated with a topic: the
// top few by membership weight, keeping only significant matches.
func topicMembers(hashtags []HashtagRecord, theta *mat.Dense, topicIdx int) []TopicMember {
	docs, _ := theta.Dims()
	order := make([]int, docs)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return theta.At(order[a], topicIdx) > theta.At(order[b], topicIdx)
	})
	if len(order) > membersPerTopic {
		order = order[:membersPerTopic]
	}

	var members []TopicMember
	for _, doc := range order {
		weight := theta.At(doc, topicIdx)
		if weight <= memberThreshold {
			continue
		}
		members = append(members, TopicMember{
			Hashtag: hashtags[doc].Hashtag,
			Rank:    hashtags[doc].Rank,
			Score:   weight,
		})
	}
	return members
}

// topTerms returns the n highest-weighted terms.
func topTerms(terms []string, weights []float64, n int) []string {
	order := make([]int, len(terms))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]
	})
	if len(order) > n {
		order = order[:n]
	}
	top := make([]string, len(order))
	for i, idx := range order {
		top[i] = terms[idx]
	}
	return top
}

// topicName derives a readable topic name from its top terms by matching
// the first three against the topic keyword table; first match wins.
func (m *TopicModeler) topicName(topWords []string) string {
	head := topWords
	if len(head) > 3 {
		head = head[:3]
	}
	for _, rule := range m.lex.TopicRules {
		for _, word := range head {
			for _, kw := range rule.Keywords {
				if word == kw {
					return capitalize(rule.Name) + " Content"
				}
			}
		}
	}
	if len(topWords) > 0 {
		return capitalize(topWords[0]) + "-Based Content"
	}
	return "Misc Content"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
