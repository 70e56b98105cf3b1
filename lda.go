package trends

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TopicFitter is the statistical core of topic modeling: it fits a latent
// topic model over a document-term count matrix. Implementations are
// swappable without touching topic naming or member selection.
type TopicFitter interface {
	// Fit returns per-document topic weights (documents x k, rows summing
	// to 1) and per-topic term weights (k x terms).
	Fit(counts *mat.Dense, k int) (docTopic, topicTerm *mat.Dense, err error)
}

// GibbsLDA fits Latent Dirichlet Allocation by collapsed Gibbs sampling.
// The sampler is seeded, so a fit over the same matrix is reproducible.
type GibbsLDA struct {
	Iterations int
	Alpha      float64 // document-topic prior
	Beta       float64 // topic-term prior
	Seed       uint64
}

// NewGibbsLDA returns a sampler with the standard configuration.
func NewGibbsLDA() *GibbsLDA {
	return &GibbsLDA{
		Iterations: 200,
		Alpha:      0.1,
		Beta:       0.01,
		Seed:       42,
	}
}

// Fit runs the sampler. The count matrix must be documents x terms.
func (l *GibbsLDA) Fit(counts *mat.Dense, k int) (*mat.Dense, *mat.Dense, error) {
	if k < 1 {
		return nil, nil, fmt.Errorf("lda: invalid topic count %d", k)
	}
	docs, vocab := counts.Dims()

	// Expand the matrix into individual token occurrences.
	type token struct{ doc, term int }
	var tokens []token
	for d := 0; d < docs; d++ {
		for w := 0; w < vocab; w++ {
			n := int(counts.At(d, w))
			for range n {
				tokens = append(tokens, token{doc: d, term: w})
			}
		}
	}
	if len(tokens) == 0 {
		return nil, nil, ErrEmptyCorpus
	}

	rnd := rand.New(rand.NewPCG(l.Seed, l.Seed))

	// Count tables: topic per document, term per topic, totals per topic
	// and per document.
	docTopicN := make([][]int, docs)
	for d := range docTopicN {
		docTopicN[d] = make([]int, k)
	}
	topicTermN := make([][]int, k)
	for t := range topicTermN {
		topicTermN[t] = make([]int, vocab)
	}
	topicN := make([]int, k)
	docN := make([]int, docs)

	assign := make([]int, len(tokens))
	for i, tok := range tokens {
		t := rnd.IntN(k)
		assign[i] = t
		docTopicN[tok.doc][t]++
		topicTermN[t][tok.term]++
		topicN[t]++
		docN[tok.doc]++
	}

	iters := l.Iterations
	if iters <= 0 {
		iters = 200
	}
	vBeta := float64(vocab) * l.Beta
	weights := make([]float64, k)

	for range iters {
		for i, tok := range tokens {
			old := assign[i]
			docTopicN[tok.doc][old]--
			topicTermN[old][tok.term]--
			topicN[old]--

			for t := 0; t < k; t++ {
				weights[t] = (float64(docTopicN[tok.doc][t]) + l.Alpha) *
					(float64(topicTermN[t][tok.term]) + l.Beta) /
					(float64(topicN[t]) + vBeta)
			}
			next := sampleIndex(rnd, weights)

			assign[i] = next
			docTopicN[tok.doc][next]++
			topicTermN[next][tok.term]++
			topicN[next]++
		}
	}

	theta := mat.NewDense(docs, k, nil)
	kAlpha := float64(k) * l.Alpha
	for d := 0; d < docs; d++ {
		for t := 0; t < k; t++ {
			theta.Set(d, t, (float64(docTopicN[d][t])+l.Alpha)/(float64(docN[d])+kAlpha))
		}
	}

	phi := mat.NewDense(k, vocab, nil)
	for t := 0; t < k; t++ {
		for w := 0; w < vocab; w++ {
			phi.Set(t, w, (float64(topicTermN[t][w])+l.Beta)/(float64(topicN[t])+vBeta))
		}
	}

	return theta, phi, nil
}

// sampleIndex draws an index proportionally to the given weights.
func sampleIndex(rnd *rand.Rand, weights []float64) int {
	total := floats.Sum(weights)
	target := rnd.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}
