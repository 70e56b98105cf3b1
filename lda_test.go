package trends

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func testCounts() *mat.Dense {
	// Two clear term groups across six documents.
	return mat.NewDense(6, 4, []float64{
		3, 2, 0, 0,
		2, 3, 0, 0,
		4, 1, 0, 0,
		0, 0, 3, 2,
		0, 0, 2, 4,
		0, 0, 1, 3,
	})
}

func TestGibbsLDAShapes(t *testing.T) {
	t.Parallel()

	theta, phi, err := NewGibbsLDA().Fit(testCounts(), 2)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	docs, k := theta.Dims()
	if docs != 6 || k != 2 {
		t.Fatalf("theta dims = %dx%d, want 6x2", docs, k)
	}
	topics, vocab := phi.Dims()
	if topics != 2 || vocab != 4 {
		t.Fatalf("phi dims = %dx%d, want 2x4", topics, vocab)
	}

	for d := 0; d < docs; d++ {
		sum := 0.0
		for t2 := 0; t2 < k; t2++ {
			sum += theta.At(d, t2)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("theta row %d sums to %v, want 1", d, sum)
		}
	}
	for t2 := 0; t2 < topics; t2++ {
		sum := 0.0
		for w := 0; w < vocab; w++ {
			sum += phi.At(t2, w)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("phi row %d sums to %v, want 1", t2, sum)
		}
	}
}

func TestGibbsLDADeterministic(t *testing.T) {
	t.Parallel()

	theta1, phi1, err := NewGibbsLDA().Fit(testCounts(), 2)
	if err != nil {
		t.Fatalf("first fit: %v", err)
	}
	theta2, phi2, err := NewGibbsLDA().Fit(testCounts(), 2)
	if err != nil {
		t.Fatalf("second fit: %v", err)
	}

	if !mat.Equal(theta1, theta2) {
		t.Error("theta differs between seeded runs")
	}
	if !mat.Equal(phi1, phi2) {
		t.Error("phi differs between seeded runs")
	}
}

func TestGibbsLDASeparatesGroups(t *testing.T) {
	t.Parallel()

	theta, _, err := NewGibbsLDA().Fit(testCounts(), 2)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	// Documents 0-2 and 3-5 use disjoint vocabularies; each group should
	// concentrate on a single (different) topic.
	groupA := dominantTopic(theta, 0)
	groupB := dominantTopic(theta, 3)
	if groupA == groupB {
		t.Errorf("both groups landed on topic %d", groupA)
	}
	for d := 0; d < 3; d++ {
		if dominantTopic(theta, d) != groupA {
			t.Errorf("doc %d not on group A topic", d)
		}
	}
	for d := 3; d < 6; d++ {
		if dominantTopic(theta, d) != groupB {
			t.Errorf("doc %d not on group B topic", d)
		}
	}
}

func dominantTopic(theta *mat.Dense, doc int) int {
	_, k := theta.Dims()
	best, bestW := 0, theta.At(doc, 0)
	for t := 1; t < k; t++ {
		if w := theta.At(doc, t); w > bestW {
			best, bestW = t, w
		}
	}
	return best
}

func TestGibbsLDAEmptyCorpus(t *testing.T) {
	t.Parallel()

	_, _, err := NewGibbsLDA().Fit(mat.NewDense(2, 3, nil), 2)
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("err = %v, want ErrEmptyCorpus", err)
	}
}

func TestGibbsLDAInvalidTopicCount(t *testing.T) {
	t.Parallel()

	if _, _, err := NewGibbsLDA().Fit(testCounts(), 0); err == nil {
		t.Error("expected error for zero topics")
	}
}
