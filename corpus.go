package trends

import (
	"sort"
	"unicode"

	"gonum.org/v1/gonum/mat"
)

// docTermMatrix is a dense document-term count matrix (rows are documents,
// columns are vocabulary terms in alphabetical order).
type docTermMatrix struct {
	terms  []string
	counts *mat.Dense
}

// tokenize splits an already-normalized document into terms. Terms shorter
// than two characters are dropped, matching the vectoriser the topic model
// was tuned against.
func tokenize(doc string) []string {
	fields := splitAlnum(doc)
	terms := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			terms = append(terms, f)
		}
	}
	return terms
}

func splitAlnum(s string) []string {
	return fieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// fieldsFunc is strings.FieldsFunc, inlined to keep tokenize allocation-free
// on the common single-token hashtag.
func fieldsFunc(s string, f func(rune) bool) []string {
	var fields []string
	start := -1
	for i, r := range s {
		if f(r) {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

// buildDocTermMatrix counts terms per document with stopword removal and
// document-frequency filtering: terms in fewer than minDF documents, or in
// more than maxDF (a proportion) of them, are excluded from the vocabulary.
// Returns nil when no term survives.
func buildDocTermMatrix(docs []string, stopwords map[string]struct{}, minDF int, maxDF float64) *docTermMatrix {
	tokenized := make([][]string, len(docs))
	docFreq := make(map[string]int)
	for i, doc := range docs {
		tokens := tokenize(doc)
		kept := tokens[:0]
		seen := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			if _, stop := stopwords[t]; stop {
				continue
			}
			kept = append(kept, t)
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
		tokenized[i] = kept
	}

	maxDocs := maxDF * float64(len(docs))
	var terms []string
	for term, df := range docFreq {
		if df >= minDF && float64(df) <= maxDocs {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return nil
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, t := range terms {
		index[t] = i
	}

	counts := mat.NewDense(len(docs), len(terms), nil)
	for d, tokens := range tokenized {
		for _, t := range tokens {
			if col, ok := index[t]; ok {
				counts.Set(d, col, counts.At(d, col)+1)
			}
		}
	}
	return &docTermMatrix{terms: terms, counts: counts}
}

// sum returns the total token count in the matrix.
func (m *docTermMatrix) sum() float64 {
	if m == nil {
		return 0
	}
	return mat.Sum(m.counts)
}
