package trainer

import (
	"github.com/teatak/tinyseg/codec"
	"github.com/teatak/tinyseg/segmenter"
)

// Metrics counts boundary decisions of a segmenter against a gold corpus.
type Metrics struct {
	Sentences      int
	ExactSentences int
	TruePositive   int
	FalsePositive  int
	FalseNegative  int
}

// Precision is the share of predicted cuts that are gold cuts.
func (m Metrics) Precision() float64 {
	return ratio(m.TruePositive, m.TruePositive+m.FalsePositive)
}

// Recall is the share of gold cuts that were predicted.
func (m Metrics) Recall() float64 {
	return ratio(m.TruePositive, m.TruePositive+m.FalseNegative)
}

// F1 is the harmonic mean of precision and recall.
func (m Metrics) F1() float64 {
	p, r := m.Precision(), m.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Exact is the share of sentences segmented exactly like the gold corpus.
func (m Metrics) Exact() float64 {
	return ratio(m.ExactSentences, m.Sentences)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// Evaluate segments the text of every sentence and compares the cuts with
// the gold ones.
func Evaluate(seg *segmenter.Segmenter, sentences []Sentence) Metrics {
	var m Metrics
	for _, sent := range sentences {
		predicted := make([]bool, len(sent.Units))
		pos := 0
		for _, tok := range seg.Segment(sent.Text()) {
			if pos > 0 && pos < len(predicted) {
				predicted[pos] = true
			}
			pos += len(codec.DecodeString(tok))
		}

		exact := true
		for i := 1; i < len(sent.Units); i++ {
			switch {
			case predicted[i] && sent.Cuts[i]:
				m.TruePositive++
			case predicted[i]:
				m.FalsePositive++
				exact = false
			case sent.Cuts[i]:
				m.FalseNegative++
				exact = false
			}
		}
		m.Sentences++
		if exact {
			m.ExactSentences++
		}
	}
	return m
}
