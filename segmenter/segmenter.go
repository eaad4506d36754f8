package segmenter

import (
	"github.com/teatak/tinyseg/codec"
	"github.com/teatak/tinyseg/model"
)

// Segmenter splits text into words by scoring every gap between two
// characters against a trained feature-weight table.
//
// A Segmenter holds no per-call state and may be used from many goroutines
// as long as its table supports concurrent reads, which *model.Model does.
type Segmenter struct {
	table model.Table
	bias  int
}

// New creates a segmenter for a loaded model, using the model's bias.
func New(m *model.Model) *Segmenter {
	return NewSegmenter(m, m.Bias())
}

// NewSegmenter creates a segmenter for any table. bias must be the constant
// the table was trained with; model.DefaultBias pairs with the published
// tables.
func NewSegmenter(table model.Table, bias int) *Segmenter {
	return &Segmenter{table: table, bias: bias}
}

// Bias returns the score every boundary starts from.
func (s *Segmenter) Bias() int {
	return s.bias
}

// Segment splits text into tokens. Concatenating the tokens gives back the
// decoded text; bytes the decoder could not use are dropped. Text that
// decodes to a single character is returned whole, and text that decodes to
// nothing yields an empty slice.
func (s *Segmenter) Segment(text string) []string {
	units := codec.DecodeString(text)
	switch len(units) {
	case 0:
		return []string{}
	case 1:
		return []string{text}
	}
	return s.cut(units)
}

// SegmentBytes is Segment for raw bytes.
func (s *Segmenter) SegmentBytes(text []byte) []string {
	units := codec.Decode(text)
	switch len(units) {
	case 0:
		return []string{}
	case 1:
		return []string{string(text)}
	}
	return s.cut(units)
}

func (s *Segmenter) cut(units []codec.CodeUnit) []string {
	sc := newScorer(s.table, s.bias)
	tokens := make([]string, 0, len(units)/2+1)
	token := codec.AppendEncode(make([]byte, 0, 4*codec.MaxEncodedLen), units[0])

	Walk(units, func(ctx *Context) Decision {
		d := DecisionOther
		if sc.score(ctx, nil) > 0 {
			tokens = append(tokens, string(token))
			token = token[:0]
			d = DecisionBoundary
		}
		token = codec.AppendEncode(token, units[ctx.Index])
		return d
	})

	// The last token is flushed whether or not a boundary closed it.
	return append(tokens, string(token))
}

// Feature is one feature key that contributed to a score.
type Feature struct {
	Key    string `json:"key"`
	Weight int    `json:"weight"`
}

// Boundary describes the decision taken for the gap in front of the
// character at Index.
type Boundary struct {
	Index    int       `json:"index"`
	Score    int       `json:"score"`
	Cut      bool      `json:"cut"`
	Features []Feature `json:"features,omitempty"`
}

// Explain segments text like Segment and reports every boundary with its
// score and the features that fired.
func (s *Segmenter) Explain(text string) []Boundary {
	units := codec.DecodeString(text)
	if len(units) < 2 {
		return []Boundary{}
	}

	sc := newScorer(s.table, s.bias)
	boundaries := make([]Boundary, 0, len(units)-1)
	Walk(units, func(ctx *Context) Decision {
		b := Boundary{Index: ctx.Index}
		b.Score = sc.score(ctx, func(key string, weight int) {
			b.Features = append(b.Features, Feature{Key: key, Weight: weight})
		})
		b.Cut = b.Score > 0
		boundaries = append(boundaries, b)
		if b.Cut {
			return DecisionBoundary
		}
		return DecisionOther
	})
	return boundaries
}
