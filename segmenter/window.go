package segmenter

import "github.com/teatak/tinyseg/codec"

// Decision is the outcome recorded for a boundary. The last three decisions
// are part of the context of the next boundary.
type Decision int

const (
	DecisionUnknown  Decision = iota // DecisionUnknown fills the history before the first boundary.
	DecisionOther                    // DecisionOther means no cut.
	DecisionBoundary                 // DecisionBoundary means a cut.
)

// String returns the tag used in feature keys.
func (d Decision) String() string {
	switch d {
	case DecisionOther:
		return "O"
	case DecisionBoundary:
		return "B"
	}
	return "U"
}

const (
	// WindowSize is the number of word units visible around a boundary.
	WindowSize = 6
	// HistorySize is the number of previous decisions visible to a boundary.
	HistorySize = 3

	padding = WindowSize / 2
)

var (
	beginSentinels = [padding]string{"B3", "B2", "B1"}
	endSentinels   = [padding]string{"E1", "E2", "E3"}
)

// Context is everything the scorer sees at one boundary. The boundary lies
// between W[2] and W[3]; slots outside the text hold sentinels of class
// ClassOther.
type Context struct {
	W [WindowSize]string
	C [WindowSize]Class
	// P holds the previous decisions, oldest first.
	P [HistorySize]Decision
	// Index is the position of the unit in W[3] within the decoded input.
	Index int
}

// Walk visits the len(units)-1 boundaries of units from left to right. decide
// is called once per boundary and its result is pushed onto the history seen
// by the following boundaries. ctx is reused between calls.
func Walk(units []codec.CodeUnit, decide func(ctx *Context) Decision) {
	n := len(units)
	if n < 2 {
		return
	}

	// The padded sequence is sized from the input: B3 B2 B1 u0 .. un-1 E1 E2 E3.
	words := make([]string, n+2*padding)
	classes := make([]Class, n+2*padding)
	copy(words, beginSentinels[:])
	for i, u := range units {
		words[padding+i] = codec.EncodeString(u)
		classes[padding+i] = Classify(u)
	}
	copy(words[padding+n:], endSentinels[:])
	for i := 0; i < padding; i++ {
		classes[i] = ClassOther
		classes[padding+n+i] = ClassOther
	}

	ctx := Context{P: [HistorySize]Decision{DecisionUnknown, DecisionUnknown, DecisionUnknown}}
	for i := padding + 1; i < padding+n; i++ {
		copy(ctx.W[:], words[i-padding:i+padding])
		copy(ctx.C[:], classes[i-padding:i+padding])
		ctx.Index = i - padding

		d := decide(&ctx)
		ctx.P[0], ctx.P[1], ctx.P[2] = ctx.P[1], ctx.P[2], d
	}
}
