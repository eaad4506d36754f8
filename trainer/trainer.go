package trainer

import (
	"k8s.io/klog/v2"

	"github.com/teatak/tinyseg/model"
	"github.com/teatak/tinyseg/segmenter"
)

// Options controls Train.
type Options struct {
	// Iterations is the maximum number of passes over the corpus.
	Iterations int
	// Bias is the starting bias. The trained model stores the final one.
	Bias int
}

// DefaultOptions returns the options cmd/train starts from.
func DefaultOptions() Options {
	return Options{Iterations: 10, Bias: model.DefaultBias}
}

// Train learns a table with a mistake-driven perceptron. Every boundary is
// scored with the weights learned so far and the gold decisions as history;
// when the sign is wrong, every key that fired and the bias move by one
// toward the gold label. Training stops early after a pass without mistakes.
func Train(sentences []Sentence, opts Options) *model.Model {
	weights := make(map[string]int)
	bias := opts.Bias
	keys := make([]string, 0, segmenter.NumFeatures)

	for it := 1; it <= opts.Iterations; it++ {
		mistakes, total := 0, 0
		for _, sent := range sentences {
			segmenter.Walk(sent.Units, func(ctx *segmenter.Context) segmenter.Decision {
				keys = ctx.Keys(keys[:0])
				score := bias
				for _, k := range keys {
					score += weights[k]
				}

				gold := sent.Cuts[ctx.Index]
				total++
				if (score > 0) != gold {
					mistakes++
					delta := -1
					if gold {
						delta = 1
					}
					bias += delta
					for _, k := range keys {
						weights[k] += delta
					}
				}

				if gold {
					return segmenter.DecisionBoundary
				}
				return segmenter.DecisionOther
			})
		}

		klog.V(2).Infof("iteration %d: %d of %d boundaries wrong, %d features", it, mistakes, total, len(weights))
		if mistakes == 0 {
			klog.V(1).Infof("converged after %d iterations", it)
			break
		}
	}

	return model.NewModel(bias, weights)
}
