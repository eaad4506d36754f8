package main

import (
	"flag"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/teatak/tinyseg/model"
	"github.com/teatak/tinyseg/segmenter"
	"github.com/teatak/tinyseg/trainer"
	"github.com/teatak/tinyseg/util"
)

type config struct {
	input  string
	dict   string
	eval   string
	output string
	opts   trainer.Options
}

func main() {
	var cfg config
	defaults := trainer.DefaultOptions()
	flag.StringVar(&cfg.input, "input", "data/corpus.txt", "Path to the segmented corpus file (space separated)")
	flag.StringVar(&cfg.dict, "dict", "", "Word list, each word becomes a training sentence (optional)")
	flag.StringVar(&cfg.eval, "eval", "", "Held-out segmented corpus to report accuracy on (optional)")
	flag.StringVar(&cfg.output, "output", "data/model.txt", "Path to save the model")
	flag.IntVar(&cfg.opts.Iterations, "iter", defaults.Iterations, "Number of training iterations")
	flag.IntVar(&cfg.opts.Bias, "bias", defaults.Bias, "Initial bias")
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if cfg.input == "" {
		klog.Exit("Please provide input corpus using -input")
	}

	klog.InfoS("training", "input", cfg.input, "dict", cfg.dict, "output", cfg.output, "iterations", cfg.opts.Iterations)
	m, err := train(cfg)
	if err != nil {
		klog.Exitf("Training failed: %v", err)
	}
	klog.InfoS("saved model", "path", cfg.output, "features", m.Len(), "bias", m.Bias())
}

// train builds a model from the configured corpora, saves it and reports
// accuracy on the training data and the optional held-out corpus.
func train(cfg config) (*model.Model, error) {
	sents, err := trainer.LoadCorpus(cfg.input)
	if err != nil {
		return nil, err
	}
	if cfg.dict != "" {
		if util.FileExists(cfg.dict) {
			words, err := trainer.LoadWordList(cfg.dict)
			if err != nil {
				return nil, err
			}
			klog.InfoS("dictionary overlay", "path", cfg.dict, "words", len(words))
			sents = append(sents, words...)
		} else {
			klog.Warningf("Dictionary %s not found, training on the corpus only", cfg.dict)
		}
	}
	if len(sents) == 0 {
		return nil, fmt.Errorf("no sentences in %s", cfg.input)
	}

	m := trainer.Train(sents, cfg.opts)
	if err := m.Save(cfg.output); err != nil {
		return nil, err
	}

	seg := segmenter.New(m)
	report("train", trainer.Evaluate(seg, sents))
	if cfg.eval != "" {
		held, err := trainer.LoadCorpus(cfg.eval)
		if err != nil {
			return nil, err
		}
		report("eval", trainer.Evaluate(seg, held))
	}
	return m, nil
}

func report(name string, m trainer.Metrics) {
	klog.InfoS("accuracy", "set", name, "sentences", m.Sentences,
		"precision", fmt.Sprintf("%.4f", m.Precision()),
		"recall", fmt.Sprintf("%.4f", m.Recall()),
		"f1", fmt.Sprintf("%.4f", m.F1()),
		"exact", fmt.Sprintf("%.4f", m.Exact()))
}
