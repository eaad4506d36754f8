package main

import (
	"flag"

	"k8s.io/klog/v2"

	"github.com/teatak/tinyseg/model"
)

func main() {
	inputPath := flag.String("input", "data/model.json", "Input model path (.txt or .json)")
	outputPath := flag.String("output", "data/model.txt", "Output model path, always written in the text format")
	minAbs := flag.Int("min", 1, "Drop features whose absolute weight is below this")
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.Infof("Loading model from %s...", *inputPath)
	m, err := model.LoadFile(*inputPath)
	if err != nil {
		klog.Exitf("Failed to load model: %v", err)
	}

	pruned := m.Prune(*minAbs)
	klog.InfoS("pruned", "before", m.Len(), "after", pruned.Len(), "removed", m.Len()-pruned.Len(), "min", *minAbs)

	if err := pruned.Save(*outputPath); err != nil {
		klog.Exitf("Failed to save model: %v", err)
	}
	klog.Infof("Saved to %s", *outputPath)
}
