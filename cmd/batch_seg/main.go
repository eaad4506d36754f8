package main

import (
	"bufio"
	"flag"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"k8s.io/klog/v2"

	"github.com/teatak/tinyseg/model"
	"github.com/teatak/tinyseg/segmenter"
	"github.com/teatak/tinyseg/util"
)

// chunkLines is how many lines are segmented in parallel before they are
// written out in input order.
const chunkLines = 1024

func main() {
	inputPath := flag.String("input", "data/text.txt", "Input file path")
	outputPath := flag.String("output", "data/corpus.txt", "Output corpus file path")
	modelPath := flag.String("model", util.GetEnv("TINYSEG_MODEL", "data/model.txt"), "Model path")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of segmenting goroutines")
	sep := flag.String("sep", " ", "Token separator in the output")
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	m, err := model.LoadFile(*modelPath)
	if err != nil {
		klog.Warningf("Failed to load model from %s: %v. Using empty model.", *modelPath, err)
		m = model.Empty()
	} else {
		klog.InfoS("loaded model", "path", *modelPath, "features", m.Len())
	}
	seg := segmenter.New(m)

	inFile, err := os.Open(*inputPath)
	if err != nil {
		klog.Fatalf("Failed to open input file: %v", err)
	}
	defer inFile.Close()

	outFile, err := os.Create(*outputPath)
	if err != nil {
		klog.Fatalf("Failed to create output file: %v", err)
	}
	defer outFile.Close()

	count, err := process(inFile, outFile, seg, *workers, *sep)
	if err != nil {
		klog.Fatalf("Batch failed after %d lines: %v", count, err)
	}
	klog.InfoS("done", "lines", count, "output", *outputPath)
}

// process segments every non-empty line of r and writes the tokens joined
// by sep to w, one line per input line, in input order.
func process(r io.Reader, w io.Writer, seg *segmenter.Segmenter, workers int, sep string) (int, error) {
	if workers < 1 {
		workers = 1
	}

	scanner := bufio.NewScanner(r)
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)
	writer := bufio.NewWriter(w)

	count := 0
	chunk := make([]string, 0, chunkLines)
	out := make([]string, chunkLines)
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		segmentChunk(seg, chunk, out, workers, sep)
		for i := range chunk {
			if _, err := writer.WriteString(out[i]); err != nil {
				return err
			}
			if err := writer.WriteByte('\n'); err != nil {
				return err
			}
		}
		count += len(chunk)
		if count%(chunkLines*10) == 0 {
			klog.V(1).InfoS("progress", "lines", count)
		}
		chunk = chunk[:0]
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		chunk = append(chunk, line)
		if len(chunk) == chunkLines {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return count, err
	}
	if err := flush(); err != nil {
		return count, err
	}
	return count, writer.Flush()
}

func segmentChunk(seg *segmenter.Segmenter, lines, out []string, workers int, sep string) {
	jobs := make(chan int)
	var wg sync.WaitGroup
	for n := min(workers, len(lines)); n > 0; n-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = strings.Join(seg.Segment(lines[i]), sep)
			}
		}()
	}
	for i := range lines {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
