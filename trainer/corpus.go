// Package trainer builds feature-weight tables from segmented text.
//
// Training is an offline step: the segmenter only ever reads the tables
// produced here.
package trainer

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/teatak/tinyseg/codec"
)

// Sentence is one line of a segmented corpus.
type Sentence struct {
	Units []codec.CodeUnit
	// Cuts[i] is true when a word starts at Units[i]. Cuts[0] is always false.
	Cuts []bool
}

// NewSentence builds a sentence from its words. Words that decode to nothing
// are skipped.
func NewSentence(words []string) Sentence {
	var s Sentence
	for _, word := range words {
		units := codec.DecodeString(word)
		if len(units) == 0 {
			continue
		}
		for i := range units {
			s.Cuts = append(s.Cuts, i == 0 && len(s.Units) > 0)
		}
		s.Units = append(s.Units, units...)
	}
	return s
}

// Words returns the words of the sentence.
func (s Sentence) Words() []string {
	var words []string
	start := 0
	for i := 1; i <= len(s.Units); i++ {
		if i == len(s.Units) || s.Cuts[i] {
			words = append(words, codec.EncodeAll(s.Units[start:i]))
			start = i
		}
	}
	return words
}

// Text returns the sentence without separators.
func (s Sentence) Text() string {
	return codec.EncodeAll(s.Units)
}

// ReadCorpus reads a segmented corpus: one sentence per line, words separated
// by white space. Blank lines are skipped.
func ReadCorpus(r io.Reader) ([]Sentence, error) {
	var data []Sentence
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}
		if sent := NewSentence(words); len(sent.Units) > 0 {
			data = append(data, sent)
		}
	}
	return data, scanner.Err()
}

// LoadCorpus reads a segmented corpus file.
func LoadCorpus(path string) ([]Sentence, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCorpus(file)
}

// LoadWordList turns a word list into sentences of one word each, teaching
// the trainer not to cut inside known words. Only the first field of each
// line is used, so "word frequency" dictionaries work as they are.
func LoadWordList(path string) ([]Sentence, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var data []Sentence
	scanner := bufio.NewScanner(file)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}
		// Single characters have no inner boundary to learn from.
		if sent := NewSentence(parts[:1]); len(sent.Units) > 1 {
			data = append(data, sent)
		}
	}
	return data, scanner.Err()
}
