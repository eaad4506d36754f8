// Package model holds the trained feature-weight table the segmenter scores
// boundaries against.
//
// A Model is built once, by loading a file or by the trainer, and is never
// modified afterwards, so it can be shared by any number of goroutines.
package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultBias is the score every boundary starts from when a table does not
// carry its own bias. It was calibrated together with the published tables.
const DefaultBias = -332

// ErrFormat is returned (wrapped) for malformed model files.
var ErrFormat = errors.New("malformed model")

// Table maps a feature key to its weight. A missing key weighs 0.
type Table interface {
	Lookup(key string) (int, bool)
}

// Model is an immutable feature-weight table paired with its bias.
type Model struct {
	bias    int
	weights map[string]int
}

// NewModel creates a model from a copy of weights.
func NewModel(bias int, weights map[string]int) *Model {
	m := &Model{bias: bias, weights: make(map[string]int, len(weights))}
	for k, w := range weights {
		if w != 0 {
			m.weights[k] = w
		}
	}
	return m
}

// Empty returns a model without features. Every boundary scores bias.
func Empty() *Model {
	return NewModel(DefaultBias, nil)
}

// Lookup returns the weight of key.
func (m *Model) Lookup(key string) (int, bool) {
	w, ok := m.weights[key]
	return w, ok
}

// LookupBytes is Lookup for a key held in a byte slice. It does not
// allocate.
func (m *Model) LookupBytes(key []byte) (int, bool) {
	w, ok := m.weights[string(key)]
	return w, ok
}

// Bias returns the score offset the table was trained with.
func (m *Model) Bias() int {
	return m.bias
}

// Len returns the number of features.
func (m *Model) Len() int {
	return len(m.weights)
}

// Keys returns all feature keys in sorted order.
func (m *Model) Keys() []string {
	keys := make([]string, 0, len(m.weights))
	for k := range m.weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Prune returns a copy of m without the features whose absolute weight is
// below minAbs.
func (m *Model) Prune(minAbs int) *Model {
	kept := make(map[string]int, len(m.weights))
	for k, w := range m.weights {
		if w >= minAbs || -w >= minAbs {
			kept[k] = w
		}
	}
	return &Model{bias: m.bias, weights: kept}
}

// LoadFile loads a model, picking the format from the extension:
// ".json" files are read with ReadJSON, everything else with Read.
func LoadFile(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var m *Model
	if strings.EqualFold(filepath.Ext(path), ".json") {
		m, err = ReadJSON(file)
	} else {
		m, err = Read(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Read parses the text format:
//
//	# comment
//	B	<bias>
//	F	<key>	<weight>
//
// Fields are tab separated. The key is everything between the first and the
// last tab, so keys may themselves contain blanks.
func Read(r io.Reader) (*Model, error) {
	bias := DefaultBias
	weights := make(map[string]int)

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		first := strings.IndexByte(line, '\t')
		last := strings.LastIndexByte(line, '\t')
		if first < 0 {
			return nil, fmt.Errorf("line %d: %w: missing tab", lineNo, ErrFormat)
		}
		value, err := strconv.Atoi(strings.TrimSpace(line[last+1:]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrFormat, err)
		}

		switch kind := line[:first]; kind {
		case "B":
			if first != last {
				return nil, fmt.Errorf("line %d: %w: bias takes one value", lineNo, ErrFormat)
			}
			bias = value
		case "F":
			if first == last {
				return nil, fmt.Errorf("line %d: %w: feature without key", lineNo, ErrFormat)
			}
			key := line[first+1 : last]
			if key == "" {
				return nil, fmt.Errorf("line %d: %w: empty key", lineNo, ErrFormat)
			}
			weights[key] = value
		default:
			return nil, fmt.Errorf("line %d: %w: unknown record %q", lineNo, ErrFormat, kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	m := &Model{bias: bias, weights: weights}
	for k, w := range weights {
		if w == 0 {
			delete(m.weights, k)
		}
	}
	return m, nil
}

// Write writes the model in the text format read by Read. Features are
// sorted by key.
func (m *Model) Write(w io.Writer) error {
	writer := bufio.NewWriter(w)
	fmt.Fprintf(writer, "B\t%d\n", m.bias)
	for _, k := range m.Keys() {
		fmt.Fprintf(writer, "F\t%s\t%d\n", k, m.weights[k])
	}
	return writer.Flush()
}

// Save writes the model to path in the text format.
func (m *Model) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
