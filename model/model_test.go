package model

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	content := "# trained on a toy corpus\n" +
		"B\t-312\n" +
		"\n" +
		"F\tUW4__X\t350\n" +
		"F\tBW2__ \tあ\t-7\n" +
		"F\tUC1__O\t0\n"

	m, err := Read(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, -312, m.Bias())
	assert.Equal(t, 2, m.Len())

	w, ok := m.Lookup("UW4__X")
	assert.True(t, ok)
	assert.Equal(t, 350, w)

	w, ok = m.Lookup("BW2__ \tあ")
	assert.True(t, ok, "keys keep inner blanks")
	assert.Equal(t, -7, w)

	_, ok = m.Lookup("UC1__O")
	assert.False(t, ok, "zero weights are dropped")
}

func TestReadDefaultBias(t *testing.T) {
	m, err := Read(strings.NewReader("F\tUW1__a\t1\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBias, m.Bias())
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    string
	}{
		{"no tab", "B -332\n", "line 1"},
		{"bad weight", "F\tUW1__a\tmany\n", "line 1"},
		{"feature without key", "F\t12\n", "line 1"},
		{"empty key", "F\t\t12\n", "line 1"},
		{"bias with extra field", "B\tx\t12\n", "line 1"},
		{"unknown record", "# ok\nT\tB\tE\t1\n", "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Read(strings.NewReader(tt.content))
			assert.Nil(t, m)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFormat)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	orig := NewModel(-300, map[string]int{
		"UW4__X":     350,
		"TC1__OOH":   -12,
		"BW1__B1あ":   4,
		"UQ1__UO":    0,
		"UW3__\tkey": 9,
	})
	assert.Equal(t, 4, orig.Len())

	var buf bytes.Buffer
	require.NoError(t, orig.Write(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "B\t-300\n"))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, orig.Bias(), got.Bias())
	assert.Equal(t, orig.Keys(), got.Keys())
	for _, k := range orig.Keys() {
		want, _ := orig.Lookup(k)
		w, ok := got.Lookup(k)
		assert.True(t, ok, k)
		assert.Equal(t, want, w, k)
	}
}

func TestNewModelCopiesInput(t *testing.T) {
	weights := map[string]int{"UW1__a": 1}
	m := NewModel(DefaultBias, weights)
	weights["UW1__a"] = 100
	weights["UW1__b"] = 2

	w, _ := m.Lookup("UW1__a")
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, m.Len())
}

func TestReadJSON(t *testing.T) {
	content := `{"BIAS__": -332, "UW4": {"X": 350, "あ": -20}, "BC1__": {"HH": 6}}`
	m, err := ReadJSON(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, -332, m.Bias())
	assert.Equal(t, []string{"BC1__HH", "UW4__X", "UW4__あ"}, m.Keys())
	w, ok := m.Lookup("UW4__あ")
	assert.True(t, ok)
	assert.Equal(t, -20, w)
}

func TestReadJSONErrors(t *testing.T) {
	for _, content := range []string{
		`[1, 2]`,
		`{"UW4": 3}`,
		`{"BIAS": "low"}`,
		`{"UW4": {"X": "high"}}`,
		`{"__": {"X": 1}}`,
	} {
		_, err := ReadJSON(strings.NewReader(content))
		assert.ErrorIs(t, err, ErrFormat, content)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "model.txt")
	require.NoError(t, NewModel(-100, map[string]int{"UW4__X": 350}).Save(textPath))
	m, err := LoadFile(textPath)
	require.NoError(t, err)
	assert.Equal(t, -100, m.Bias())

	jsonPath := filepath.Join(dir, "model.JSON")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"UW4": {"X": 350}}`), 0644))
	m, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultBias, m.Bias())
	_, ok := m.Lookup("UW4__X")
	assert.True(t, ok)

	badPath := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(badPath, []byte("oops\n"), 0644))
	_, err = LoadFile(badPath)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), badPath)

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmpty(t *testing.T) {
	m := Empty()
	assert.Equal(t, DefaultBias, m.Bias())
	assert.Zero(t, m.Len())
}

func TestPrune(t *testing.T) {
	m := NewModel(-100, map[string]int{"UW4__X": 350, "UW3__A": -2, "BC2__AA": 3, "UP1__U": -40})

	pruned := m.Prune(3)
	assert.Equal(t, []string{"BC2__AA", "UP1__U", "UW4__X"}, pruned.Keys())
	assert.Equal(t, -100, pruned.Bias())
	assert.Equal(t, 4, m.Len())

	assert.Equal(t, m.Keys(), m.Prune(0).Keys())
	assert.Zero(t, m.Prune(1000).Len())
}
