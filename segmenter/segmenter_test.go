package segmenter

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teatak/tinyseg/codec"
	"github.com/teatak/tinyseg/model"
)

// mapTable is a Table without the byte lookup fast path.
type mapTable map[string]int

func (m mapTable) Lookup(key string) (int, bool) {
	w, ok := m[key]
	return w, ok
}

// classChangeModel cuts wherever the class changes across the boundary.
func classChangeModel() *model.Model {
	classes := []Class{ClassAscii, ClassDigit, ClassHiragana, ClassKatakana, ClassKanji, ClassOther}
	weights := make(map[string]int)
	for _, a := range classes {
		for _, b := range classes {
			if a != b {
				weights[PrefixBC2+a.String()+b.String()] = 1000
			}
		}
	}
	return model.NewModel(model.DefaultBias, weights)
}

func TestSegmentSingleFeature(t *testing.T) {
	tables := map[string]model.Table{
		"model": model.NewModel(-332, map[string]int{PrefixUW4 + "X": 350}),
		"map":   mapTable{PrefixUW4 + "X": 350},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			seg := NewSegmenter(table, -332)
			assert.Equal(t, []string{"AB", "XCD"}, seg.Segment("ABXCD"))
			assert.Equal(t, []string{"AB", "XCD"}, seg.SegmentBytes([]byte("ABXCD")))
		})
	}
}

func TestSegmentEmptyTable(t *testing.T) {
	seg := New(model.Empty())

	for _, text := range []string{
		"ab",
		"今日はいい天気ですね",
		"東京都庁で2024年にGoの勉強会があった。",
	} {
		assert.Equal(t, []string{text}, seg.Segment(text))
	}
}

func TestSegmentDegenerateInputs(t *testing.T) {
	seg := New(classChangeModel())

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"only malformed bytes", "\x80\xbf\xe3", []string{}},
		{"four byte only", "😀", []string{}},
		{"single ascii", "a", []string{"a"}},
		{"single kana", "あ", []string{"あ"}},
		{"single unit keeps whole input", "\x80あ", []string{"\x80あ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.Segment(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, seg.SegmentBytes([]byte(tt.text)))
		})
	}
}

func TestSegmentClassChange(t *testing.T) {
	seg := New(classChangeModel())

	tests := []struct {
		text string
		want []string
	}{
		{"私はGoが好き", []string{"私", "は", "Go", "が", "好", "き"}},
		{"カタカナと漢字", []string{"カタカナ", "と", "漢字"}},
		{"2024年", []string{"2024", "年"}},
		{"ab", []string{"ab"}},
		{"a1", []string{"a", "1"}},
		{"漢字、", []string{"漢字", "、"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, seg.Segment(tt.text), tt.text)
	}
}

func TestSegmentMalformedBytesAreDropped(t *testing.T) {
	seg := New(classChangeModel())
	assert.Equal(t, []string{"ab", "あい"}, seg.Segment("a\xffb\x80あ\xe3い"))
}

func TestSegmentDecisionHistory(t *testing.T) {
	// After the first cut every following boundary sees p3 = B and cuts too.
	seg := New(model.NewModel(-332, map[string]int{
		PrefixUW4 + "X": 350,
		PrefixUP3 + "B": 1000,
	}))
	assert.Equal(t, []string{"AB", "X", "C", "D"}, seg.Segment("ABXCD"))
}

func TestSegmentLossless(t *testing.T) {
	seg := New(classChangeModel())

	long := strings.Repeat("漢字かなカナ123abc", 6000)
	require.Greater(t, len(codec.DecodeString(long)), 65536)

	for _, text := range []string{
		"今日は2024年10月19日、晴れ。",
		"スーパーマーケットでGopherくんを見た",
		"a b\tc",
		long,
	} {
		tokens := seg.Segment(text)
		assert.Equal(t, text, strings.Join(tokens, ""))
		for _, tok := range tokens {
			assert.NotEmpty(t, tok)
		}
	}
}

func TestSegmentIdempotent(t *testing.T) {
	seg := New(classChangeModel())

	for _, text := range []string{"私はGoが好き", "東京タワー333m", "ひらがなカタカナ漢字"} {
		for _, tok := range seg.Segment(text) {
			again := seg.Segment(tok)
			assert.Equal(t, tok, strings.Join(again, ""))
		}
	}
}

func TestSegmentConcurrent(t *testing.T) {
	seg := New(classChangeModel())
	texts := []string{"私はGoが好き", "カタカナと漢字", "2024年", "ABXCD"}
	want := make([][]string, len(texts))
	for i, text := range texts {
		want[i] = seg.Segment(text)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				i := n % len(texts)
				assert.Equal(t, want[i], seg.Segment(texts[i]))
			}
		}()
	}
	wg.Wait()
}

func TestExplain(t *testing.T) {
	seg := New(model.NewModel(-332, map[string]int{PrefixUW4 + "X": 350}))

	got := seg.Explain("ABXCD")
	require.Len(t, got, 4)
	for i, b := range got {
		assert.Equal(t, i+1, b.Index)
		if b.Index == 2 {
			assert.Equal(t, 18, b.Score)
			assert.True(t, b.Cut)
			assert.Equal(t, []Feature{{Key: "UW4__X", Weight: 350}}, b.Features)
			continue
		}
		assert.Equal(t, -332, b.Score)
		assert.False(t, b.Cut)
		assert.Empty(t, b.Features)
	}

	assert.Empty(t, seg.Explain("X"))
	assert.Empty(t, seg.Explain(""))
}
