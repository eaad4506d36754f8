package segmenter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teatak/tinyseg/codec"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		unit codec.CodeUnit
		want Class
	}{
		{0x0041, ClassAscii}, // A
		{'z', ClassAscii},
		{'5', ClassDigit},
		{'0', ClassDigit},
		{0x3042, ClassHiragana}, // あ
		{0x3040, ClassHiragana},
		{0x309F, ClassHiragana},
		{0x30A2, ClassKatakana}, // ア
		{0x30FC, ClassKatakana}, // ー
		{0x30FF, ClassKatakana},
		{0x4E00, ClassKanji}, // 一, also a numeral
		{0x5146, ClassKanji}, // 兆
		{0x6F22, ClassKanji}, // 漢
		{0x9FFF, ClassKanji},
		{0x0020, ClassOther}, // space
		{'@', ClassOther},
		{0x3007, ClassOther}, // 〇
		{0x3001, ClassOther}, // 、
		{0xFF21, ClassOther}, // full-width Ａ
		{0xA000, ClassOther},
		{0xFFFF, ClassOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.unit), "Classify(%#x)", tt.unit)
	}
}

func TestClassifyNeverReturnsKanjiNumeral(t *testing.T) {
	numerals := 0
	for u := 0; u <= 0xFFFF; u++ {
		class := Classify(codec.CodeUnit(u))
		if class == ClassKanjiNumeral {
			t.Fatalf("Classify(%#x) = ClassKanjiNumeral", u)
		}
		if isKanjiNumeral(codec.CodeUnit(u)) {
			numerals++
			assert.Equal(t, ClassKanji, class, "numeral %#x", u)
		}
	}
	assert.Equal(t, 15, numerals)
}

func TestClassString(t *testing.T) {
	want := map[Class]string{
		ClassAscii:        "A",
		ClassDigit:        "N",
		ClassHiragana:     "I",
		ClassKatakana:     "K",
		ClassKanjiNumeral: "M",
		ClassKanji:        "H",
		ClassOther:        "O",
		Class(42):         "O",
	}
	for c, s := range want {
		assert.Equal(t, s, c.String(), "Class(%d)", int(c))
	}
}
