package segmenter

import "github.com/teatak/tinyseg/codec"

// Class is the character class of a code unit.
type Class int

const (
	ClassOther        Class = iota // ClassOther is everything not listed below.
	ClassAscii                     // ClassAscii covers a-z and A-Z.
	ClassDigit                     // ClassDigit covers 0-9.
	ClassHiragana                  // ClassHiragana covers U+3040-U+309F.
	ClassKatakana                  // ClassKatakana covers U+30A0-U+30FF.
	ClassKanjiNumeral              // ClassKanjiNumeral is never returned by Classify; tables may still carry "M" keys.
	ClassKanji                     // ClassKanji covers U+4E00-U+9FFF.
)

// String returns the one-letter tag used in feature keys.
func (c Class) String() string {
	switch c {
	case ClassAscii:
		return "A"
	case ClassDigit:
		return "N"
	case ClassHiragana:
		return "I"
	case ClassKatakana:
		return "K"
	case ClassKanjiNumeral:
		return "M"
	case ClassKanji:
		return "H"
	}
	return "O"
}

// Classify returns the class of u. Every code unit has exactly one class.
func Classify(u codec.CodeUnit) Class {
	switch {
	case u >= 'a' && u <= 'z', u >= 'A' && u <= 'Z':
		return ClassAscii
	case u >= '0' && u <= '9':
		return ClassDigit
	case u >= 0x3040 && u <= 0x309F:
		return ClassHiragana
	case u >= 0x30A0 && u <= 0x30FF:
		return ClassKatakana
	case u >= 0x4E00 && u <= 0x9FFF:
		// Numerals are Kanji as far as the trained tables are concerned.
		return ClassKanji
	}
	return ClassOther
}

var kanjiNumerals = map[codec.CodeUnit]bool{
	0x4E00: true, // 一
	0x4E8C: true, // 二
	0x4E09: true, // 三
	0x56DB: true, // 四
	0x4E94: true, // 五
	0x516D: true, // 六
	0x4E03: true, // 七
	0x516B: true, // 八
	0x4E5D: true, // 九
	0x5341: true, // 十
	0x767E: true, // 百
	0x5343: true, // 千
	0x4E07: true, // 万
	0x5104: true, // 億
	0x5146: true, // 兆
}

// isKanjiNumeral reports whether u is one of the 15 numeral ideographs for
// 1-9, 10, 100, 1000, 10^4, 10^8 and 10^12. The zero sign 〇 (U+3007) lies
// outside the Kanji block and classifies as ClassOther.
func isKanjiNumeral(u codec.CodeUnit) bool {
	return kanjiNumerals[u]
}
