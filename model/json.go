package model

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// KeySeparator joins a category name and its operands in feature keys.
const KeySeparator = "__"

// ReadJSON parses the layout TinySegmenter tables are distributed in: one
// object per feature category mapping operand strings to weights, plus an
// optional "BIAS" (or "BIAS__") number.
//
//	{"BIAS": -332, "UW4": {"X": 350}, "BC1": {"HH": 6}}
//
// Category "UW4" operand "X" becomes key "UW4__X".
func ReadJSON(r io.Reader) (*Model, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	bias := DefaultBias
	weights := make(map[string]int)
	for category, msg := range raw {
		if category == "BIAS" || category == "BIAS__" {
			if err := json.Unmarshal(msg, &bias); err != nil {
				return nil, fmt.Errorf("%w: bias: %v", ErrFormat, err)
			}
			continue
		}

		name := strings.TrimSuffix(category, KeySeparator)
		if name == "" {
			return nil, fmt.Errorf("%w: empty category", ErrFormat)
		}
		var entries map[string]int
		if err := json.Unmarshal(msg, &entries); err != nil {
			return nil, fmt.Errorf("%w: category %s: %v", ErrFormat, name, err)
		}
		for operand, w := range entries {
			weights[name+KeySeparator+operand] = w
		}
	}
	return NewModel(bias, weights), nil
}
