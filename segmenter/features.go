package segmenter

import "github.com/teatak/tinyseg/model"

// Feature key prefixes. A key is the prefix followed by its operands with no
// delimiter, e.g. PrefixUW4+"X".
const (
	PrefixUP1 = "UP1__"
	PrefixUP2 = "UP2__"
	PrefixUP3 = "UP3__"
	PrefixBP1 = "BP1__"
	PrefixBP2 = "BP2__"
	PrefixUW1 = "UW1__"
	PrefixUW2 = "UW2__"
	PrefixUW3 = "UW3__"
	PrefixUW4 = "UW4__"
	PrefixUW5 = "UW5__"
	PrefixUW6 = "UW6__"
	PrefixBW1 = "BW1__"
	PrefixBW2 = "BW2__"
	PrefixBW3 = "BW3__"
	PrefixTW1 = "TW1__"
	PrefixTW2 = "TW2__"
	PrefixTW3 = "TW3__"
	PrefixTW4 = "TW4__"
	PrefixUC1 = "UC1__"
	PrefixUC2 = "UC2__"
	PrefixUC3 = "UC3__"
	PrefixUC4 = "UC4__"
	PrefixUC5 = "UC5__"
	PrefixUC6 = "UC6__"
	PrefixBC1 = "BC1__"
	PrefixBC2 = "BC2__"
	PrefixBC3 = "BC3__"
	PrefixTC1 = "TC1__"
	PrefixTC2 = "TC2__"
	PrefixTC3 = "TC3__"
	PrefixTC4 = "TC4__"
	PrefixUQ1 = "UQ1__"
	PrefixUQ2 = "UQ2__"
	PrefixUQ3 = "UQ3__"
	PrefixBQ1 = "BQ1__"
	PrefixBQ2 = "BQ2__"
	PrefixBQ3 = "BQ3__"
	PrefixBQ4 = "BQ4__"
	PrefixTQ1 = "TQ1__"
	PrefixTQ2 = "TQ2__"
	PrefixTQ3 = "TQ3__"
	PrefixTQ4 = "TQ4__"
)

// operand selects one value out of a Context.
type operand uint8

const (
	p1 operand = iota
	p2
	p3
	w1
	w2
	w3
	w4
	w5
	w6
	c1
	c2
	c3
	c4
	c5
	c6
)

func (c *Context) operand(op operand) string {
	switch {
	case op <= p3:
		return c.P[op-p1].String()
	case op <= w6:
		return c.W[op-w1]
	default:
		return c.C[op-c1].String()
	}
}

// template is one feature category: a prefix and up to four operands.
type template struct {
	prefix string
	arity  int
	ops    [4]operand
}

func t1(prefix string, a operand) template { return template{prefix, 1, [4]operand{a}} }
func t2(prefix string, a, b operand) template {
	return template{prefix, 2, [4]operand{a, b}}
}
func t3(prefix string, a, b, c operand) template {
	return template{prefix, 3, [4]operand{a, b, c}}
}
func t4(prefix string, a, b, c, d operand) template {
	return template{prefix, 4, [4]operand{a, b, c, d}}
}

var templates = [...]template{
	t1(PrefixUP1, p1),
	t1(PrefixUP2, p2),
	t1(PrefixUP3, p3),
	t2(PrefixBP1, p1, p2),
	t2(PrefixBP2, p2, p3),
	t1(PrefixUW1, w1),
	t1(PrefixUW2, w2),
	t1(PrefixUW3, w3),
	t1(PrefixUW4, w4),
	t1(PrefixUW5, w5),
	t1(PrefixUW6, w6),
	t2(PrefixBW1, w2, w3),
	t2(PrefixBW2, w3, w4),
	t2(PrefixBW3, w4, w5),
	t3(PrefixTW1, w1, w2, w3),
	t3(PrefixTW2, w2, w3, w4),
	t3(PrefixTW3, w3, w4, w5),
	t3(PrefixTW4, w4, w5, w6),
	t1(PrefixUC1, c1),
	t1(PrefixUC2, c2),
	t1(PrefixUC3, c3),
	t1(PrefixUC4, c4),
	t1(PrefixUC5, c5),
	t1(PrefixUC6, c6),
	t2(PrefixBC1, c2, c3),
	t2(PrefixBC2, c3, c4),
	t2(PrefixBC3, c4, c5),
	t3(PrefixTC1, c1, c2, c3),
	t3(PrefixTC2, c2, c3, c4),
	t3(PrefixTC3, c3, c4, c5),
	t3(PrefixTC4, c4, c5, c6),
	t2(PrefixUQ1, p1, c1),
	t2(PrefixUQ2, p2, c2),
	t2(PrefixUQ3, p3, c3),
	t3(PrefixBQ1, p2, c2, c3),
	t3(PrefixBQ2, p2, c3, c4),
	t3(PrefixBQ3, p3, c2, c3),
	t3(PrefixBQ4, p3, c3, c4),
	t4(PrefixTQ1, p2, c1, c2, c3),
	t4(PrefixTQ2, p2, c2, c3, c4),
	t4(PrefixTQ3, p3, c1, c2, c3),
	t4(PrefixTQ4, p3, c2, c3, c4),
}

// NumFeatures is the number of keys built per boundary.
const NumFeatures = len(templates)

// keyBuilder builds keys into one reusable buffer.
type keyBuilder struct {
	buf []byte
}

func (b *keyBuilder) build(t *template, c *Context) []byte {
	b.buf = append(b.buf[:0], t.prefix...)
	for _, op := range t.ops[:t.arity] {
		b.buf = append(b.buf, c.operand(op)...)
	}
	return b.buf
}

// Keys appends the NumFeatures feature keys of the boundary to dst.
func (c *Context) Keys(dst []string) []string {
	var b keyBuilder
	for i := range templates {
		dst = append(dst, string(b.build(&templates[i], c)))
	}
	return dst
}

// byteTable is implemented by tables that can look a key up without
// converting it to a string first.
type byteTable interface {
	LookupBytes(key []byte) (int, bool)
}

// scorer sums feature weights for one segmentation call.
type scorer struct {
	table model.Table
	fast  byteTable
	bias  int
	keys  keyBuilder
}

func newScorer(table model.Table, bias int) *scorer {
	s := &scorer{table: table, bias: bias}
	s.fast, _ = table.(byteTable)
	return s
}

// score returns bias plus the weights of all features present in the table.
// trace, when set, receives every key with a non-zero weight.
func (s *scorer) score(c *Context, trace func(key string, weight int)) int {
	total := s.bias
	for i := range templates {
		key := s.keys.build(&templates[i], c)

		var w int
		var ok bool
		if s.fast != nil {
			w, ok = s.fast.LookupBytes(key)
		} else {
			w, ok = s.table.Lookup(string(key))
		}
		if !ok || w == 0 {
			continue
		}
		total += w
		if trace != nil {
			trace(string(key), w)
		}
	}
	return total
}

// Score returns the boundary score of c against table.
func Score(table model.Table, bias int, c *Context) int {
	return newScorer(table, bias).score(c, nil)
}
