package step

import (
	"strconv"
	"strings"
)

// Encoder writes parameters in the same shape Decoder reads them: commas
// between siblings, nothing else.
type Encoder struct {
	b       *strings.Builder
	levels  []int
	claimed bool
}

func NewEncoder(b *strings.Builder) *Encoder {
	return &Encoder{b: b, levels: []int{0}}
}

func (e *Encoder) slot() {
	if e.claimed {
		return
	}
	top := len(e.levels) - 1
	if e.levels[top] > 0 {
		e.b.WriteByte(',')
	}
	e.levels[top]++
	e.claimed = true
}

func (e *Encoder) write(s string) {
	e.slot()
	e.b.WriteString(s)
	e.claimed = false
}

// Open starts a nested list as the next parameter.
func (e *Encoder) Open() {
	e.slot()
	e.b.WriteByte('(')
	e.claimed = false
	e.levels = append(e.levels, 0)
}

func (e *Encoder) Close() {
	e.b.WriteByte(')')
	if top := len(e.levels) - 1; top > 0 {
		e.levels = e.levels[:top]
	}
	e.claimed = false
}

// Keyword starts a typed parameter such as IFCLABEL('x'). It must be
// followed by Open.
func (e *Encoder) Keyword(keyword string) {
	e.slot()
	e.b.WriteString(keyword)
}

// Label writes raw string content between quotes. The content is expected
// to be escaped already.
func (e *Encoder) Label(raw string) {
	e.write("'" + raw + "'")
}

func (e *Encoder) Real(v float64) {
	e.write(FormatReal(v))
}

func (e *Encoder) Integer(v int64) {
	e.write(strconv.FormatInt(v, 10))
}

func (e *Encoder) Enum(name string) {
	e.write("." + name + ".")
}

func (e *Encoder) Ref(id ID) {
	e.write(id.String())
}

func (e *Encoder) Omitted() {
	e.write("$")
}

func (e *Encoder) Inherited() {
	e.write("*")
}

// Raw writes a literal exactly as given.
func (e *Encoder) Raw(text string) {
	e.write(text)
}
