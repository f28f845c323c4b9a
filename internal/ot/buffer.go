package ot

import "strings"

// Buffer is the multi-line character grid a document's revisions are
// applied to. It always holds at least one row (possibly empty).
type Buffer struct {
	rows [][]rune
}

// NewBuffer returns an empty buffer: a single empty row.
func NewBuffer() *Buffer {
	return &Buffer{rows: [][]rune{{}}}
}

// Render joins the rows with a single newline.
func (b *Buffer) Render() string {
	lines := make([]string, len(b.rows))
	for i, row := range b.rows {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// Apply mutates the buffer in place according to op's semantics. Callers
// (the Document, via the transform pipeline) are responsible for
// producing operations whose coordinates are valid against the current
// buffer; Apply does no clamping beyond what the invariants imply, and
// an out-of-range access here signals a transform bug upstream.
func (b *Buffer) Apply(op Operation) {
	switch v := op.(type) {
	case Insert:
		b.applyInsert(v)
	case Delete:
		b.applyDelete(v)
	case Identity:
		// no-op
	default:
		panic("ot: Buffer.Apply: unknown operation kind")
	}
}

func (b *Buffer) applyInsert(op Insert) {
	r, c := op.Position.Row, op.Position.Column

	if op.Character == '\n' {
		row := b.rows[r]
		left := append([]rune{}, row[:c]...)
		right := append([]rune{}, row[c:]...)

		b.rows[r] = left
		b.rows = append(b.rows, nil)
		copy(b.rows[r+2:], b.rows[r+1:])
		b.rows[r+1] = right
		return
	}

	row := b.rows[r]
	row = append(row, 0)
	copy(row[c+1:], row[c:])
	row[c] = op.Character
	b.rows[r] = row
}

func (b *Buffer) applyDelete(op Delete) {
	r, c := op.Position.Row, op.Position.Column

	if c == RowJoin {
		row := b.rows[r]
		b.rows = append(b.rows[:r], b.rows[r+1:]...)
		b.rows[r-1] = append(b.rows[r-1], row...)
		return
	}

	row := b.rows[r]
	b.rows[r] = append(row[:c], row[c+1:]...)
}
