// Package ot implements Operational Transformation for the collaborative
// document: the pairwise transform, the sequence ("diamond") transform,
// and the text-buffer model those transforms are interpreted against.
//
// This is a row/column generalization of the linear-offset OT model
// shipped by github.com/shiv248/operational-transformation-go: instead
// of Retain/Insert/Delete over a flat string, positions here are
// (row, column) pairs over a multi-line buffer, and newline insertion /
// row-join deletion are first-class operation effects rather than
// substring splices.
package ot

// Position is a zero-indexed (row, column) pair.
//
// column == -1 is reserved for Delete operations and means "merge this
// row into the previous row" (row join). It is never valid on Insert.
type Position struct {
	Row    int
	Column int
}

// RowJoin is the sentinel column value marking a row-merge delete.
const RowJoin = -1

// before reports whether a occurs strictly earlier in reading order than b.
func before(a, b Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}

// same reports whether a and b address the same cell.
func same(a, b Position) bool {
	return a.Row == b.Row && a.Column == b.Column
}
