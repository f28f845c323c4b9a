package document

import "github.com/andrewq/collabcode/internal/ot"

// Revision is an atomic, authored, ordered batch of operations the
// document has committed to its log. RevisionNum equals the index at
// which it is stored; it is assigned once, at append time, and never
// changes (Document invariant I2).
type Revision struct {
	Changes     []ot.Operation
	Author      string
	RevisionNum int
}
