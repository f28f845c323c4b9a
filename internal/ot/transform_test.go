package ot

import "testing"

func apply(text string, op Operation) string {
	b := bufferFrom(text)
	b.Apply(op)
	return b.Render()
}

func bufferFrom(text string) *Buffer {
	rows := [][]rune{{}}
	rowIdx := 0
	for _, r := range text {
		if r == '\n' {
			rows = append(rows, nil)
			rowIdx++
			continue
		}
		rows[rowIdx] = append(rows[rowIdx], r)
	}
	return &Buffer{rows: rows}
}

// TestTransformConvergence checks TP1: applying op2 then Transform(op1,
// op2) reaches the same text as applying op1 then Transform(op2, op1).
func TestTransformConvergence(t *testing.T) {
	cases := []struct {
		name     string
		base     string
		op1, op2 Operation
	}{
		{
			name: "two inserts same row",
			base: "ac",
			op1:  Insert{Position: Position{0, 1}, Character: 'b', By: "alice"},
			op2:  Insert{Position: Position{0, 1}, Character: 'x', By: "bob"},
		},
		{
			name: "insert and delete disjoint",
			base: "abc",
			op1:  Insert{Position: Position{0, 0}, Character: 'z', By: "alice"},
			op2:  Delete{Position: Position{0, 2}, By: "bob"},
		},
		{
			name: "two deletes same cell",
			base: "abc",
			op1:  Delete{Position: Position{0, 1}, By: "alice"},
			op2:  Delete{Position: Position{0, 1}, By: "bob"},
		},
		{
			name: "newline split vs later insert",
			base: "abcd",
			op1:  Insert{Position: Position{0, 2}, Character: '\n', By: "alice"},
			op2:  Insert{Position: Position{0, 3}, Character: 'x', By: "bob"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op1Prime := Transform(tc.op1, tc.op2)
			op2Prime := Transform(tc.op2, tc.op1)

			left := apply(apply(tc.base, tc.op2), op1Prime)
			right := apply(apply(tc.base, tc.op1), op2Prime)

			if left != right {
				t.Fatalf("convergence violated: op2 then op1'=%q, op1 then op2'=%q", left, right)
			}
		})
	}
}

func TestTransformIdentityNeutral(t *testing.T) {
	id := Identity{By: "alice"}
	ins := Insert{Position: Position{0, 0}, Character: 'x', By: "bob"}

	if got := Transform(ins, id); got != Operation(ins) {
		t.Fatalf("Transform(ins, id) = %+v, want ins unchanged", got)
	}
	if got := Transform(id, ins); got != Operation(id) {
		t.Fatalf("Transform(id, ins) = %+v, want id unchanged", got)
	}
}

func TestTransformDeleteDeleteSameCellCollapsesToIdentity(t *testing.T) {
	op1 := Delete{Position: Position{2, 3}, By: "alice"}
	op2 := Delete{Position: Position{2, 3}, By: "bob"}

	got := Transform(op1, op2)
	id, ok := got.(Identity)
	if !ok {
		t.Fatalf("Transform(op1, op2) = %+v (%T), want Identity", got, got)
	}
	if id.By != "alice" {
		t.Fatalf("Identity.By = %q, want %q", id.By, "alice")
	}
}

func TestTransformInsertInsertAuthorTieBreak(t *testing.T) {
	alice := Insert{Position: Position{0, 1}, Character: 'a', By: "alice"}
	bob := Insert{Position: Position{0, 1}, Character: 'b', By: "bob"}

	// alice < bob lexically, so alice's insert is treated as earlier:
	// transforming alice against bob leaves alice's position untouched.
	alicePrime := transformInsertInsert(alice, bob)
	if alicePrime.(Insert).Position != (Position{0, 1}) {
		t.Fatalf("alice' position = %+v, want unshifted", alicePrime.(Insert).Position)
	}

	// bob, transformed against alice, shifts right by one column.
	bobPrime := transformInsertInsert(bob, alice)
	if bobPrime.(Insert).Position != (Position{0, 2}) {
		t.Fatalf("bob' position = %+v, want shifted by one", bobPrime.(Insert).Position)
	}
}

func TestTransformMultipleDiamond(t *testing.T) {
	base := "ac"

	left := []Operation{Insert{Position: Position{0, 1}, Character: 'b', By: "alice"}}
	right := []Operation{Insert{Position: Position{0, 1}, Character: 'x', By: "bob"}}

	leftPrime, rightPrime := TransformMultiple(left, right)

	leftPath := base
	for _, op := range left {
		leftPath = apply(leftPath, op)
	}
	for _, op := range leftPrime {
		leftPath = apply(leftPath, op)
	}

	rightPath := base
	for _, op := range right {
		rightPath = apply(rightPath, op)
	}
	for _, op := range rightPrime {
		rightPath = apply(rightPath, op)
	}

	if leftPath != rightPath {
		t.Fatalf("diamond did not converge: %q vs %q", leftPath, rightPath)
	}
}

func TestTransformMultipleEmptySequences(t *testing.T) {
	leftPrime, rightPrime := TransformMultiple(nil, nil)
	if len(leftPrime) != 0 || len(rightPrime) != 0 {
		t.Fatalf("TransformMultiple(nil, nil) = %v, %v, want both empty", leftPrime, rightPrime)
	}
}
