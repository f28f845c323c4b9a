package ot

// Transform returns op1' such that applying op2 followed by op1' yields
// the same state as applying op1 against the pre-op2 state. Transform is
// a pure, deterministic mapping; it never mutates either operand.
//
// This generalizes github.com/shiv248/operational-transformation-go's
// linear Retain/Insert/Delete transform to the row/column model: the
// four-case dispatch table (insert-insert, insert-delete, delete-insert,
// delete-delete) below is the direct row/column analogue of that
// library's single Insert/Delete position arithmetic.
func Transform(op1, op2 Operation) Operation {
	if op1.Kind() == KindIdentity || op2.Kind() == KindIdentity {
		return op1
	}

	switch a := op1.(type) {
	case Insert:
		switch b := op2.(type) {
		case Insert:
			return transformInsertInsert(a, b)
		case Delete:
			return transformInsertDelete(a, b)
		}
	case Delete:
		switch b := op2.(type) {
		case Insert:
			return transformDeleteInsert(a, b)
		case Delete:
			return transformDeleteDelete(a, b)
		}
	}

	panic("ot: Transform: unhandled operand kinds")
}

// transformInsertInsert is T_II. The author tie-break is the sole total
// ordering between simultaneous same-position inserts; it is applied
// identically on both sides of the diamond so the two orderings converge
// (TP1, §8 P5).
func transformInsertInsert(op1, op2 Insert) Operation {
	if before(op1.Position, op2.Position) ||
		(same(op1.Position, op2.Position) && op1.By < op2.By) {
		return op1
	}

	if op2.Character == '\n' {
		return Insert{Position: Position{Row: op1.Position.Row + 1, Column: op1.Position.Column}, Character: op1.Character, By: op1.By}
	}
	if op2.Position.Row == op1.Position.Row {
		return Insert{Position: Position{Row: op1.Position.Row, Column: op1.Position.Column + 1}, Character: op1.Character, By: op1.By}
	}
	return op1
}

// transformInsertDelete is T_ID.
func transformInsertDelete(op1 Insert, op2 Delete) Operation {
	if before(op1.Position, op2.Position) || same(op1.Position, op2.Position) {
		return op1
	}

	if op2.Position.Column == RowJoin {
		return Insert{Position: Position{Row: op1.Position.Row - 1, Column: op1.Position.Column}, Character: op1.Character, By: op1.By}
	}
	if op2.Position.Row == op1.Position.Row {
		return Insert{Position: Position{Row: op1.Position.Row, Column: op1.Position.Column - 1}, Character: op1.Character, By: op1.By}
	}
	return op1
}

// transformDeleteInsert is T_DI. Note the asymmetry with T_II: when the
// two operations are at the same position, op1 (the delete) is treated
// as later and index-shifted — it is not given a tie-break.
func transformDeleteInsert(op1 Delete, op2 Insert) Operation {
	if before(op1.Position, op2.Position) {
		return op1
	}

	if op2.Character == '\n' {
		return Delete{Position: Position{Row: op1.Position.Row + 1, Column: op1.Position.Column}, By: op1.By}
	}
	if op2.Position.Row == op1.Position.Row {
		return Delete{Position: Position{Row: op1.Position.Row, Column: op1.Position.Column + 1}, By: op1.By}
	}
	return op1
}

// transformDeleteDelete is T_DD. Same-position deletes collapse to
// Identity: one side has already performed the delete.
func transformDeleteDelete(op1, op2 Delete) Operation {
	if before(op1.Position, op2.Position) {
		return op1
	}
	if !same(op1.Position, op2.Position) {
		if op2.Position.Column == RowJoin {
			return Delete{Position: Position{Row: op1.Position.Row - 1, Column: op1.Position.Column}, By: op1.By}
		}
		if op2.Position.Row == op1.Position.Row {
			return Delete{Position: Position{Row: op1.Position.Row, Column: op1.Position.Column - 1}, By: op1.By}
		}
		return op1
	}
	return Identity{By: op1.By}
}

// TransformMultiple lifts Transform to two concurrent sequences L and R
// sharing a common base. It returns (L', R') such that applying L then
// L' reaches the same state as applying R then R' (the "diamond"
// construction, §4.3): L' is R transformed against all of L, what the
// left side must still apply; R' is L transformed against all of R.
func TransformMultiple(left, right []Operation) (leftPrime, rightPrime []Operation) {
	curRight := right
	rightPrime = make([]Operation, 0, len(left))

	for _, opLeft := range left {
		nextRight := make([]Operation, 0, len(curRight))
		curLeft := opLeft

		for _, opRight := range curRight {
			nextRight = append(nextRight, Transform(opRight, curLeft))
			curLeft = Transform(curLeft, opRight)
		}

		rightPrime = append(rightPrime, curLeft)
		curRight = nextRight
	}

	leftPrime = curRight
	return leftPrime, rightPrime
}
