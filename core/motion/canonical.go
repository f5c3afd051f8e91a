package motion

// Canonicalize reduces p to a minimal equivalent program:
//
// (1) pen commands which do not change the pen state are dropped;
//
// (2) of consecutive moves only the last one is kept. If it omits a
// coordinate, the value of a preceding move of the run is carried into it.
//
// Comments and blank lines neither interrupt a run of moves nor count as
// state changes. Dropped commands are kept as comments, so a canonical
// program still documents what has been removed.
func (p Program) Canonicalize() Program {
	c := coalesceMoves(dropRedundantPens(p))
	tracer().Debugf("canonicalized program of %d commands", len(c))
	return c
}

func dropRedundantPens(p Program) Program {
	out := p.Clone()
	var current Op // zero value: pen state unknown
	for i, c := range out {
		if c.Op != OpPenUp && c.Op != OpPenDown {
			continue
		}
		if c.Op == current {
			out[i] = cleaned(c)
			continue
		}
		current = c.Op
	}
	return out
}

// coalesceMoves keeps the last of each run of moves. The kept move inherits
// unset coordinates from the moves it replaces. Any command other than a
// move, comment or blank line ends a run.
func coalesceMoves(p Program) Program {
	out := p.Clone()
	pending := -1 // index of the move which may still be replaced
	for i, c := range out {
		switch c.Op {
		case OpComment, OpNone:
			continue
		case OpMove:
			if pending >= 0 {
				prev := out[pending]
				if c.X.IsNone() {
					c.X = prev.X
				}
				if c.Y.IsNone() {
					c.Y = prev.Y
				}
				out[i] = c
				out[pending] = cleaned(prev)
			}
			pending = i
		default:
			pending = -1
		}
	}
	return out
}

func cleaned(c Command) Command {
	return Comment(c.String() + " cleaned")
}
