package formula

import (
	"math"
	"strconv"
)

// evalNode recursively evaluates e against lookup. It returns a
// non-nil *FormulaError the instant one surfaces anywhere in the
// subtree; the first error found wins, left operand before right.
func evalNode(e Expr, lookup Lookup) (float64, *FormulaError) {
	switch n := e.(type) {
	case NumberLit:
		return n.Value, nil

	case CellRef:
		if !n.Pos.IsValid() {
			return 0, &FormulaError{Kind: Ref}
		}
		v := lookup(n.Pos)
		switch {
		case v.IsError():
			err := v.Err()
			return 0, &err
		case v.IsNumber():
			return v.Number(), nil
		default: // string
			s := v.Text()
			if s == "" {
				return 0, nil
			}
			f, parseErr := strconv.ParseFloat(s, 64)
			if parseErr != nil {
				return 0, &FormulaError{Kind: Value}
			}
			return f, nil
		}

	case Unary:
		x, err := evalNode(n.X, lookup)
		if err != nil {
			return 0, err
		}
		return -x, nil

	case Binary:
		x, err := evalNode(n.X, lookup)
		if err != nil {
			return 0, err
		}
		y, err := evalNode(n.Y, lookup)
		if err != nil {
			return 0, err
		}
		var result float64
		switch n.Op {
		case '+':
			result = x + y
		case '-':
			result = x - y
		case '*':
			result = x * y
		case '/':
			result = x / y
		}
		if !isFinite(result) {
			return 0, &FormulaError{Kind: Arithmetic}
		}
		return result, nil
	}
	return 0, &FormulaError{Kind: Arithmetic}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
