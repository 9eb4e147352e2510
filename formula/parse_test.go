package formula

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"sheetengine/grid"
)

func Test_ParseFormula(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Expr
		wantErr  bool
	}{
		{
			name:     "basic formula",
			input:    "1+1",
			expected: add(val(1), val(1)),
		},
		{
			name:     "ignore whitespace",
			input:    "  12 + 14",
			expected: add(val(12), val(14)),
		},
		{
			name:     "cell ref formula",
			input:    "A1*13",
			expected: mul(cellRef(0, 0), val(13)),
		},
		{
			name:  "mul before add",
			input: "A1*B2+C3*D4",
			expected: add(
				mul(cellRef(0, 0), cellRef(1, 1)),
				mul(cellRef(2, 2), cellRef(3, 3)),
			),
		},
		{
			name:     "unary minus",
			input:    "-123",
			expected: val(-123),
		},
		{
			name:     "unary plus is folded away",
			input:    "+123",
			expected: val(123),
		},
		{
			name:     "multiply a negative",
			input:    "-123*-456",
			expected: mul(val(-123), val(-456)),
		},
		{
			name:     "subtract from a negative",
			input:    "-123-456",
			expected: sub(val(-123), val(456)),
		},
		{
			name:     "division chain",
			input:    "A1/B2/C3/D4",
			expected: div(div(div(cellRef(0, 0), cellRef(1, 1)), cellRef(2, 2)), cellRef(3, 3)),
		},
		{
			name:     "parens override precedence",
			input:    "(1+2)*3",
			expected: mul(add(val(1), val(2)), val(3)),
		},
		{
			name:     "decimal and exponent literal",
			input:    "1.5+2e3",
			expected: add(val(1.5), val(2000)),
		},
		{
			name:     "out-of-range ref still parses",
			input:    "ZZZ9999+1",
			expected: add(CellRef{Pos: grid.Parse("ZZZ9999")}, val(1)),
		},
		{
			name:    "dangling operator",
			input:   "A1*",
			wantErr: true,
		},
		{
			name:    "unbalanced parens",
			input:   "(1+2",
			wantErr: true,
		},
		{
			name:    "empty expression",
			input:   "",
			wantErr: true,
		},
		{
			name:    "lexically invalid cell reference",
			input:   "A1B2+1",
			wantErr: true,
		},
		{
			name:    "unexpected character",
			input:   "1&2",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseFormula(tt.input)
			if tt.wantErr {
				require := assert.New(t)
				require.Error(err)
				require.True(errors.Is(err, ErrFormulaParse))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, parsed.(*formula).root)
		})
	}
}

func Test_Print_canonical(t *testing.T) {
	tests := map[string]string{
		"1+2*3":     "1+2*3",
		"(1+2)*3":   "(1+2)*3",
		"1-(2-3)":   "1-(2-3)",
		"1-2-3":     "1-2-3",
		"A1/B2/C3":  "A1/B2/C3",
		"8/(4/2)":   "8/(4/2)",
		"8/4/2":     "8/4/2",
		"-123*-456": "-123*-456",
		"-(A1+A2)":  "-(A1+A2)",
		"-(A1*A2)":  "-(A1*A2)",
	}
	for input, want := range tests {
		f, err := ParseFormula(input)
		assert.NoError(t, err, input)
		assert.Equal(t, want, f.String(), input)
	}
}

func Test_Print_idempotent(t *testing.T) {
	inputs := []string{"1+2*3", "(1+2)*3", "1-(2-3)", "1-2-3", "-123*-456", "A1/B2/C3*2-1"}
	for _, input := range inputs {
		f, err := ParseFormula(input)
		assert.NoError(t, err, input)
		again, err := ParseFormula(f.String())
		assert.NoError(t, err, input)
		assert.Equal(t, f.String(), again.String(), input)
	}
}

func Test_References(t *testing.T) {
	f, err := ParseFormula("B2+A1+B2+ZZZ9999")
	assert.NoError(t, err)
	assert.Equal(t, []grid.Position{
		grid.New(0, 0), // A1
		grid.New(1, 1), // B2
	}, f.References())
}

func Test_Evaluate(t *testing.T) {
	cells := map[grid.Position]CellValue{
		grid.New(0, 0): NewNumberValue(2),  // A1
		grid.New(1, 0): NewNumberValue(3),  // A2
		grid.New(2, 0): NewStringValue("text"),
	}
	lookup := func(p grid.Position) CellValue {
		if v, ok := cells[p]; ok {
			return v
		}
		return NewStringValue("")
	}

	tests := []struct {
		name    string
		expr    string
		wantNum float64
		wantErr ErrorKind
		isErr   bool
	}{
		{name: "add refs", expr: "A1+A2*2", wantNum: 8},
		{name: "empty cell is zero", expr: "B2+1", wantNum: 1},
		{name: "division by zero", expr: "1/0", isErr: true, wantErr: Arithmetic},
		{name: "text cell value error", expr: "A3+1", isErr: true, wantErr: Value},
		{name: "out of range ref", expr: "ZZZ9999+1", isErr: true, wantErr: Ref},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFormula(tt.expr)
			assert.NoError(t, err)
			got := f.Evaluate(lookup)
			if tt.isErr {
				assert.True(t, got.IsError())
				assert.Equal(t, tt.wantErr, got.Err().Kind)
				return
			}
			assert.True(t, got.IsNumber())
			assert.Equal(t, tt.wantNum, got.Number())
		})
	}
}

func sub(x, y Expr) Expr { return Binary{Op: '-', X: x, Y: y} }
func add(x, y Expr) Expr { return Binary{Op: '+', X: x, Y: y} }
func mul(x, y Expr) Expr { return Binary{Op: '*', X: x, Y: y} }
func div(x, y Expr) Expr { return Binary{Op: '/', X: x, Y: y} }
func val(x float64) Expr { return NumberLit{Value: x} }
func cellRef(row, col int) Expr {
	return CellRef{Pos: grid.New(row, col)}
}
