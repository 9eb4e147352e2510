package formula

import "strconv"

type valueKind int

const (
	kindString valueKind = iota
	kindNumber
	kindError
)

// CellValue is the sum type a cell reports as its value: a string, a
// double, or a FormulaError. The zero value is the empty string, the
// same value an Empty cell reports.
type CellValue struct {
	kind valueKind
	str  string
	num  float64
	err  FormulaError
}

// NewStringValue wraps s as a string CellValue.
func NewStringValue(s string) CellValue { return CellValue{kind: kindString, str: s} }

// NewNumberValue wraps n as a numeric CellValue.
func NewNumberValue(n float64) CellValue { return CellValue{kind: kindNumber, num: n} }

// NewErrorValue wraps e as an error CellValue.
func NewErrorValue(e FormulaError) CellValue { return CellValue{kind: kindError, err: e} }

func (v CellValue) IsString() bool { return v.kind == kindString }
func (v CellValue) IsNumber() bool { return v.kind == kindNumber }
func (v CellValue) IsError() bool  { return v.kind == kindError }

// Text returns the raw string contents; only meaningful when IsString.
func (v CellValue) Text() string { return v.str }

// Number returns the numeric contents; only meaningful when IsNumber.
func (v CellValue) Number() float64 { return v.num }

// Err returns the error contents; only meaningful when IsError.
func (v CellValue) Err() FormulaError { return v.err }

// String renders the value the way PrintValues displays it: a string
// verbatim, a number in default formatting, an error as its tag.
func (v CellValue) String() string {
	switch v.kind {
	case kindString:
		return v.str
	case kindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case kindError:
		return v.err.String()
	default:
		return ""
	}
}
