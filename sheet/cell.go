package sheet

import (
	"strings"

	"sheetengine/formula"
	"sheetengine/grid"
)

type cellKind int

const (
	kindEmpty cellKind = iota
	kindText
	kindFormula
)

// Cell holds one of three content variants: empty, literal text, or a
// parsed formula. It keeps a back-reference
// to its owning Sheet only to supply the lookup callable a Formula
// needs to evaluate; a Cell never mutates Sheet state itself.
type Cell struct {
	owner *Sheet
	kind  cellKind
	raw   string // raw text for kindText, apostrophe (if any) included
	f     formula.Formula
}

func newCell(owner *Sheet) *Cell {
	return &Cell{owner: owner}
}

// Set classifies text and installs the corresponding content variant:
// empty text clears the cell, "=" followed by at least one character
// parses a formula, anything else (including the bare string "=" and
// apostrophe-escaped text) is literal text. A parse failure from a
// formula leaves the cell's previous content untouched.
func (c *Cell) Set(text string) error {
	switch {
	case text == "":
		c.kind = kindEmpty
		c.raw = ""
		c.f = nil
	case len(text) >= 2 && text[0] == '=':
		f, err := formula.ParseFormula(text[1:])
		if err != nil {
			return err
		}
		c.kind = kindFormula
		c.f = f
		c.raw = ""
	default:
		c.kind = kindText
		c.raw = text
		c.f = nil
	}
	return nil
}

// Clear restores the Empty variant.
func (c *Cell) Clear() {
	c.kind = kindEmpty
	c.raw = ""
	c.f = nil
}

// GetText returns the authoritative, round-trippable textual form:
// the raw text for a text cell (apostrophe included), "=" plus the
// formula's canonical print for a formula cell, or "" when empty.
func (c *Cell) GetText() string {
	switch c.kind {
	case kindText:
		return c.raw
	case kindFormula:
		return "=" + c.f.String()
	default:
		return ""
	}
}

// GetValue returns the cell's observable value: the text with a
// leading apostrophe stripped for a text cell, the formula's
// evaluated result for a formula cell, or the empty string when empty.
func (c *Cell) GetValue() formula.CellValue {
	switch c.kind {
	case kindText:
		if strings.HasPrefix(c.raw, "'") {
			return formula.NewStringValue(c.raw[1:])
		}
		return formula.NewStringValue(c.raw)
	case kindFormula:
		return c.f.Evaluate(c.owner.lookup)
	default:
		return formula.NewStringValue("")
	}
}

// GetReferencedCells returns the sorted, de-duplicated list of valid
// positions this cell's formula reads, or nil for a non-formula cell.
func (c *Cell) GetReferencedCells() []grid.Position {
	if c.kind != kindFormula {
		return nil
	}
	return c.f.References()
}
