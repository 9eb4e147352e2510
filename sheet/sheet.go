// Package sheet implements the spreadsheet's cell store: a sparse grid
// of Cells keyed by Position, the forward dependency graph that keeps
// formula edits cycle-free, and the printable-bounds bookkeeping that
// makes iterating the sparse grid well defined.
package sheet

import (
	"fmt"
	"io"

	"golang.org/x/exp/maps"

	"sheetengine/formula"
	"sheetengine/grid"
)

// Sheet owns the sparse cell store, the forward dependency graph
// ("cell -> positions it reads"), and the printable-bounds summary,
// and enforces the all-or-nothing SetCell edit protocol that keeps all
// three consistent.
type Sheet struct {
	cells map[grid.Position]*Cell
	// deps maps a formula cell to the set of positions it reads. Only
	// formula cells ever have a non-empty entry; no entry and an empty
	// set are treated as equivalent.
	deps map[grid.Position]map[grid.Position]struct{}

	maxUsedRow int
	maxUsedCol int
}

// New returns a newly constructed empty Sheet.
func New() *Sheet {
	return &Sheet{
		cells:      make(map[grid.Position]*Cell),
		deps:       make(map[grid.Position]map[grid.Position]struct{}),
		maxUsedRow: -1,
		maxUsedCol: -1,
	}
}

// CreateSheet is the free factory at the package boundary.
func CreateSheet() *Sheet { return New() }

// lookup is the formula.Lookup a Cell's formula evaluates against: a
// position absent from cells reads as empty rather than being
// auto-created.
func (s *Sheet) lookup(pos grid.Position) formula.CellValue {
	cell, ok := s.cells[pos]
	if !ok {
		return formula.NewStringValue("")
	}
	return cell.GetValue()
}

// SetCell validates pos, parses a throwaway formula and checks it for
// cycles before touching any state, then installs. Any returned error
// leaves the Sheet bytewise unchanged.
func (s *Sheet) SetCell(pos grid.Position, text string) error {
	if !pos.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}

	isFormula := len(text) >= 2 && text[0] == '='
	var newRefs []grid.Position
	if isFormula {
		f, err := formula.ParseFormula(text[1:])
		if err != nil {
			return err
		}
		newRefs = f.References()
		if s.wouldCreateCycle(pos, newRefs) {
			return fmt.Errorf("%w: setting %s would create a cycle", ErrCircularRef, pos)
		}
	}

	cell, existed := s.cells[pos]
	wasNonEmpty := existed
	if !existed {
		cell = newCell(s)
	}

	if err := cell.Set(text); err != nil {
		return err
	}

	if isFormula {
		s.relinkDependencies(pos, newRefs)
	} else {
		s.clearDependencies(pos)
	}

	nowNonEmpty := text != ""
	if nowNonEmpty {
		s.cells[pos] = cell
	} else {
		delete(s.cells, pos)
	}

	s.updateBounds(pos, nowNonEmpty, wasNonEmpty)
	return nil
}

// GetCell returns the cell stored at pos, or nil if the position holds
// no cell. Go has no const/non-const method split, so a single method
// covers both a read-only and a mutable lookup.
func (s *Sheet) GetCell(pos grid.Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	return s.cells[pos], nil
}

// ClearCell removes the cell at pos, if any, clearing its outgoing
// dependency edges and recomputing bounds.
func (s *Sheet) ClearCell(pos grid.Position) error {
	if !pos.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	cell, ok := s.cells[pos]
	if !ok {
		return nil
	}
	cell.Clear()
	delete(s.cells, pos)
	s.clearDependencies(pos)
	s.recomputeBounds()
	return nil
}

// GetPrintableSize returns (max_used_row+1, max_used_col+1), or (0, 0)
// when the sheet has no non-empty cells.
func (s *Sheet) GetPrintableSize() (rows, cols int) {
	if s.maxUsedRow < 0 || s.maxUsedCol < 0 {
		return 0, 0
	}
	return s.maxUsedRow + 1, s.maxUsedCol + 1
}

// PrintValues writes each cell's displayed value, tab-separated within
// a row and newline-terminated, over the printable bounds.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.printGrid(w, func(c *Cell) string { return c.GetValue().String() })
}

// PrintTexts writes each cell's raw text the same way PrintValues
// writes values.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.printGrid(w, func(c *Cell) string { return c.GetText() })
}

func (s *Sheet) printGrid(w io.Writer, field func(*Cell) string) error {
	rows, cols := s.GetPrintableSize()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if cell, ok := s.cells[grid.New(r, c)]; ok {
				if _, err := io.WriteString(w, field(cell)); err != nil {
					return err
				}
			}
			if c+1 < cols {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// wouldCreateCycle checks the pre-edit graph only: a cycle through pos
// must pass through at least one newly proposed dependency from which
// pos is already reachable, including pos appearing in its own new
// dependency list.
func (s *Sheet) wouldCreateCycle(pos grid.Position, newRefs []grid.Position) bool {
	for _, dep := range newRefs {
		if s.hasPath(dep, pos) {
			return true
		}
	}
	return false
}

// hasPath reports whether to is reachable from from by following
// existing dependency edges, including the trivial from == to case.
func (s *Sheet) hasPath(from, to grid.Position) bool {
	if from == to {
		return true
	}
	visited := make(map[grid.Position]struct{})
	stack := []grid.Position{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		for next := range s.deps[cur] {
			if next == to {
				return true
			}
			stack = append(stack, next)
		}
	}
	return false
}

// relinkDependencies replaces pos's outgoing edge set with refs,
// reusing and clearing the existing set rather than reallocating.
func (s *Sheet) relinkDependencies(pos grid.Position, refs []grid.Position) {
	if len(refs) == 0 {
		delete(s.deps, pos)
		return
	}
	set, ok := s.deps[pos]
	if ok {
		maps.Clear(set)
	} else {
		set = make(map[grid.Position]struct{}, len(refs))
		s.deps[pos] = set
	}
	for _, r := range refs {
		set[r] = struct{}{}
	}
}

func (s *Sheet) clearDependencies(pos grid.Position) {
	if set, ok := s.deps[pos]; ok {
		maps.Clear(set)
		delete(s.deps, pos)
	}
}

// updateBounds widens the bounds in O(1) when pos becomes/remains
// non-empty; shrinking requires a full scan, done only when the
// edited cell was non-empty and is now empty.
func (s *Sheet) updateBounds(pos grid.Position, nowNonEmpty, wasNonEmpty bool) {
	switch {
	case nowNonEmpty:
		if pos.Row > s.maxUsedRow {
			s.maxUsedRow = pos.Row
		}
		if pos.Col > s.maxUsedCol {
			s.maxUsedCol = pos.Col
		}
	case wasNonEmpty:
		s.recomputeBounds()
	}
}

func (s *Sheet) recomputeBounds() {
	s.maxUsedRow, s.maxUsedCol = -1, -1
	for p := range s.cells {
		if p.Row > s.maxUsedRow {
			s.maxUsedRow = p.Row
		}
		if p.Col > s.maxUsedCol {
			s.maxUsedCol = p.Col
		}
	}
}
