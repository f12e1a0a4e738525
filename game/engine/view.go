package engine

import "strings"

// Board glyphs
const (
	GlyphEmpty = '.'
	GlyphWall  = '#'
	GlyphHead  = '@'
	GlyphBody  = 'o'
	GlyphFood  = '*'
)

// KindAt classifies the cell at c. Anything outside the interior is a wall.
func (gs *GameState) KindAt(c Cell) CellKind {
	if !gs.Bounds.Contains(c) {
		return Wall
	}
	if len(gs.Snake) > 0 && gs.Snake[0] == c {
		return Head
	}
	for _, s := range gs.Snake {
		if s == c {
			return Body
		}
	}
	if gs.Food == c {
		return Apple
	}
	return Empty
}

// GenerateLocalView creates list of 8 surrounding cells around the head
func (gs *GameState) GenerateLocalView() []SurroundingCell {
	if len(gs.Snake) == 0 {
		return nil
	}
	head := gs.Snake[0]

	offsets := []struct{ dx, dy int }{
		{0, -1},  // North
		{1, -1},  // North-East
		{1, 0},   // East
		{1, 1},   // South-East
		{0, 1},   // South
		{-1, 1},  // South-West
		{-1, 0},  // West
		{-1, -1}, // North-West
	}

	surroundings := make([]SurroundingCell, len(offsets))
	for i, o := range offsets {
		c := Cell{X: head.X + o.dx, Y: head.Y + o.dy}
		surroundings[i] = SurroundingCell{X: c.X, Y: c.Y, Kind: gs.KindAt(c)}
	}
	return surroundings
}

// LocalGrid renders the 3x3 neighbourhood of the head, one string per row
func (gs *GameState) LocalGrid() []string {
	if len(gs.Snake) == 0 {
		return nil
	}
	head := gs.Snake[0]
	lines := make([]string, 0, 3)
	for dy := -1; dy <= 1; dy++ {
		var row strings.Builder
		for dx := -1; dx <= 1; dx++ {
			row.WriteRune(glyph(gs.KindAt(Cell{X: head.X + dx, Y: head.Y + dy})))
		}
		lines = append(lines, row.String())
	}
	return lines
}

// RenderBoard draws the whole grid including the wall border
func (gs *GameState) RenderBoard() []string {
	kinds := make(map[Cell]CellKind, len(gs.Snake)+1)
	kinds[gs.Food] = Apple
	for i := len(gs.Snake) - 1; i >= 0; i-- {
		kinds[gs.Snake[i]] = Body
	}
	if len(gs.Snake) > 0 {
		kinds[gs.Snake[0]] = Head
	}

	lines := make([]string, 0, gs.Bounds.Height+2)
	for y := 0; y <= gs.Bounds.Height+1; y++ {
		var row strings.Builder
		for x := 0; x <= gs.Bounds.Width+1; x++ {
			c := Cell{X: x, Y: y}
			kind, ok := kinds[c]
			switch {
			case !gs.Bounds.Contains(c):
				kind = Wall
			case !ok:
				kind = Empty
			}
			row.WriteRune(glyph(kind))
		}
		lines = append(lines, row.String())
	}
	return lines
}

func glyph(kind CellKind) rune {
	switch kind {
	case Wall:
		return GlyphWall
	case Head:
		return GlyphHead
	case Body:
		return GlyphBody
	case Apple:
		return GlyphFood
	default:
		return GlyphEmpty
	}
}
