package board

// The battle grid is a 5x5 torus. Coordinates run -2..2 on both axes and
// wrap on overflow, so every tile has exactly four orthogonal neighbours.

const (
	// Size is the side length of the square grid.
	Size = 5
	// Min and Max bound each coordinate axis.
	Min = -2
	Max = 2
)

// Facing is one of the four cardinal directions.
type Facing string

const (
	FacingNorth Facing = "N"
	FacingEast  Facing = "E"
	FacingSouth Facing = "S"
	FacingWest  Facing = "W"
)

// Valid reports whether f is one of the four cardinal facings.
func (f Facing) Valid() bool {
	switch f {
	case FacingNorth, FacingEast, FacingSouth, FacingWest:
		return true
	}
	return false
}

// RotateRight returns the facing after a 90-degree clockwise turn.
func (f Facing) RotateRight() Facing {
	switch f {
	case FacingNorth:
		return FacingEast
	case FacingEast:
		return FacingSouth
	case FacingSouth:
		return FacingWest
	default:
		return FacingNorth
	}
}

// RotateLeft returns the facing after a 90-degree counter-clockwise turn.
func (f Facing) RotateLeft() Facing {
	return f.RotateRight().RotateRight().RotateRight()
}

// Opposite returns the facing after a 180-degree turn.
func (f Facing) Opposite() Facing {
	return f.RotateRight().RotateRight()
}

// Position is a tile on the toroidal grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// wrapCoord maps any integer into the -2..2 range modulo the grid size.
func wrapCoord(v int) int {
	v = (v - Min) % Size
	if v < 0 {
		v += Size
	}
	return v + Min
}

// Wrap normalizes p onto the grid.
func Wrap(p Position) Position {
	return Position{X: wrapCoord(p.X), Y: wrapCoord(p.Y)}
}

// Translate moves p by (dx, dy) with toroidal wrap-around.
func Translate(p Position, dx, dy int) Position {
	return Wrap(Position{X: p.X + dx, Y: p.Y + dy})
}

// Offset is a relative tile expressed in the actor's local frame, with +Y
// meaning "forward" when facing north.
type Offset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Rotate expresses the offset in absolute grid axes for the given facing.
func (o Offset) Rotate(f Facing) Offset {
	switch f {
	case FacingEast:
		return Offset{DX: o.DY, DY: -o.DX}
	case FacingSouth:
		return Offset{DX: -o.DX, DY: -o.DY}
	case FacingWest:
		return Offset{DX: -o.DY, DY: o.DX}
	default: // north: local frame is the grid frame
		return o
	}
}

// Resolve rotates each offset by facing and translates it from origin,
// producing the absolute target tiles in offset order.
func Resolve(origin Position, facing Facing, offsets []Offset) []Position {
	out := make([]Position, 0, len(offsets))
	for _, o := range offsets {
		r := o.Rotate(facing)
		out = append(out, Translate(origin, r.DX, r.DY))
	}
	return out
}

// StepOffset returns the unit offset one tile ahead for the given facing.
func StepOffset(f Facing) Offset {
	return Offset{DX: 0, DY: 1}.Rotate(f)
}

// axisDistance is the wrapped distance along one axis.
func axisDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if Size-d < d {
		d = Size - d
	}
	return d
}

// Distance is the Manhattan distance between two tiles over the torus.
func Distance(a, b Position) int {
	return axisDistance(a.X, b.X) + axisDistance(a.Y, b.Y)
}

// Adjacent reports whether a and b are orthogonal neighbours (not diagonal).
func Adjacent(a, b Position) bool {
	return Distance(a, b) == 1
}
