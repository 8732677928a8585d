package reverie

import "math"

// defaultCellSize is used when a SpatialGrid is constructed with a
// non-positive cell size.
const defaultCellSize = 10.0

// cellKey identifies one uniform grid cell by floored coordinates.
type cellKey struct {
	x, y, z int
}

// SpatialGrid is a uniform-cell neighbor index for approximate proximity
// queries. It holds no state across ticks: the owner must call Clear before
// reinserting each tick — there is no automatic invalidation.
type SpatialGrid struct {
	cellSize float64
	cells    map[cellKey][]int
	queryBuf []int
}

// NewSpatialGrid creates a grid with the given cell size. A non-positive
// size falls back to a default.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

// Clear empties every cell while keeping bucket capacity for reuse.
func (g *SpatialGrid) Clear() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
}

// Insert buckets index by the floored position/cellSize coordinate.
func (g *SpatialGrid) Insert(index int, pos Vec3) {
	k := g.keyFor(pos)
	g.cells[k] = append(g.cells[k], index)
}

// Nearby returns the indices stored in every cell within the
// ceil(radius/cellSize) ring around pos, without distance filtering —
// callers must re-filter by exact distance. The returned slice is reused by
// the next Nearby call and must not be retained.
func (g *SpatialGrid) Nearby(pos Vec3, radius float64) []int {
	g.queryBuf = g.queryBuf[:0]
	ring := int(math.Ceil(radius / g.cellSize))
	center := g.keyFor(pos)
	for dx := -ring; dx <= ring; dx++ {
		for dy := -ring; dy <= ring; dy++ {
			for dz := -ring; dz <= ring; dz++ {
				k := cellKey{center.x + dx, center.y + dy, center.z + dz}
				g.queryBuf = append(g.queryBuf, g.cells[k]...)
			}
		}
	}
	return g.queryBuf
}

func (g *SpatialGrid) keyFor(pos Vec3) cellKey {
	return cellKey{
		x: int(math.Floor(pos.X / g.cellSize)),
		y: int(math.Floor(pos.Y / g.cellSize)),
		z: int(math.Floor(pos.Z / g.cellSize)),
	}
}
