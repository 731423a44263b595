package kdtree

import (
	"slices"
	"strconv"
	"strings"
)

// Point is one input vector together with its position in the source sequence.
type Point struct {
	Coords []int64
	Index  int
}

// NewPoints wraps raw rows as points. A row's position becomes its Index.
// Rows are not copied.
func NewPoints(rows [][]int64) []Point {
	pts := make([]Point, len(rows))
	for i, r := range rows {
		pts[i] = Point{Coords: r, Index: i}
	}
	return pts
}

// Dims returns the number of coordinates.
func (p Point) Dims() int { return len(p.Coords) }

// Clone returns a deep copy of p.
func (p Point) Clone() Point {
	return Point{Coords: slices.Clone(p.Coords), Index: p.Index}
}

// Equal reports whether p and o have the same coordinates and index.
func (p Point) Equal(o Point) bool {
	return p.Index == o.Index && slices.Equal(p.Coords, o.Coords)
}

// String formats the coordinates as a comma-separated list.
func (p Point) String() string {
	var sb strings.Builder
	for i, c := range p.Coords {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(c, 10))
	}
	return sb.String()
}
