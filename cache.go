// seehuhn.de/go/contour - contour lines and filled bands for gridded data
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package contour

// Cache keeps per-grid scratch memory between contouring passes, keyed by
// the grid dimensions.  A single Cache can be shared by several Contourers
// which work on grids of the same shapes.
//
// A Cache is not safe for concurrent use; callers must serialise access.
type Cache struct {
	grids map[[2]int]*scratch
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{grids: make(map[[2]int]*scratch)}
}

// Len returns the number of grid shapes held by the cache.
func (c *Cache) Len() int {
	return len(c.grids)
}

// Clear drops all cached scratch memory.
func (c *Cache) Clear() {
	clear(c.grids)
}

func (c *Cache) get(rows, cols int) *scratch {
	key := [2]int{rows, cols}
	s, ok := c.grids[key]
	if !ok {
		s = newScratch(rows, cols)
		c.grids[key] = s
	}
	return s
}

// scratch holds the buffers whose size is determined by the grid shape.
type scratch struct {
	rows, cols int
	skip       []bool // per cell, true if a corner value is missing
	normals    []Vec3 // per sample
	tiles      []tileIndex
}

func newScratch(rows, cols int) *scratch {
	return &scratch{
		rows: rows,
		cols: cols,
		skip: make([]bool, (rows-1)*(cols-1)),
	}
}

// markMissing records which cells of g have a NaN corner.
func (s *scratch) markMissing(g *Grid) {
	cellRows := g.Rows - 1
	for col := range g.Cols - 1 {
		for row := range cellRows {
			s.skip[col*cellRows+row] = g.cellMissing(row, col)
		}
	}
}
