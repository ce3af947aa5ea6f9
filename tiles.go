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

import (
	"math/rand/v2"
	"slices"
)

// Strip assembly for HARD grids:
//
// Matching every new segment against every open strip is quadratic in the
// number of strips, which is too slow for noisy grids with many short
// contours.  Instead, segments are binned into a coarse grid of tiles.
// Each tile is then turned into (at most) one strip by walking from a
// random starting segment through the neighbouring cells of a local lookup
// table, and only these tile strips are merged globally.

// tileEntry is a segment together with the cell it was found in.
type tileEntry struct {
	v        int // first vertex index of the segment
	row, col int
}

// tileIndex bins the segments of one level by tile.
type tileIndex struct {
	th, tw int // tile height and width, in cells
	nr, nc int // number of tile rows and columns
	tiles  [][]tileEntry
}

// reset prepares the index for a grid of cellRows × cellCols cells, split
// into about perSide × perSide tiles.
func (ti *tileIndex) reset(cellRows, cellCols, perSide int) {
	perSide = max(perSide, 1)
	ti.th = max(ceilDiv(cellRows, perSide), 1)
	ti.tw = max(ceilDiv(cellCols, perSide), 1)
	ti.nr = ceilDiv(cellRows, ti.th)
	ti.nc = ceilDiv(cellCols, ti.tw)

	n := ti.nr * ti.nc
	ti.tiles = growTo(ti.tiles, n)[:n]
	for i := range ti.tiles {
		ti.tiles[i] = ti.tiles[i][:0]
	}
}

// add records segment k, found in the given cell.
func (ti *tileIndex) add(k, row, col int) {
	t := (row/ti.th)*ti.nc + col/ti.tw
	ti.tiles[t] = append(ti.tiles[t], tileEntry{v: 2 * k, row: row, col: col})
}

// tileWalker turns the contents of a tile into a strip.
// The buffers are reused between tiles.
type tileWalker struct {
	vb          *vertexBuffer
	rng         *rand.Rand
	maxSteps    int
	maxAttempts int

	local  []int32 // (lr*tw+lc)*2+slot -> entry+1, negated once visited
	slotOf []int   // entry -> position in local, or -1
	chain  []int   // entries visited by the current walk
	best   []int   // entries of the longest walk so far
}

func (w *tileWalker) near(i, j int) bool {
	dx := w.vb.x[i] - w.vb.x[j]
	dy := w.vb.y[i] - w.vb.y[j]
	return dx*dx+dy*dy < matchDistance2
}

// build returns the longest strip found in tile t, or nil if the tile is
// empty.  The indices of all segments which are not part of the strip are
// appended to loose.
func (w *tileWalker) build(ti *tileIndex, t int, loose []int) (*strip, []int) {
	entries := ti.tiles[t]
	if len(entries) == 0 {
		return nil, loose
	}
	r0 := (t / ti.nc) * ti.th
	c0 := (t % ti.nc) * ti.tw

	size := ti.th * ti.tw * 2
	w.local = slices.Grow(w.local[:0], size)[:size]
	clear(w.local)
	w.slotOf = slices.Grow(w.slotOf[:0], len(entries))[:len(entries)]
	for i, e := range entries {
		pos := ((e.row-r0)*ti.tw + (e.col - c0)) * 2
		switch {
		case w.local[pos] == 0:
			w.local[pos] = int32(i + 1)
		case w.local[pos+1] == 0:
			pos++
			w.local[pos] = int32(i + 1)
		default:
			pos = -1
		}
		w.slotOf[i] = pos
	}

	var best *strip
	w.best = w.best[:0]
	for range w.maxAttempts {
		start := w.pickStart(len(entries))
		if start < 0 {
			break
		}
		s := w.walk(ti, entries, r0, c0, start)
		if best == nil || len(w.chain) > len(w.best) {
			w.unmark(w.best)
			best = s
			w.best, w.chain = w.chain, w.best
		} else {
			w.unmark(w.chain)
		}
		if len(w.best) == len(entries) {
			break
		}
	}

	for i, e := range entries {
		if pos := w.slotOf[i]; pos < 0 || w.local[pos] > 0 {
			loose = append(loose, e.v/2)
		}
	}
	return best, loose
}

// pickStart returns a random entry which has a slot and is not yet
// visited, or -1 if there is none.
func (w *tileWalker) pickStart(n int) int {
	i := w.rng.IntN(n)
	for k := range n {
		j := (i + k) % n
		if pos := w.slotOf[j]; pos >= 0 && w.local[pos] > 0 {
			return j
		}
	}
	return -1
}

// walk grows a strip from entry start in both directions, until no
// continuation is found or the step limit is reached.
func (w *tileWalker) walk(ti *tileIndex, entries []tileEntry, r0, c0, start int) *strip {
	w.chain = w.chain[:0]
	e := entries[start]
	s := newStrip(e.v, e.v+1)
	w.mark(start)

	steps := 0
	for dir := range 2 {
		cur := start
		open := e.v + 1
		if dir == 1 {
			open = e.v
		}
		for ; steps < w.maxSteps; steps++ {
			next, from := w.step(ti, entries, r0, c0, cur, open)
			if next < 0 {
				break
			}
			v := entries[next].v
			other := 2*v + 1 - from
			if dir == 0 {
				s.pushBack(from, other)
			} else {
				s.pushFront(other, from)
			}
			w.mark(next)
			cur, open = next, other
		}
	}
	return s
}

// step looks for an unvisited segment with an endpoint at vertex open in
// the 3×3 block of cells around the cell of entry cur.  It returns the entry
// and its matching vertex, or -1 if there is none.
func (w *tileWalker) step(ti *tileIndex, entries []tileEntry, r0, c0, cur, open int) (int, int) {
	e := entries[cur]
	for dr := -1; dr <= 1; dr++ {
		lr := e.row + dr - r0
		if lr < 0 || lr >= ti.th {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			lc := e.col + dc - c0
			if lc < 0 || lc >= ti.tw {
				continue
			}
			base := (lr*ti.tw + lc) * 2
			for slot := range 2 {
				id := w.local[base+slot]
				if id <= 0 {
					continue
				}
				j := int(id - 1)
				v := entries[j].v
				if w.near(v, open) {
					return j, v
				}
				if w.near(v+1, open) {
					return j, v + 1
				}
			}
		}
	}
	return -1, 0
}

func (w *tileWalker) mark(j int) {
	pos := w.slotOf[j]
	w.local[pos] = -w.local[pos]
	w.chain = append(w.chain, j)
}

func (w *tileWalker) unmark(chain []int) {
	for _, j := range chain {
		pos := w.slotOf[j]
		w.local[pos] = -w.local[pos]
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Default limits for the tile walk.
const (
	defaultTilesPerSide = 20
	defaultTileSteps    = 4096
	defaultTileAttempts = 4
)
