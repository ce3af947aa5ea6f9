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
	"image/color"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// FillMesh is a triangulation of the grid in which every triangle lies
// inside a single band.  Band i (0 <= i <= n for n levels) covers the
// values between level i-1 and level i; band 0 lies below the first level
// and band n above the last one.
type FillMesh struct {
	Points  []vec.Vec2   // three vertices per triangle
	Normals []Vec3       // one per vertex
	Colors  []color.RGBA // one per vertex
	Bands   []int        // one per triangle
	Cells   []FillCell
}

// FillCell locates the triangles of one grid cell in a FillMesh.
type FillCell struct {
	Row, Col int
	First    int // index of the first triangle
	Count    int // number of triangles
}

// Triangles returns the number of triangles in the mesh.
func (m *FillMesh) Triangles() int {
	return len(m.Bands)
}

// Triangle returns the vertices of triangle i.
func (m *FillMesh) Triangle(i int) [3]vec.Vec2 {
	return [3]vec.Vec2{m.Points[3*i], m.Points[3*i+1], m.Points[3*i+2]}
}

// Area returns the total area covered by the mesh, in grid units.
func (m *FillMesh) Area() float64 {
	var a float64
	for i := range m.Bands {
		t := m.Triangle(i)
		a += math.Abs(cross(t[1].Sub(t[0]), t[2].Sub(t[0]))) / 2
	}
	return a
}

// crossing lists the chords of one level inside the current cell.
type crossing struct {
	level  int
	n      int
	chords [2]chord
	saddle bool
}

// piece is a convex polygon, stored as the range arena[start:end] of the
// filler's point arena.
type piece struct {
	start, end int
}

// filler splits cells into bands.
//
// The cell square is split along the chords of every level crossing it, in
// ascending order of the levels.  After processing level i, the pieces
// below the level are final and belong to band i, while the pieces above
// are split further by the following levels.  Every level line is straight
// inside a cell, so all pieces are convex and can be emitted as triangle
// fans.
type filler struct {
	arena  []vec.Vec2
	active []piece
	next   []piece
	closed uint8 // bit k set once corner k is covered by an emitted piece
}

// fillCell appends the triangles of one cell to the mesh.
func (c *Contourer) fillCell(cl *cell, levels []float64, crossings []crossing, m *FillMesh, corners *[4]Vec3) {
	f := &c.filler
	f.arena = f.arena[:0]
	f.active = f.active[:0]
	f.closed = 0

	first := len(m.Bands)
	f.arena = append(f.arena,
		cl.corner(cornerA), cl.corner(cornerB), cl.corner(cornerD), cl.corner(cornerC))
	f.active = append(f.active, piece{0, 4})

	li, _ := slices.BinarySearch(levels, cl.min)
	ci := 0
	for ; li < len(levels) && len(f.active) > 0; li++ {
		v := levels[li]
		if v > cl.max {
			for _, p := range f.active {
				c.emitPiece(cl, p, li, len(levels), m, corners)
			}
			f.active = f.active[:0]
			break
		}
		for ci < len(crossings) && crossings[ci].level < li {
			ci++
		}
		if ci < len(crossings) && crossings[ci].level == li {
			c.splitLevel(cl, v, &crossings[ci], li, len(levels), m, corners)
			ci++
		}
	}
	for _, p := range f.active {
		c.emitPiece(cl, p, len(levels), len(levels), m, corners)
	}

	m.Cells = append(m.Cells, FillCell{
		Row:   cl.row,
		Col:   cl.col,
		First: first,
		Count: len(m.Bands) - first,
	})
}

// splitLevel splits all active pieces along the chords of one level.
// Pieces below the level are emitted with band index li, pieces above the
// level stay active.
func (c *Contourer) splitLevel(cl *cell, v float64, cr *crossing, li, n int, m *FillMesh, corners *[4]Vec3) {
	f := &c.filler
	f.next = f.next[:0]

	for _, p := range f.active {
		rest := p
		restHigh := false
		used := false
		for j := range cr.n {
			ch := &cr.chords[j]
			if ch.degenerate() {
				continue
			}
			if !cr.saddle {
				// The chord separates the corners into two groups of equal
				// status.  The corner farthest from the chord decides which
				// side is which.
				k, fk := farthestCorner(cl, ch)
				high := !(v > cl.v[k])
				side := math.Copysign(1, fk)
				c.assign(cl, f.clip(rest, ch, side), high, li, n, m, corners)
				rest = f.clip(rest, ch, -side)
				restHigh = !high
				used = true
				continue
			}

			// In a saddle cell each chord cuts off its corner from the
			// three others.
			side := sideOf(cl, ch)
			high := !(v > cl.v[ch.cut])
			c.assign(cl, f.clip(rest, ch, side), high, li, n, m, corners)
			rest = f.clip(rest, ch, -side)
			restHigh = !high
			used = true
		}
		if !used {
			// Only degenerate chords: the level touches the cell in the
			// cut corner, and the piece lies on the other side.
			cutHigh := !(v > cl.v[cr.chords[0].cut])
			c.assign(cl, p, !cutHigh, li, n, m, corners)
			continue
		}
		c.assign(cl, rest, restHigh, li, n, m, corners)
	}
	f.active, f.next = f.next, f.active
}

// assign emits the piece with band li if it lies below the level, or
// keeps it for the next level.
func (c *Contourer) assign(cl *cell, p piece, high bool, li, n int, m *FillMesh, corners *[4]Vec3) {
	if p.end-p.start < 3 {
		return
	}
	if high {
		c.filler.next = append(c.filler.next, p)
		return
	}
	c.emitPiece(cl, p, li, n, m, corners)
}

// chordSide returns f(x) = (q-p) × (x-p) for the chord p-q.  The sign
// tells on which side of the chord's supporting line the point x lies.
func chordSide(ch *chord, x vec.Vec2) float64 {
	return cross(ch.q.Sub(ch.p), x.Sub(ch.p))
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// farthestCorner returns the cell corner with the largest distance from the
// chord's supporting line, together with its side value.
func farthestCorner(cl *cell, ch *chord) (int, float64) {
	best, bestF := 0, 0.0
	for k := range 4 {
		fk := chordSide(ch, cl.corner(k))
		if math.Abs(fk) > math.Abs(bestF) {
			best, bestF = k, fk
		}
	}
	return best, bestF
}

// sideOf returns the sign of the side of the chord on which its cut corner
// lies.  If the corner is on the line, it is taken to be on the opposite
// side of the farthest corner.
func sideOf(cl *cell, ch *chord) float64 {
	fc := chordSide(ch, cl.corner(ch.cut))
	if math.Abs(fc) > sideEpsilon {
		return math.Copysign(1, fc)
	}
	_, fk := farthestCorner(cl, ch)
	return -math.Copysign(1, fk)
}

// clip returns the part of piece p on the side of the chord's supporting
// line given by the sign of side.  The result is appended to the arena.
func (f *filler) clip(p piece, ch *chord, side float64) piece {
	start := len(f.arena)
	n := p.end - p.start
	for i := range n {
		a := f.arena[p.start+i]
		b := f.arena[p.start+(i+1)%n]
		fa := side * chordSide(ch, a)
		fb := side * chordSide(ch, b)
		if fa >= 0 {
			f.arena = append(f.arena, a)
		}
		if (fa > 0 && fb < 0) || (fa < 0 && fb > 0) {
			f.arena = append(f.arena, a.Add(b.Sub(a).Mul(fa/(fa-fb))))
		}
	}
	return piece{start, len(f.arena)}
}

// emitPiece appends the piece to the mesh as a triangle fan.
func (c *Contourer) emitPiece(cl *cell, p piece, band, n int, m *FillMesh, corners *[4]Vec3) {
	f := &c.filler
	pts := f.arena[p.start:p.end]

	// drop repeated points
	k := 0
	for _, q := range pts {
		if k > 0 && near2(pts[k-1], q) {
			continue
		}
		pts[k] = q
		k++
	}
	for k > 1 && near2(pts[k-1], pts[0]) {
		k--
	}
	pts = pts[:k]
	if len(pts) < 3 {
		return
	}

	var touched uint8
	for _, q := range pts {
		for corner := range 4 {
			if q == cl.corner(corner) {
				touched |= 1 << corner
			}
		}
	}
	var area float64
	for i := 1; i+1 < len(pts); i++ {
		area += cross(pts[i].Sub(pts[0]), pts[i+1].Sub(pts[0]))
	}
	if math.Abs(area)/2 < sliverArea && touched&^f.closed == 0 {
		return
	}
	f.closed |= touched

	col := c.bandColor(band, n)
	for i := 1; i+1 < len(pts); i++ {
		for _, q := range [3]vec.Vec2{pts[0], pts[i], pts[i+1]} {
			m.Points = append(m.Points, q)
			m.Normals = append(m.Normals, normalAt(cl, corners, q))
			m.Colors = append(m.Colors, col)
		}
		m.Bands = append(m.Bands, band)
	}
}

// bandColor returns the colour of band i out of n+1 bands.
func (c *Contourer) bandColor(i, n int) color.RGBA {
	if i < len(c.BandColors) {
		return c.BandColors[i]
	}
	g := uint8(128)
	if n > 0 {
		g = uint8(math.Round(255 * float64(i) / float64(n)))
	}
	return color.RGBA{R: g, G: g, B: g, A: 255}
}

func near2(a, b vec.Vec2) bool {
	d := b.Sub(a)
	return d.Dot(d) < degenerateLength2
}

// Numerical tolerances for the fill.
const (
	// sideEpsilon is the side value below which a point counts as lying on
	// a chord's supporting line.
	sideEpsilon = 1e-12

	// sliverArea is the area below which a piece which only touches
	// already covered corners is dropped.
	sliverArea = 1e-9
)
