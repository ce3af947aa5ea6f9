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
	"math"

	"seehuhn.de/go/geom/vec"
)

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

func (v Vec3) Mul(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Cross returns the cross product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length.  If v is (almost) zero,
// the upward normal (0, 0, 1) is returned.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if !(l > zeroNormalLength) {
		return Up
	}
	return v.Mul(1 / l)
}

// Up is the normal of the untransformed grid plane.
var Up = Vec3{X: 0, Y: 0, Z: 1}

// Projector maps grid coordinates to world space.
type Projector interface {
	Project(row, col float64) Vec3
}

// HeightField projects a grid onto the surface z = Scale*value.
// Missing values are placed at z = 0.
type HeightField struct {
	Grid  *Grid
	Scale float64
}

// Project implements the [Projector] interface, using bilinear
// interpolation between the grid samples.
func (h HeightField) Project(row, col float64) Vec3 {
	g := h.Grid
	r0 := min(max(int(math.Floor(row)), 0), g.Rows-1)
	c0 := min(max(int(math.Floor(col)), 0), g.Cols-1)
	r1 := min(r0+1, g.Rows-1)
	c1 := min(c0+1, g.Cols-1)
	fr := row - float64(r0)
	fc := col - float64(c0)

	z := (1-fr)*(1-fc)*h.value(r0, c0) + fr*(1-fc)*h.value(r1, c0) +
		(1-fr)*fc*h.value(r0, c1) + fr*fc*h.value(r1, c1)
	return Vec3{X: row, Y: col, Z: h.Scale * z}
}

func (h HeightField) value(row, col int) float64 {
	v := h.Grid.At(row, col)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// GridNormals computes a unit surface normal for every grid sample, using
// central differences of the projected neighbours (one-sided at the
// border).  The normals are stored in column-major order like the grid
// values.  The slice dst is reused if it is large enough.
func GridNormals(p Projector, rows, cols int, dst []Vec3) []Vec3 {
	n := rows * cols
	dst = growTo(dst, n)[:n]
	for col := range cols {
		c0, c1 := max(col-1, 0), min(col+1, cols-1)
		for row := range rows {
			r0, r1 := max(row-1, 0), min(row+1, rows-1)
			du := p.Project(float64(r1), float64(col)).Sub(p.Project(float64(r0), float64(col)))
			dv := p.Project(float64(row), float64(c1)).Sub(p.Project(float64(row), float64(c0)))
			dst[col*rows+row] = du.Cross(dv).Normalize()
		}
	}
	return dst
}

// normalAt interpolates the corner normals of a cell at point p, along the
// cell edge closest to p, and re-normalises the result.
func normalAt(c *cell, corners *[4]Vec3, p vec.Vec2) Vec3 {
	fr := p.X - float64(c.row)
	fc := p.Y - float64(c.col)

	// distances to the edges AC (fr=0), BD (fr=1), AB (fc=0), CD (fc=1)
	var n Vec3
	best := fr
	n = lerp3(corners[cornerA], corners[cornerC], fc)
	if d := 1 - fr; d < best {
		best = d
		n = lerp3(corners[cornerB], corners[cornerD], fc)
	}
	if fc < best {
		best = fc
		n = lerp3(corners[cornerA], corners[cornerB], fr)
	}
	if d := 1 - fc; d < best {
		n = lerp3(corners[cornerC], corners[cornerD], fr)
	}
	return n.Normalize()
}

func lerp3(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// zeroNormalLength is the length below which a normal vector is replaced
// by Up.
const zeroNormalLength = 1e-12
