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

// Corners of a grid cell.  A cell with upper-left sample (r, c) has
//
//	A = (r, c)     C = (r, c+1)
//	B = (r+1, c)   D = (r+1, c+1)
const (
	cornerA = iota
	cornerB
	cornerC
	cornerD
)

// edge identifies a cell edge.  Edges always run from the corner with the
// lower index to the corner with the higher index, so that two cells sharing
// an edge compute bit-identical crossing points.
type edge uint8

const (
	edgeAB edge = iota
	edgeAC
	edgeBD
	edgeCD
)

var edgeEnds = [4][2]int{
	edgeAB: {cornerA, cornerB},
	edgeAC: {cornerA, cornerC},
	edgeBD: {cornerB, cornerD},
	edgeCD: {cornerC, cornerD},
}

// cellCase is the topology of a level inside a cell, after folding the
// codes 8-15 onto 7-0.  Code bits are set for corners below the level:
// A=1, B=2, C=4, D=8.
type cellCase uint8

const (
	caseEmpty  cellCase = iota // the level does not cross the cell
	caseA                      // corner A separated from B, C, D
	caseB                      // corner B separated
	caseAB                     // A, B separated from C, D
	caseC                      // corner C separated
	caseAC                     // A, C separated from B, D
	caseSaddle                 // A, D opposite to B, C
	caseD                      // corner D separated
)

// saddle selects one of the two ways to resolve a saddle cell.
type saddle uint8

const (
	saddleCutBC saddle = iota // B and C cut off, A and D connected
	saddleCutAD               // A and D cut off, B and C connected
)

// chordShape describes a chord by its two edges and the corner it cuts off.
type chordShape struct {
	e   [2]edge
	cut int
}

var singleChords = [8]chordShape{
	caseA:  {e: [2]edge{edgeAB, edgeAC}, cut: cornerA},
	caseB:  {e: [2]edge{edgeAB, edgeBD}, cut: cornerB},
	caseAB: {e: [2]edge{edgeAC, edgeBD}, cut: cornerA},
	caseC:  {e: [2]edge{edgeAC, edgeCD}, cut: cornerC},
	caseAC: {e: [2]edge{edgeAB, edgeCD}, cut: cornerA},
	caseD:  {e: [2]edge{edgeBD, edgeCD}, cut: cornerD},
}

var saddleChords = [2][2]chordShape{
	saddleCutBC: {
		{e: [2]edge{edgeAB, edgeBD}, cut: cornerB},
		{e: [2]edge{edgeAC, edgeCD}, cut: cornerC},
	},
	saddleCutAD: {
		{e: [2]edge{edgeAB, edgeAC}, cut: cornerA},
		{e: [2]edge{edgeBD, edgeCD}, cut: cornerD},
	},
}

// cell holds the corner values of one grid cell.
type cell struct {
	row, col int
	v        [4]float64 // values at the corners A, B, C, D
	min, max float64
}

// corner returns the grid coordinates of corner k.
func (c *cell) corner(k int) vec.Vec2 {
	return vec.Vec2{X: float64(c.row + (k & 1)), Y: float64(c.col + (k >> 1))}
}

// chord is the part of a level line inside one cell.
type chord struct {
	p, q vec.Vec2   // endpoints on the edges e[0] and e[1]
	t    [2]float64 // interpolation parameters along the edges
	e    [2]edge
	cut  int // the corner on the far side of the chord
}

// degenerate reports whether the chord has (almost) zero length.
func (ch *chord) degenerate() bool {
	d := ch.q.Sub(ch.p)
	return d.Dot(d) < degenerateLength2
}

// caseOf returns the folded marching squares code of the cell for the
// given level.  The corner tests are made in the order A, B, C, D.
func caseOf(c *cell, level float64) cellCase {
	code := 0
	if level > c.v[cornerA] {
		code |= 1
	}
	if level > c.v[cornerB] {
		code |= 2
	}
	if level > c.v[cornerC] {
		code |= 4
	}
	if level > c.v[cornerD] {
		code |= 8
	}
	if code > 7 {
		code = 15 - code
	}
	return cellCase(code)
}

// resolveSaddle decides which pair of corners a saddle cell cuts off,
// using the average of the four corner values as the value at the centre.
func resolveSaddle(c *cell, level float64) saddle {
	avg := (c.v[0] + c.v[1] + c.v[2] + c.v[3]) / 4
	if math.Abs(avg-level) < saddleEpsilon {
		return saddleCutBC
	}
	centreHigh := avg > level
	bLow := level > c.v[cornerB]
	if bLow == centreHigh {
		return saddleCutBC
	}
	return saddleCutAD
}

// classify finds the chords of the given level inside the cell.
// The chords are written to out and their number (0, 1 or 2) is returned.
func classify(c *cell, level float64, out *[2]chord) (cellCase, int) {
	cc := caseOf(c, level)
	switch cc {
	case caseEmpty:
		return cc, 0
	case caseSaddle:
		shapes := &saddleChords[resolveSaddle(c, level)]
		c.chord(level, shapes[0], &out[0])
		c.chord(level, shapes[1], &out[1])
		return cc, 2
	default:
		c.chord(level, singleChords[cc], &out[0])
		return cc, 1
	}
}

// chord fills in the chord with the given shape.
func (c *cell) chord(level float64, shape chordShape, out *chord) {
	out.e = shape.e
	out.cut = shape.cut
	out.p, out.t[0] = c.crossing(level, shape.e[0])
	out.q, out.t[1] = c.crossing(level, shape.e[1])
}

// crossing returns the point where the level crosses edge e, together
// with the interpolation parameter from the edge's first corner.
func (c *cell) crossing(level float64, e edge) (vec.Vec2, float64) {
	i, j := edgeEnds[e][0], edgeEnds[e][1]
	vi, vj := c.v[i], c.v[j]

	var t float64
	if d := vj - vi; math.Abs(d) > flatEdgeEpsilon {
		t = (level - vi) / d
	}

	p := c.corner(i)
	q := c.corner(j)
	return p.Add(q.Sub(p).Mul(t)), t
}

// lerpByte interpolates between two channel values.
func lerpByte(a, b byte, t float64) byte {
	fa := float64(a)
	v := math.Round(fa + t*(float64(b)-fa))
	return byte(min(max(v, 0), 255))
}

// Numerical tolerances for cell classification.
const (
	// saddleEpsilon is the distance between the level and the centre value
	// below which saddle cells are resolved as saddleCutBC.
	saddleEpsilon = 1e-12

	// flatEdgeEpsilon is the smallest value difference along an edge for
	// which the crossing point is interpolated.  Flatter edges are crossed
	// at their first corner.
	flatEdgeEpsilon = 1e-300

	// degenerateLength2 is the squared length below which a chord counts
	// as a single point.
	degenerateLength2 = 1e-12
)
