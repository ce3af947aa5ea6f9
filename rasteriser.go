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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// polyEdge is a polygon edge in device coordinates.
type polyEdge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser converts the polygons and line segments of a contour plot
// into anti-aliased pixel coverage, using the nonzero winding rule.
// Coverage is delivered row by row to an emit callback.
//
// The caller creates one instance and reuses it; internal buffers grow as
// needed but never shrink.  A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps grid coordinates to device coordinates.
	// Must be a non-singular matrix.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.
	// Must have integer-aligned coordinates.
	Clip rect.Rect

	// Flatness is the tolerance for approximating round caps, in device
	// pixels.
	Flatness float64

	// Width is the line width for StrokeSegments, in grid units.
	Width float64

	// Cap is the cap style for segment ends.
	Cap graphics.LineCapStyle

	// Internal buffers (reused across calls)
	cover     []float32  // cover change per pixel; reused as output
	area      []float32  // area within pixel
	edges     []polyEdge // edges of the current shape
	activeIdx []int      // indices of active edges
	crossings []float64  // y values where an edge crosses pixel boundaries
	outline   []vec.Vec2 // outline of the current stroked segment

	edgeBBoxFirst bool
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewRasteriser creates a new Rasteriser with the given clip rectangle,
// identity CTM, unit line width and butt caps.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default settings with the given clip rectangle,
// keeping the internal buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1.0
	r.Cap = graphics.LineCapButt

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.crossings = r.crossings[:0]
	r.outline = r.outline[:0]
}

// FillPolygon fills the closed polygon pts.
// The coverage slice passed to emit is only valid for the duration of the
// callback.
func (r *Rasteriser) FillPolygon(pts []vec.Vec2, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	r.addPolygon(pts)
	r.fill(emit)
}

// FillPath fills a path made of straight lines, such as the output of
// Strip.Path or Label.Path.  Every subpath is closed implicitly.
func (r *Rasteriser) FillPath(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	var current, start vec.Vec2
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addEdge(current, start)
			}
			current = p.Coords[coordIdx]
			start = current
			coordIdx++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[coordIdx])
			current = p.Coords[coordIdx]
			coordIdx++
		case path.CmdQuadTo:
			current = p.Coords[coordIdx+1]
			coordIdx += 2
		case path.CmdCubeTo:
			current = p.Coords[coordIdx+2]
			coordIdx += 3
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
	if current != start {
		r.addEdge(current, start)
	}
	r.fill(emit)
}

// StrokeSegments draws the line segments pts[2k]-pts[2k+1] with the
// current width and cap style.  Overlapping segments are painted once.
func (r *Rasteriser) StrokeSegments(pts []vec.Vec2, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	d := r.Width / 2
	for i := 0; i+1 < len(pts); i += 2 {
		r.strokeSegment(pts[i], pts[i+1], d)
	}
	r.fill(emit)
}

// strokeSegment adds the outline of one stroked segment to the edge list.
func (r *Rasteriser) strokeSegment(a, b vec.Vec2, d float64) {
	t := b.Sub(a)
	l := t.Length()
	if l < zeroLengthThreshold {
		return
	}
	t = t.Mul(1 / l)
	n := vec.Vec2{X: -t.Y, Y: t.X} // normal (90° CCW from t)

	r.outline = r.outline[:0]
	switch r.Cap {
	case graphics.LineCapSquare:
		a = a.Sub(t.Mul(d))
		b = b.Add(t.Mul(d))
		r.outline = append(r.outline, a.Add(n.Mul(d)), b.Add(n.Mul(d)), b.Sub(n.Mul(d)), a.Sub(n.Mul(d)))
	case graphics.LineCapRound:
		r.outline = append(r.outline, a.Add(n.Mul(d)), b.Add(n.Mul(d)))
		r.addArc(b, d, n, -math.Pi)
		r.outline = append(r.outline, a.Sub(n.Mul(d)))
		r.addArc(a, d, n.Mul(-1), -math.Pi)
	default:
		r.outline = append(r.outline, a.Add(n.Mul(d)), b.Add(n.Mul(d)), b.Sub(n.Mul(d)), a.Sub(n.Mul(d)))
	}
	r.addPolygon(r.outline)
}

// addArc appends the points of a circular arc to the outline, excluding
// the start point.  startDir is the unit vector from the centre to the
// start of the arc, sweep is the angle in radians (positive = CCW).
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64) {
	devRadius := max(r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())

	// For a chord subtending angle θ, the sagitta is radius*(1-cos(θ/2)).
	n := 1
	if devRadius > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step > 0 && !math.IsNaN(step) {
			n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
		}
	}

	dt := sweep / float64(n)
	for i := 1; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.outline = append(r.outline, center.Add(dir.Mul(radius)))
	}
}

// transformLinear applies only the 2×2 linear part of the CTM.
func (r *Rasteriser) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true
}

// addPolygon adds the edges of a closed polygon.
func (r *Rasteriser) addPolygon(pts []vec.Vec2) {
	for i, p := range pts {
		r.addEdge(p, pts[(i+1)%len(pts)])
	}
}

// addEdge adds an edge given in grid coordinates.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	dx0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	dy0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	dx1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	dy1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, polyEdge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeDevXMin, r.edgeDevXMax = min(dx0, dx1), max(dx0, dx1)
		r.edgeDevYMin, r.edgeDevYMax = min(dy0, dy1), max(dy0, dy1)
		r.edgeBBoxFirst = false
		return
	}
	r.edgeDevXMin = min(r.edgeDevXMin, dx0, dx1)
	r.edgeDevXMax = max(r.edgeDevXMax, dx0, dx1)
	r.edgeDevYMin = min(r.edgeDevYMin, dy0, dy1)
	r.edgeDevYMax = max(r.edgeDevYMax, dy0, dy1)
}

// fill rasterises the collected edges scanline by scanline, using an
// active edge list.
//
// For every pixel two values are accumulated: cover, the signed vertical
// extent of the edges crossing the pixel, and area, the same weighted by
// the horizontal position of the crossing.  Integrating along the row
// gives the signed area of the shape inside each pixel.
func (r *Rasteriser) fill(emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.edgeDevXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.edgeDevXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.edgeDevYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.edgeDevYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b polyEdge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})
	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for nextEdge < len(r.edges) && min(r.edges[nextEdge].y0, r.edges[nextEdge].y1) < yfNext {
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			if r.accumulateEdge(e, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// accumulateEdge adds the contribution of edge e within scanline y to the
// cover and area buffers, which are indexed by x-xMin.  Edges left of the
// buffer contribute to its first pixel.  It reports whether the edge
// intersects the scanline.
func (r *Rasteriser) accumulateEdge(e *polyEdge, y, xMin, xMax int) bool {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < xMin {
		v := sign * float32(yBot-yTop)
		r.cover[0] += v
		r.area[0] += v
		return true
	}
	if pixLeft >= xMax {
		return true
	}

	// split the edge where it crosses pixel columns
	r.crossings = append(r.crossings[:0], yTop, yBot)
	if pixLeft != pixRight {
		dydx := 1 / e.dxdy
		for x := pixLeft + 1; x <= pixRight; x++ {
			if yAtX := e.y0 + dydx*(float64(x)-e.x0); yAtX > yTop && yAtX < yBot {
				r.crossings = append(r.crossings, yAtX)
			}
		}
		slices.Sort(r.crossings)
	}

	for i := range len(r.crossings) - 1 {
		y0, y1 := r.crossings[i], r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		v := sign * float32(y1-y0)
		xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		pix := int(math.Floor(xMid))
		switch {
		case pix < xMin:
			r.cover[0] += v
			r.area[0] += v
		case pix < xMax:
			idx := pix - xMin
			r.cover[idx] += v
			r.area[idx] += v * float32(1-(xMid-float64(pix)))
		}
	}
	return true
}

// integrateScanline converts accumulated cover/area values into coverage
// using the nonzero winding rule.  The cover slice is modified in place.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero portion of coverage and its offset.
// It returns nil, 0 if coverage is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage) - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// defaultFlatness is the default tolerance for round caps, in device
// pixels.
const defaultFlatness = 0.25

// Numerical tolerances for the rasteriser.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the minimum length of a stroked segment.
	zeroLengthThreshold = 1e-10
)
