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
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Label is a numeric label placed into a gap of a contour line.
//
// The points Points[First+1:Last] of the labelled strip are removed from
// the line output.  The connectors join the remaining line ends to the
// outline of the label box.
type Label struct {
	Level int // index into Result.Levels
	Strip int // index into Result.Strips
	Text  string

	First, Last int

	Anchor  vec.Vec2 // the midpoint of the strip
	Tangent vec.Vec2 // unit vector along the text baseline
	Normal  Vec3     // surface normal at the anchor

	// HalfWidth is half the width of the label, in grid units.
	HalfWidth float64

	Glyphs     LineSet // glyph outlines
	Connectors LineSet // two segments
	Bounds     rect.Rect
}

// Path returns the glyph outlines of the label as a path.
func (l *Label) Path() *path.Data {
	p := &path.Data{}
	pts := l.Glyphs.Points
	for i := 0; i+1 < len(pts); i += 2 {
		if i == 0 || pts[i] != pts[i-1] {
			p = p.MoveTo(pts[i])
		}
		p = p.LineTo(pts[i+1])
	}
	return p
}

// placeLabel tries to place a label with the value of level li at the
// middle of the polyline pts.  It fails if the polyline is too short for
// the label, if the line doubles back onto itself, or if the label would
// overlap a label placed earlier.
func (c *Contourer) placeLabel(pts []vec.Vec2, colors [][]byte, li int, level float64) (Label, bool) {
	n := len(pts)
	mid := n / 2
	anchor := pts[mid]

	text := strconv.FormatFloat(level, 'g', 6, 64)
	size := c.LabelSize * c.LabelScale
	width := c.glyphs.width(text)
	hw := 0.5 * width * size
	if !(hw > 0) {
		return Label{}, false
	}

	lo := mid
	for lo > 0 && dist(pts[lo], anchor) <= hw {
		lo--
	}
	hi := mid
	for hi < n-1 && dist(pts[hi], anchor) <= hw {
		hi++
	}
	dLo, dHi := dist(pts[lo], anchor), dist(pts[hi], anchor)
	if dLo <= hw || dHi <= hw {
		return Label{}, false
	}

	t := pts[hi].Sub(pts[lo])
	tl := t.Length()
	if tl < minLabelChord {
		return Label{}, false
	}
	t = t.Mul(1 / tl)
	if t.Y < 0 || (t.Y == 0 && t.X > 0) {
		t = t.Mul(-1)
	}

	// glyph space: x along the baseline, y up, text centred on the origin
	m := matrix.Matrix{t.X * size, t.Y * size, -t.Y * size, t.X * size, anchor.X, anchor.Y}
	glyphs := c.glyphBuf[:0]
	glyphs, _ = c.glyphs.layout(text, glyphs)
	offset := vec.Vec2{X: -width / 2, Y: -0.5}
	bounds := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for i, g := range glyphs {
		g = g.Add(offset)
		p := vec.Vec2{
			X: m[0]*g.X + m[2]*g.Y + m[4],
			Y: m[1]*g.X + m[3]*g.Y + m[5],
		}
		glyphs[i] = p
		bounds.LLx = min(bounds.LLx, p.X)
		bounds.LLy = min(bounds.LLy, p.Y)
		bounds.URx = max(bounds.URx, p.X)
		bounds.URy = max(bounds.URy, p.Y)
	}
	c.glyphBuf = glyphs
	for _, r := range c.placed {
		if overlaps(r, bounds) {
			return Label{}, false
		}
	}
	c.placed = append(c.placed, bounds)

	channels := len(colors)
	lab := Label{
		Level:     li,
		Text:      text,
		First:     lo,
		Last:      hi,
		Anchor:    anchor,
		Tangent:   t,
		Normal:    c.normalAt(anchor),
		HalfWidth: hw,
		Bounds:    bounds,
	}

	lab.Glyphs.reset(channels)
	lab.Glyphs.Points = append(lab.Glyphs.Points, glyphs...)
	for range len(glyphs) / 2 {
		lab.Glyphs.Levels = append(lab.Glyphs.Levels, li)
	}
	for ch := range channels {
		v := colors[ch][mid]
		if len(c.LabelColor) > 0 {
			v = c.LabelColor[ch]
		}
		col := make([]byte, len(glyphs))
		for i := range col {
			col[i] = v
		}
		lab.Glyphs.Colors[ch] = col
	}

	// The connectors run from the ends of the gap to the label box, at the
	// distance hw from the anchor.
	lab.Connectors.reset(channels)
	for _, end := range [2]int{lo, hi} {
		p := pts[end]
		d := p.Sub(anchor)
		q := anchor.Add(d.Mul(hw / d.Length()))
		lab.Connectors.Points = append(lab.Connectors.Points, p, q)
		lab.Connectors.Levels = append(lab.Connectors.Levels, li)
		for ch := range channels {
			v := colors[ch][end]
			if len(c.LabelColor) > 0 {
				v = c.LabelColor[ch]
			}
			lab.Connectors.Colors[ch] = append(lab.Connectors.Colors[ch], v, v)
		}
	}

	return lab, true
}

// normalAt returns the surface normal at grid position p.
func (c *Contourer) normalAt(p vec.Vec2) Vec3 {
	if c.Projector == nil {
		return Up
	}
	const h = 0.5
	du := c.Projector.Project(p.X+h, p.Y).Sub(c.Projector.Project(p.X-h, p.Y))
	dv := c.Projector.Project(p.X, p.Y+h).Sub(c.Projector.Project(p.X, p.Y-h))
	return du.Cross(dv).Normalize()
}

func dist(a, b vec.Vec2) float64 {
	return b.Sub(a).Length()
}

func overlaps(a, b rect.Rect) bool {
	return a.LLx <= b.URx && b.LLx <= a.URx && a.LLy <= b.URy && b.LLy <= a.URy
}

// minLabelChord is the distance between the gap ends below which no label
// is placed, since the text direction would be undefined.
const minLabelChord = 1e-9

// Default label settings.
const (
	defaultLabelSize      = 1.0
	defaultMinLabelPoints = 20
)
