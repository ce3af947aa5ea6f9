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

import "seehuhn.de/go/geom/vec"

// Dashes are produced geometrically: every segment a-b is shortened to its
// middle half, so that each segment of the original polyline turns into
// one dash.  The gap between two dashes is therefore as long as the dash
// itself if the segments have similar lengths.

// dashSegment returns the middle half of the segment a-b.
func dashSegment(a, b vec.Vec2) (vec.Vec2, vec.Vec2) {
	d := b.Sub(a)
	return a.Add(d.Mul(dashStart)), a.Add(d.Mul(dashEnd))
}

// addDashed appends the dashes for the polyline pts to ls.
func (ls *LineSet) addDashed(pts []vec.Vec2, colors [][]byte, level int) {
	for i := 1; i < len(pts); i++ {
		p, q := dashSegment(pts[i-1], pts[i])
		ls.Points = append(ls.Points, p, q)
		for ch := range ls.Colors {
			a, b := colors[ch][i-1], colors[ch][i]
			ls.Colors[ch] = append(ls.Colors[ch], lerpByte(a, b, dashStart), lerpByte(a, b, dashEnd))
		}
		ls.Levels = append(ls.Levels, level)
	}
}

// densify returns a copy of the polyline with the midpoint inserted
// between every two consecutive points.
func densify(pts []vec.Vec2, colors [][]byte) ([]vec.Vec2, [][]byte) {
	n := max(2*len(pts)-1, 0)
	outPts := make([]vec.Vec2, 0, n)
	for i, p := range pts {
		if i > 0 {
			outPts = append(outPts, pts[i-1].Add(p).Mul(0.5))
		}
		outPts = append(outPts, p)
	}
	outColors := make([][]byte, len(colors))
	for ch, c := range colors {
		out := make([]byte, 0, n)
		for i, v := range c {
			if i > 0 {
				out = append(out, lerpByte(c[i-1], v, 0.5))
			}
			out = append(out, v)
		}
		outColors[ch] = out
	}
	return outPts, outColors
}

const (
	dashStart = 0.25
	dashEnd   = 0.75
)
