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
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	tri := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 1}}

	clip := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1}
	r := NewRasteriser(clip)

	coverage := make([]float32, 10)
	emit := func(y, xMin int, cov []float32) {
		if y == 0 {
			for i, c := range cov {
				coverage[xMin+i] = c
			}
		}
	}
	r.FillPolygon(tri, emit)

	const epsilon = 1e-6
	for x := range 10 {
		expected := float32(2*x+1) / 20.0
		actual := coverage[x]
		if math.Abs(float64(actual-expected)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, actual)
		}
	}
}

// TestFillPathSubpaths checks that a path with a hole is filled using the
// nonzero rule, when the hole runs in the opposite direction.
func TestFillPathSubpaths(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 8, Y: 0}).
		LineTo(vec.Vec2{X: 8, Y: 8}).
		LineTo(vec.Vec2{X: 0, Y: 8}).
		Close().
		MoveTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 2, Y: 6}).
		LineTo(vec.Vec2{X: 6, Y: 6}).
		LineTo(vec.Vec2{X: 6, Y: 2}).
		Close()

	img := renderCoverage(8, 8, func(r *Rasteriser, emit func(int, int, []float32)) {
		r.FillPath(p, emit)
	})
	for y := range 8 {
		for x := range 8 {
			want := float32(1)
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				want = 0
			}
			if got := img[y*8+x]; math.Abs(float64(got-want)) > 1e-6 {
				t.Errorf("pixel (%d, %d): got %g, want %g", x, y, got, want)
			}
		}
	}
}

func TestCTM(t *testing.T) {
	// a unit square scaled by 4 covers 16 pixels
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	r := NewRasteriser(clip)
	r.CTM = matrix.Matrix{4, 0, 0, 4, 1, 2}
	var total float64
	r.FillPolygon([]vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		func(y, xMin int, cov []float32) {
			for i, c := range cov {
				x := xMin + i
				if c > 0 && (x < 1 || x >= 5 || y < 2 || y >= 6) {
					t.Errorf("pixel (%d, %d) outside the square", x, y)
				}
				total += float64(c)
			}
		})
	if math.Abs(total-16) > 1e-5 {
		t.Errorf("total coverage %g, want 16", total)
	}
}

func TestStrokeCaps(t *testing.T) {
	seg := []vec.Vec2{{X: 3, Y: 5}, {X: 7, Y: 5}}
	cases := []struct {
		cap  graphics.LineCapStyle
		area float64
	}{
		{graphics.LineCapButt, 8},
		{graphics.LineCapSquare, 12},
		{graphics.LineCapRound, 8 + math.Pi},
	}
	for _, c := range cases {
		var total float64
		img := renderCoverage(10, 10, func(r *Rasteriser, emit func(int, int, []float32)) {
			r.Width = 2
			r.Cap = c.cap
			r.Flatness = 0.01
			r.StrokeSegments(seg, emit)
		})
		for _, v := range img {
			total += float64(v)
		}
		if math.Abs(total-c.area) > 0.05 {
			t.Errorf("cap %d: total coverage %g, want %g", c.cap, total, c.area)
		}

		// the inside of the line is fully covered
		for x := 3; x < 7; x++ {
			for y := 4; y < 6; y++ {
				if v := img[y*10+x]; math.Abs(float64(v-1)) > 1e-6 {
					t.Errorf("cap %d: pixel (%d, %d) has coverage %g", c.cap, x, y, v)
				}
			}
		}
	}
}

func TestStrokeOverlap(t *testing.T) {
	// two identical segments are painted once
	seg := []vec.Vec2{{X: 1, Y: 1}, {X: 6, Y: 1}, {X: 1, Y: 1}, {X: 6, Y: 1}}
	img := renderCoverage(8, 3, func(r *Rasteriser, emit func(int, int, []float32)) {
		r.StrokeSegments(seg, emit)
	})
	for _, v := range img {
		if v > 1 {
			t.Fatalf("coverage %g", v)
		}
	}
}

// TestAgainstVector compares the coverage of a polygon with the output of
// golang.org/x/image/vector.
func TestAgainstVector(t *testing.T) {
	const size = 64
	var pts []vec.Vec2
	for i := range 7 {
		phi := 2 * math.Pi * float64(i) / 7
		rad := 20 + 8*float64(i%2)
		pts = append(pts, vec.Vec2{X: 32 + rad*math.Cos(phi), Y: 32 + rad*math.Sin(phi)})
	}

	ours := renderCoverage(size, size, func(r *Rasteriser, emit func(int, int, []float32)) {
		r.FillPolygon(pts, emit)
	})

	vr := vector.NewRasterizer(size, size)
	vr.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		vr.LineTo(float32(p.X), float32(p.Y))
	}
	vr.ClosePath()
	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	vr.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})

	for y := range size {
		for x := range size {
			want := float64(dst.AlphaAt(x, y).A) / 255
			got := float64(ours[y*size+x])
			if math.Abs(got-want) > 2.0/255 {
				t.Errorf("pixel (%d, %d): got %.3f, want %.3f", x, y, got, want)
			}
		}
	}
}

// renderCoverage runs draw on a fresh rasteriser and collects the coverage
// values into a w×h array.
func renderCoverage(w, h int, draw func(*Rasteriser, func(int, int, []float32))) []float32 {
	out := make([]float32, w*h)
	r := NewRasteriser(rect.Rect{URx: float64(w), URy: float64(h)})
	draw(r, func(y, xMin int, cov []float32) {
		copy(out[y*w+xMin:], cov)
	})
	return out
}
