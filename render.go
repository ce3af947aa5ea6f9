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

//go:generate go run ./testcases/export

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/contour/testcases"
)

// RunExample contours the grid of a test case with the settings given
// there.
func RunExample(tc testcases.TestCase) (*Result, error) {
	g := &Grid{Rows: tc.Rows, Cols: tc.Cols, Values: tc.Values}

	c := NewContourer()
	c.Interval = tc.Interval
	c.Base = tc.Base
	if tc.Low != tc.High {
		c.Low, c.High = tc.Low, tc.High
	}
	c.Levels = tc.Levels
	c.Dash = tc.Dash
	c.Colors = tc.Colors
	c.Fill = tc.Fill
	c.Labels = tc.Labels
	if tc.LabelSize > 0 {
		c.LabelSize = tc.LabelSize
	}
	if tc.Relief > 0 {
		c.Projector = HeightField{Grid: g, Scale: tc.Relief}
	}
	return c.Contour(g)
}

// RenderExample contours a test case and draws the result into img, with
// each grid cell covering scale × scale pixels.
func RenderExample(tc testcases.TestCase, img *image.RGBA, scale float64) error {
	res, err := RunExample(tc)
	if err != nil {
		return err
	}
	opt := DefaultDrawOptions(scale)
	Draw(img, res, opt)
	return nil
}

// DrawOptions controls how Draw renders a Result.
type DrawOptions struct {
	// CTM maps grid coordinates (row, col) to pixel coordinates.
	CTM matrix.Matrix

	// LineWidth is the width of contour lines, in grid units.
	LineWidth float64

	// Cap is the cap style for line segments.
	Cap graphics.LineCapStyle

	// LineColor is used for lines with fewer than three colour channels,
	// and for labels.
	LineColor color.RGBA
}

// DefaultDrawOptions returns options which place the grid columns along the
// x axis and the rows along the y axis, each cell taking scale × scale
// pixels.
func DefaultDrawOptions(scale float64) *DrawOptions {
	return &DrawOptions{
		CTM:       matrix.Matrix{0, scale, scale, 0, 0, 0},
		LineWidth: 1.5 / scale,
		Cap:       graphics.LineCapRound,
		LineColor: color.RGBA{A: 255},
	}
}

// Draw renders the fill, lines, dashes and labels of res onto img.
func Draw(img *image.RGBA, res *Result, opt *DrawOptions) {
	b := img.Bounds()
	clip := rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	}
	r := NewRasteriser(clip)
	r.CTM = opt.CTM
	r.Cap = opt.Cap
	r.Width = opt.LineWidth

	if m := res.Fill; m != nil {
		var tri [3]vec.Vec2
		for i := range m.Bands {
			tri = m.Triangle(i)
			col := m.Colors[3*i]
			r.FillPolygon(tri[:], func(y, xMin int, coverage []float32) {
				blend(img, y, xMin, coverage, col)
			})
		}
	}

	drawLines(r, img, &res.Lines, opt.LineColor)
	drawLines(r, img, &res.Gaps, opt.LineColor)

	r.Width = opt.LineWidth / 2
	for i := range res.Labels {
		lab := &res.Labels[i]
		drawLines(r, img, &lab.Glyphs, opt.LineColor)
		drawLines(r, img, &lab.Connectors, opt.LineColor)
	}
}

// drawLines strokes the segments of ls.  With at least three colour
// channels, every segment is drawn in the colour of its first point.
func drawLines(r *Rasteriser, img *image.RGBA, ls *LineSet, col color.RGBA) {
	if len(ls.Colors) < 3 {
		r.StrokeSegments(ls.Points, func(y, xMin int, coverage []float32) {
			blend(img, y, xMin, coverage, col)
		})
		return
	}
	for k := range ls.Len() {
		c := color.RGBA{R: ls.Colors[0][2*k], G: ls.Colors[1][2*k], B: ls.Colors[2][2*k], A: 255}
		r.StrokeSegments(ls.Points[2*k:2*k+2], func(y, xMin int, coverage []float32) {
			blend(img, y, xMin, coverage, c)
		})
	}
}

// blend paints colour c over one row of pixels, with the given coverage.
// The colour is alpha-premultiplied.
func blend(img *image.RGBA, y, xMin int, coverage []float32, c color.RGBA) {
	alpha := float32(c.A) / 255
	off := img.PixOffset(xMin, y)
	for i, cov := range coverage {
		p := img.Pix[off+4*i : off+4*i+4 : off+4*i+4]
		keep := 1 - cov*alpha
		p[0] = uint8(float32(p[0])*keep + float32(c.R)*cov + 0.5)
		p[1] = uint8(float32(p[1])*keep + float32(c.G)*cov + 0.5)
		p[2] = uint8(float32(p[2])*keep + float32(c.B)*cov + 0.5)
		p[3] = uint8(float32(p[3])*keep + float32(c.A)*cov + 0.5)
	}
}
