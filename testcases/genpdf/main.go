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

// Command genpdf writes one PDF file per test case, showing the filled
// bands, the contour lines and the labels.  The files are meant for visual
// inspection of the contouring results.
//
// Run from the module root directory.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/contour"
	"seehuhn.de/go/contour/testcases"
)

func main() {
	outDir := flag.String("o", "testdata/pdf", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(*outDir, name+".pdf")
			if err := generatePDF(tc, pdfPath); err != nil {
				log.Fatalf("%s: %v", name, err)
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	res, err := contour.RunExample(tc)
	if err != nil {
		return err
	}

	s := float64(tc.Scale)
	if s <= 0 {
		s = 8
	}
	width := float64(tc.Cols-1) * s
	height := float64(tc.Rows-1) * s
	if width <= 0 || height <= 0 {
		return fmt.Errorf("grid too small: %d×%d", tc.Rows, tc.Cols)
	}

	paper := &pdf.Rectangle{URx: width, URy: height}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(pdfcolor.DeviceGray(1))
	page.Rectangle(0, 0, width, height)
	page.Fill()

	// Row 0 is at the top of the page, columns run from left to right.
	page.Transform(matrix.Matrix{0, -s, s, 0, 0, height})

	if m := res.Fill; m != nil {
		for i := range m.Bands {
			tri := m.Triangle(i)
			page.SetFillColor(gray(m.Colors[3*i]))
			page.MoveTo(tri[0].X, tri[0].Y)
			page.LineTo(tri[1].X, tri[1].Y)
			page.LineTo(tri[2].X, tri[2].Y)
			page.ClosePath()
			page.Fill()
		}
	}

	page.SetStrokeColor(pdfcolor.DeviceGray(0))
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineWidth(1.5 / s)
	strokeSegments(page, res.Lines.Points)
	strokeSegments(page, res.Gaps.Points)

	page.SetLineWidth(0.75 / s)
	for i := range res.Labels {
		lab := &res.Labels[i]
		strokeSegments(page, lab.Glyphs.Points)
		strokeSegments(page, lab.Connectors.Points)
	}

	return page.Close()
}

// strokeSegments strokes the segments pts[0]-pts[1], pts[2]-pts[3], ...
// Consecutive segments which share an end point are joined into one
// subpath.
func strokeSegments(page *document.Page, pts []vec.Vec2) {
	if len(pts) < 2 {
		return
	}
	for i := 0; i+1 < len(pts); i += 2 {
		if i == 0 || pts[i] != pts[i-1] {
			page.MoveTo(pts[i].X, pts[i].Y)
		}
		page.LineTo(pts[i+1].X, pts[i+1].Y)
	}
	page.Stroke()
}

// gray converts a band colour to a grey level using the Rec. 601 weights.
func gray(c color.RGBA) pdfcolor.DeviceGray {
	y := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return pdfcolor.DeviceGray(y / 255)
}
