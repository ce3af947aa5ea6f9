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
	"testing"

	"seehuhn.de/go/contour/testcases"
)

func fillGrid(t *testing.T, g *Grid, levels ...float64) *FillMesh {
	t.Helper()
	c := NewContourer()
	c.Levels = levels
	c.Fill = true
	res, err := c.Contour(g)
	if err != nil {
		t.Fatal(err)
	}
	if res.Fill == nil {
		t.Fatal("no fill mesh")
	}
	return res.Fill
}

func TestFillNoCrossing(t *testing.T) {
	g := &Grid{Rows: 2, Cols: 2, Values: []float64{1, 1, 1, 1}}

	m := fillGrid(t, g, 5)
	if m.Triangles() != 2 {
		t.Fatalf("got %d triangles, want 2", m.Triangles())
	}
	for i, b := range m.Bands {
		if b != 0 {
			t.Errorf("triangle %d: band %d, want 0", i, b)
		}
	}

	m = fillGrid(t, g, -5)
	for i, b := range m.Bands {
		if b != 1 {
			t.Errorf("triangle %d: band %d, want 1", i, b)
		}
	}
	if a := m.Area(); math.Abs(a-1) > 1e-12 {
		t.Errorf("area %g, want 1", a)
	}
}

func TestFillSingleChord(t *testing.T) {
	// corner A is below the level, B, C and D are above
	g := &Grid{Rows: 2, Cols: 2, Values: []float64{0, 1, 1, 1}}
	m := fillGrid(t, g, 0.5)
	if m.Triangles() != 4 {
		t.Fatalf("got %d triangles, want 4", m.Triangles())
	}

	var area [2]float64
	for i, b := range m.Bands {
		tri := m.Triangle(i)
		area[b] += math.Abs(cross(tri[1].Sub(tri[0]), tri[2].Sub(tri[0]))) / 2
	}
	if math.Abs(area[0]-0.125) > 1e-12 || math.Abs(area[1]-0.875) > 1e-12 {
		t.Errorf("band areas %v, want [0.125 0.875]", area)
	}

	if len(m.Cells) != 1 || m.Cells[0].First != 0 || m.Cells[0].Count != 4 {
		t.Errorf("cells: %v", m.Cells)
	}
}

// TestFillCrossingCount checks the number of triangles for cells crossed
// by several levels.  Every chord splits one convex piece into two, which
// adds two triangles to the fans.
func TestFillCrossingCount(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		levels []float64
	}{
		{"corner_cuts_2", []float64{0, 3, 3, 3}, []float64{1, 2}},
		{"diagonal_2", []float64{0, 1, 1, 2}, []float64{0.5, 1.5}},
		{"diagonal_3", []float64{0, 1, 1, 2}, []float64{0.5, 0.8, 1.5}},
		{"parallel_2", []float64{0, 0, 3, 3}, []float64{1, 2}},
		{"parallel_3", []float64{0, 0, 3, 3}, []float64{0.5, 1.5, 2.5}},
		{"parallel_4", []float64{0, 0, 3, 3}, []float64{0.5, 1, 2, 2.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := &Grid{Rows: 2, Cols: 2, Values: tc.values}
			m := fillGrid(t, g, tc.levels...)

			k := len(tc.levels)
			if want := 4 + 2*(k-1); m.Triangles() != want {
				t.Errorf("got %d triangles, want %d", m.Triangles(), want)
			}
			seen := make([]bool, k+1)
			for i, b := range m.Bands {
				seen[b] = true
				tri := m.Triangle(i)
				if a := cross(tri[1].Sub(tri[0]), tri[2].Sub(tri[0])); a == 0 {
					t.Errorf("triangle %d has zero area", i)
				}
			}
			for b, ok := range seen {
				if !ok {
					t.Errorf("band %d is empty", b)
				}
			}
			if a := m.Area(); math.Abs(a-1) > 1e-12 {
				t.Errorf("area %g, want 1", a)
			}
		})
	}
}

// TestFillSliver checks that tiny pieces are kept only if they cover a
// corner of the cell which is not yet covered.
func TestFillSliver(t *testing.T) {
	g := &Grid{Rows: 2, Cols: 2, Values: []float64{0, 1, 1, 1}}
	m := fillGrid(t, g, 1e-5, 2e-5)

	// The corner triangle at A is kept, the strip between the two chords
	// touches no corner and is dropped, the rest of the cell is a pentagon.
	if m.Triangles() != 4 {
		t.Fatalf("got %d triangles, want 4", m.Triangles())
	}
	want := []int{0, 2, 2, 2}
	for i, b := range m.Bands {
		if b != want[i] {
			t.Errorf("bands %v, want %v", m.Bands, want)
			break
		}
	}
	corner := m.Triangle(0)
	a := cross(corner[1].Sub(corner[0]), corner[2].Sub(corner[0])) / 2
	if math.Abs(math.Abs(a)-5e-11) > 1e-15 {
		t.Errorf("corner triangle area %g, want 5e-11", math.Abs(a))
	}
}

func TestFillSaddle(t *testing.T) {
	g := &Grid{Rows: 2, Cols: 2, Values: []float64{1, 0, 0, 1}}
	for _, level := range []float64{0.4, 0.5, 0.6} {
		m := fillGrid(t, g, level)
		var area [2]float64
		for i, b := range m.Bands {
			tri := m.Triangle(i)
			area[b] += math.Abs(cross(tri[1].Sub(tri[0]), tri[2].Sub(tri[0]))) / 2
		}
		if math.Abs(area[0]+area[1]-1) > 1e-12 {
			t.Errorf("level %g: total area %g", level, area[0]+area[1])
		}
		// the corners cut off by the two chords are triangles of area
		// t²/2 each, with t = 0.4 or 0.6.
		lowWant := 0.16
		if level == 0.6 {
			lowWant = 1 - 0.16
		}
		if level == 0.5 {
			lowWant = 0.25
		}
		if math.Abs(area[0]-lowWant) > 1e-12 {
			t.Errorf("level %g: low area %g, want %g", level, area[0], lowWant)
		}
	}
}

// TestFillCorner checks a level which touches a cell in a single corner.
func TestFillCorner(t *testing.T) {
	g := &Grid{Rows: 2, Cols: 2, Values: []float64{8, 7, 7, 6}}
	m := fillGrid(t, g, 6, 7, 8)
	var area [4]float64
	for i, b := range m.Bands {
		tri := m.Triangle(i)
		area[b] += math.Abs(cross(tri[1].Sub(tri[0]), tri[2].Sub(tri[0]))) / 2
	}
	want := [4]float64{0, 0.5, 0.5, 0}
	for i := range want {
		if math.Abs(area[i]-want[i]) > 1e-9 {
			t.Errorf("band areas %v, want %v", area, want)
			break
		}
	}
}

// TestFillArea checks that the triangles of complete grids cover the grid
// exactly once.
func TestFillArea(t *testing.T) {
	for _, name := range []string{"ramp_two_bands", "peak_bands", "saddle_bands"} {
		tc := findCase(t, "fill", name)
		checkFillArea(t, tc)
	}
	checkFillArea(t, findCase(t, "precision", "levels_on_samples"))
}

func checkFillArea(t *testing.T, tc testcases.TestCase) {
	t.Helper()
	res, err := RunExample(tc)
	if err != nil {
		t.Fatal(err)
	}
	want := float64((tc.Rows - 1) * (tc.Cols - 1))
	if a := res.Fill.Area(); math.Abs(a-want) > 1e-6 {
		t.Errorf("%s: area %g, want %g", tc.Name, a, want)
	}
	n := len(res.Levels)
	for i, b := range res.Fill.Bands {
		if b < 0 || b > n {
			t.Errorf("%s: triangle %d has band %d", tc.Name, i, b)
			break
		}
	}
	if len(res.Fill.Points) != 3*res.Fill.Triangles() ||
		len(res.Fill.Normals) != len(res.Fill.Points) ||
		len(res.Fill.Colors) != len(res.Fill.Points) {
		t.Errorf("%s: inconsistent mesh", tc.Name)
	}
}

func TestFillRampBands(t *testing.T) {
	res, err := RunExample(findCase(t, "fill", "ramp_two_bands"))
	if err != nil {
		t.Fatal(err)
	}
	var seen [2]bool
	for _, b := range res.Fill.Bands {
		seen[b] = true
	}
	if !seen[0] || !seen[1] {
		t.Errorf("bands present: %v", seen)
	}

	// Every triangle lies on one side of the level line row+col = 2.5.
	m := res.Fill
	for i, b := range m.Bands {
		for _, p := range m.Triangle(i) {
			v := p.X + p.Y
			if b == 0 && v > 2.5+1e-9 || b == 1 && v < 2.5-1e-9 {
				t.Errorf("triangle %d in band %d has vertex %v", i, b, p)
			}
		}
	}
}

func TestFillMissing(t *testing.T) {
	tc := findCase(t, "precision", "missing_values")
	res, err := RunExample(tc)
	if err != nil {
		t.Fatal(err)
	}
	g := &Grid{Rows: tc.Rows, Cols: tc.Cols, Values: tc.Values}
	missing := 0
	for col := range g.Cols - 1 {
		for row := range g.Rows - 1 {
			if g.cellMissing(row, col) {
				missing++
			}
		}
	}
	if missing == 0 {
		t.Fatal("test case has no missing cells")
	}
	want := float64((tc.Rows-1)*(tc.Cols-1) - missing)
	if a := res.Fill.Area(); math.Abs(a-want) > 1e-6 {
		t.Errorf("area %g, want %g", a, want)
	}
	for _, fc := range res.Fill.Cells {
		if g.cellMissing(fc.Row, fc.Col) {
			t.Errorf("cell (%d, %d) has missing values but was filled", fc.Row, fc.Col)
		}
	}
}

func TestBandColors(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	g := &Grid{Rows: 2, Cols: 2, Values: []float64{0, 1, 1, 1}}
	c := NewContourer()
	c.Levels = []float64{0.5}
	c.Fill = true
	c.BandColors = []color.RGBA{red}
	res, err := c.Contour(g)
	if err != nil {
		t.Fatal(err)
	}
	m := res.Fill
	for i, b := range m.Bands {
		got := m.Colors[3*i]
		switch b {
		case 0:
			if got != red {
				t.Errorf("band 0: got %v", got)
			}
		case 1:
			if got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
				t.Errorf("band 1: got %v", got)
			}
		}
	}
}

func TestFillNormals(t *testing.T) {
	res, err := RunExample(findCase(t, "fill", "peak_bands"))
	if err != nil {
		t.Fatal(err)
	}
	tilted := false
	for _, n := range res.Fill.Normals {
		if math.Abs(n.Length()-1) > 1e-9 {
			t.Fatalf("normal %v not normalised", n)
		}
		if n.Z <= 0 {
			t.Fatalf("normal %v points down", n)
		}
		if n.Z < 0.999 {
			tilted = true
		}
	}
	if !tilted {
		t.Error("all normals point straight up")
	}
}

func findCase(t *testing.T, category, name string) testcases.TestCase {
	t.Helper()
	for _, tc := range testcases.All[category] {
		if tc.Name == name {
			return tc
		}
	}
	t.Fatalf("test case %s_%s not found", category, name)
	return testcases.TestCase{}
}
