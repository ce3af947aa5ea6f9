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
	"errors"
	"maps"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/contour/testcases"
)

func TestAllExamples(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				res, err := RunExample(tc)
				if err != nil {
					t.Fatal(err)
				}
				if !slices.IsSorted(res.Levels) {
					t.Errorf("levels not sorted: %v", res.Levels)
				}
				if len(res.Dashed) != len(res.Levels) {
					t.Errorf("%d dash flags for %d levels", len(res.Dashed), len(res.Levels))
				}
				channels := len(tc.Colors)
				for i := range res.Strips {
					st := &res.Strips[i]
					checkStrip(t, st)
					if len(st.Points) < 2 {
						t.Errorf("strip %d has %d points", i, len(st.Points))
					}
					if len(st.Colors) != channels {
						t.Fatalf("strip %d has %d channels", i, len(st.Colors))
					}
					for _, col := range st.Colors {
						if len(col) != len(st.Points) {
							t.Fatalf("strip %d: %d colours for %d points", i, len(col), len(st.Points))
						}
					}
				}
				for _, ls := range []*LineSet{&res.Lines, &res.Gaps} {
					if len(ls.Points)%2 != 0 || len(ls.Levels) != ls.Len() {
						t.Errorf("inconsistent line set: %d points, %d levels",
							len(ls.Points), len(ls.Levels))
					}
					for _, col := range ls.Colors {
						if len(col) != len(ls.Points) {
							t.Errorf("%d colours for %d points", len(col), len(ls.Points))
						}
					}
				}
				if tc.Fill != (res.Fill != nil) {
					t.Errorf("fill requested: %t, fill mesh present: %t", tc.Fill, res.Fill != nil)
				}
				if !tc.Labels && len(res.Labels) > 0 {
					t.Errorf("got %d unrequested labels", len(res.Labels))
				}
			})
		}
	}
}

func TestDiagonalRamp(t *testing.T) {
	res, err := RunExample(findCase(t, "basic", "diagonal_ramp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Strips) != 1 {
		t.Fatalf("got %d strips, want 1", len(res.Strips))
	}
	st := &res.Strips[0]
	if len(st.Points) != 6 {
		t.Errorf("got %d points, want 6", len(st.Points))
	}
	for _, p := range st.Points {
		if v := p.X + p.Y; math.Abs(v-2.5) > 1e-12 {
			t.Errorf("point %v has value %g", p, v)
		}
	}
	if st.Closed() {
		t.Error("open line reported as closed")
	}
	if res.Lines.Len() != 5 {
		t.Errorf("got %d segments, want 5", res.Lines.Len())
	}
}

func TestRingsClosed(t *testing.T) {
	res, err := RunExample(findCase(t, "basic", "rings"))
	if err != nil {
		t.Fatal(err)
	}
	// circles of radius 0.5, 2.5, ..., 8.5 fit into the grid
	closed := 0
	for i := range res.Strips {
		st := &res.Strips[i]
		if res.Levels[st.Level] > 10 {
			continue
		}
		if !st.Closed() {
			t.Errorf("ring at level %g is open", res.Levels[st.Level])
		}
		closed++
		for _, p := range st.Points {
			r := math.Hypot(p.X-10, p.Y-10)
			if math.Abs(r-res.Levels[st.Level]) > 0.1 {
				t.Errorf("point %v of ring %g at radius %g", p, res.Levels[st.Level], r)
				break
			}
		}
	}
	if closed != 5 {
		t.Errorf("got %d closed rings, want 5", closed)
	}
}

func TestFlat(t *testing.T) {
	res, err := RunExample(findCase(t, "basic", "flat"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Strips) != 0 || res.Lines.Len() != 0 {
		t.Errorf("got %d strips, %d segments on a flat grid", len(res.Strips), res.Lines.Len())
	}
}

func TestColours(t *testing.T) {
	tc := findCase(t, "basic", "coloured")
	res, err := RunExample(tc)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines.Colors) != 3 {
		t.Fatalf("got %d channels, want 3", len(res.Lines.Colors))
	}
	// channel 0 decreases from 255 to 0 along the columns
	for i, p := range res.Lines.Points {
		want := 255 * (1 - p.Y/20)
		if got := float64(res.Lines.Colors[0][i]); math.Abs(got-want) > 14 {
			t.Errorf("point %v: channel 0 is %g, want about %g", p, got, want)
			break
		}
	}
}

func TestMissingHole(t *testing.T) {
	res, err := RunExample(findCase(t, "precision", "missing_values"))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range res.Lines.Points {
		if math.Abs(p.X-10) < 2 && math.Abs(p.Y-10) < 2 {
			t.Errorf("line point %v inside the hole", p)
		}
	}
}

func TestLargeOffset(t *testing.T) {
	res, err := RunExample(findCase(t, "precision", "large_offset"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Strips) == 0 {
		t.Fatal("no strips")
	}
	for i := range res.Strips {
		st := &res.Strips[i]
		r := res.Levels[st.Level] - 1e6
		if r > 9.5 {
			continue
		}
		for _, p := range st.Points {
			if d := math.Hypot(p.X-10, p.Y-10); math.Abs(d-r) > 0.1 {
				t.Errorf("point %v of ring %g at radius %g", p, r, d)
				break
			}
		}
	}
}

func TestContourErrors(t *testing.T) {
	c := NewContourer()
	c.Interval = 1

	if _, err := c.Contour(&Grid{Rows: 1, Cols: 5, Values: make([]float64, 5)}); !errors.Is(err, ErrGridShape) {
		t.Errorf("one row: got %v", err)
	}
	if _, err := c.Contour(&Grid{Rows: 3, Cols: 3, Values: make([]float64, 8)}); !errors.Is(err, ErrGridShape) {
		t.Errorf("short values: got %v", err)
	}
	if _, err := c.Contour(nil); !errors.Is(err, ErrGridShape) {
		t.Errorf("nil grid: got %v", err)
	}

	g := NewGrid(3, 3)
	c.Colors = [][]byte{make([]byte, 8)}
	if _, err := c.Contour(g); !errors.Is(err, ErrColorLength) {
		t.Errorf("short colour channel: got %v", err)
	}
	c.Colors = make([][]byte, MaxChannels+1)
	for i := range c.Colors {
		c.Colors[i] = make([]byte, 9)
	}
	if _, err := c.Contour(g); !errors.Is(err, ErrColorLength) {
		t.Errorf("too many channels: got %v", err)
	}

	c.Colors = nil
	c.Interval = 0
	if _, err := c.Contour(g); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("zero interval: got %v", err)
	}
}

func TestExplicitLevels(t *testing.T) {
	g := NewGrid(3, 3)
	for i := range g.Values {
		g.Values[i] = float64(i)
	}
	c := NewContourer()
	c.Levels = []float64{7.5, 0.5, 3.5, 100}
	c.High = 5
	res, err := c.Contour(g)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{0.5, 3.5}; !slices.Equal(res.Levels, want) {
		t.Errorf("got levels %v, want %v", res.Levels, want)
	}
	if c.Levels[0] != 7.5 {
		t.Error("explicit levels modified")
	}
}

func TestExplicitLevelsDuplicates(t *testing.T) {
	g := NewGrid(3, 3)
	for i := range g.Values {
		g.Values[i] = float64(i)
	}
	c := NewContourer()
	c.Fill = true
	c.Levels = []float64{3.5, 0.5, 3.5, 0.5, 0.5}
	res, err := c.Contour(g)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{0.5, 3.5}; !slices.Equal(res.Levels, want) {
		t.Fatalf("got levels %v, want %v", res.Levels, want)
	}

	c.Levels = []float64{0.5, 3.5}
	ref, err := c.Contour(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Strips) != len(ref.Strips) || res.Lines.Len() != ref.Lines.Len() {
		t.Errorf("got %d strips and %d segments, want %d and %d",
			len(res.Strips), res.Lines.Len(), len(ref.Strips), ref.Lines.Len())
	}
	if res.Fill.Triangles() != ref.Fill.Triangles() {
		t.Errorf("got %d triangles, want %d", res.Fill.Triangles(), ref.Fill.Triangles())
	}
}

func TestLevelLimits(t *testing.T) {
	g := NewGrid(3, 3)
	for i := range g.Values {
		g.Values[i] = float64(i)
	}
	c := NewContourer()
	c.Interval = 1
	c.Base = 0.5
	res, err := c.Contour(g)
	if err != nil {
		t.Fatal(err)
	}
	// infinite limits are replaced by the grid range [0, 8]
	if len(res.Levels) != 8 || res.Levels[0] != 0.5 || res.Levels[7] != 7.5 {
		t.Errorf("got levels %v", res.Levels)
	}

	c.Low, c.High = 2, 4
	res, err = c.Contour(g)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{2.5, 3.5}; !slices.Equal(res.Levels, want) {
		t.Errorf("got levels %v, want %v", res.Levels, want)
	}
}

func TestReset(t *testing.T) {
	c := NewContourer()
	c.Interval = 3
	c.Fill = true
	c.Seed = 99
	c.Reset()
	if c.Interval != 0 || c.Fill || c.Seed != 1 {
		t.Errorf("settings not reset: %+v", c)
	}
	if !math.IsInf(c.Low, -1) || !math.IsInf(c.High, 1) {
		t.Errorf("limits %g, %g", c.Low, c.High)
	}
	if c.LabelSize != defaultLabelSize || c.MinLabelPoints != defaultMinLabelPoints {
		t.Errorf("label defaults %g, %d", c.LabelSize, c.MinLabelPoints)
	}
}

func TestStripPath(t *testing.T) {
	res, err := RunExample(findCase(t, "basic", "rings"))
	if err != nil {
		t.Fatal(err)
	}
	for i := range res.Strips {
		st := &res.Strips[i]
		var moves, lines, closes int
		for _, cmd := range st.Path().Cmds {
			switch cmd {
			case path.CmdMoveTo:
				moves++
			case path.CmdLineTo:
				lines++
			case path.CmdClose:
				closes++
			}
		}
		n := len(st.Points)
		if st.Closed() {
			if moves != 1 || lines != n-2 || closes != 1 {
				t.Errorf("closed strip with %d points: %d moves, %d lines, %d closes",
					n, moves, lines, closes)
			}
		} else if moves != 1 || lines != n-1 || closes != 0 {
			t.Errorf("open strip with %d points: %d moves, %d lines, %d closes",
				n, moves, lines, closes)
		}
	}
}
