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
// Command export contours all test cases and writes the results as JSON.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/contour"
	"seehuhn.de/go/contour/testcases"
)

func main() {
	outName := flag.String("o", "testdata/testcases.json", "output file")
	flag.Parse()

	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			res, err := contour.RunExample(tc)
			if err != nil {
				log.Fatalf("%s_%s: %v", category, tc.Name, err)
			}
			out.TestCases = append(out.TestCases, toJSON(category, tc, res))
		}
	}

	if err := writeJSON(*outName, out); err != nil {
		log.Fatal(err)
	}
}

// writeJSON writes v to the named file, creating the parent directory if
// needed.
func writeJSON(name string, v any) error {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type jsonTestCase struct {
	Name       string      `json:"name"`
	Rows       int         `json:"rows"`
	Cols       int         `json:"cols"`
	Levels     []float64   `json:"levels"`
	Dashed     []bool      `json:"dashed,omitempty"`
	Difficulty string      `json:"difficulty"`
	Strips     []jsonStrip `json:"strips"`
	Labels     []jsonLabel `json:"labels,omitempty"`
	Triangles  int         `json:"triangles,omitempty"`
	FillArea   float64     `json:"fill_area,omitempty"`
}

type jsonStrip struct {
	Level int           `json:"level"`
	Path  []jsonSegment `json:"path"`
}

type jsonLabel struct {
	Text    string    `json:"text"`
	Level   int       `json:"level"`
	Anchor  []float64 `json:"anchor"`
	Tangent []float64 `json:"tangent"`
	Normal  []float64 `json:"normal"`
	Gap     [2]int    `json:"gap"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

func toJSON(category string, tc testcases.TestCase, res *contour.Result) jsonTestCase {
	jtc := jsonTestCase{
		Name:       category + "_" + tc.Name,
		Rows:       tc.Rows,
		Cols:       tc.Cols,
		Levels:     res.Levels,
		Difficulty: res.Difficulty.String(),
	}
	if slices.Contains(res.Dashed, true) {
		jtc.Dashed = res.Dashed
	}
	for i := range res.Strips {
		s := &res.Strips[i]
		jtc.Strips = append(jtc.Strips, jsonStrip{
			Level: s.Level,
			Path:  pathToJSON(s.Path().Iter()),
		})
	}
	for _, l := range res.Labels {
		jtc.Labels = append(jtc.Labels, jsonLabel{
			Text:    l.Text,
			Level:   l.Level,
			Anchor:  []float64{l.Anchor.X, l.Anchor.Y},
			Tangent: []float64{l.Tangent.X, l.Tangent.Y},
			Normal:  []float64{l.Normal.X, l.Normal.Y, l.Normal.Z},
			Gap:     [2]int{l.First, l.Last},
		})
	}
	if res.Fill != nil {
		jtc.Triangles = res.Fill.Triangles()
		jtc.FillArea = res.Fill.Area()
	}
	return jtc
}

func pathToJSON(p path.Path) []jsonSegment {
	var segs []jsonSegment
	for cmd, pts := range p {
		seg := jsonSegment{Pts: make([][]float64, len(pts))}
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd = "M"
		case path.CmdLineTo:
			seg.Cmd = "L"
		case path.CmdQuadTo:
			seg.Cmd = "Q"
		case path.CmdCubeTo:
			seg.Cmd = "C"
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		for i, pt := range pts {
			seg.Pts[i] = []float64{pt.X, pt.Y}
		}
		segs = append(segs, seg)
	}
	return segs
}
