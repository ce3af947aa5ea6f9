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
package testcases

import "math"

var basicCases = []TestCase{
	// A plane rising along the diagonal; level 2.5 crosses the grid once.
	{
		Name:   "diagonal_ramp",
		Rows:   4,
		Cols:   4,
		Values: sample(4, 4, func(row, col float64) float64 { return row + col }),
		Levels: []float64{2.5},
		Scale:  32,
	},

	// Concentric circles around the grid centre, all closed.
	{
		Name:     "rings",
		Rows:     21,
		Cols:     21,
		Values:   sample(21, 21, cone(10, 10)),
		Interval: 2,
		Base:     0.5,
		Scale:    16,
	},

	// A single Gaussian peak.
	{
		Name:     "single_peak",
		Rows:     31,
		Cols:     41,
		Values:   sample(31, 41, peak(15, 20, 10, 6)),
		Interval: 1,
		Scale:    10,
	},

	// The classic saddle: both ways of joining the crossings are valid.
	{
		Name:     "saddle",
		Rows:     25,
		Cols:     25,
		Values:   sample(25, 25, func(row, col float64) float64 { return math.Sin(row/4) * math.Sin(col/4) }),
		Interval: 0.25,
		Scale:    12,
	},

	// A constant grid has no contours at all.
	{
		Name:   "flat",
		Rows:   5,
		Cols:   5,
		Values: sample(5, 5, func(row, col float64) float64 { return 1 }),
		Levels: []float64{0.5, 1, 1.5},
		Scale:  16,
	},

	// Colour channels interpolated along the lines.
	{
		Name:     "coloured",
		Rows:     21,
		Cols:     21,
		Values:   sample(21, 21, cone(10, 10)),
		Interval: 3,
		Colors:   [][]byte{ramp(21, 21, 255, 0), ramp(21, 21, 0, 128), ramp(21, 21, 0, 255)},
		Scale:    16,
	},
}
