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

// largeCases contains grids which cross the levels often enough to be
// classified as hard, so that strips are assembled through the tile index.
var largeCases = []TestCase{
	// Pure noise: many short contours.
	{
		Name:     "noise",
		Rows:     200,
		Cols:     200,
		Values:   sample(200, 200, noise(1)),
		Interval: 0.5,
		Scale:    3,
	},

	// Fine ripples on a large grid: long contours crossing many tiles.
	{
		Name: "ripples",
		Rows: 300,
		Cols: 300,
		Values: sample(300, 300, func(row, col float64) float64 {
			return math.Sin(math.Hypot(row-150, col-150) / 2)
		}),
		Interval: 0.5,
		Base:     0.25,
		Scale:    2,
	},
}
