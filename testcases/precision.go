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

var precisionCases = []TestCase{
	// Integer values and integer levels: lines pass exactly through grid
	// points, which gives zero-length chords.
	{
		Name:     "levels_on_samples",
		Rows:     9,
		Cols:     9,
		Values:   sample(9, 9, func(row, col float64) float64 { return math.Abs(row-4) + math.Abs(col-4) }),
		Interval: 1,
		Fill:     true,
		Scale:    32,
	},

	// Missing values punch a hole into the grid.
	{
		Name: "missing_values",
		Rows: 21,
		Cols: 21,
		Values: sample(21, 21, func(row, col float64) float64 {
			if math.Abs(row-10) < 3 && math.Abs(col-10) < 3 {
				return math.NaN()
			}
			return math.Hypot(row-10, col-10)
		}),
		Interval: 1.5,
		Fill:     true,
		Scale:    16,
	},

	// Values at a large offset from zero.
	{
		Name:     "large_offset",
		Rows:     21,
		Cols:     21,
		Values:   sample(21, 21, func(row, col float64) float64 { return 1e6 + math.Hypot(row-10, col-10) }),
		Interval: 2,
		Base:     1e6 + 1,
		Scale:    16,
	},
}
