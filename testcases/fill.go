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

var fillCases = []TestCase{
	// One level across a ramp: two bands.
	{
		Name:   "ramp_two_bands",
		Rows:   4,
		Cols:   4,
		Values: sample(4, 4, func(row, col float64) float64 { return row + col }),
		Levels: []float64{2.5},
		Fill:   true,
		Scale:  32,
	},

	// Many levels through a peak, shaded by a height field.
	{
		Name:     "peak_bands",
		Rows:     31,
		Cols:     41,
		Values:   sample(31, 41, peak(15, 20, 10, 6)),
		Interval: 1,
		Fill:     true,
		Relief:   0.5,
		Scale:    10,
	},

	// Saddle cells with several levels per cell.
	{
		Name:     "saddle_bands",
		Rows:     9,
		Cols:     9,
		Values:   sample(9, 9, func(row, col float64) float64 { return (row - 4) * (col - 4) }),
		Interval: 1.5,
		Base:     0.75,
		Fill:     true,
		Scale:    32,
	},

	// Bands limited to a value range; cells outside are left empty.
	{
		Name:     "limited_bands",
		Rows:     21,
		Cols:     21,
		Values:   sample(21, 21, cone(10, 10)),
		Interval: 1,
		Low:      3,
		High:     8,
		Fill:     true,
		Scale:    16,
	},
}
