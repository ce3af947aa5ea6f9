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

var dashCases = []TestCase{
	// A negative interval dashes all levels below the base.
	{
		Name:     "below_base",
		Rows:     31,
		Cols:     31,
		Values:   sample(31, 31, func(row, col float64) float64 { return math.Sin(row/5) + math.Cos(col/5) }),
		Interval: -0.25,
		Base:     0,
		Scale:    10,
	},

	// Explicit levels with dashing enabled.
	{
		Name:   "explicit_levels",
		Rows:   21,
		Cols:   21,
		Values: sample(21, 21, cone(10, 10)),
		Levels: []float64{1.5, 3.5, 5.5, 7.5},
		Dash:   true,
		Base:   5,
		Scale:  16,
	},

	// Dashed and labelled: short strips are densified before both
	// transforms are applied.
	{
		Name:     "dashed_labels",
		Rows:     41,
		Cols:     41,
		Values:   sample(41, 41, cone(20, 20)),
		Interval: -2,
		Base:     15,
		Labels:   true,
		Scale:    10,
	},
}
