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

var complexCases = []TestCase{
	// Long closed contours with labels on every second level.
	{
		Name:     "labelled_rings",
		Rows:     81,
		Cols:     81,
		Values:   sample(81, 81, cone(40, 40)),
		Interval: 5,
		Base:     2.5,
		Labels:   true,
		Scale:    6,
	},

	// Several peaks and a valley, filled and labelled.
	{
		Name: "landscape",
		Rows: 61,
		Cols: 81,
		Values: sample(61, 81, func(row, col float64) float64 {
			return peak(20, 20, 40, 9)(row, col) +
				peak(40, 55, 60, 12)(row, col) -
				peak(45, 15, 25, 7)(row, col) +
				3*math.Sin(col/7)
		}),
		Interval:  5,
		Fill:      true,
		Labels:    true,
		LabelSize: 2,
		Relief:    0.2,
		Scale:     8,
	},
}
