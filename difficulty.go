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

import "math"

// Difficulty selects the strip assembly strategy for a grid.
type Difficulty int

const (
	// Easy grids assemble strips by matching every segment against
	// the open ends of all strips of its level.
	Easy Difficulty = iota

	// Hard grids bin segments into tiles first.
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "invalid"
	}
}

// EstimateDifficulty counts how often the grid values cross the contour
// levels between horizontally adjacent samples.  Samples within
// difficultyMargin of the grid border are ignored, as are crossings where
// one of the two samples is closer to the level than 0.5% of the level
// spacing.  The grid is Hard if the count exceeds threshold.
//
// Only the outcome of the strip assembly depends on the result, not the
// produced geometry.
func EstimateDifficulty(g *Grid, levels []float64, threshold int) Difficulty {
	if len(levels) == 0 {
		return Easy
	}
	var eps float64
	if len(levels) > 1 {
		eps = 0.005 * math.Abs(levels[1]-levels[0])
	}
	lo, hi := g.Range()

	count := 0
	for _, level := range levels {
		if !(level >= lo && level <= hi) {
			continue
		}
		for row := difficultyMargin; row < g.Rows-difficultyMargin; row++ {
			prev := math.NaN()
			for col := difficultyMargin; col < g.Cols-difficultyMargin; col++ {
				d := g.At(row, col) - level
				if !(math.Abs(d) > eps) {
					prev = math.NaN()
					continue
				}
				if !math.IsNaN(prev) && (d > 0) != (prev > 0) {
					count++
				}
				prev = d
			}
			if count > threshold {
				return Hard
			}
		}
	}
	return Easy
}

// difficultyMargin is the number of border samples skipped by
// EstimateDifficulty.
const difficultyMargin = 2

// defaultHardThreshold is the default number of level crossings above
// which a grid is treated as Hard.
const defaultHardThreshold = 7000
