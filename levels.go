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
	"fmt"
	"math"
)

// MaxLevels is the largest number of levels Levels will generate.
const MaxLevels = 4000

// Levels returns the contour levels base + n*|interval| which fall into
// the closed range [low, high], in ascending order.
//
// A negative interval requests dashed lines for levels below base; this is
// reported by the second return value.  If no level falls into the range,
// the returned list is empty and the error is nil.
func Levels(interval, low, high, base float64) ([]float64, bool, error) {
	if interval == 0 || math.IsNaN(interval) {
		return nil, false, ErrInvalidInterval
	}
	dash := interval < 0
	step := math.Abs(interval)

	nLo := math.Ceil((low - base) / step)
	nHi := math.Floor((high - base) / step)
	count := nHi - nLo + 1
	if !(count >= 1) {
		return nil, dash, nil
	}
	if count > MaxLevels {
		return nil, dash, fmt.Errorf("%g levels between %g and %g: %w",
			count, low, high, ErrIntervalTooSmall)
	}

	levels := make([]float64, int(count))
	for i := range levels {
		levels[i] = base + (nLo+float64(i))*step
	}
	return levels, dash, nil
}
