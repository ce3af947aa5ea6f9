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

// Package testcases provides named grids and contour settings which are
// shared by the tests and the command line tools of the contour package.
package testcases

import "math"

// TestCase defines a single contouring scenario.
type TestCase struct {
	Name   string    // lowercase a-z and _ only
	Rows   int       // number of grid rows
	Cols   int       // number of grid columns
	Values []float64 // column-major, NaN for missing values

	Interval float64   // level spacing, negative for dashes below Base
	Base     float64   // origin of the level sequence
	Low      float64   // lower level limit (Low == High means no limits)
	High     float64   // upper level limit
	Levels   []float64 // explicit levels, overriding Interval
	Dash     bool      // dash explicit levels below Base

	Colors    [][]byte // optional colour channels, one byte per value
	Fill      bool     // compute the band triangulation
	Labels    bool     // label every second level
	LabelSize float64  // label height in grid units (0 for the default)
	Relief    float64  // height scale for surface normals (0 for flat)

	Scale int // pixels per grid cell in rendered previews
}

// sample evaluates f at every grid point and returns the values in
// column-major order.
func sample(rows, cols int, f func(row, col float64) float64) []float64 {
	values := make([]float64, rows*cols)
	for col := range cols {
		for row := range rows {
			values[col*rows+row] = f(float64(row), float64(col))
		}
	}
	return values
}

// peak returns a function with a single smooth maximum of the given height
// at (r0, c0).
func peak(r0, c0, height, width float64) func(row, col float64) float64 {
	return func(row, col float64) float64 {
		dr, dc := row-r0, col-c0
		return height * math.Exp(-(dr*dr+dc*dc)/(2*width*width))
	}
}

// cone returns the distance from (r0, c0), so that the level sets are
// circles.
func cone(r0, c0 float64) func(row, col float64) float64 {
	return func(row, col float64) float64 {
		return math.Hypot(row-r0, col-c0)
	}
}

// noise returns reproducible pseudo-random values in [-1, 1).
func noise(seed uint64) func(row, col float64) float64 {
	return func(row, col float64) float64 {
		x := seed ^ uint64(row)*0x9e3779b97f4a7c15 ^ uint64(col)*0xbf58476d1ce4e5b9
		x ^= x >> 30
		x *= 0xbf58476d1ce4e5b9
		x ^= x >> 27
		x *= 0x94d049bb133111eb
		x ^= x >> 31
		return float64(x>>11)/(1<<52) - 1
	}
}

// ramp builds a colour channel which increases linearly along the columns.
func ramp(rows, cols int, from, to byte) []byte {
	c := make([]byte, rows*cols)
	for col := range cols {
		v := float64(from) + (float64(to)-float64(from))*float64(col)/float64(max(cols-1, 1))
		for row := range rows {
			c[col*rows+row] = byte(math.Round(v))
		}
	}
	return c
}
