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

// Package contour computes contour lines and filled contour bands for
// scalar values on a rectangular grid.
//
// The lines are found cell by cell with the marching squares algorithm and
// are then joined into long strips.  Strips can be labelled with their
// level value, and levels below a base value can be drawn dashed.
// Optionally, the grid is also split into triangles which each lie within
// a single band between two consecutive levels.
//
// Grid coordinates are given as vec.Vec2{X: row, Y: col}.
package contour

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

var (
	// ErrInvalidInterval is returned if the level interval is zero.
	ErrInvalidInterval = errors.New("contour: invalid level interval")

	// ErrIntervalTooSmall is returned if the level interval would produce
	// more than MaxLevels levels.
	ErrIntervalTooSmall = errors.New("contour: level interval too small")

	// ErrColorLength is returned if the colour channels do not match the
	// grid size, or if there are too many channels.
	ErrColorLength = errors.New("contour: invalid colour data")

	// ErrGridShape is returned for grids with fewer than two rows or
	// columns, or with the wrong number of values.
	ErrGridShape = errors.New("contour: invalid grid shape")
)

// MaxChannels is the maximal number of colour channels.
const MaxChannels = 4

// Grid is a rectangular array of samples, stored in column-major order.
// Missing values are represented by NaN.
type Grid struct {
	Rows, Cols int
	Values     []float64
}

// NewGrid allocates a grid of the given size, with all values zero.
func NewGrid(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Values: make([]float64, rows*cols)}
}

// At returns the value at the given position.
func (g *Grid) At(row, col int) float64 {
	return g.Values[col*g.Rows+row]
}

// Set changes the value at the given position.
func (g *Grid) Set(row, col int, v float64) {
	g.Values[col*g.Rows+row] = v
}

// Range returns the smallest and largest non-missing value.
// If all values are missing, both results are NaN.
func (g *Grid) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range g.Values {
		if math.IsNaN(v) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo > hi {
		return math.NaN(), math.NaN()
	}
	return lo, hi
}

func (g *Grid) check() error {
	if g == nil || g.Rows < 2 || g.Cols < 2 {
		return ErrGridShape
	}
	if len(g.Values) != g.Rows*g.Cols {
		return fmt.Errorf("%d values for a %d×%d grid: %w",
			len(g.Values), g.Rows, g.Cols, ErrGridShape)
	}
	return nil
}

// cellMissing reports whether one of the corners of a cell is NaN.
func (g *Grid) cellMissing(row, col int) bool {
	i := col*g.Rows + row
	j := i + g.Rows
	return math.IsNaN(g.Values[i]) || math.IsNaN(g.Values[i+1]) ||
		math.IsNaN(g.Values[j]) || math.IsNaN(g.Values[j+1])
}

// loadCell reads the corner values of a cell.
func (g *Grid) loadCell(cl *cell, row, col int) {
	i := col*g.Rows + row
	j := i + g.Rows
	cl.row, cl.col = row, col
	cl.v = [4]float64{g.Values[i], g.Values[i+1], g.Values[j], g.Values[j+1]}
	cl.min = min(cl.v[0], cl.v[1], cl.v[2], cl.v[3])
	cl.max = max(cl.v[0], cl.v[1], cl.v[2], cl.v[3])
}

// LineSet is a collection of independent line segments.
// Segment k runs from Points[2k] to Points[2k+1].
type LineSet struct {
	Points []vec.Vec2
	Colors [][]byte // one entry per point for every channel
	Levels []int    // level index, one per segment
}

// Len returns the number of segments.
func (ls *LineSet) Len() int {
	return len(ls.Points) / 2
}

func (ls *LineSet) reset(channels int) {
	ls.Points = ls.Points[:0]
	ls.Levels = ls.Levels[:0]
	ls.Colors = growTo(ls.Colors[:0], channels)[:channels]
	for ch := range ls.Colors {
		ls.Colors[ch] = ls.Colors[ch][:0]
	}
}

// addPolyline appends the segments of the polyline pts.
func (ls *LineSet) addPolyline(pts []vec.Vec2, colors [][]byte, level int) {
	for i := 1; i < len(pts); i++ {
		ls.Points = append(ls.Points, pts[i-1], pts[i])
		for ch := range ls.Colors {
			ls.Colors[ch] = append(ls.Colors[ch], colors[ch][i-1], colors[ch][i])
		}
		ls.Levels = append(ls.Levels, level)
	}
}

// Path returns the segments as a path with one subpath per segment.
func (ls *LineSet) Path() *path.Data {
	p := &path.Data{}
	for i := 0; i+1 < len(ls.Points); i += 2 {
		p = p.MoveTo(ls.Points[i]).LineTo(ls.Points[i+1])
	}
	return p
}

// Strip is a polyline along one contour level.
type Strip struct {
	Level  int // index into Result.Levels
	Points []vec.Vec2
	Colors [][]byte // one entry per point for every channel
}

// Closed reports whether the strip forms a loop.
func (s *Strip) Closed() bool {
	n := len(s.Points)
	if n < 3 {
		return false
	}
	d := s.Points[n-1].Sub(s.Points[0])
	return d.Dot(d) < matchDistance2
}

// Path returns the strip as a path.
func (s *Strip) Path() *path.Data {
	p := &path.Data{}
	if len(s.Points) == 0 {
		return p
	}
	p = p.MoveTo(s.Points[0])
	last := len(s.Points)
	if s.Closed() {
		last--
	}
	for _, q := range s.Points[1:last] {
		p = p.LineTo(q)
	}
	if s.Closed() {
		p = p.Close()
	}
	return p
}

// Result holds the output of a contouring pass.
type Result struct {
	Levels     []float64
	Dashed     []bool // per level
	Difficulty Difficulty

	// Strips lists the assembled polylines of all levels, before labels
	// are cut out and dashes are applied.
	Strips []Strip

	// Lines contains the solid line segments to draw.
	Lines LineSet

	// Gaps contains the dashes for the levels drawn dashed.
	Gaps LineSet

	Labels []Label

	// Fill is the band triangulation, or nil if filling was not requested.
	Fill *FillMesh
}

// Contourer computes contour lines for grids.
//
// The exported fields configure the computation and can be changed between
// calls to Contour.  Internal buffers are reused across calls.
// A Contourer is not safe for concurrent use.
type Contourer struct {
	// Interval is the spacing between levels, used if Levels is nil.
	// A negative interval draws the levels below Base dashed.
	Interval float64

	// Low and High limit the levels.  Infinite limits are replaced by the
	// range of the grid values.
	Low, High float64

	// Base is the origin of the level sequence.
	Base float64

	// Levels, if not nil, gives the contour levels explicitly.
	// Levels outside [Low, High] are ignored.
	Levels []float64

	// Dash draws the levels below Base dashed, if Levels is set.
	Dash bool

	// Colors holds up to MaxChannels colour channels, with one byte per
	// grid value in the same order as the grid values.
	Colors [][]byte

	// Fill enables the band triangulation.
	Fill bool

	// BandColors gives the colours of the fill bands.  Missing entries
	// are taken from a grey ramp.
	BandColors []color.RGBA

	// Labels enables labelling every second level.
	Labels bool

	// LabelSize is the height of the label digits, in grid units.
	LabelSize float64

	// LabelScale scales LabelSize.
	LabelScale float64

	// LabelColor, if set, overrides the colour of labels and connectors.
	// It must have one entry per colour channel.
	LabelColor []byte

	// MinLabelPoints is the number of points a strip must exceed to be
	// labelled.
	MinLabelPoints int

	// Projector maps the grid into world space, for surface normals.
	// If nil, all normals are Up.
	Projector Projector

	// HardThreshold is the number of level crossings above which a grid
	// is treated as Hard, see EstimateDifficulty.
	HardThreshold int

	// TilesPerSide, TileSteps and TileAttempts control the strip
	// assembly for Hard grids.
	TilesPerSide int
	TileSteps    int
	TileAttempts int

	// Seed initialises the random starts of the tile walks.
	Seed uint64

	// Cache, if not nil, holds per-grid scratch memory.
	Cache *Cache

	// Internal buffers (reused across calls)
	vb        vertexBuffer
	sets      []stripSet
	loose     [][]int
	own       *scratch
	crossings []crossing
	filler    filler
	walker    tileWalker
	pcg       *rand.PCG
	glyphs    *glyphSet
	glyphBuf  []vec.Vec2
	placed    []rect.Rect
	idxBuf    []int
	subColors [][]byte
}

// NewContourer returns a Contourer with default settings.
func NewContourer() *Contourer {
	c := &Contourer{}
	c.Reset()
	return c
}

// Reset restores the default settings, keeping the internal buffers.
func (c *Contourer) Reset() {
	c.Interval = 0
	c.Low = math.Inf(-1)
	c.High = math.Inf(1)
	c.Base = 0
	c.Levels = nil
	c.Dash = false
	c.Colors = nil
	c.Fill = false
	c.BandColors = nil
	c.Labels = false
	c.LabelSize = defaultLabelSize
	c.LabelScale = 1
	c.LabelColor = nil
	c.MinLabelPoints = defaultMinLabelPoints
	c.Projector = nil
	c.HardThreshold = defaultHardThreshold
	c.TilesPerSide = defaultTilesPerSide
	c.TileSteps = defaultTileSteps
	c.TileAttempts = defaultTileAttempts
	c.Seed = 1
	c.Cache = nil
}

// Contour computes the contour lines of g, together with labels and the
// fill triangulation if these are enabled.
func (c *Contourer) Contour(g *Grid) (*Result, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	channels := len(c.Colors)
	if channels > MaxChannels {
		return nil, fmt.Errorf("%d channels: %w", channels, ErrColorLength)
	}
	for ch, col := range c.Colors {
		if len(col) != len(g.Values) {
			return nil, fmt.Errorf("channel %d has %d values, need %d: %w",
				ch, len(col), len(g.Values), ErrColorLength)
		}
	}
	if len(c.LabelColor) > 0 && len(c.LabelColor) != channels {
		return nil, fmt.Errorf("label colour has %d channels, need %d: %w",
			len(c.LabelColor), channels, ErrColorLength)
	}
	levels, dash, err := c.levels(g)
	if err != nil {
		return nil, err
	}
	if c.Labels && c.glyphs == nil {
		c.glyphs, err = loadGlyphs()
		if err != nil {
			return nil, err
		}
	}

	res := &Result{
		Levels: levels,
		Dashed: make([]bool, len(levels)),
	}
	for i, v := range levels {
		res.Dashed[i] = dash && v < c.Base
	}

	s := c.scratchFor(g)
	s.markMissing(g)
	res.Difficulty = EstimateDifficulty(g, levels, c.HardThreshold)
	hard := res.Difficulty == Hard

	c.vb.reset(channels)
	c.sets = growTo(c.sets, len(levels))[:len(levels)]
	c.loose = growTo(c.loose, len(levels))[:len(levels)]
	for i := range levels {
		c.sets[i].reset(&c.vb)
		c.loose[i] = c.loose[i][:0]
	}
	if hard {
		s.tiles = growTo(s.tiles, len(levels))
		for i := range levels {
			s.tiles[i].reset(g.Rows-1, g.Cols-1, c.TilesPerSide)
		}
	}

	var corners [4]Vec3
	if c.Fill {
		res.Fill = &FillMesh{}
		if c.Projector != nil {
			s.normals = GridNormals(c.Projector, g.Rows, g.Cols, s.normals)
		}
	}

	c.march(g, s, levels, hard, res.Fill, &corners)
	if hard {
		c.assembleTiles(s, len(levels))
	}
	c.emit(res)
	return res, nil
}

// levels determines the contour levels for grid g.
func (c *Contourer) levels(g *Grid) ([]float64, bool, error) {
	if c.Levels != nil {
		var levels []float64
		for _, v := range c.Levels {
			if v >= c.Low && v <= c.High {
				levels = append(levels, v)
			}
		}
		slices.Sort(levels)
		levels = slices.Compact(levels)
		return levels, c.Dash, nil
	}

	low, high := c.Low, c.High
	gLow, gHigh := g.Range()
	if math.IsInf(low, 0) {
		low = gLow
	}
	if math.IsInf(high, 0) {
		high = gHigh
	}
	return Levels(c.Interval, low, high, c.Base)
}

func (c *Contourer) scratchFor(g *Grid) *scratch {
	if c.Cache != nil {
		return c.Cache.get(g.Rows, g.Cols)
	}
	if c.own == nil || c.own.rows != g.Rows || c.own.cols != g.Cols {
		c.own = newScratch(g.Rows, g.Cols)
	}
	return c.own
}

// march classifies all cells of the grid and records the resulting
// segments.
func (c *Contourer) march(g *Grid, s *scratch, levels []float64, hard bool, fill *FillMesh, corners *[4]Vec3) {
	var cl cell
	var chords [2]chord
	cellRows := g.Rows - 1
	for col := range g.Cols - 1 {
		for row := range cellRows {
			if s.skip[col*cellRows+row] {
				continue
			}
			g.loadCell(&cl, row, col)
			if cl.max < c.Low || cl.min > c.High {
				continue
			}

			c.crossings = c.crossings[:0]
			li, _ := slices.BinarySearch(levels, cl.min)
			for ; li < len(levels) && levels[li] <= cl.max; li++ {
				cc, n := classify(&cl, levels[li], &chords)
				if n == 0 {
					continue
				}
				c.crossings = append(c.crossings, crossing{
					level:  li,
					n:      n,
					chords: chords,
					saddle: cc == caseSaddle,
				})
				for i := range n {
					c.addChord(g, s, &cl, li, &chords[i], hard)
				}
			}

			if fill != nil {
				for k := range corners {
					corners[k] = Up
					if s.normals != nil && c.Projector != nil {
						corners[k] = s.normals[sampleIndex(g, &cl, k)]
					}
				}
				c.fillCell(&cl, levels, c.crossings, fill, corners)
			}
		}
	}
}

// sampleIndex returns the index of corner k of the cell in the grid values.
func sampleIndex(g *Grid, cl *cell, k int) int {
	return (cl.col+(k>>1))*g.Rows + cl.row + (k & 1)
}

// addChord stores a chord in the vertex buffer and hands it to the strip
// assembly.  Chords of zero length are only used for the fill.
func (c *Contourer) addChord(g *Grid, s *scratch, cl *cell, li int, ch *chord, hard bool) {
	if ch.degenerate() {
		return
	}

	var cp, cq [MaxChannels]byte
	for i, col := range c.Colors {
		for j, e := range ch.e {
			a := col[sampleIndex(g, cl, edgeEnds[e][0])]
			b := col[sampleIndex(g, cl, edgeEnds[e][1])]
			v := lerpByte(a, b, ch.t[j])
			if j == 0 {
				cp[i] = v
			} else {
				cq[i] = v
			}
		}
	}

	k := c.vb.addSegment(ch.p, ch.q, cp[:], cq[:])
	if hard {
		s.tiles[li].add(k, cl.row, cl.col)
	} else {
		c.sets[li].addSegment(k)
	}
}

// assembleTiles converts the tile contents into strips and merges these
// into the strip sets.
func (c *Contourer) assembleTiles(s *scratch, nLevels int) {
	if c.pcg == nil {
		c.pcg = rand.NewPCG(0, 0)
	}
	c.pcg.Seed(c.Seed, tileSeedStream)
	c.walker.vb = &c.vb
	c.walker.rng = rand.New(c.pcg)
	c.walker.maxSteps = c.TileSteps
	c.walker.maxAttempts = max(c.TileAttempts, 1)

	for li := range nLevels {
		ti := &s.tiles[li]
		for t := range ti.tiles {
			var st *strip
			st, c.loose[li] = c.walker.build(ti, t, c.loose[li])
			if st != nil {
				c.sets[li].add(st)
			}
		}
	}
}

// emit converts the assembled strips into the output line sets and places
// the labels.
func (c *Contourer) emit(res *Result) {
	channels := len(c.vb.colors)
	res.Lines.reset(channels)
	res.Gaps.reset(channels)
	c.placed = c.placed[:0]
	c.subColors = growTo(c.subColors, channels)[:channels]

	for li, level := range res.Levels {
		dashed := res.Dashed[li]
		labelled := c.Labels && li%2 == 1
		for _, st := range c.sets[li].strips {
			c.idxBuf = st.polyline(c.idxBuf[:0])
			out := Strip{
				Level:  li,
				Points: make([]vec.Vec2, len(c.idxBuf)),
				Colors: make([][]byte, channels),
			}
			for i, v := range c.idxBuf {
				out.Points[i] = c.vb.pos(v)
			}
			for ch := range channels {
				col := make([]byte, len(c.idxBuf))
				for i, v := range c.idxBuf {
					col[i] = c.vb.color(ch, v)
				}
				out.Colors[ch] = col
			}

			n := len(out.Points)
			if labelled && dashed && n > c.MinLabelPoints && n <= 2*c.MinLabelPoints {
				out.Points, out.Colors = densify(out.Points, out.Colors)
			}
			res.Strips = append(res.Strips, out)
			c.emitStrip(res, len(res.Strips)-1, labelled, dashed, level)
		}

		for _, k := range c.loose[li] {
			out := Strip{
				Level:  li,
				Points: []vec.Vec2{c.vb.pos(2 * k), c.vb.pos(2*k + 1)},
				Colors: make([][]byte, channels),
			}
			for ch := range channels {
				out.Colors[ch] = []byte{c.vb.color(ch, 2*k), c.vb.color(ch, 2*k+1)}
			}
			res.Strips = append(res.Strips, out)
			c.emitRange(res, &res.Strips[len(res.Strips)-1], 0, 2, dashed)
		}
	}
}

// emitStrip writes strip si to the output, cutting a gap for the label if
// one can be placed.
func (c *Contourer) emitStrip(res *Result, si int, labelled, dashed bool, level float64) {
	st := &res.Strips[si]
	if labelled && len(st.Points) > c.MinLabelPoints {
		if lab, ok := c.placeLabel(st.Points, st.Colors, st.Level, level); ok {
			lab.Strip = si
			res.Labels = append(res.Labels, lab)
			c.emitRange(res, st, 0, lab.First+1, dashed)
			c.emitRange(res, st, lab.Last, len(st.Points), dashed)
			return
		}
	}
	c.emitRange(res, st, 0, len(st.Points), dashed)
}

// emitRange writes the points st.Points[a:b] as a polyline.
func (c *Contourer) emitRange(res *Result, st *Strip, a, b int, dashed bool) {
	for ch := range c.subColors {
		c.subColors[ch] = st.Colors[ch][a:b]
	}
	c.emitPart(res, st.Points[a:b], c.subColors, st.Level, dashed)
}

func (c *Contourer) emitPart(res *Result, pts []vec.Vec2, colors [][]byte, li int, dashed bool) {
	if len(pts) < 2 {
		return
	}
	if dashed {
		res.Gaps.addDashed(pts, colors, li)
	} else {
		res.Lines.addPolyline(pts, colors, li)
	}
}

// tileSeedStream is the second PCG seed word for the tile walks.
const tileSeedStream = 0x636f6e746f7572
