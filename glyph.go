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

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/vec"
)

// glyph is the flattened outline of one character.  Coordinates have the
// y axis pointing up, the origin on the baseline at the left edge, and are
// scaled so that digits have height 1.
type glyph struct {
	segs    []vec.Vec2 // segment endpoint pairs
	advance float64
}

// glyphSet holds the outlines of all characters which can occur in a
// formatted level value.
type glyphSet struct {
	glyphs map[rune]*glyph
}

// labelRunes lists the characters produced by strconv.FormatFloat with the
// 'g' format.
const labelRunes = "0123456789+-.e"

// loadGlyphs reads the outlines of labelRunes from the Go Mono font.
func loadGlyphs() (*glyphSet, error) {
	f, err := sfnt.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("label font: %w", err)
	}

	var buf sfnt.Buffer
	ppem := fixed.I(int(f.UnitsPerEm()))
	gs := &glyphSet{glyphs: make(map[rune]*glyph, len(labelRunes))}
	for _, r := range labelRunes {
		x, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, fmt.Errorf("label font: glyph %q: %w", r, err)
		}
		outline, err := f.LoadGlyph(&buf, x, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("label font: glyph %q: %w", r, err)
		}
		g := &glyph{segs: flattenOutline(outline, nil)}
		adv, err := f.GlyphAdvance(&buf, x, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("label font: glyph %q: %w", r, err)
		}
		g.advance = fixedToFloat(adv)
		gs.glyphs[r] = g
	}

	var height float64
	for _, p := range gs.glyphs['0'].segs {
		height = max(height, p.Y)
	}
	if height <= 0 {
		return nil, fmt.Errorf("label font: empty digit outline")
	}
	scale := 1 / height
	for _, g := range gs.glyphs {
		for i := range g.segs {
			g.segs[i] = g.segs[i].Mul(scale)
		}
		g.advance *= scale
	}
	return gs, nil
}

// layout appends the outline segments of text to dst, placed one after
// another starting at the origin.  It returns the extended slice and the
// total advance width.  Characters without a glyph are skipped.
func (gs *glyphSet) layout(text string, dst []vec.Vec2) ([]vec.Vec2, float64) {
	var x float64
	for _, r := range text {
		g, ok := gs.glyphs[r]
		if !ok {
			continue
		}
		offset := vec.Vec2{X: x}
		for _, p := range g.segs {
			dst = append(dst, p.Add(offset))
		}
		x += g.advance
	}
	return dst, x
}

// width returns the advance width of text.
func (gs *glyphSet) width(text string) float64 {
	var x float64
	for _, r := range text {
		if g, ok := gs.glyphs[r]; ok {
			x += g.advance
		}
	}
	return x
}

// flattenOutline converts a glyph outline into line segments, appended to
// dst as endpoint pairs.  Curves are approximated by curveSteps segments
// each.  Every contour is closed.
func flattenOutline(outline sfnt.Segments, dst []vec.Vec2) []vec.Vec2 {
	var start, cur vec.Vec2
	open := false
	closeContour := func() {
		if open && cur != start {
			dst = append(dst, cur, start)
		}
	}

	for _, seg := range outline {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			start = fixedToVec(seg.Args[0])
			cur = start
			open = true

		case sfnt.SegmentOpLineTo:
			p := fixedToVec(seg.Args[0])
			dst = append(dst, cur, p)
			cur = p

		case sfnt.SegmentOpQuadTo:
			p0, p1, p2 := cur, fixedToVec(seg.Args[0]), fixedToVec(seg.Args[1])
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				omt := 1 - t
				p := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
				dst = append(dst, cur, p)
				cur = p
			}

		case sfnt.SegmentOpCubeTo:
			p0 := cur
			p1, p2, p3 := fixedToVec(seg.Args[0]), fixedToVec(seg.Args[1]), fixedToVec(seg.Args[2])
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				omt := 1 - t
				p := p0.Mul(omt * omt * omt).Add(p1.Mul(3 * omt * omt * t)).
					Add(p2.Mul(3 * omt * t * t)).Add(p3.Mul(t * t * t))
				dst = append(dst, cur, p)
				cur = p
			}
		}
	}
	closeContour()
	return dst
}

// fixedToVec converts a point from the font's y-down coordinates.
func fixedToVec(p fixed.Point26_6) vec.Vec2 {
	return vec.Vec2{X: fixedToFloat(p.X), Y: -fixedToFloat(p.Y)}
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// curveSteps is the number of line segments used for each curve of a
// glyph outline.
const curveSteps = 4
