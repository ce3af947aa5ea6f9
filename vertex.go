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

import "seehuhn.de/go/geom/vec"

// vertexBuffer stores the endpoints of all segments found during one
// contouring pass.  Segment k occupies the vertex indices 2k and 2k+1.
//
// Coordinates and colour channels are kept in parallel arrays.  When the
// buffer is full, the capacity is doubled; indices handed out earlier stay
// valid.
type vertexBuffer struct {
	x, y   []float64
	colors [][]byte // one array per colour channel
	n      int      // number of vertices in use
}

// reset empties the buffer, keeping the allocated capacity.
func (b *vertexBuffer) reset(channels int) {
	b.n = 0
	if cap(b.colors) < channels {
		old := b.colors
		b.colors = make([][]byte, channels)
		copy(b.colors, old)
	}
	b.colors = b.colors[:channels]
	for i := range b.colors {
		if len(b.colors[i]) < len(b.x) {
			b.colors[i] = growTo(b.colors[i], len(b.x))
		}
	}
}

// segments returns the number of segments stored in the buffer.
func (b *vertexBuffer) segments() int {
	return b.n / 2
}

// addSegment appends the segment p-q and returns its index k.
// cp and cq hold the colour channels of the two endpoints and must have
// one entry per channel.
func (b *vertexBuffer) addSegment(p, q vec.Vec2, cp, cq []byte) int {
	if b.n+2 > len(b.x) {
		size := max(2*len(b.x), minVertexCapacity)
		b.x = growTo(b.x, size)
		b.y = growTo(b.y, size)
		for i := range b.colors {
			b.colors[i] = growTo(b.colors[i], size)
		}
	}

	i := b.n
	b.x[i], b.y[i] = p.X, p.Y
	b.x[i+1], b.y[i+1] = q.X, q.Y
	for ch := range b.colors {
		b.colors[ch][i] = cp[ch]
		b.colors[ch][i+1] = cq[ch]
	}
	b.n += 2
	return i / 2
}

// pos returns the position of vertex i.
func (b *vertexBuffer) pos(i int) vec.Vec2 {
	return vec.Vec2{X: b.x[i], Y: b.y[i]}
}

// color returns channel ch of vertex i.
func (b *vertexBuffer) color(ch, i int) byte {
	return b.colors[ch][i]
}

// growTo returns a slice of length size holding the contents of s.
func growTo[T any](s []T, size int) []T {
	if size <= len(s) {
		return s
	}
	out := make([]T, size)
	copy(out, s)
	return out
}

// minVertexCapacity is the initial capacity of the vertex buffer.
const minVertexCapacity = 1024
