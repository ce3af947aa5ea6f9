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

import "slices"

// strip is a chain of segments, stored as vertex index pairs in a window
// idx[lo:hi+1] of a larger array.  Consecutive pairs share an endpoint
// (up to matchDistance2); the open ends of the chain are idx[lo] and
// idx[hi].  Free space is kept on both sides of the window so that pairs
// can be added at either end.
type strip struct {
	idx    []int
	lo, hi int
}

// newStrip returns a strip holding the single segment a-b.
func newStrip(a, b int) *strip {
	s := &strip{idx: make([]int, minStripCapacity)}
	s.lo = (minStripCapacity - 2) / 2
	s.hi = s.lo + 1
	s.idx[s.lo] = a
	s.idx[s.hi] = b
	return s
}

// len returns the number of stored indices, twice the number of segments.
func (s *strip) len() int {
	return s.hi - s.lo + 1
}

func (s *strip) front() int { return s.idx[s.lo] }

func (s *strip) back() int { return s.idx[s.hi] }

// indices returns the stored index pairs.  The slice is only valid until
// the strip is modified.
func (s *strip) indices() []int {
	return s.idx[s.lo : s.hi+1]
}

// reserve makes room for front more indices before the window and back
// more indices after it.  If the array needs to grow, the window is placed
// in the middle of the free space.
func (s *strip) reserve(front, back int) {
	if s.lo >= front && len(s.idx)-1-s.hi >= back {
		return
	}
	n := s.len()
	size := max(2*len(s.idx), n+front+back+minStripCapacity)
	idx := make([]int, size)
	lo := front + (size-n-front-back)/2
	copy(idx[lo:], s.indices())
	s.idx = idx
	s.lo = lo
	s.hi = lo + n - 1
}

// pushFront adds the segment outer-inner before the front of the strip.
// inner must coincide with the current front.
func (s *strip) pushFront(outer, inner int) {
	s.reserve(2, 0)
	s.idx[s.lo-1] = inner
	s.idx[s.lo-2] = outer
	s.lo -= 2
}

// pushBack adds the segment inner-outer after the back of the strip.
// inner must coincide with the current back.
func (s *strip) pushBack(inner, outer int) {
	s.reserve(0, 2)
	s.idx[s.hi+1] = inner
	s.idx[s.hi+2] = outer
	s.hi += 2
}

// prepend places the index pairs src before the strip, reversed if
// reverse is set.
func (s *strip) prepend(src []int, reverse bool) {
	n := len(src)
	s.reserve(n, 0)
	dst := s.idx[s.lo-n : s.lo]
	copy(dst, src)
	if reverse {
		slices.Reverse(dst)
	}
	s.lo -= n
}

// append places the index pairs src after the strip, reversed if reverse
// is set.
func (s *strip) append(src []int, reverse bool) {
	n := len(src)
	s.reserve(0, n)
	dst := s.idx[s.hi+1 : s.hi+1+n]
	copy(dst, src)
	if reverse {
		slices.Reverse(dst)
	}
	s.hi += n
}

// stripSet assembles the segments of one level into strips.
type stripSet struct {
	vb     *vertexBuffer
	strips []*strip
}

func (ss *stripSet) reset(vb *vertexBuffer) {
	ss.vb = vb
	clear(ss.strips)
	ss.strips = ss.strips[:0]
}

// near reports whether the vertices i and j coincide.
func (ss *stripSet) near(i, j int) bool {
	dx := ss.vb.x[i] - ss.vb.x[j]
	dy := ss.vb.y[i] - ss.vb.y[j]
	return dx*dx+dy*dy < matchDistance2
}

// addSegment adds segment k of the vertex buffer.
func (ss *stripSet) addSegment(k int) {
	ss.add(newStrip(2*k, 2*k+1))
}

// stripMatch records that an end of a new strip coincides with an end of
// an existing one.
type stripMatch struct {
	strip  int  // index into ss.strips
	newEnd bool // true if the back of the new strip matched
}

// add inserts s into the set, joining it with the strips which share an
// endpoint with it.
//
// With no match, s is kept as a new strip.  With one match, s is merged into
// the matching strip.  If the two ends of s match two different strips, the
// three are joined into one.  If both ends match the same strip, the strip
// is closed into a loop.  All other configurations (an end which matches
// twice, or more than two matches) are left alone and s becomes a new strip.
func (ss *stripSet) add(s *strip) {
	var m [2]stripMatch
	count := 0
	f, b := s.front(), s.back()
scan:
	for i, t := range ss.strips {
		for _, end := range [2]int{t.front(), t.back()} {
			for _, newEnd := range [2]bool{false, true} {
				v := f
				if newEnd {
					v = b
				}
				if !ss.near(end, v) {
					continue
				}
				if count == len(m) {
					count++
					break scan
				}
				m[count] = stripMatch{strip: i, newEnd: newEnd}
				count++
			}
		}
	}

	switch {
	case count == 1:
		if merge(ss, ss.strips[m[0].strip], s) {
			return
		}
	case count == 2 && m[0].newEnd != m[1].newEnd:
		t0 := ss.strips[m[0].strip]
		if m[0].strip == m[1].strip {
			if merge(ss, t0, s) {
				return
			}
			break
		}
		if !merge(ss, t0, s) {
			break
		}
		if merge(ss, t0, ss.strips[m[1].strip]) {
			ss.remove(m[1].strip)
		}
		return
	}
	ss.strips = append(ss.strips, s)
}

// remove deletes strip i, moving the last strip into its place.
func (ss *stripSet) remove(i int) {
	last := len(ss.strips) - 1
	ss.strips[i] = ss.strips[last]
	ss.strips[last] = nil
	ss.strips = ss.strips[:last]
}

// merge appends or prepends src to dst, trying the end pairings in the order
// front-front, front-back, back-back, back-front.  It reports whether a
// pairing matched.
func merge(ss *stripSet, dst, src *strip) bool {
	switch {
	case ss.near(dst.front(), src.front()):
		dst.prepend(src.indices(), true)
	case ss.near(dst.front(), src.back()):
		dst.prepend(src.indices(), false)
	case ss.near(dst.back(), src.back()):
		dst.append(src.indices(), true)
	case ss.near(dst.back(), src.front()):
		dst.append(src.indices(), false)
	default:
		return false
	}
	return true
}

// polyline appends the vertex indices of the points along the strip to dst.
// A strip of n segments gives n+1 points.
func (s *strip) polyline(dst []int) []int {
	idx := s.indices()
	dst = append(dst, idx[0])
	for i := 1; i < len(idx); i += 2 {
		dst = append(dst, idx[i])
	}
	return dst
}

const (
	// matchDistance2 is the squared distance below which two segment
	// endpoints are considered the same point.
	matchDistance2 = 1e-5

	// minStripCapacity is the initial size of the index array of a strip.
	minStripCapacity = 16
)
