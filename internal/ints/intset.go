// Package ints provides a set of small non-negative integers backed by a bit vector.
package ints

import (
	"math/bits"
)

const chunkShift = 6
const chunkSize = 1 << chunkShift

type Set struct {
	chunks []uint64
}

func NewSet(items ...int) *Set {
	s := &Set{}
	s.Add(items...)
	return s
}

func (s *Set) grow(item int) {
	need := (item >> chunkShift) + 1
	for len(s.chunks) < need {
		s.chunks = append(s.chunks, 0)
	}
}

// Add adds items to the set. Negative items are ignored.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}
		s.grow(item)
		s.chunks[item>>chunkShift] |= 1 << (uint(item) & (chunkSize - 1))
	}
	return s
}

func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if item < 0 || item>>chunkShift >= len(s.chunks) {
			continue
		}
		s.chunks[item>>chunkShift] &^= 1 << (uint(item) & (chunkSize - 1))
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < 0 || item>>chunkShift >= len(s.chunks) {
		return false
	}
	return s.chunks[item>>chunkShift]&(1<<(uint(item)&(chunkSize-1))) != 0
}

func (s *Set) IsEmpty() bool {
	for _, chunk := range s.chunks {
		if chunk != 0 {
			return false
		}
	}
	return true
}

func (s *Set) Len() int {
	total := 0
	for _, chunk := range s.chunks {
		total += bits.OnesCount64(chunk)
	}
	return total
}

// Max returns the greatest item in the set, or false for an empty set.
func (s *Set) Max() (int, bool) {
	for i := len(s.chunks) - 1; i >= 0; i-- {
		if s.chunks[i] != 0 {
			return i<<chunkShift + chunkSize - 1 - bits.LeadingZeros64(s.chunks[i]), true
		}
	}
	return 0, false
}

// ToSlice returns set items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		for chunk != 0 {
			b := bits.TrailingZeros64(chunk)
			result = append(result, i<<chunkShift+b)
			chunk &^= 1 << uint(b)
		}
	}
	return result
}

func (s *Set) Copy() *Set {
	chunks := make([]uint64, len(s.chunks))
	copy(chunks, s.chunks)
	return &Set{chunks}
}

// Union adds all items of t to s and returns s.
func (s *Set) Union(t *Set) *Set {
	for len(s.chunks) < len(t.chunks) {
		s.chunks = append(s.chunks, 0)
	}
	for i, chunk := range t.chunks {
		s.chunks[i] |= chunk
	}
	return s
}
