/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package segmenttrie is a prefix index over dot-separated reasons.
package segmenttrie

import (
	"errors"
	"strings"
)

// Trie maps reason prefixes to values. Each node is one segment; the
// child "*" matches any single segment. Lookups return the deepest node
// carrying a value (longest prefix match on segment boundaries).
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the inserted prefix, kept for Explain output.
	pattern string
}

// ErrInvalidPrefix is returned for empty prefixes, empty or malformed
// segments, and prefixes made only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with prefix, e.g. "payment.gateway" or
// "coupon.*.expired". Re-inserting a prefix replaces its value.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	literal := false
	for _, s := range segs {
		if !ValidSegment(s, true) {
			return ErrInvalidPrefix
		}
		if s != "*" {
			literal = true
		}
	}
	if !literal {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, ok := cur.children[s]
		if !ok {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match returns the value of the longest matching prefix of reason.
func (t *Trie[T]) Match(reason string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(reason)
	return v, ok
}

// MatchWithPattern is Match that also reports the matched prefix as it
// was inserted.
//
// Literal children are explored before "*", and only a strictly deeper
// node replaces the current best, so a literal wins over a wildcard at
// the same depth. A malformed segment ends the walk on that path.
func (t *Trie[T]) MatchWithPattern(reason string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	var best *Trie[T]
	bestDepth := -1

	var walk func(n *Trie[T], off, depth int)
	walk = func(n *Trie[T], off, depth int) {
		if n.hasVal && depth > bestDepth {
			best, bestDepth = n, depth
		}
		if off >= len(reason) {
			return
		}
		end := segmentEnd(reason, off)
		if end < 0 {
			return
		}
		seg := reason[off:end]
		next := end
		if next < len(reason) {
			next++ // skip '.'
		}
		if c, ok := n.children[seg]; ok {
			walk(c, next, depth+1)
		}
		if c, ok := n.children["*"]; ok {
			walk(c, next, depth+1)
		}
	}
	walk(t, 0, 0)

	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// segmentEnd returns the index just past the segment starting at off,
// or -1 when the segment is not [a-z][a-z0-9_]*.
func segmentEnd(s string, off int) int {
	if c := s[off]; c < 'a' || c > 'z' {
		return -1
	}
	i := off + 1
	for ; i < len(s) && s[i] != '.'; i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_') {
			return -1
		}
	}
	return i
}

// ValidSegment reports whether seg is [a-z][a-z0-9_]*, or "*" when
// allowWildcard is set.
func ValidSegment(seg string, allowWildcard bool) bool {
	if seg == "" {
		return false
	}
	if allowWildcard && seg == "*" {
		return true
	}
	return segmentEnd(seg, 0) == len(seg)
}
