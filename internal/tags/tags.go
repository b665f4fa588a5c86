// Package tags provides the tag set used across extraction and front-matter
// merging. Tags are case-sensitive and keep first-seen order so output is
// deterministic.
package tags

import (
	"strings"
	"unicode"
)

// Set collects tags with deduplication. Unlike a sorted set, insertion
// order is preserved: the first appearance of a tag decides its position.
type Set struct {
	seen  map[string]bool
	order []string
}

// NewSet creates an empty tag Set.
func NewSet() *Set {
	return &Set{seen: make(map[string]bool)}
}

// Add adds a tag to the set. Empty, symbol-only and duplicate tags are
// filtered. Returns true if the tag was accepted.
func (s *Set) Add(tag string) bool {
	tag = Clean(tag)
	if tag == "" || SymbolOnly(tag) {
		return false
	}
	if s.seen[tag] {
		return true
	}
	s.seen[tag] = true
	s.order = append(s.order, tag)
	return true
}

// AddAll adds every tag in the slice.
func (s *Set) AddAll(values []string) {
	for _, v := range values {
		s.Add(v)
	}
}

// Contains reports whether the set already holds the tag.
func (s *Set) Contains(tag string) bool {
	return s.seen[Clean(tag)]
}

// Slice returns the tags in first-seen order.
func (s *Set) Slice() []string {
	result := make([]string, len(s.order))
	copy(result, s.order)
	return result
}

// Len returns the number of tags in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// Clean strips the leading hash, surrounding whitespace and surrounding
// quote characters from a raw tag token. Case is preserved.
func Clean(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "#")
	tag = strings.Trim(tag, `"'`)
	return strings.TrimSpace(tag)
}

// SymbolOnly reports whether the token consists exclusively of
// punctuation/symbol characters. Such tokens are rejected as tags.
func SymbolOnly(tag string) bool {
	for _, r := range tag {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return false
		}
	}
	return len(tag) > 0
}

// Merge combines two tag slices with duplicates removed, case-sensitive,
// first slice first. Symbol-only entries are dropped.
func Merge(existing, added []string) []string {
	set := NewSet()
	set.AddAll(existing)
	set.AddAll(added)
	return set.Slice()
}
