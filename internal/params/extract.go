// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package params

// NamingContext is what a parameter is named after: either the literal
// previous path segment, or a disambiguation counter when that segment was
// itself a parameter value.
type NamingContext struct {
	Segment   string
	Counter   int
	IsCounter bool
}

// Match is one pattern match against one path segment.
type Match struct {
	// Index is the position of the segment in the split path
	Index int

	// PatternName is the name of the pattern that matched
	PatternName string

	// RawValue is the segment text that matched
	RawValue string

	// Context is the naming context used to derive Name
	Context NamingContext

	// Name is the derived parameter token, e.g. "{userId}"
	Name string
}

// ExtractionState is the accumulator threaded through a segment scan.
// A fresh state must be used for every path.
type ExtractionState struct {
	consumed []string
	counters map[string]int
}

// NewExtractionState returns an empty state.
func NewExtractionState() *ExtractionState {
	return &ExtractionState{counters: make(map[string]int)}
}

// Consumed reports whether value was already matched as a parameter value.
func (s *ExtractionState) Consumed(value string) bool {
	for _, v := range s.consumed {
		if v == value {
			return true
		}
	}
	return false
}

func (s *ExtractionState) consume(value string) {
	s.consumed = append(s.consumed, value)
}

func (s *ExtractionState) next(pattern string) int {
	s.counters[pattern]++
	return s.counters[pattern]
}

// Extract scans the segments against the pattern set and returns every
// match in segment order, then pattern order. A segment matched by more than
// one pattern yields one match per pattern.
func Extract(segments []string, patterns PatternSet) []Match {
	state := NewExtractionState()
	var matches []Match

	for i, segment := range segments {
		previous := ""
		if i > 0 {
			previous = segments[i-1]
		}

		for _, p := range patterns {
			if !p.Matches(segment) {
				continue
			}

			ctx := NamingContext{Segment: previous}
			if state.Consumed(previous) {
				ctx = NamingContext{Counter: state.next(p.Name), IsCounter: true}
			}

			matches = append(matches, Match{
				Index:       i,
				PatternName: p.Name,
				RawValue:    segment,
				Context:     ctx,
				Name:        ParamName(p, ctx),
			})
			state.consume(segment)
		}
	}

	return matches
}
