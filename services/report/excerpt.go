package report

import (
	"github.com/meghashyamc/ghreport/services/search"
)

const classMatch = "match"

// Segment is a run of fragment text, highlighted when it is part of a match.
type Segment struct {
	Text        string
	Highlighted bool
}

// RenderExcerpt splits the fragment into alternating plain and highlighted
// segments. An empty prefix before the first match is left out; the gaps
// between matches and the suffix after the last one are always present, even
// when empty.
//
// Offsets count characters, not bytes. Spans reaching outside the fragment are
// clamped to it, and a span starting inside the previous one is cut to start
// where the previous one ends, so the segments always add up to the fragment.
// That holds for valid UTF-8 only: when spans are present, each invalid byte
// comes back as U+FFFD. Fragments decoded from JSON are always valid.
func RenderExcerpt(excerpt search.Excerpt) []Segment {
	fragment := []rune(excerpt.Fragment)

	if len(excerpt.Matches) == 0 {
		return []Segment{{Text: excerpt.Fragment}}
	}

	spans := clampSpans(excerpt.Matches, len(fragment))
	segments := make([]Segment, 0, 2*len(spans)+1)

	if first := spans[0]; first.Begin > 0 {
		segments = append(segments, Segment{Text: string(fragment[:first.Begin])})
	}

	for i, span := range spans {
		segments = append(segments, Segment{Text: string(fragment[span.Begin:span.End]), Highlighted: true})

		plainEnd := len(fragment)
		if i+1 < len(spans) {
			plainEnd = spans[i+1].Begin
		}
		segments = append(segments, Segment{Text: string(fragment[span.End:plainEnd])})
	}

	return segments
}

func clampSpans(spans []search.MatchSpan, length int) []search.MatchSpan {
	clamped := make([]search.MatchSpan, 0, len(spans))
	previousEnd := 0
	for _, span := range spans {
		begin := min(max(span.Begin, previousEnd), length)
		end := min(max(span.End, begin), length)
		clamped = append(clamped, search.MatchSpan{Begin: begin, End: end})
		previousEnd = end
	}
	return clamped
}

// ExcerptElement renders an excerpt as a preformatted block in which every
// match is a span of class "match".
func ExcerptElement(excerpt search.Excerpt) *Element {
	block := NewElement("pre", nil)
	for _, segment := range RenderExcerpt(excerpt) {
		if segment.Highlighted {
			block.Append(NewElement("span", []Attr{{Key: "class", Value: classMatch}}, NewText(segment.Text)))
			continue
		}
		if len(segment.Text) > 0 {
			block.Append(NewText(segment.Text))
		}
	}
	return block
}
