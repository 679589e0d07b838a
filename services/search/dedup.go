package search

import (
	"sort"

	"github.com/meghashyamc/ghreport/searchapi"
)

// ResultSet holds one Record per content hash. The first sighting of a sha
// wins and is never overwritten. Records come back in insertion order.
type ResultSet struct {
	records map[string]*Record
	order   []string
}

func NewResultSet() *ResultSet {
	return &ResultSet{records: make(map[string]*Record)}
}

// Insert adds the item unless its sha is already present. It reports whether
// a new record was created.
func (r *ResultSet) Insert(item searchapi.Item) bool {
	if _, ok := r.records[item.SHA]; ok {
		return false
	}

	r.records[item.SHA] = &Record{
		SHA:      item.SHA,
		Path:     item.Path,
		URL:      item.HTMLURL,
		Repo:     item.Repository.FullName,
		Excerpts: toExcerpts(item.TextMatches),
	}
	r.order = append(r.order, item.SHA)

	return true
}

func (r *ResultSet) Get(sha string) (Record, bool) {
	record, ok := r.records[sha]
	if !ok {
		return Record{}, false
	}
	return *record, true
}

func (r *ResultSet) Len() int {
	return len(r.order)
}

func (r *ResultSet) Records() []Record {
	records := make([]Record, 0, len(r.order))
	for _, sha := range r.order {
		records = append(records, *r.records[sha])
	}
	return records
}

func toExcerpts(textMatches []searchapi.TextMatch) []Excerpt {
	excerpts := make([]Excerpt, 0, len(textMatches))
	for _, textMatch := range textMatches {
		excerpts = append(excerpts, Excerpt{
			Fragment: textMatch.Fragment,
			Matches:  toSortedSpans(textMatch.Matches),
		})
	}
	return excerpts
}

func toSortedSpans(matches []searchapi.Match) []MatchSpan {
	spans := make([]MatchSpan, 0, len(matches))
	for _, match := range matches {
		if len(match.Indices) != 2 {
			continue
		}
		spans = append(spans, MatchSpan{Begin: match.Indices[0], End: match.Indices[1]})
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Begin < spans[j].Begin
	})

	return spans
}
