package search

// MatchSpan is a half-open [Begin, End) range of character offsets into a fragment.
type MatchSpan struct {
	Begin int
	End   int
}

type Excerpt struct {
	Fragment string
	Matches  []MatchSpan
}

type Record struct {
	SHA      string
	Path     string
	URL      string
	Repo     string
	Excerpts []Excerpt
}
