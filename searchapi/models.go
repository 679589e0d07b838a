package searchapi

type Result struct {
	TotalCount        *int   `json:"total_count" validate:"required,min=0"`
	IncompleteResults bool   `json:"incomplete_results"`
	Items             []Item `json:"items" validate:"required"`

	// InvalidItems counts the items dropped from Items because they failed validation.
	InvalidItems int `json:"-"`
}

type Item struct {
	SHA         string      `json:"sha" validate:"valid_sha"`
	Name        string      `json:"name"`
	Path        string      `json:"path" validate:"required"`
	HTMLURL     string      `json:"html_url" validate:"required"`
	Repository  Repository  `json:"repository"`
	TextMatches []TextMatch `json:"text_matches" validate:"dive"`
}

type Repository struct {
	FullName string `json:"full_name" validate:"required"`
}

type TextMatch struct {
	ObjectType string  `json:"object_type,omitempty"`
	Property   string  `json:"property,omitempty"`
	Fragment   string  `json:"fragment"`
	Matches    []Match `json:"matches" validate:"dive"`
}

// Match indices are [begin, end) character offsets into the fragment.
type Match struct {
	Text    string `json:"text"`
	Indices []int  `json:"indices" validate:"valid_span"`
}
