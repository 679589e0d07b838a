package search

import (
	"testing"

	"github.com/meghashyamc/ghreport/searchapi"
	"github.com/meghashyamc/ghreport/searchapi/searchapitest"
	"github.com/stretchr/testify/require"
)

func TestInsertIsIdempotent(t *testing.T) {
	assert := require.New(t)
	item := searchapitest.Item("aaa1", "octo/repo", "main.go", "hello world", [2]int{0, 5})

	once := NewResultSet()
	assert.True(once.Insert(item))

	twice := NewResultSet()
	assert.True(twice.Insert(item))
	assert.False(twice.Insert(item), "second insert of the same sha should be discarded")

	assert.Equal(once.Records(), twice.Records())
	assert.Equal(1, twice.Len())
}

func TestInsertFirstWriteWins(t *testing.T) {
	assert := require.New(t)
	first := searchapitest.Item("aaa1", "octo/first", "first.go", "first fragment", [2]int{0, 5})
	second := searchapitest.Item("aaa1", "octo/second", "second.go", "second fragment", [2]int{0, 6})

	results := NewResultSet()
	results.Insert(first)
	results.Insert(second)

	record, ok := results.Get("aaa1")
	assert.True(ok)
	assert.Equal("octo/first", record.Repo)
	assert.Equal("first.go", record.Path)
	assert.Equal(first.HTMLURL, record.URL)
	assert.Equal("first fragment", record.Excerpts[0].Fragment)

	_, ok = results.Get("bbb2")
	assert.False(ok)
}

func TestInsertSortsSpans(t *testing.T) {
	assert := require.New(t)
	item := searchapi.Item{
		SHA:        "abc",
		Path:       "a.go",
		HTMLURL:    "https://github.com/o/r/blob/main/a.go",
		Repository: searchapi.Repository{FullName: "o/r"},
		TextMatches: []searchapi.TextMatch{
			{
				Fragment: "one two three two",
				Matches: []searchapi.Match{
					{Text: "two", Indices: []int{14, 17}},
					{Text: "one", Indices: []int{0, 3}},
					{Text: "tw", Indices: []int{4, 6}},
					{Text: "two", Indices: []int{4, 7}},
				},
			},
			{Fragment: "no matches here"},
		},
	}

	results := NewResultSet()
	results.Insert(item)
	record, _ := results.Get("abc")

	assert.Len(record.Excerpts, 2)
	assert.Equal("one two three two", record.Excerpts[0].Fragment)
	assert.Equal([]MatchSpan{{0, 3}, {4, 6}, {4, 7}, {14, 17}}, record.Excerpts[0].Matches, "ties keep their original order")
	assert.Empty(record.Excerpts[1].Matches)

	for _, excerpt := range record.Excerpts {
		for i := 1; i < len(excerpt.Matches); i++ {
			assert.LessOrEqual(excerpt.Matches[i-1].Begin, excerpt.Matches[i].Begin)
		}
	}
}

func TestRecordsKeepInsertionOrder(t *testing.T) {
	assert := require.New(t)
	results := NewResultSet()
	for _, item := range searchapitest.Items(0, 5) {
		results.Insert(item)
	}
	results.Insert(searchapitest.Items(2, 1)[0])

	var paths []string
	for _, record := range results.Records() {
		paths = append(paths, record.Path)
	}
	assert.Equal([]string{"file0.go", "file1.go", "file2.go", "file3.go", "file4.go"}, paths)
}
