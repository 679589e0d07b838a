package report

import (
	"github.com/meghashyamc/ghreport/services/search"
)

const Title = "Search Results"

const classSpacer = "spacer"

const StyleSheet = `
span.match {
    font-weight: bold;
}

table {
    border-collapse: collapse;
}

table td {
    border: solid;
}

table td.spacer {
    border: none;
    height: 1.5em;
}
`

// Build lays the records out as one table. Each record is a section of rows:
// a link to the file, one row per excerpt and a spacer row closing it.
func Build(records []search.Record) *Element {
	return NewElement("html", nil,
		NewElement("head", nil,
			NewElement("title", nil, NewText(Title)),
			NewElement("style", nil, NewText(StyleSheet)),
		),
		NewElement("body", nil, buildTable(records)),
	)
}

func buildTable(records []search.Record) *Element {
	table := NewElement("table", nil)

	for _, record := range records {
		link := NewElement("a", []Attr{{Key: "href", Value: record.URL}}, NewText(record.Repo+"/"+record.Path))
		table.Append(row(link))

		for _, excerpt := range record.Excerpts {
			table.Append(row(ExcerptElement(excerpt)))
		}

		table.Append(NewElement("tr", nil, NewElement("td", []Attr{{Key: "class", Value: classSpacer}})))
	}

	return table
}

func row(content *Element) *Element {
	return NewElement("tr", nil, NewElement("td", nil, content))
}
