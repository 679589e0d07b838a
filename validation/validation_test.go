package validation

import (
	"testing"

	"github.com/meghashyamc/ghreport/logger"
	"github.com/stretchr/testify/require"
)

type testQuery struct {
	Query string `json:"query" validate:"valid_query"`
}

type testMatch struct {
	Indices []int `json:"indices" validate:"valid_span"`
}

type testItem struct {
	SHA     string      `json:"sha" validate:"valid_sha"`
	Path    string      `json:"path" validate:"required"`
	Matches []testMatch `json:"matches" validate:"dive"`
}

func newTestValidator(t *testing.T) *Validator {
	validator, err := New(logger.NewDiscard())
	require.NoError(t, err, "could not create validator")
	return validator
}

func TestValidateQuery(t *testing.T) {
	validator := newTestValidator(t)

	testCases := []struct {
		name        string
		query       string
		expectedErr error
	}{
		{name: "Simple", query: "addClass in:file language:js"},
		{name: "LeadingDash", query: "-repo:foo/bar needle"},
		{name: "Empty", query: "", expectedErr: ErrInvalidQuery},
		{name: "Blank", query: "   \t", expectedErr: ErrInvalidQuery},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			err := validator.Validate(testQuery{Query: testCase.query})
			if testCase.expectedErr == nil {
				assert.NoError(err)
				return
			}
			assert.ErrorIs(err, testCase.expectedErr)
		})
	}
}

func TestValidateItem(t *testing.T) {
	validator := newTestValidator(t)

	testCases := []struct {
		name        string
		item        testItem
		expectedErr error
		errContains string
	}{
		{
			name: "Valid",
			item: testItem{SHA: "d670460b4b4aece5915caf5c68d12f560a9fe3e4", Path: "a.go", Matches: []testMatch{{Indices: []int{0, 4}}}},
		},
		{
			name: "InvertedSpanIsTolerated",
			item: testItem{SHA: "abc123", Path: "a.go", Matches: []testMatch{{Indices: []int{7, 2}}}},
		},
		{
			name:        "EmptySHA",
			item:        testItem{SHA: "", Path: "a.go"},
			expectedErr: ErrInvalidSHA,
		},
		{
			name:        "NonHexSHA",
			item:        testItem{SHA: "not-a-sha", Path: "a.go"},
			expectedErr: ErrInvalidSHA,
		},
		{
			name:        "MissingPath",
			item:        testItem{SHA: "abc123"},
			errContains: "missing required field",
		},
		{
			name:        "SpanWithOneOffset",
			item:        testItem{SHA: "abc123", Path: "a.go", Matches: []testMatch{{Indices: []int{3}}}},
			expectedErr: ErrInvalidSpan,
		},
		{
			name:        "SpanWithNegativeOffset",
			item:        testItem{SHA: "abc123", Path: "a.go", Matches: []testMatch{{Indices: []int{-1, 3}}}},
			expectedErr: ErrInvalidSpan,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			err := validator.Validate(testCase.item)
			switch {
			case testCase.expectedErr != nil:
				assert.ErrorIs(err, testCase.expectedErr)
			case testCase.errContains != "":
				assert.ErrorContains(err, testCase.errContains)
			default:
				assert.NoError(err)
			}
		})
	}
}
