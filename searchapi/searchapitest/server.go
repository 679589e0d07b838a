// Package searchapitest runs a fake code search endpoint for tests.
package searchapitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/ghreport/searchapi"
)

// Page describes how the fake server answers one page number.
// A zero Status means 200. RawBody, when set, is sent instead of a JSON payload.
// A zero RateLimitRemaining reports spare quota unless RateLimitExhausted is set.
type Page struct {
	Status     int
	TotalCount int
	Items      []searchapi.Item
	RawBody    string

	RateLimitRemaining int
	RateLimitReset     int64
	RateLimitExhausted bool
	OmitRateLimit      bool
}

type Server struct {
	*httptest.Server
	token string

	mu        sync.Mutex
	pages     map[int]Page
	requested []int
	queries   []string
}

// NewServer serves the given pages at /search/code. Pages without a fixture
// answer 422 the way the real API does past the result ceiling.
func NewServer(t testing.TB, token string, pages map[int]Page) *Server {
	gin.SetMode(gin.TestMode)

	server := &Server{token: token, pages: pages}
	router := gin.New()
	router.GET("/search/code", server.handleSearchCode)

	server.Server = httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func (s *Server) handleSearchCode(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+s.token {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Bad credentials"})
		return
	}
	if c.GetHeader("Accept") != searchapi.AcceptTextMatch {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": "Unsupported media type"})
		return
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid page"})
		return
	}

	s.mu.Lock()
	s.requested = append(s.requested, page)
	s.queries = append(s.queries, c.Query("q"))
	fixture, ok := s.pages[page]
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Only the first 1000 search results are available"})
		return
	}

	if !fixture.OmitRateLimit {
		reset := fixture.RateLimitReset
		if reset == 0 {
			reset = time.Now().Add(time.Minute).Unix()
		}
		remaining := fixture.RateLimitRemaining
		if remaining == 0 && !fixture.RateLimitExhausted {
			remaining = 29
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
		c.Header("X-RateLimit-Used", strconv.Itoa(30-remaining))
	}

	status := fixture.Status
	if status == 0 {
		status = http.StatusOK
	}

	if len(fixture.RawBody) > 0 {
		c.Data(status, "application/json", []byte(fixture.RawBody))
		return
	}

	if status != http.StatusOK {
		c.JSON(status, gin.H{"message": http.StatusText(status)})
		return
	}

	items := fixture.Items
	if items == nil {
		items = []searchapi.Item{}
	}
	c.JSON(status, gin.H{
		"total_count":        fixture.TotalCount,
		"incomplete_results": false,
		"items":              items,
	})
}

// RequestedPages lists the page numbers asked for, in order.
func (s *Server) RequestedPages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.requested...)
}

func (s *Server) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Item builds a result item with one text match highlighting the given spans.
func Item(sha string, repo string, path string, fragment string, spans ...[2]int) searchapi.Item {
	matches := make([]searchapi.Match, 0, len(spans))
	runes := []rune(fragment)
	for _, span := range spans {
		matches = append(matches, searchapi.Match{
			Text:    string(runes[span[0]:span[1]]),
			Indices: []int{span[0], span[1]},
		})
	}

	return searchapi.Item{
		SHA:        sha,
		Name:       path,
		Path:       path,
		HTMLURL:    fmt.Sprintf("https://github.com/%s/blob/main/%s", repo, path),
		Repository: searchapi.Repository{FullName: repo},
		TextMatches: []searchapi.TextMatch{{
			ObjectType: "FileContent",
			Property:   "content",
			Fragment:   fragment,
			Matches:    matches,
		}},
	}
}

// Items builds n distinct items whose shas start at offset.
func Items(offset int, n int) []searchapi.Item {
	items := make([]searchapi.Item, 0, n)
	for i := offset; i < offset+n; i++ {
		items = append(items, Item(fmt.Sprintf("%040x", i+1), "octo/repo", fmt.Sprintf("file%d.go", i), "func main() {}", [2]int{0, 4}))
	}
	return items
}
