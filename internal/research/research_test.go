package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/types"
)

func feed(n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel>`)
	b.WriteString(`<title>"Acme news" - Google News</title><link>https://news.example.com</link>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "<item><title>Headline %d</title><link>https://news.example.com/%d</link></item>", i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestParseFeed(t *testing.T) {
	body := `<rss><channel><title>Feed</title>
<item><title> Acme raises Series B </title><link> https://n.example.com/1 </link></item>
<item><title></title><link>https://n.example.com/2</link></item>
<item><title>No link</title></item>
<item><title>Acme &amp; Globex merge</title><link>https://n.example.com/3</link></item>
</channel></rss>`

	items, err := ParseFeed([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []types.NewsItem{
		{Title: "Acme raises Series B", Link: "https://n.example.com/1"},
		{Title: "Acme & Globex merge", Link: "https://n.example.com/3"},
	}, items)
}

func TestParseFeed_Invalid(t *testing.T) {
	_, err := ParseFeed([]byte("<html><body>not a feed</body></html>"))
	assert.Error(t, err)
}

func TestNews(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feed(8)))
	}))
	defer server.Close()

	r := New(Options{FeedURL: server.URL + "/rss/search?hl=en", NewsLimit: 3})
	items := r.News(context.Background(), " Acme ")

	assert.Equal(t, "Acme news", query)
	require.Len(t, items, 3)
	assert.Equal(t, types.NewsItem{Title: "Headline 1", Link: "https://news.example.com/1"}, items[0])
}

func TestNews_DefaultLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feed(9)))
	}))
	defer server.Close()

	items := New(Options{FeedURL: server.URL}).News(context.Background(), "Acme")
	assert.Len(t, items, DefaultNewsLimit)
}

func TestNews_DegradesToEmpty(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>nope</html>"))
	}))
	defer garbage.Close()

	tests := []struct {
		name    string
		feedURL string
		company string
	}{
		{"status error", failing.URL, "Acme"},
		{"not a feed", garbage.URL, "Acme"},
		{"unreachable", "https://unreachable.invalid/rss", "Acme"},
		{"no feed configured", "", "Acme"},
		{"blank company", garbage.URL, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := New(Options{FeedURL: tt.feedURL}).News(context.Background(), tt.company)
			require.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestCompany_WithoutSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feed(1)))
	}))
	defer server.Close()

	profile := New(Options{FeedURL: server.URL}).Company(context.Background(), " Acme ")

	assert.Equal(t, "Acme", profile.Company)
	assert.Empty(t, profile.Website)
	assert.Len(t, profile.News, 1)
}
