package jobparse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/fetch"
	"github.com/jonathan/job-tracker/internal/types"
)

const postingHTML = `<html><head>
<title>Backend Engineer | Acme</title>
<meta property="og:title" content="Senior Backend Engineer">
<meta property="og:description" content="We need a React and AWS engineer with Docker experience">
<meta name="company" content="Acme Corp">
</head><body><h1>Senior Backend Engineer</h1><p>Lots of text here.</p></body></html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestParse_PageMode(t *testing.T) {
	server := serve(t, http.StatusOK, postingHTML)

	job := New(Options{}).Parse(context.Background(), Input{URL: server.URL})

	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, "Acme Corp", job.Company)
	assert.Equal(t, "We need a React and AWS engineer with Docker experience", job.Description)
	assert.Equal(t, []string{"React", "AWS", "Docker", "engineer", "experience"}, job.Keywords)
}

func TestParse_UnreachableURL(t *testing.T) {
	p := New(Options{Timeout: 2 * time.Second})

	job := p.Parse(context.Background(), Input{URL: "https://unreachable.invalid"})

	assert.Empty(t, job.Title)
	assert.Empty(t, job.Company)
	assert.Empty(t, job.Description)
	require.NotNil(t, job.Keywords)
	assert.Empty(t, job.Keywords)
}

func TestParse_FetchFailureFallsBackToText(t *testing.T) {
	server := serve(t, http.StatusForbidden, "denied")

	job := New(Options{}).Parse(context.Background(), Input{
		URL:  server.URL,
		Text: "Title: Platform Engineer\nCompany: Globex\nWe run Kubernetes and Python services.",
	})

	assert.Equal(t, "Platform Engineer", job.Title)
	assert.Equal(t, "Globex", job.Company)
	assert.Equal(t, []string{"Python", "Kubernetes"}, job.Keywords)
}

func TestParse_TextOnly(t *testing.T) {
	job := New(Options{}).Parse(context.Background(), Input{Text: "Company - Initech\nJava and SQL required"})

	assert.Empty(t, job.Title)
	assert.Equal(t, "Initech", job.Company)
	assert.Equal(t, []string{"Java", "SQL"}, job.Keywords)
}

func TestParse_EmptyInput(t *testing.T) {
	job := New(Options{}).Parse(context.Background(), Input{})

	assert.Equal(t, types.ParsedJob{Keywords: []string{}}, job)
}

func TestParseHTML_Fallbacks(t *testing.T) {
	html := `<html><head><title>  Data Engineer  </title></head>
<body><div class="topcard__org-name"> Hooli </div><p>Work with SQL daily.</p></body></html>`

	job := ParseHTML(html, fetch.PlatformUnknown)

	assert.Equal(t, "Data Engineer", job.Title)
	assert.Equal(t, "Hooli", job.Company)
	assert.Equal(t, "Hooli Work with SQL daily.", job.Description)
	assert.Contains(t, job.Keywords, "SQL")
}

func TestParseHTML_DescriptionTruncatedToRunes(t *testing.T) {
	body := strings.Repeat("é", PageDescriptionLimit+50)
	job := ParseHTML("<html><body>"+body+"</body></html>", fetch.PlatformUnknown)

	assert.Equal(t, PageDescriptionLimit, len([]rune(job.Description)))
}

func TestParseHTML_NoDescriptionNoKeywords(t *testing.T) {
	job := ParseHTML(`<html><head><title>Only a title</title></head><body></body></html>`, fetch.PlatformUnknown)

	assert.Equal(t, "Only a title", job.Title)
	assert.Empty(t, job.Description)
	assert.Equal(t, []string{}, job.Keywords)
}

func TestParseHTML_PlatformSelectors(t *testing.T) {
	html := `<html><body><span class="company-name">Umbrella</span><p>Go and Docker.</p></body></html>`

	assert.Equal(t, "Umbrella", ParseHTML(html, fetch.PlatformGreenhouse).Company)
	assert.Empty(t, ParseHTML(html, fetch.PlatformUnknown).Company)
}

func TestParseText_StripsTags(t *testing.T) {
	job := ParseText("<div><b>Title:</b> Frontend Developer</div><p>React, CSS</p>")

	assert.Equal(t, []string{"React", "CSS"}, job.Keywords)
	assert.NotContains(t, job.Description, "<")
}

func TestParseText_DescriptionLimit(t *testing.T) {
	job := ParseText(strings.Repeat("a", TextDescriptionLimit*2))

	assert.Len(t, job.Description, TextDescriptionLimit)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hé", truncate("héllo", 2))
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "", truncate("abc", 0))
}

type memoryCache struct {
	items  map[string]types.ParsedJob
	getErr error
	sets   int
}

func (c *memoryCache) Get(_ context.Context, url string) (*types.ParsedJob, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	job, ok := c.items[url]
	if !ok {
		return nil, nil
	}
	return &job, nil
}

func (c *memoryCache) Set(_ context.Context, url string, job types.ParsedJob) error {
	c.sets++
	c.items[url] = job
	return nil
}

func TestParse_UsesCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	cache := &memoryCache{items: map[string]types.ParsedJob{}}
	p := New(Options{Cache: cache})

	first := p.Parse(context.Background(), Input{URL: server.URL})
	second := p.Parse(context.Background(), Input{URL: server.URL})

	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, cache.sets)
}

func TestParse_CacheErrorIgnored(t *testing.T) {
	server := serve(t, http.StatusOK, postingHTML)
	cache := &memoryCache{items: map[string]types.ParsedJob{}, getErr: errors.New("redis down")}

	job := New(Options{Cache: cache}).Parse(context.Background(), Input{URL: server.URL})

	assert.Equal(t, "Senior Backend Engineer", job.Title)
}

func TestParse_RendersThinPages(t *testing.T) {
	server := serve(t, http.StatusOK, `<html><body><div id="app"></div></body></html>`)
	rendered := false
	p := New(Options{Render: func(_ context.Context, _ string) (string, error) {
		rendered = true
		return postingHTML, nil
	}})

	job := p.Parse(context.Background(), Input{URL: server.URL})

	assert.True(t, rendered)
	assert.Equal(t, "Acme Corp", job.Company)
}

func TestParse_RenderFailureKeepsHTTPBody(t *testing.T) {
	server := serve(t, http.StatusOK, `<html><head><title>Thin page</title></head><body></body></html>`)
	p := New(Options{Render: func(_ context.Context, _ string) (string, error) {
		return "", errors.New("no chrome")
	}})

	job := p.Parse(context.Background(), Input{URL: server.URL})

	assert.Equal(t, "Thin page", job.Title)
}

func TestParse_PlainTextPageUsesTextMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Title: Senior Go Engineer\nCompany: Acme Corp\nWe use React and Docker."))
	}))
	defer server.Close()

	job := New(Options{}).Parse(context.Background(), Input{URL: server.URL})

	assert.Equal(t, "Senior Go Engineer", job.Title)
	assert.Equal(t, "Acme Corp", job.Company)
	assert.ElementsMatch(t, []string{"React", "Docker"}, job.Keywords)
}

func TestParse_CachesDescriptionOnlyPage(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>We use React and Docker daily.</p></body></html>`))
	}))
	defer server.Close()

	cache := &memoryCache{items: map[string]types.ParsedJob{}}
	p := New(Options{Cache: cache})

	first := p.Parse(context.Background(), Input{URL: server.URL})
	second := p.Parse(context.Background(), Input{URL: server.URL})

	assert.Empty(t, first.Title)
	assert.Empty(t, first.Company)
	assert.NotEmpty(t, first.Description)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, cache.sets)
}

func TestParse_BlankPageNotCached(t *testing.T) {
	server := serve(t, http.StatusOK, `<html><body></body></html>`)
	cache := &memoryCache{items: map[string]types.ParsedJob{}}

	job := New(Options{Cache: cache}).Parse(context.Background(), Input{URL: server.URL})

	assert.True(t, job.Blank())
	assert.Equal(t, 0, cache.sets)
}

func TestParse_PublicOnlyFallsBackToText(t *testing.T) {
	server := serve(t, http.StatusOK, postingHTML)

	job := New(Options{PublicOnly: true}).Parse(context.Background(), Input{
		URL:  server.URL,
		Text: "Company: Globex",
	})

	assert.Equal(t, "Globex", job.Company)
	assert.Empty(t, job.Title)
}
