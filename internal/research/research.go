// Package research gathers public information about a company: recent headlines from an RSS
// news search and, when a search key is configured, the company's website.
//
// Lookups never fail. Network and format problems degrade to an empty result.
package research

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/jonathan/job-tracker/internal/fetch"
	"github.com/jonathan/job-tracker/internal/types"
)

// DefaultNewsLimit caps the headlines returned when Options.NewsLimit is zero.
const DefaultNewsLimit = 5

// Options configures a Researcher.
type Options struct {
	// FeedURL is an RSS search endpoint taking the query in its q parameter.
	FeedURL   string
	NewsLimit int
	Fetch     *fetch.Options
	// Search enables website lookup. Nil disables it.
	Search   *customsearch.Service
	SearchCX string
}

// Researcher looks up companies. A Researcher is safe for concurrent use.
type Researcher struct {
	feedURL   string
	newsLimit int
	fetchOpts *fetch.Options
	search    *customsearch.Service
	cx        string
}

// New creates a Researcher.
func New(opts Options) *Researcher {
	fetchOpts := fetch.Options{}
	if opts.Fetch != nil {
		fetchOpts = *opts.Fetch
	}
	fetchOpts.Headers = map[string]string{"Accept": "application/rss+xml, application/xml;q=0.9, */*;q=0.5"}

	limit := opts.NewsLimit
	if limit <= 0 {
		limit = DefaultNewsLimit
	}
	return &Researcher{
		feedURL:   opts.FeedURL,
		newsLimit: limit,
		fetchOpts: &fetchOpts,
		search:    opts.Search,
		cx:        opts.SearchCX,
	}
}

// NewSearchService creates a Custom Search client for website lookup.
func NewSearchService(ctx context.Context, apiKey string) (*customsearch.Service, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return svc, nil
}

// Company returns everything the Researcher can find about name.
func (r *Researcher) Company(ctx context.Context, name string) types.CompanyProfile {
	name = strings.TrimSpace(name)
	profile := types.CompanyProfile{Company: name, News: r.News(ctx, name)}
	if r.search != nil {
		website, err := r.Website(ctx, name)
		if err != nil {
			log.Debug().Err(err).Str("company", name).Msg("website lookup failed")
		}
		profile.Website = website
	}
	return profile
}

// News returns up to the configured number of recent headlines about name. The result is
// never nil.
func (r *Researcher) News(ctx context.Context, name string) []types.NewsItem {
	empty := []types.NewsItem{}
	if r.feedURL == "" || strings.TrimSpace(name) == "" {
		return empty
	}

	feedURL, err := url.Parse(r.feedURL)
	if err != nil {
		log.Warn().Err(err).Str("feed", r.feedURL).Msg("invalid news feed URL")
		return empty
	}
	q := feedURL.Query()
	q.Set("q", strings.TrimSpace(name)+" news")
	feedURL.RawQuery = q.Encode()

	result, err := fetch.URL(ctx, feedURL.String(), r.fetchOpts)
	if err != nil {
		log.Debug().Err(err).Str("company", name).Msg("news feed fetch failed")
		return empty
	}
	items, err := ParseFeed([]byte(result.HTML))
	if err != nil {
		log.Debug().Err(err).Str("company", name).Msg("news feed parse failed")
		return empty
	}
	if len(items) > r.newsLimit {
		items = items[:r.newsLimit]
	}
	return items
}

// Website searches for the company's official site and returns the first result link.
func (r *Researcher) Website(ctx context.Context, name string) (string, error) {
	if r.search == nil {
		return "", nil
	}
	resp, err := r.search.Cse.List().Cx(r.cx).Q(name + " official website").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].Link, nil
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

// ParseFeed extracts the titled, linked items of an RSS 2.0 document in feed order.
func ParseFeed(body []byte) ([]types.NewsItem, error) {
	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("rss parse error: %w", err)
	}
	items := []types.NewsItem{}
	for _, item := range feed.Channel.Items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		items = append(items, types.NewsItem{Title: title, Link: link})
	}
	return items, nil
}
