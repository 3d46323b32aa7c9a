// Package jobparse turns a job posting URL or a block of pasted text into a ParsedJob.
//
// Parsing never fails: network, status and markup problems degrade to a partially or fully
// empty result.
package jobparse

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/job-tracker/internal/fetch"
	"github.com/jonathan/job-tracker/internal/types"
)

// Input is what the parser is given. At least one field should be set.
type Input struct {
	URL  string
	Text string
}

// Cache stores parse results keyed by URL.
type Cache interface {
	Get(ctx context.Context, url string) (*types.ParsedJob, error)
	Set(ctx context.Context, url string, job types.ParsedJob) error
}

// RenderFunc renders a URL in a browser and returns the resulting HTML.
type RenderFunc func(ctx context.Context, url string) (string, error)

// Options configures a Parser.
type Options struct {
	// Timeout bounds the HTTP fetch. Zero means fetch.DefaultTimeout.
	Timeout time.Duration
	// UserAgent overrides fetch.DefaultUserAgent.
	UserAgent string
	// Cache is optional.
	Cache Cache
	// Render is tried when a fetched page carries too little text. Nil disables it.
	Render RenderFunc
	// PublicOnly keeps fetches away from loopback and private networks.
	PublicOnly bool
}

// Parser extracts job postings. A Parser is safe for concurrent use.
type Parser struct {
	fetchOpts *fetch.Options
	cache     Cache
	render    RenderFunc
}

// New creates a Parser.
func New(opts Options) *Parser {
	return &Parser{
		fetchOpts: &fetch.Options{Timeout: opts.Timeout, UserAgent: opts.UserAgent, PublicOnly: opts.PublicOnly},
		cache:     opts.Cache,
		render:    opts.Render,
	}
}

// Parse extracts a ParsedJob from in. With a URL the page is fetched and parsed in page mode,
// or in text mode when the response is not HTML. If the fetch fails the parser falls back to
// in.Text in text mode.
func (p *Parser) Parse(ctx context.Context, in Input) types.ParsedJob {
	if in.URL == "" {
		return ParseText(in.Text)
	}

	if p.cache != nil {
		cached, err := p.cache.Get(ctx, in.URL)
		if err != nil {
			log.Warn().Err(err).Str("url", in.URL).Msg("parse cache lookup failed")
		} else if cached != nil {
			return normalize(*cached)
		}
	}

	page, ok := p.load(ctx, in.URL)
	if !ok {
		return ParseText(in.Text)
	}

	var job types.ParsedJob
	if page.html {
		job = ParseHTML(page.body, fetch.DetectPlatform(in.URL))
	} else {
		job = ParseText(page.body)
	}
	if p.cache != nil && !job.Blank() {
		if err := p.cache.Set(ctx, in.URL, job); err != nil {
			log.Warn().Err(err).Str("url", in.URL).Msg("parse cache store failed")
		}
	}
	return job
}

type page struct {
	body string
	html bool
}

func (p *Parser) load(ctx context.Context, url string) (page, bool) {
	result, err := fetch.URL(ctx, url, p.fetchOpts)
	if err != nil {
		log.Debug().Err(err).Str("url", url).Msg("job page fetch failed, using text fallback")
		return page{}, false
	}

	if !fetch.IsHTML(result.ContentType) {
		return page{body: result.HTML}, true
	}

	if p.render != nil && fetch.ShouldUseBrowser(bodyText(result.HTML)) {
		rendered, err := p.render(ctx, url)
		if err != nil {
			log.Debug().Err(err).Str("url", url).Msg("browser render failed, keeping HTTP body")
		} else if rendered != "" {
			return page{body: rendered, html: true}, true
		}
	}
	return page{body: result.HTML, html: true}, true
}

func normalize(job types.ParsedJob) types.ParsedJob {
	if job.Keywords == nil {
		job.Keywords = []string{}
	}
	return job
}
