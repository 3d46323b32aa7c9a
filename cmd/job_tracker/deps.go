package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/job-tracker/internal/cache"
	"github.com/jonathan/job-tracker/internal/config"
	"github.com/jonathan/job-tracker/internal/db"
	"github.com/jonathan/job-tracker/internal/fetch"
	"github.com/jonathan/job-tracker/internal/gmail"
	"github.com/jonathan/job-tracker/internal/jobparse"
	"github.com/jonathan/job-tracker/internal/research"
)

// newParser builds a job parser from the fetch and redis sections. The parse cache is nil
// unless redis is configured; the returned close function releases it.
func newParser(ctx context.Context, c *config.Config) (*jobparse.Parser, *cache.ParseCache, func(), error) {
	opts := jobparse.Options{
		Timeout:    c.Fetch.Timeout,
		UserAgent:  c.Fetch.UserAgent,
		PublicOnly: !c.Fetch.AllowPrivateHosts,
	}
	if c.Fetch.UseBrowser {
		opts.Render = fetch.BrowserRenderer(2 * c.Fetch.Timeout)
	}

	var pc *cache.ParseCache
	closeFn := func() {}
	if c.Redis.Address != "" {
		var err error
		pc, err = cache.Connect(ctx, c.Redis)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		opts.Cache = pc
		closeFn = func() {
			if err := pc.Close(); err != nil {
				log.Warn().Err(err).Msg("closing parse cache")
			}
		}
		log.Info().Str("addr", c.Redis.Address).Dur("ttl", pc.TTL()).Msg("parse cache enabled")
	}
	return jobparse.New(opts), pc, closeFn, nil
}

// openDB connects to PostgreSQL using the database section.
func openDB(ctx context.Context, c *config.Config) (*db.DB, error) {
	if c.Database.URL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or database.url)")
	}
	database, err := db.Connect(ctx, c.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// openGmail returns a Gmail client, or nil when import is not configured.
func openGmail(ctx context.Context, c *config.Config) (*gmail.Client, error) {
	if !c.Gmail.Enabled() {
		return nil, nil
	}
	client, err := gmail.NewClient(ctx, c.Gmail.CredentialsFile, c.Gmail.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	return client, nil
}

// newResearcher builds the company researcher. Website lookup is enabled only when the search
// key and engine ID are both configured.
func newResearcher(ctx context.Context, c *config.Config) (*research.Researcher, error) {
	opts := research.Options{
		FeedURL:   c.Research.NewsFeedURL,
		NewsLimit: c.Research.NewsLimit,
		Fetch: &fetch.Options{
			Timeout:    c.Fetch.Timeout,
			UserAgent:  c.Fetch.UserAgent,
			PublicOnly: !c.Fetch.AllowPrivateHosts,
		},
	}
	if c.Research.SearchEnabled() {
		svc, err := research.NewSearchService(ctx, c.Research.SearchAPIKey)
		if err != nil {
			return nil, err
		}
		opts.Search = svc
		opts.SearchCX = c.Research.SearchEngineID
	}
	return research.New(opts), nil
}
