package jobparse

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/job-tracker/internal/fetch"
	"github.com/jonathan/job-tracker/internal/keywords"
	"github.com/jonathan/job-tracker/internal/types"
)

const (
	// PageDescriptionLimit is the body text kept as description when a page has no meta description.
	PageDescriptionLimit = 500
	// TextDescriptionLimit is the text kept as description in text mode.
	TextDescriptionLimit = 1200
)

var (
	titlePattern   = regexp.MustCompile(`(?i)title[:\-\s]+(.{5,120})`)
	companyPattern = regexp.MustCompile(`(?i)company[:\-\s]+([A-Za-z0-9 .,&'-]{2,80})`)
	whitespace     = regexp.MustCompile(`\s+`)
)

var companySelectors = []string{
	".topcard__org-name",
	".jobsearch-CompanyReview--heading",
}

// ParseHTML extracts a job posting from an HTML document.
func ParseHTML(html string, platform fetch.Platform) types.ParsedJob {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ParseText(html)
	}
	doc.Find("script, style, noscript").Remove()
	body := cleanText(doc.Find("body").Text())

	job := types.ParsedJob{
		Title:       firstNonEmpty(metaContent(doc, `meta[property="og:title"]`), cleanText(doc.Find("title").First().Text()), matchGroup(titlePattern, body)),
		Company:     company(doc, platform, body),
		Description: firstNonEmpty(metaContent(doc, `meta[property="og:description"]`), metaContent(doc, `meta[name="description"]`), truncate(body, PageDescriptionLimit)),
	}
	job.Keywords = []string{}
	if job.Description != "" {
		job.Keywords = keywords.ExtractWithNouns(keywords.Default, job.Description)
	}
	return job
}

// ParseText extracts a job posting from plain text. HTML tags are stripped first when present.
func ParseText(text string) types.ParsedJob {
	text = stripTags(text)
	desc := strings.TrimSpace(truncate(text, TextDescriptionLimit))
	return types.ParsedJob{
		Title:       matchGroup(titlePattern, text),
		Company:     matchGroup(companyPattern, text),
		Description: desc,
		Keywords:    keywords.Default.Extract(desc),
	}
}

func company(doc *goquery.Document, platform fetch.Platform, body string) string {
	if c := metaContent(doc, `meta[name="company"]`); c != "" {
		return c
	}
	selectors := append(append([]string{}, companySelectors...), fetch.CompanySelectors(platform)...)
	for _, sel := range selectors {
		s := doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		if c := cleanText(s.Text()); c != "" {
			return c
		}
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			return strings.TrimSpace(alt)
		}
	}
	return matchGroup(companyPattern, body)
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func bodyText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return cleanText(doc.Find("body").Text())
}

func stripTags(text string) string {
	if !strings.Contains(text, "<") || !strings.Contains(text, ">") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	doc.Find("script, style, noscript").Remove()
	return cleanText(doc.Text())
}

func matchGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func cleanText(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
