package gmail

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	gmailapi "google.golang.org/api/gmail/v1"
)

var spaces = regexp.MustCompile(`\s+`)

// MessageText returns the readable body of msg: the HTML part rendered to text, else the
// plain-text part, else the snippet.
func MessageText(msg *gmailapi.Message) string {
	if msg == nil {
		return ""
	}
	if html := decodeBase64URL(partData(findPart(msg.Payload, "text/html"))); html != "" {
		if text := htmlToText(html); text != "" {
			return text
		}
	}
	if plain := decodeBase64URL(partData(findPart(msg.Payload, "text/plain"))); plain != "" {
		return plain
	}
	return msg.Snippet
}

// findPart searches part and its descendants depth-first for a part of the given MIME type
// that carries inline data.
func findPart(part *gmailapi.MessagePart, mime string) *gmailapi.MessagePart {
	if part == nil {
		return nil
	}
	if part.MimeType == mime && part.Body != nil && part.Body.Data != "" {
		return part
	}
	for _, child := range part.Parts {
		if found := findPart(child, mime); found != nil {
			return found
		}
	}
	return nil
}

func partData(part *gmailapi.MessagePart) string {
	if part == nil || part.Body == nil {
		return ""
	}
	return part.Body.Data
}

// decodeBase64URL decodes URL-safe base64 with or without padding. Invalid input yields "".
func decodeBase64URL(data string) string {
	if data == "" {
		return ""
	}
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(b)
}

func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(spaces.ReplaceAllString(doc.Find("body").Text(), " "))
}
